// seehuhn.de/go/marker - a freehand marker stroke engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package bbox implements the axis-aligned box arithmetic used for stroke
// bounds, hitboxes and viewports.
//
// All boxes are rect.Rect values with LLx <= URx and LLy <= URy. Document
// coordinates grow downwards, so LLy is the top edge on screen.
package bbox

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point returns the degenerate box containing only p.
func Point(p vec.Vec2) rect.Rect {
	return rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
}

// ExtendPoint grows r to contain p.
func ExtendPoint(r rect.Rect, p vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(r.LLx, p.X),
		LLy: min(r.LLy, p.Y),
		URx: max(r.URx, p.X),
		URy: max(r.URy, p.Y),
	}
}

// Union returns the smallest box containing a and b.
func Union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

// Loosen expands r by d on all four sides.
func Loosen(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}

// Intersect returns the overlap of a and b. ok is false if the boxes do
// not overlap. Boxes which only touch along an edge do not overlap.
func Intersect(a, b rect.Rect) (r rect.Rect, ok bool) {
	r = rect.Rect{
		LLx: max(a.LLx, b.LLx),
		LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx),
		URy: min(a.URy, b.URy),
	}
	if r.LLx >= r.URx || r.LLy >= r.URy {
		return rect.Rect{}, false
	}
	return r, true
}

// Contains reports whether outer contains inner (boundaries included).
func Contains(outer, inner rect.Rect) bool {
	return inner.LLx >= outer.LLx && inner.URx <= outer.URx &&
		inner.LLy >= outer.LLy && inner.URy <= outer.URy
}

// ContainsPoint reports whether p lies in r (boundaries included).
func ContainsPoint(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// Valid reports whether r has finite coordinates and non-negative extent.
func Valid(r rect.Rect) bool {
	for _, v := range [...]float64{r.LLx, r.LLy, r.URx, r.URy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.LLx <= r.URx && r.LLy <= r.URy
}

// Area returns the area of r.
func Area(r rect.Rect) float64 {
	return (r.URx - r.LLx) * (r.URy - r.LLy)
}
