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

package doc

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Camera describes which part of the document is visible.
type Camera struct {
	// Offset is the position of the top-left corner of the view, in
	// zoomed document units.
	Offset vec.Vec2

	// Size is the size of the view in zoomed document units.
	Size vec.Vec2

	// Zoom is the current zoom factor.
	Zoom float64

	// ScaleFactor is the number of device pixels per zoomed unit.
	ScaleFactor float64
}

// NewCamera returns a camera at the document origin with zoom 1.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Size:        vec.Vec2{X: width, Y: height},
		Zoom:        1,
		ScaleFactor: 1,
	}
}

// Viewport returns the visible area in document coordinates.
func (c *Camera) Viewport() rect.Rect {
	z := c.zoom()
	return rect.Rect{
		LLx: c.Offset.X / z,
		LLy: c.Offset.Y / z,
		URx: (c.Offset.X + c.Size.X) / z,
		URy: (c.Offset.Y + c.Size.Y) / z,
	}
}

// ImageScale returns the number of device pixels per document unit.
func (c *Camera) ImageScale() float64 {
	f := c.ScaleFactor
	if !(f > 0) {
		f = 1
	}
	return c.zoom() * f
}

func (c *Camera) zoom() float64 {
	if !(c.Zoom > 0) {
		return 1
	}
	return c.Zoom
}
