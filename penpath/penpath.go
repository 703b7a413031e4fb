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

// Package penpath implements the vector paths produced by pen input.
//
// A PenPath is a start element followed by an ordered list of segments.
// Each segment continues from the end point of its predecessor (or from the
// start element, for the first segment), so the path is always continuous.
package penpath

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/marker/internal/bbox"
)

// Element is a single sampled pen position.
type Element struct {
	Pos vec.Vec2

	// Pressure is the normalised pen pressure in [0, 1]. The marker
	// ignores it, but it is kept so that paths round-trip unchanged.
	Pressure float64
}

// NewElement returns an element at (x, y) with the given pressure.
func NewElement(x, y, pressure float64) Element {
	return Element{Pos: vec.Vec2{X: x, Y: y}, Pressure: pressure}
}

// Within reports whether the element lies inside bounds.
func (e Element) Within(bounds rect.Rect) bool {
	return bbox.ContainsPoint(bounds, e.Pos)
}

// PenPath is a continuous path of segments.
type PenPath struct {
	Start    Element
	Segments []Segment
}

// New returns a path consisting only of the start element.
func New(start Element) PenPath {
	return PenPath{Start: start}
}

// NewWithSegments returns a path with the given start and segments.
// The segment slice is copied.
func NewWithSegments(start Element, segs []Segment) PenPath {
	return PenPath{Start: start, Segments: append([]Segment(nil), segs...)}
}

// Len returns the number of segments.
func (p PenPath) Len() int {
	return len(p.Segments)
}

// End returns the last point of the path.
func (p PenPath) End() Element {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].End()
}

// Extend appends segments to the path.
func (p *PenPath) Extend(segs ...Segment) {
	p.Segments = append(p.Segments, segs...)
}

// Clone returns a copy of p which does not share the segment slice.
func (p PenPath) Clone() PenPath {
	return NewWithSegments(p.Start, p.Segments)
}

// Bounds returns the bounding box of the start point and all segment
// points. For curves the control points are included, so the box is
// conservative.
func (p PenPath) Bounds() rect.Rect {
	r := bbox.Point(p.Start.Pos)
	for _, seg := range p.Segments {
		for _, pt := range seg.points() {
			r = bbox.ExtendPoint(r, pt)
		}
	}
	return r
}

// Hitboxes returns one box per segment. Each box covers the point where the
// segment starts and all points of the segment.
func (p PenPath) Hitboxes() []rect.Rect {
	boxes := make([]rect.Rect, 0, len(p.Segments))
	prev := p.Start.Pos
	for _, seg := range p.Segments {
		r := bbox.Point(prev)
		for _, pt := range seg.points() {
			r = bbox.ExtendPoint(r, pt)
		}
		boxes = append(boxes, r)
		prev = seg.End().Pos
	}
	return boxes
}

// Tail returns the sub-path made of the last min(n, p.Len()) segments.
// The tail starts at the end point of the segment preceding them, so the
// sub-path lines up exactly with the full path.
func (p PenPath) Tail(n int) PenPath {
	n = max(0, min(n, len(p.Segments)))
	first := len(p.Segments) - n

	start := p.Start
	if first > 0 {
		start = p.Segments[first-1].End()
	}
	return NewWithSegments(start, p.Segments[first:])
}

// Iter returns the path as a geometry iterator. The coordinate slices
// passed to yield are only valid during the call.
func (p PenPath) Iter() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = p.Start.Pos
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		for _, seg := range p.Segments {
			switch s := seg.(type) {
			case Line:
				buf[0] = s.To.Pos
				if !yield(path.CmdLineTo, buf[:1]) {
					return
				}
			case Quad:
				buf[0], buf[1] = s.Cp, s.To.Pos
				if !yield(path.CmdQuadTo, buf[:2]) {
					return
				}
			case Cubic:
				buf[0], buf[1], buf[2] = s.Cp1, s.Cp2, s.To.Pos
				if !yield(path.CmdCubeTo, buf[:3]) {
					return
				}
			}
		}
	}
}

// Translate moves the path by offset.
func (p *PenPath) Translate(offset vec.Vec2) {
	p.apply(func(v vec.Vec2) vec.Vec2 { return v.Add(offset) })
}

// Rotate rotates the path by angle (in radians) around center.
func (p *PenPath) Rotate(angle float64, center vec.Vec2) {
	sin, cos := math.Sincos(angle)
	p.apply(func(v vec.Vec2) vec.Vec2 {
		d := v.Sub(center)
		return vec.Vec2{
			X: center.X + d.X*cos - d.Y*sin,
			Y: center.Y + d.X*sin + d.Y*cos,
		}
	})
}

// Scale multiplies all coordinates by the per-axis factors in s.
func (p *PenPath) Scale(s vec.Vec2) {
	p.apply(func(v vec.Vec2) vec.Vec2 { return vec.Vec2{X: v.X * s.X, Y: v.Y * s.Y} })
}

// apply maps every point of the path through f. Segments are replaced,
// never modified in place.
func (p *PenPath) apply(f func(vec.Vec2) vec.Vec2) {
	p.Start.Pos = f(p.Start.Pos)
	segs := make([]Segment, len(p.Segments))
	for i, seg := range p.Segments {
		segs[i] = seg.mapPoints(f)
	}
	p.Segments = segs
}
