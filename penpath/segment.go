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

package penpath

import "seehuhn.de/go/geom/vec"

// Segment is one piece of a pen path. It starts where the previous segment
// ends. The concrete types are Line, Quad and Cubic.
type Segment interface {
	// End returns the end point of the segment.
	End() Element

	points() []vec.Vec2
	mapPoints(f func(vec.Vec2) vec.Vec2) Segment
}

// Line is a straight segment.
type Line struct {
	To Element
}

// End implements the Segment interface.
func (s Line) End() Element { return s.To }

func (s Line) points() []vec.Vec2 { return []vec.Vec2{s.To.Pos} }

func (s Line) mapPoints(f func(vec.Vec2) vec.Vec2) Segment {
	s.To.Pos = f(s.To.Pos)
	return s
}

// Quad is a quadratic Bézier segment.
type Quad struct {
	Cp vec.Vec2
	To Element
}

// End implements the Segment interface.
func (s Quad) End() Element { return s.To }

func (s Quad) points() []vec.Vec2 { return []vec.Vec2{s.Cp, s.To.Pos} }

func (s Quad) mapPoints(f func(vec.Vec2) vec.Vec2) Segment {
	s.Cp = f(s.Cp)
	s.To.Pos = f(s.To.Pos)
	return s
}

// Cubic is a cubic Bézier segment.
type Cubic struct {
	Cp1, Cp2 vec.Vec2
	To       Element
}

// End implements the Segment interface.
func (s Cubic) End() Element { return s.To }

func (s Cubic) points() []vec.Vec2 { return []vec.Vec2{s.Cp1, s.Cp2, s.To.Pos} }

func (s Cubic) mapPoints(f func(vec.Vec2) vec.Vec2) Segment {
	s.Cp1 = f(s.Cp1)
	s.Cp2 = f(s.Cp2)
	s.To.Pos = f(s.To.Pos)
	return s
}
