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

package pen

import (
	"time"

	"seehuhn.de/go/marker/penpath"
)

// CurvedBuilder smooths the pen samples with quadratic segments. Every
// sample becomes the control point of a curve ending halfway to the next
// sample; the last curve ends at the lift-off position.
type CurvedBuilder struct {
	start penpath.Element
	prev  penpath.Element // last raw sample, control point of the next curve
}

// NewCurvedBuilder starts a CurvedBuilder at start. It has the signature
// of a Creator.
func NewCurvedBuilder(start penpath.Element, _ time.Time) Buildable {
	return &CurvedBuilder{start: start, prev: start}
}

// HandleEvent implements the Buildable interface.
func (b *CurvedBuilder) HandleEvent(ev Event, now time.Time, c Constraints) EventResult[BuilderProgress] {
	res := EventResult[BuilderProgress]{Handled: true, Propagate: Stop}

	switch ev := ev.(type) {
	case Down:
		res.Progress = b.contact(ev.Element, c)
	case Move:
		res.Progress = b.contact(ev.Element, c)
	case Up:
		el := constrain(b.start, ev.Element, c)
		seg := penpath.Quad{Cp: b.prev.Pos, To: el}
		b.prev = el
		res.Progress = BuilderFinished{Segments: []penpath.Segment{seg}}
	case Cancel:
		res.Progress = BuilderFinished{}
	default:
		res = EventResult[BuilderProgress]{Propagate: Proceed, Progress: BuilderInProgress{}}
	}
	return res
}

func (b *CurvedBuilder) contact(el penpath.Element, c Constraints) BuilderProgress {
	el = constrain(b.start, el, c)
	if el.Pos == b.prev.Pos {
		return BuilderInProgress{}
	}
	mid := penpath.Element{
		Pos:      b.prev.Pos.Add(el.Pos).Mul(0.5),
		Pressure: (b.prev.Pressure + el.Pressure) / 2,
	}
	seg := penpath.Quad{Cp: b.prev.Pos, To: mid}
	b.prev = el
	return EmitContinue{Segments: []penpath.Segment{seg}}
}
