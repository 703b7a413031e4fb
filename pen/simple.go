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

// SimpleBuilder builds a polyline through the pen samples. Pressure and
// speed are ignored, which suits pens with a fixed stroke width.
type SimpleBuilder struct {
	start   penpath.Element
	last    penpath.Element
	started time.Time
}

// NewSimpleBuilder starts a SimpleBuilder at start. It has the signature of
// a Creator.
func NewSimpleBuilder(start penpath.Element, now time.Time) Buildable {
	return &SimpleBuilder{start: start, last: start, started: now}
}

// HandleEvent implements the Buildable interface.
//
// Down and Move emit one line to every new position. Up emits a final line
// to the lift-off position, even if the pen did not move, and finishes.
// Cancel finishes without further segments.
func (b *SimpleBuilder) HandleEvent(ev Event, now time.Time, c Constraints) EventResult[BuilderProgress] {
	switch ev := ev.(type) {
	case Down:
		return b.contact(ev.Element, c)
	case Move:
		return b.contact(ev.Element, c)
	case Up:
		el := constrain(b.start, ev.Element, c)
		b.last = el
		return EventResult[BuilderProgress]{
			Handled:   true,
			Propagate: Stop,
			Progress:  BuilderFinished{Segments: []penpath.Segment{penpath.Line{To: el}}},
		}
	case Cancel:
		return EventResult[BuilderProgress]{
			Handled:   true,
			Propagate: Stop,
			Progress:  BuilderFinished{},
		}
	}
	return EventResult[BuilderProgress]{
		Handled:   false,
		Propagate: Proceed,
		Progress:  BuilderInProgress{},
	}
}

func (b *SimpleBuilder) contact(el penpath.Element, c Constraints) EventResult[BuilderProgress] {
	el = constrain(b.start, el, c)
	if el.Pos == b.last.Pos {
		return EventResult[BuilderProgress]{
			Handled:   true,
			Propagate: Stop,
			Progress:  BuilderInProgress{},
		}
	}
	b.last = el
	return EventResult[BuilderProgress]{
		Handled:   true,
		Propagate: Stop,
		Progress:  EmitContinue{Segments: []penpath.Segment{penpath.Line{To: el}}},
	}
}
