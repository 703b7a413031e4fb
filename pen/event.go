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

// Package pen defines pointer events, event results and the path builders
// which turn a stream of pointer samples into path segments.
package pen

import "seehuhn.de/go/marker/penpath"

// Event is a pointer event. The concrete types are Down, Move, Up and
// Cancel. Events are values and are never modified after creation.
type Event interface {
	isEvent()
}

// Down reports that the pen touches the surface. Repeated Down events are
// sent while the pen stays in contact on some platforms.
type Down struct {
	Element penpath.Element
}

// Move reports a new pen position while the pen is in contact.
type Move struct {
	Element penpath.Element
}

// Up reports that the pen was lifted at the given position.
type Up struct {
	Element penpath.Element
}

// Cancel aborts the current interaction, for example when the input device
// is lost.
type Cancel struct{}

func (Down) isEvent()   {}
func (Move) isEvent()   {}
func (Up) isEvent()     {}
func (Cancel) isEvent() {}

// Propagation tells the caller whether other consumers should see an event.
type Propagation int

const (
	// Proceed lets other consumers process the event.
	Proceed Propagation = iota
	// Stop consumes the event.
	Stop
)

func (p Propagation) String() string {
	if p == Stop {
		return "stop"
	}
	return "proceed"
}

// Progress is the state of a pen after it handled an event.
type Progress int

const (
	Idle Progress = iota
	InProgress
	Finished
)

func (p Progress) String() string {
	switch p {
	case Idle:
		return "idle"
	case InProgress:
		return "in-progress"
	case Finished:
		return "finished"
	default:
		return "invalid"
	}
}

// EventResult describes how an event was handled.
type EventResult[T any] struct {
	Handled   bool
	Propagate Propagation
	Progress  T
}
