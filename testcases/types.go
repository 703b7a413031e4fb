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

package testcases

import (
	"encoding/json"
	"fmt"
	"time"

	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/pen"
	"seehuhn.de/go/marker/penpath"
)

// Scenario is a named sequence of pointer events, replayed against a
// fresh document.
type Scenario struct {
	Name   string         // lowercase a-z and _ only
	Width  float64        // document width
	Height float64        // document height
	Layout doc.Layout     // growth rule of the document
	Zoom   float64        // camera zoom (zero means 1)
	Config *marker.Config // tool settings (nil means defaults)
	Steps  []Step

	// ScaleFactor is the number of device pixels per zoomed document
	// unit. Zero means 1.
	ScaleFactor float64

	// Strokes is the number of strokes the scenario leaves in the store.
	Strokes int
}

// Kind is the type of a Step.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Cancel
)

var kindNames = [...]string{"down", "move", "up", "cancel"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("testcases: invalid step kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("testcases: unknown step type %q", text)
}

// Step is one pointer event of a scenario.
type Step struct {
	Type     Kind    `json:"type"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Pressure float64 `json:"pressure,omitempty"`

	// T is the time of the event in milliseconds after the start of the
	// scenario.
	T int64 `json:"t,omitempty"`
}

// Event converts s into a pointer event.
func (s Step) Event() pen.Event {
	el := penpath.NewElement(s.X, s.Y, s.Pressure)
	switch s.Type {
	case Down:
		return pen.Down{Element: el}
	case Move:
		return pen.Move{Element: el}
	case Up:
		return pen.Up{Element: el}
	default:
		return pen.Cancel{}
	}
}

// Time returns the time of the step, relative to start.
func (s Step) Time(start time.Time) time.Time {
	return start.Add(time.Duration(s.T) * time.Millisecond)
}

// ParseScript reads a JSON array of steps.
func ParseScript(data []byte) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testcases: invalid script: %w", err)
	}
	return steps, nil
}
