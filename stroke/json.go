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

package stroke

import (
	"encoding/json"
	"errors"
	"fmt"

	"seehuhn.de/go/marker/penpath"
)

type markerJSON struct {
	Path  penpath.PenPath `json:"path"`
	Width float64         `json:"width"`
	Shape Shape           `json:"shape"`
	Color Color           `json:"color"`
}

// MarshalJSON implements the json.Marshaler interface. The cached
// geometry is not included.
func (s *MarkerStroke) MarshalJSON() ([]byte, error) {
	return json.Marshal(markerJSON{
		Path:  s.Path,
		Width: s.Width,
		Shape: s.Shape,
		Color: s.Color,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. The cached
// geometry is recomputed.
func (s *MarkerStroke) UnmarshalJSON(data []byte) error {
	var m markerJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if !(m.Width > 0) {
		return fmt.Errorf("stroke: invalid width %g", m.Width)
	}
	*s = *FromPenPath(m.Path, m.Width, m.Shape, m.Color)
	return nil
}

const kindMarker = "markerstroke"

// Encode serialises a stroke together with its type.
func Encode(s Stroke) ([]byte, error) {
	switch s := s.(type) {
	case *MarkerStroke:
		return json.Marshal(map[string]*MarkerStroke{kindMarker: s})
	default:
		return nil, fmt.Errorf("stroke: cannot encode %T", s)
	}
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Stroke, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if len(env) != 1 {
		return nil, errors.New("stroke: expected exactly one stroke kind")
	}
	for kind, raw := range env {
		switch kind {
		case kindMarker:
			s := &MarkerStroke{}
			if err := json.Unmarshal(raw, s); err != nil {
				return nil, err
			}
			return s, nil
		default:
			return nil, fmt.Errorf("stroke: unknown kind %q", kind)
		}
	}
	panic("unreachable")
}
