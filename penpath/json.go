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

import (
	"encoding/json"
	"fmt"

	"seehuhn.de/go/geom/vec"
)

type jsonElement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

func toJSONElement(e Element) jsonElement {
	return jsonElement{X: e.Pos.X, Y: e.Pos.Y, Pressure: e.Pressure}
}

func (j jsonElement) element() Element {
	return NewElement(j.X, j.Y, j.Pressure)
}

type jsonSegment struct {
	Kind string      `json:"kind"`
	Cp   [][]float64 `json:"cp,omitempty"`
	To   jsonElement `json:"to"`
}

type jsonPath struct {
	Start    jsonElement   `json:"start"`
	Segments []jsonSegment `json:"segments"`
}

// MarshalJSON implements the json.Marshaler interface.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONElement(e))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Element) UnmarshalJSON(data []byte) error {
	var j jsonElement
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*e = j.element()
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (p PenPath) MarshalJSON() ([]byte, error) {
	out := jsonPath{
		Start:    toJSONElement(p.Start),
		Segments: make([]jsonSegment, 0, len(p.Segments)),
	}
	for _, seg := range p.Segments {
		js := jsonSegment{To: toJSONElement(seg.End())}
		switch s := seg.(type) {
		case Line:
			js.Kind = "line"
		case Quad:
			js.Kind = "quad"
			js.Cp = [][]float64{{s.Cp.X, s.Cp.Y}}
		case Cubic:
			js.Kind = "cubic"
			js.Cp = [][]float64{{s.Cp1.X, s.Cp1.Y}, {s.Cp2.X, s.Cp2.Y}}
		default:
			return nil, fmt.Errorf("penpath: unknown segment type %T", seg)
		}
		out.Segments = append(out.Segments, js)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PenPath) UnmarshalJSON(data []byte) error {
	var in jsonPath
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	res := PenPath{Start: in.Start.element()}
	for i, js := range in.Segments {
		cp, err := controlPoints(js.Cp)
		if err != nil {
			return fmt.Errorf("penpath: segment %d: %w", i, err)
		}
		to := js.To.element()

		var seg Segment
		switch {
		case js.Kind == "line" && len(cp) == 0:
			seg = Line{To: to}
		case js.Kind == "quad" && len(cp) == 1:
			seg = Quad{Cp: cp[0], To: to}
		case js.Kind == "cubic" && len(cp) == 2:
			seg = Cubic{Cp1: cp[0], Cp2: cp[1], To: to}
		default:
			return fmt.Errorf("penpath: segment %d: invalid %q segment with %d control points",
				i, js.Kind, len(cp))
		}
		res.Segments = append(res.Segments, seg)
	}
	*p = res
	return nil
}

func controlPoints(raw [][]float64) ([]vec.Vec2, error) {
	pts := make([]vec.Vec2, len(raw))
	for i, xy := range raw {
		if len(xy) != 2 {
			return nil, fmt.Errorf("control point %d has %d coordinates", i, len(xy))
		}
		pts[i] = vec.Vec2{X: xy[0], Y: xy[1]}
	}
	return pts, nil
}
