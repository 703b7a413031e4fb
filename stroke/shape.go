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
	"image/color"
	"math"
	"strings"

	"seehuhn.de/go/pdf/graphics"
)

// ErrInvalidShape is returned when decoding an unknown marker shape.
var ErrInvalidShape = errors.New("stroke: invalid marker shape")

// Shape selects the end caps and corner joins of a marker stroke. It does
// not change the stored geometry.
type Shape uint8

const (
	// Circular strokes have round caps and joins.
	Circular Shape = iota

	// Rectangular strokes have butt caps and bevel joins.
	Rectangular
)

// ShapeFromUint converts the integer tag of a shape.
func ShapeFromUint(u uint32) (Shape, error) {
	switch u {
	case 0:
		return Circular, nil
	case 1:
		return Rectangular, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidShape, u)
}

func (s Shape) String() string {
	switch s {
	case Circular:
		return "circular"
	case Rectangular:
		return "rectangular"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// LineCap returns the cap style used to render the shape.
func (s Shape) LineCap() graphics.LineCapStyle {
	if s == Rectangular {
		return graphics.LineCapButt
	}
	return graphics.LineCapRound
}

// LineJoin returns the join style used to render the shape.
func (s Shape) LineJoin() graphics.LineJoinStyle {
	if s == Rectangular {
		return graphics.LineJoinBevel
	}
	return graphics.LineJoinRound
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s Shape) MarshalText() ([]byte, error) {
	if s > Rectangular {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShape, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *Shape) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "circular":
		*s = Circular
	case "rectangular":
		*s = Rectangular
	default:
		return fmt.Errorf("%w: %q", ErrInvalidShape, text)
	}
	return nil
}

// UnmarshalJSON accepts both the string form and the integer tag.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var u uint32
	if err := json.Unmarshal(data, &u); err == nil {
		v, err := ShapeFromUint(u)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidShape, data)
	}
	return s.UnmarshalText([]byte(str))
}

// Color is a non-premultiplied RGBA colour with components in [0, 1].
type Color struct {
	R float64 `json:"r" toml:"r"`
	G float64 `json:"g" toml:"g"`
	B float64 `json:"b" toml:"b"`
	A float64 `json:"a" toml:"a"`
}

// WithAlphaScaled returns c with its alpha multiplied by f.
func (c Color) WithAlphaScaled(f float64) Color {
	c.A *= f
	return c
}

// NRGBA converts c to 8 bits per channel. Components are clamped to
// [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
