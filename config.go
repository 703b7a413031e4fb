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

package marker

import (
	"math"

	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
)

// Limits for the tool parameters.
const (
	WidthMin    = 1.0
	WidthMax    = 500.0
	StrengthMin = 0.0
	StrengthMax = 1.0
)

// Config holds the marker settings. A snapshot is taken whenever a new
// stroke starts.
type Config struct {
	// Strength scales the alpha channel of Color.
	Strength float64 `json:"strength" toml:"strength"`

	// Width is the stroke width in document units.
	Width float64 `json:"width" toml:"width"`

	Shape stroke.Shape `json:"shape" toml:"shape"`
	Color stroke.Color `json:"color" toml:"color"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Strength: 0.5,
		Width:    15,
		Shape:    stroke.Circular,
		Color:    stroke.Color{R: 1, G: 0.9, B: 0, A: 1},
	}
}

// Clamped returns c with Width and Strength moved into their allowed
// ranges. NaN values are replaced by the defaults.
func (c Config) Clamped() Config {
	def := DefaultConfig()
	if math.IsNaN(c.Width) {
		c.Width = def.Width
	}
	if math.IsNaN(c.Strength) {
		c.Strength = def.Strength
	}
	c.Width = min(max(c.Width, WidthMin), WidthMax)
	c.Strength = min(max(c.Strength, StrengthMin), StrengthMax)
	return c
}

// EffectiveColor returns the colour strokes are painted with.
func (c Config) EffectiveColor() stroke.Color {
	return c.Color.WithAlphaScaled(c.Strength)
}

// Layer returns the store layer new strokes are placed on.
func (c Config) Layer() store.Layer {
	return store.Highlighter
}
