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

// Package config reads the settings of the marker tools from TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/stroke"
)

// ErrInvalid is returned by Validate for settings outside their allowed
// range.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds all settings.
type Config struct {
	Marker   marker.Config `toml:"marker"`
	Document Document      `toml:"document"`
	Render   Render        `toml:"render"`
	Log      Log           `toml:"log"`
}

// Document holds the settings for new documents.
type Document struct {
	Layout doc.Layout `toml:"layout"`
	Format doc.Format `toml:"format"`
}

// Render holds the settings of the background renderer.
type Render struct {
	// Workers is the number of rendering goroutines. 0 means one per CPU.
	Workers int `toml:"workers"`

	// QueueBuffer is the number of finished renders which can wait to be
	// applied.
	QueueBuffer int `toml:"queue_buffer"`

	// ScaleFactor is the number of device pixels per document unit at
	// zoom 1.
	ScaleFactor float64 `toml:"scale_factor"`
}

// Log holds the logging settings.
type Log struct {
	// Level is one of "debug", "info", "warn" and "error".
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Marker: marker.DefaultConfig(),
		Document: Document{
			Layout: doc.Infinite,
			Format: doc.A4,
		},
		Render: Render{
			QueueBuffer: 64,
			ScaleFactor: 1,
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads the configuration file at path. Settings missing from the
// file keep their default values. If the file does not exist, the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal returns the TOML form of cfg.
func (cfg *Config) Marshal() ([]byte, error) {
	return toml.Marshal(cfg)
}

// Merge combines base and overlay. Settings which are non-zero in overlay
// take precedence.
func Merge(base, overlay *Config) *Config {
	res := *base

	m, o := &res.Marker, overlay.Marker
	if o.Strength != 0 {
		m.Strength = o.Strength
	}
	if o.Width != 0 {
		m.Width = o.Width
	}
	if o.Shape != stroke.Circular {
		m.Shape = o.Shape
	}
	if o.Color != (stroke.Color{}) {
		m.Color = o.Color
	}

	if overlay.Document.Layout != doc.FixedSize {
		res.Document.Layout = overlay.Document.Layout
	}
	if overlay.Document.Format != (doc.Format{}) {
		res.Document.Format = overlay.Document.Format
	}

	if overlay.Render.Workers != 0 {
		res.Render.Workers = overlay.Render.Workers
	}
	if overlay.Render.QueueBuffer != 0 {
		res.Render.QueueBuffer = overlay.Render.QueueBuffer
	}
	if overlay.Render.ScaleFactor != 0 {
		res.Render.ScaleFactor = overlay.Render.ScaleFactor
	}

	if overlay.Log.Level != "" {
		res.Log.Level = overlay.Log.Level
	}
	return &res
}

// Validate checks that all settings are in range.
func (cfg *Config) Validate() error {
	m := cfg.Marker
	if !(m.Width >= marker.WidthMin && m.Width <= marker.WidthMax) {
		return fmt.Errorf("%w: marker width %g not in [%g, %g]",
			ErrInvalid, m.Width, marker.WidthMin, marker.WidthMax)
	}
	if !(m.Strength >= marker.StrengthMin && m.Strength <= marker.StrengthMax) {
		return fmt.Errorf("%w: marker strength %g not in [%g, %g]",
			ErrInvalid, m.Strength, marker.StrengthMin, marker.StrengthMax)
	}
	if _, err := stroke.ShapeFromUint(uint32(m.Shape)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, c := range []float64{m.Color.R, m.Color.G, m.Color.B, m.Color.A} {
		if !(c >= 0 && c <= 1) {
			return fmt.Errorf("%w: colour component %g not in [0, 1]", ErrInvalid, c)
		}
	}

	if cfg.Document.Layout > doc.Infinite {
		return fmt.Errorf("%w: document layout %d", ErrInvalid, cfg.Document.Layout)
	}
	if f := cfg.Document.Format; !(f.Width > 0 && f.Height > 0) {
		return fmt.Errorf("%w: page format %gx%g", ErrInvalid, f.Width, f.Height)
	}

	if cfg.Render.Workers < 0 || cfg.Render.QueueBuffer < 0 {
		return fmt.Errorf("%w: negative worker or queue size", ErrInvalid)
	}
	if !(cfg.Render.ScaleFactor > 0) {
		return fmt.Errorf("%w: scale factor %g", ErrInvalid, cfg.Render.ScaleFactor)
	}

	if _, err := cfg.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}
