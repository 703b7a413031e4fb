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

// Package doc implements the document area and the camera looking at it.
package doc

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/widget"
)

// Layout controls how the document grows.
type Layout uint8

const (
	// FixedSize documents never change size.
	FixedSize Layout = iota

	// ContinuousVertical documents grow downwards, one page at a time.
	ContinuousVertical

	// Infinite documents grow in every direction, one page at a time.
	Infinite
)

func (l Layout) String() string {
	switch l {
	case FixedSize:
		return "fixed-size"
	case ContinuousVertical:
		return "continuous-vertical"
	case Infinite:
		return "infinite"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (l Layout) MarshalText() ([]byte, error) {
	if l > Infinite {
		return nil, fmt.Errorf("doc: invalid layout %d", uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (l *Layout) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for v := FixedSize; v <= Infinite; v++ {
		if v.String() == s {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("doc: unknown layout %q", text)
}

// Format is the page size.
type Format struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// A4 at 96 dots per inch.
var A4 = Format{Width: 794, Height: 1123}

// ContentBounder reports the area covered by the document content.
type ContentBounder interface {
	ContentBounds() (rect.Rect, bool)
}

// Document is the drawing area.
type Document struct {
	ID     uuid.UUID
	X, Y   float64
	Width  float64
	Height float64
	Format Format
	Layout Layout
}

// New returns a one-page document with the given layout.
func New(format Format, layout Layout) *Document {
	return &Document{
		ID:     uuid.New(),
		Width:  format.Width,
		Height: format.Height,
		Format: format,
		Layout: layout,
	}
}

// Bounds returns the document area.
func (d *Document) Bounds() rect.Rect {
	return rect.Rect{LLx: d.X, LLy: d.Y, URx: d.X + d.Width, URy: d.Y + d.Height}
}

// ResizeAutoexpand grows the document so that it contains the content,
// and for infinite documents also the viewport. The document never
// shrinks here.
func (d *Document) ResizeAutoexpand(content ContentBounder, cam *Camera) widget.Flags {
	old := d.Bounds()

	switch d.Layout {
	case ContinuousVertical:
		if cb, ok := content.ContentBounds(); ok && cb.URy > d.Y+d.Height {
			d.Height = d.pagesDown(cb.URy - d.Y)
		}

	case Infinite:
		target := old
		if cb, ok := content.ContentBounds(); ok {
			target = bbox.Union(target, cb)
		}
		if cam != nil {
			target = bbox.Union(target, cam.Viewport())
		}
		d.expandTo(target)
	}

	if d.Bounds() == old {
		return widget.Flags{}
	}
	return widget.Flags{Redraw: true, ResizeToFitContent: true}
}

// pagesDown returns the height of the smallest whole number of pages which
// covers the given height.
func (d *Document) pagesDown(height float64) float64 {
	h := d.pageHeight()
	return max(1, math.Ceil(height/h)) * h
}

// expandTo grows the document, keeping its page grid, until it contains
// target.
func (d *Document) expandTo(target rect.Rect) {
	pw, ph := d.pageWidth(), d.pageHeight()

	x0 := d.X - math.Ceil(max(0, d.X-target.LLx)/pw)*pw
	y0 := d.Y - math.Ceil(max(0, d.Y-target.LLy)/ph)*ph
	x1 := d.X + d.Width
	x1 += math.Ceil(max(0, target.URx-x1)/pw) * pw
	y1 := d.Y + d.Height
	y1 += math.Ceil(max(0, target.URy-y1)/ph) * ph

	d.X, d.Y = x0, y0
	d.Width, d.Height = x1-x0, y1-y0
}

func (d *Document) pageWidth() float64 {
	if d.Format.Width > 0 {
		return d.Format.Width
	}
	return A4.Width
}

func (d *Document) pageHeight() float64 {
	if d.Format.Height > 0 {
		return d.Format.Height
	}
	return A4.Height
}
