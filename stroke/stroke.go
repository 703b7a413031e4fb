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

// Package stroke implements the stored geometry of marker strokes.
package stroke

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker/render"
)

// Stroke is a piece of content held by the store.
type Stroke interface {
	// Bounds returns the cached bounding box of everything the stroke
	// paints.
	Bounds() rect.Rect

	// Hitboxes returns the cached boxes used for hit-testing.
	Hitboxes() []rect.Rect

	// UpdateGeometry recomputes the cached bounds and hitboxes.
	UpdateGeometry()

	// GenImages renders the stroke for the given viewport.
	GenImages(viewport rect.Rect, scale float64) (render.Generated, error)

	// Clone returns a deep copy.
	Clone() Stroke
}

// LastSegmentsRenderer is implemented by strokes which can render just
// their most recently appended segments.
type LastSegmentsRenderer interface {
	Stroke

	GenImageForLastSegments(n int, scale float64) (*render.Image, error)

	// DetachLastSegments returns an independent stroke holding only the
	// last n segments. The result can be rendered on another goroutine
	// while the original keeps changing.
	DetachLastSegments(n int) LastSegmentsRenderer
}
