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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/internal/logger"
	"seehuhn.de/go/marker/penpath"
	"seehuhn.de/go/marker/render"
)

// ErrEmptyPath is returned by ReplacePath for a path without segments.
var ErrEmptyPath = errors.New("stroke: empty path")

// MarkerStroke is a uniform-width stroke painted with a translucent colour.
//
// The cached bounds and hitboxes are derived from Path and Width. Code
// which changes these fields directly must call UpdateGeometry afterwards.
type MarkerStroke struct {
	Path  penpath.PenPath
	Width float64
	Shape Shape
	Color Color

	bounds   rect.Rect
	hitboxes []rect.Rect
}

// New returns a stroke consisting of just the start point.
func New(start penpath.Element, width float64, shape Shape, color Color) *MarkerStroke {
	return FromPenPath(penpath.New(start), width, shape, color)
}

// FromPenPath returns a stroke along p.
func FromPenPath(p penpath.PenPath, width float64, shape Shape, color Color) *MarkerStroke {
	s := &MarkerStroke{
		Path:  p,
		Width: width,
		Shape: shape,
		Color: color,
	}
	s.UpdateGeometry()
	return s
}

// Extend appends segments to the path. The cached geometry is extended
// to cover the new segments.
func (s *MarkerStroke) Extend(segs ...penpath.Segment) {
	if len(segs) == 0 {
		return
	}
	n := s.Path.Len()
	s.Path.Extend(segs...)

	// the first segment's hitbox includes the point it starts from
	added := s.Path.Tail(len(segs)).Hitboxes()
	if n == 0 {
		s.hitboxes = s.hitboxes[:0]
	}
	for _, hb := range added {
		hb = bbox.Loosen(hb, s.Width/2)
		s.hitboxes = append(s.hitboxes, hb)
		s.bounds = bbox.Union(s.bounds, hb)
	}
}

// ReplacePath replaces the whole path and recomputes the geometry.
func (s *MarkerStroke) ReplacePath(p penpath.PenPath) error {
	if p.Len() == 0 {
		return ErrEmptyPath
	}
	s.Path = p
	s.UpdateGeometry()
	return nil
}

// UpdateGeometry implements the Stroke interface.
func (s *MarkerStroke) UpdateGeometry() {
	d := s.Width / 2
	s.bounds = bbox.Loosen(s.Path.Bounds(), d)

	boxes := s.Path.Hitboxes()
	if len(boxes) == 0 {
		boxes = []rect.Rect{bbox.Point(s.Path.Start.Pos)}
	}
	s.hitboxes = make([]rect.Rect, len(boxes))
	for i, hb := range boxes {
		s.hitboxes[i] = bbox.Loosen(hb, d)
	}
}

// Bounds implements the Stroke interface.
func (s *MarkerStroke) Bounds() rect.Rect {
	return s.bounds
}

// Hitboxes implements the Stroke interface.
func (s *MarkerStroke) Hitboxes() []rect.Rect {
	return append([]rect.Rect(nil), s.hitboxes...)
}

// Style returns the parameters used to render the stroke.
func (s *MarkerStroke) Style() render.Style {
	return render.Style{
		Width: s.Width,
		Cap:   s.Shape.LineCap(),
		Join:  s.Shape.LineJoin(),
		Color: s.Color.NRGBA(),
	}
}

// GenImages implements the Stroke interface.
//
// The whole path is rendered as one image, so that overlapping parts of
// the stroke are painted only once. If the stroke extends beyond the
// viewport, only the visible part is rendered and a render.Partial is
// returned. A stroke outside the viewport gives an empty render.Partial.
//
// Rendering failures are logged; the result then has no images.
func (s *MarkerStroke) GenImages(viewport rect.Rect, scale float64) (render.Generated, error) {
	bounds := s.Bounds()
	visible, ok := bbox.Intersect(viewport, bounds)
	if !ok {
		return render.Partial{Viewport: viewport}, nil
	}

	var images []*render.Image
	img, err := render.StrokeImage(s.Path.Iter(), s.Style(), visible, scale)
	if err != nil {
		logger.Get().Error("generating marker stroke image failed",
			"bounds", visible, "scale", scale, "error", err)
	} else {
		images = append(images, img)
	}

	if !bbox.Contains(viewport, bounds) {
		return render.Partial{Images: images, Viewport: viewport}, nil
	}
	return render.Full{Images: images}, nil
}

// GenImageForLastSegments renders the last n segments of the path. The
// image covers just the bounds of these segments, loosened by half the
// stroke width.
func (s *MarkerStroke) GenImageForLastSegments(n int, scale float64) (*render.Image, error) {
	tail := s.Tail(n)
	bounds := bbox.Loosen(tail.Bounds(), s.Width/2)
	img, err := render.StrokeImage(tail.Iter(), s.Style(), bounds, scale)
	if err != nil {
		return nil, fmt.Errorf("last %d segments: %w", n, err)
	}
	return img, nil
}

// DetachLastSegments implements the LastSegmentsRenderer interface.
func (s *MarkerStroke) DetachLastSegments(n int) LastSegmentsRenderer {
	return FromPenPath(s.Tail(n), s.Width, s.Shape, s.Color)
}

// Tail returns the sub-path made of the last n segments, starting at the
// point preceding them.
func (s *MarkerStroke) Tail(n int) penpath.PenPath {
	return s.Path.Tail(n)
}

// Translate moves the stroke by offset.
func (s *MarkerStroke) Translate(offset vec.Vec2) {
	s.Path.Translate(offset)
	s.UpdateGeometry()
}

// Rotate rotates the stroke by angle (in radians) around center.
func (s *MarkerStroke) Rotate(angle float64, center vec.Vec2) {
	s.Path.Rotate(angle, center)
	s.UpdateGeometry()
}

// Scale scales the path coordinates per axis. The width is multiplied by
// the geometric mean of the two factors, which keeps the apparent
// thickness under non-uniform scaling.
func (s *MarkerStroke) Scale(factor vec.Vec2) {
	s.Path.Scale(factor)
	s.Width *= math.Sqrt(math.Abs(factor.X * factor.Y))
	s.UpdateGeometry()
}

// Clone implements the Stroke interface.
func (s *MarkerStroke) Clone() Stroke {
	c := *s
	c.Path = s.Path.Clone()
	c.hitboxes = append([]rect.Rect(nil), s.hitboxes...)
	return &c
}
