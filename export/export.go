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

// Package export writes documents to PDF and PNG files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/internal/logger"
	"seehuhn.de/go/marker/penpath"
	"seehuhn.de/go/marker/render"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
)

// PDF writes the document as a single-page vector PDF. One document unit
// becomes one PDF point. Strokes which are not marker strokes are
// skipped.
func PDF(w io.Writer, d *doc.Document, st *store.Store) error {
	if !(d.Width > 0 && d.Height > 0) {
		return fmt.Errorf("export: empty document %gx%g", d.Width, d.Height)
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: d.Width, Ht: d.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("seehuhn.de/go/marker", true)
	p.AddPage()

	for _, key := range st.Keys() {
		s, _ := st.GetStroke(key)
		ms, ok := s.(*stroke.MarkerStroke)
		if !ok {
			logger.Get().Debug("export: skipping stroke", "key", key, "type", fmt.Sprintf("%T", s))
			continue
		}
		drawMarker(p, ms, d.X, d.Y)
	}

	return p.Output(w)
}

func drawMarker(p *gofpdf.Fpdf, s *stroke.MarkerStroke, x0, y0 float64) {
	c := s.Color.NRGBA()
	p.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.SetAlpha(float64(c.A)/255, "Normal")
	p.SetLineWidth(s.Width)
	p.SetLineCapStyle(capName(s.Shape.LineCap()))
	p.SetLineJoinStyle(joinName(s.Shape.LineJoin()))

	pt := func(e penpath.Element) (float64, float64) {
		return e.Pos.X - x0, e.Pos.Y - y0
	}
	p.MoveTo(pt(s.Path.Start))
	for _, seg := range s.Path.Segments {
		switch seg := seg.(type) {
		case penpath.Line:
			p.LineTo(pt(seg.To))
		case penpath.Quad:
			x, y := pt(seg.To)
			p.CurveTo(seg.Cp.X-x0, seg.Cp.Y-y0, x, y)
		case penpath.Cubic:
			x, y := pt(seg.To)
			p.CurveBezierCubicTo(seg.Cp1.X-x0, seg.Cp1.Y-y0, seg.Cp2.X-x0, seg.Cp2.Y-y0, x, y)
		}
	}
	if s.Path.Len() == 0 {
		p.LineTo(pt(s.Path.Start))
	}
	p.DrawPath("D")
	p.SetAlpha(1, "Normal")
}

func capName(c graphics.LineCapStyle) string {
	switch c {
	case graphics.LineCapRound:
		return "round"
	case graphics.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j graphics.LineJoinStyle) string {
	switch j {
	case graphics.LineJoinRound:
		return "round"
	case graphics.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// Raster renders all strokes of st which intersect viewport. Every stroke
// is rendered from scratch, so the cached images of the store are neither
// used nor changed. The background is transparent.
func Raster(st *store.Store, viewport rect.Rect, scale float64) (*image.RGBA, error) {
	w := math.Ceil((viewport.URx - viewport.LLx) * scale)
	h := math.Ceil((viewport.URy - viewport.LLy) * scale)
	if !(w >= 1 && h >= 1) {
		return nil, render.ErrEmptyBounds
	}
	if w*h > render.MaxImagePixels {
		return nil, fmt.Errorf("%w: %gx%g pixels", render.ErrImageTooLarge, w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))

	for _, key := range st.Keys() {
		s, _ := st.GetStroke(key)
		g, err := s.GenImages(viewport, scale)
		if err != nil {
			logger.Get().Warn("export: rendering stroke failed", "key", key, "error", err)
			continue
		}
		render.Draw(dst, viewport, scale, g.Patches()...)
	}
	return dst, nil
}

// PNG writes the strokes inside viewport as a PNG image.
func PNG(w io.Writer, st *store.Store, viewport rect.Rect, scale float64) error {
	img, err := Raster(st, viewport, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
