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

// Command genpdf generates reference images for the marker scenarios.
// Every scenario is replayed, the resulting strokes are written to a PDF
// file and the PDF is rendered to PNG using Ghostscript. A second PDF,
// written by the export package, is kept next to it for comparison.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/marker/export"
	"seehuhn.de/go/marker/stroke"
	"seehuhn.de/go/marker/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			name := category + "_" + sc.Name
			if err := generate(&sc, name); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generate(sc *testcases.Scenario, name string) error {
	res, err := sc.Replay(0)
	if err != nil {
		return err
	}

	pdfPath := filepath.Join(refDir, name+".pdf")
	pngPath := filepath.Join(refDir, name+".png")
	if err := generatePDF(res, pdfPath); err != nil {
		return err
	}
	if err := renderPNG(pdfPath, pngPath); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(refDir, name+"-export.pdf"))
	if err != nil {
		return err
	}
	err = export.PDF(f, res.Document, res.Store)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}

// generatePDF draws every stroke in white on a black page, so that the
// grey value of the rendered image is the coverage of the stroke. Strokes
// are drawn one at a time, so each one saturates independently and the
// overlap of a stroke with itself does not show.
func generatePDF(res *testcases.Result, pdfPath string) error {
	b := res.Document.Bounds()
	w, h := b.URx-b.LLx, b.URy-b.LLy

	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF origin is bottom-left, documents use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, -b.LLx, h + b.LLy})

	page.SetStrokeColor(color.DeviceGray(1))
	for _, key := range res.Store.Keys() {
		s, _ := res.Store.GetStroke(key)
		ms, ok := s.(*stroke.MarkerStroke)
		if !ok {
			continue
		}

		page.SetLineWidth(ms.Width)
		page.SetLineCap(ms.Shape.LineCap())
		page.SetLineJoin(ms.Shape.LineJoin())
		page.SetMiterLimit(10)

		for cmd, pts := range ms.Path.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Stroke()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 document unit = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
