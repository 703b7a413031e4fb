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

package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var yellow = color.NRGBA{R: 255, G: 230, B: 0, A: 128}

func TestStrokeImageBounds(t *testing.T) {
	style := Style{Width: 4, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, Color: yellow}
	p := polyline(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 30, Y: 10})

	img, err := StrokeImage(p, style, rect.Rect{LLx: 7.7, LLy: 7.2, URx: 32.1, URy: 12.5}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(15, 14, 65, 25)
	if got := img.Pixels.Bounds(); got != want {
		t.Errorf("pixel rect: expected %v, got %v", want, got)
	}
	wantBounds := rect.Rect{LLx: 7.5, LLy: 7, URx: 32.5, URy: 12.5}
	if img.Bounds != wantBounds {
		t.Errorf("bounds: expected %v, got %v", wantBounds, img.Bounds)
	}
	if img.Scale != 2 {
		t.Errorf("scale: expected 2, got %g", img.Scale)
	}

	// a pixel on the centre line is painted with the full colour
	c := img.Pixels.RGBAAt(40, 20)
	if c.A != yellow.A {
		t.Errorf("centre alpha: expected %d, got %d", yellow.A, c.A)
	}
}

func TestStrokeImageSelfOverlap(t *testing.T) {
	style := Style{Width: 10, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, Color: yellow}
	scribble := polyline(
		vec.Vec2{X: 10, Y: 10},
		vec.Vec2{X: 50, Y: 10},
		vec.Vec2{X: 12, Y: 12},
		vec.Vec2{X: 48, Y: 13},
		vec.Vec2{X: 30, Y: 40},
		vec.Vec2{X: 30, Y: 0},
	)
	img, err := StrokeImage(scribble, style, rect.Rect{URx: 60, URy: 50}, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(img.Pixels.Pix); i += 4 {
		if a := img.Pixels.Pix[i]; a > yellow.A {
			t.Fatalf("pixel alpha %d exceeds colour alpha %d", a, yellow.A)
		}
	}
}

func TestStrokeImageErrors(t *testing.T) {
	p := polyline(vec.Vec2{}, vec.Vec2{X: 1})
	style := Style{Width: 1, Color: yellow}

	cases := []struct {
		name   string
		bounds rect.Rect
		scale  float64
		err    error
	}{
		{"empty", rect.Rect{LLx: 1, LLy: 1, URx: 1, URy: 5}, 1, ErrEmptyBounds},
		{"inverted", rect.Rect{LLx: 5, LLy: 0, URx: 1, URy: 5}, 1, ErrEmptyBounds},
		{"nan", rect.Rect{LLx: math.NaN(), URx: 1, URy: 1}, 1, ErrEmptyBounds},
		{"zero scale", rect.Rect{URx: 1, URy: 1}, 0, ErrEmptyBounds},
		{"too large", rect.Rect{URx: 1e5, URy: 1e5}, 1, ErrImageTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := StrokeImage(p, style, tc.bounds, tc.scale)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	style := Style{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel,
		Color: color.NRGBA{R: 255, A: 255}}
	p := polyline(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 20, Y: 10})
	img, err := StrokeImage(p, style, rect.Rect{LLx: 8, LLy: 8, URx: 22, URy: 12}, 1)
	if err != nil {
		t.Fatal(err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Draw(dst, rect.Rect{LLx: 5, LLy: 5, URx: 25, URy: 25}, 1, img)

	// document point (15, 10) is at pixel (10, 5)
	if c := dst.RGBAAt(10, 5); c.R != 255 || c.A != 255 {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := dst.RGBAAt(2, 15); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}

	// an image at another scale is resampled into place
	dst2 := image.NewRGBA(image.Rect(0, 0, 40, 40))
	Draw(dst2, rect.Rect{LLx: 5, LLy: 5, URx: 25, URy: 25}, 2, img)
	if c := dst2.RGBAAt(20, 10); c.A == 0 {
		t.Errorf("expected painted pixel after scaling, got %v", c)
	}
}

func TestGeneratedPatches(t *testing.T) {
	a := &Image{}
	var g Generated = Full{Images: []*Image{a}}
	if len(g.Patches()) != 1 {
		t.Error("Full lost its images")
	}
	g = Partial{Viewport: rect.Rect{URx: 1, URy: 1}}
	if len(g.Patches()) != 0 {
		t.Error("empty Partial has images")
	}
}
