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
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/marker/internal/bbox"
)

// MaxImagePixels is the largest number of pixels StrokeImage allocates
// for a single image.
const MaxImagePixels = 1 << 24

var (
	// ErrEmptyBounds is returned when an image is requested for bounds
	// which are empty, not finite, or at a non-positive scale.
	ErrEmptyBounds = errors.New("render: empty image bounds")

	// ErrImageTooLarge is returned when an image would exceed
	// MaxImagePixels.
	ErrImageTooLarge = errors.New("render: image too large")
)

// Style describes how a path is stroked.
type Style struct {
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle
	Color color.NRGBA
}

// Image is a rendered piece of content.
//
// Pixels uses device coordinates: the pixel with index (x, y) covers the
// document area [x/Scale, (x+1)/Scale] × [y/Scale, (y+1)/Scale]. Bounds is
// this pixel grid expressed in document coordinates.
type Image struct {
	Bounds rect.Rect
	Scale  float64
	Pixels *image.RGBA
}

// PixelRect returns the device pixel rectangle which covers bounds at the
// given scale.
func PixelRect(bounds rect.Rect, scale float64) (image.Rectangle, error) {
	if !(scale > 0) || math.IsInf(scale, 0) || !bbox.Valid(bounds) || bbox.Area(bounds) <= 0 {
		return image.Rectangle{}, ErrEmptyBounds
	}
	x0 := math.Floor(bounds.LLx * scale)
	y0 := math.Floor(bounds.LLy * scale)
	x1 := math.Ceil(bounds.URx * scale)
	y1 := math.Ceil(bounds.URy * scale)
	if w, h := x1-x0, y1-y0; w*h > MaxImagePixels {
		return image.Rectangle{}, fmt.Errorf("%w: %gx%g pixels", ErrImageTooLarge, w, h)
	}
	return image.Rect(int(x0), int(y0), int(x1), int(y1)), nil
}

var rasteriserPool = sync.Pool{
	New: func() any { return NewRasteriser(rect.Rect{}) },
}

// StrokeImage renders the stroke of p inside bounds.
//
// Coverage is computed in a single nonzero pass, so that every pixel is
// painted at most once with the style's colour, even where the path
// overlaps itself. StrokeImage is safe for concurrent use.
func StrokeImage(p path.Path, style Style, bounds rect.Rect, scale float64) (*Image, error) {
	pr, err := PixelRect(bounds, scale)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(pr)

	r := rasteriserPool.Get().(*Rasteriser)
	defer rasteriserPool.Put(r)
	r.Reset(rect.Rect{
		LLx: float64(pr.Min.X), LLy: float64(pr.Min.Y),
		URx: float64(pr.Max.X), URy: float64(pr.Max.Y),
	})
	r.CTM = matrix.Matrix{scale, 0, 0, scale, 0, 0}
	r.Width = style.Width
	r.Cap = style.Cap
	r.Join = style.Join

	col := style.Color
	alpha := float32(col.A) / 255
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		row := img.PixOffset(xMin, y)
		for i, c := range coverage {
			a := alpha * c
			px := img.Pix[row+4*i : row+4*i+4 : row+4*i+4]
			px[0] = unit8(float32(col.R) * a)
			px[1] = unit8(float32(col.G) * a)
			px[2] = unit8(float32(col.B) * a)
			px[3] = unit8(255 * a)
		}
	})

	return &Image{
		Bounds: rect.Rect{
			LLx: float64(pr.Min.X) / scale, LLy: float64(pr.Min.Y) / scale,
			URx: float64(pr.Max.X) / scale, URy: float64(pr.Max.Y) / scale,
		},
		Scale:  scale,
		Pixels: img,
	}, nil
}

func unit8(v float32) uint8 {
	return uint8(min(max(v+0.5, 0), 255))
}
