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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// scribble returns a zig-zag polyline of n points, similar to a fast
// highlighter stroke across a line of text.
func scribble(n int, size float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = vec.Vec2{
			X: size * (0.1 + 0.8*t),
			Y: size * (0.5 + 0.3*math.Sin(t*40)),
		}
	}
	return pts
}

func BenchmarkStrokeScribble(b *testing.B) {
	for _, size := range []int{50, 500, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			p := polyline(scribble(200, float64(size))...)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = float64(size) / 20
				r.Stroke(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

func BenchmarkStrokeImage(b *testing.B) {
	style := Style{
		Width: 15,
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
		Color: color.NRGBA{R: 255, G: 230, A: 128},
	}
	p := polyline(scribble(100, 400)...)
	bounds := rect.Rect{URx: 400, URy: 400}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := StrokeImage(p, style, bounds, 1.5); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFillDisc compares filling a disc with x/image/vector.
func BenchmarkFillDisc(b *testing.B) {
	const size = 400
	const k = 0.5522847498 // cubic Bézier approximation of a quarter circle
	c, rad := float64(size)/2, float64(size)*0.45

	disc := func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = vec.Vec2{X: c, Y: c - rad}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		for q := range 4 {
			a0 := float64(q) * math.Pi / 2
			a1 := a0 + math.Pi/2
			p0 := vec.Vec2{X: c + rad*math.Sin(a0), Y: c - rad*math.Cos(a0)}
			p3 := vec.Vec2{X: c + rad*math.Sin(a1), Y: c - rad*math.Cos(a1)}
			t0 := vec.Vec2{X: math.Cos(a0), Y: math.Sin(a0)}
			t1 := vec.Vec2{X: math.Cos(a1), Y: math.Sin(a1)}
			buf[0] = p0.Add(t0.Mul(k * rad))
			buf[1] = p3.Sub(t1.Mul(k * rad))
			buf[2] = p3
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
		}
	}

	b.Run("rasteriser", func(b *testing.B) {
		clip := rect.Rect{URx: size, URy: size}
		r := NewRasteriser(clip)
		dst := image.NewAlpha(image.Rect(0, 0, size, size))
		b.ReportAllocs()
		for b.Loop() {
			r.Fill(disc, func(y, xMin int, coverage []float32) {
				row := dst.Pix[y*dst.Stride+xMin:]
				for i, c := range coverage {
					row[i] = uint8(c * 255)
				}
			})
		}
	})

	b.Run("vector", func(b *testing.B) {
		r := vector.NewRasterizer(size, size)
		dst := image.NewAlpha(image.Rect(0, 0, size, size))
		src := image.NewUniform(color.Alpha{A: 255})
		b.ReportAllocs()
		for b.Loop() {
			r.Reset(size, size)
			for cmd, pts := range path.Path(disc) {
				switch cmd {
				case path.CmdMoveTo:
					r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
				case path.CmdCubeTo:
					r.CubeTo(float32(pts[0].X), float32(pts[0].Y),
						float32(pts[1].X), float32(pts[1].Y),
						float32(pts[2].X), float32(pts[2].Y))
				}
			}
			r.ClosePath()
			r.Draw(dst, dst.Bounds(), src, image.Point{})
		}
	})
}
