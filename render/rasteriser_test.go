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
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyline returns an open path through the given points.
func polyline(pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		for i, pt := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			buf[0] = pt
			if !yield(cmd, buf[:]) {
				return
			}
		}
	}
}

// coverageGrid rasterises with the given function into a w×h grid.
func coverageGrid(w, h int, draw func(emit EmitFunc)) [][]float32 {
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
	}
	draw(func(y, xMin int, coverage []float32) {
		copy(grid[y][xMin:], coverage)
	})
	return grid
}

func totalCoverage(grid [][]float32) float64 {
	sum := 0.0
	for _, row := range grid {
		for _, c := range row {
			sum += float64(c)
		}
	}
	return sum
}

func maxCoverage(grid [][]float32) float32 {
	var m float32
	for _, row := range grid {
		for _, c := range row {
			m = max(m, c)
		}
	}
	return m
}

// both runs f once with buffered accumulation and once with the active
// edge list.
func both(t *testing.T, f func(t *testing.T, r *Rasteriser)) {
	for _, tc := range []struct {
		name  string
		limit int
	}{
		{"buffered", 1 << 30},
		{"scanned", 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
			r.bufferedAreaLimit = tc.limit
			f(t, r)
		})
	}
}

// TestTriangleCoverage checks exact coverage values for the triangle
// (0,0), (10,0), (10,1). Pixel x has coverage (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	both(t, func(t *testing.T, r *Rasteriser) {
		r.Clip = rect.Rect{URx: 10, URy: 1}
		grid := coverageGrid(10, 1, func(emit EmitFunc) {
			r.Fill(polyline(vec.Vec2{}, vec.Vec2{X: 10}, vec.Vec2{X: 10, Y: 1}), emit)
		})
		for x := range 10 {
			want := float32(2*x+1) / 20
			if got := grid[0][x]; math.Abs(float64(got-want)) > 1e-6 {
				t.Errorf("pixel %d: expected %.4f, got %.4f", x, want, got)
			}
		}
	})
}

func TestFillRectangleArea(t *testing.T) {
	both(t, func(t *testing.T, r *Rasteriser) {
		sq := polyline(
			vec.Vec2{X: 10.25, Y: 20.5},
			vec.Vec2{X: 40.75, Y: 20.5},
			vec.Vec2{X: 40.75, Y: 30},
			vec.Vec2{X: 10.25, Y: 30},
		)
		grid := coverageGrid(100, 100, func(emit EmitFunc) { r.Fill(sq, emit) })
		want := 30.5 * 9.5
		if got := totalCoverage(grid); math.Abs(got-want) > 1e-3 {
			t.Errorf("expected area %g, got %g", want, got)
		}
	})
}

func TestStrokeButtArea(t *testing.T) {
	both(t, func(t *testing.T, r *Rasteriser) {
		r.Width = 4
		r.Cap = graphics.LineCapButt
		grid := coverageGrid(100, 100, func(emit EmitFunc) {
			r.Stroke(polyline(vec.Vec2{X: 10, Y: 50}, vec.Vec2{X: 70, Y: 50}), emit)
		})
		if got := totalCoverage(grid); math.Abs(got-240) > 1e-3 {
			t.Errorf("expected area 240, got %g", got)
		}
	})
}

func TestStrokeCaps(t *testing.T) {
	line := polyline(vec.Vec2{X: 20, Y: 50}, vec.Vec2{X: 60, Y: 50})
	const w = 10.0
	cases := []struct {
		name string
		cap  graphics.LineCapStyle
		area float64
		tol  float64
	}{
		{"butt", graphics.LineCapButt, 40 * w, 1e-3},
		{"square", graphics.LineCapSquare, 40*w + w*w, 1e-3},
		{"round", graphics.LineCapRound, 40*w + math.Pi*w*w/4, 8}, // arcs are flattened inside the circle
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
			r.Width = w
			r.Cap = tc.cap
			grid := coverageGrid(100, 100, func(emit EmitFunc) { r.Stroke(line, emit) })
			if got := totalCoverage(grid); math.Abs(got-tc.area) > tc.tol {
				t.Errorf("expected area %g, got %g", tc.area, got)
			}
		})
	}
}

// TestStrokeOverlapPaintedOnce strokes a path which runs back over
// itself. No pixel may exceed full coverage, and the painted area is the
// area of the union of the two passes.
func TestStrokeOverlapPaintedOnce(t *testing.T) {
	both(t, func(t *testing.T, r *Rasteriser) {
		r.Width = 6
		r.Cap = graphics.LineCapButt
		r.Join = graphics.LineJoinBevel
		back := polyline(
			vec.Vec2{X: 10, Y: 50},
			vec.Vec2{X: 80, Y: 50},
			vec.Vec2{X: 80, Y: 50.5},
			vec.Vec2{X: 10, Y: 50.5},
		)
		grid := coverageGrid(100, 100, func(emit EmitFunc) { r.Stroke(back, emit) })
		if m := maxCoverage(grid); m > 1 {
			t.Errorf("coverage %g exceeds 1", m)
		}
		// union of two 70×6 bands offset by 0.5, plus the turn: a
		// 3×0.5 band and two bevel triangles
		want := 70*6.5 + 1.5 + 2*4.5
		if got := totalCoverage(grid); math.Abs(got-want) > 0.5 {
			t.Errorf("expected area about %g, got %g", want, got)
		}
	})
}

func TestStrokeCrossing(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
	r.Width = 8
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter

	x := polyline(
		vec.Vec2{X: 10, Y: 10},
		vec.Vec2{X: 90, Y: 90},
		vec.Vec2{X: 90, Y: 10},
		vec.Vec2{X: 10, Y: 90},
	)
	grid := coverageGrid(100, 100, func(emit EmitFunc) { r.Stroke(x, emit) })
	if m := maxCoverage(grid); m > 1 {
		t.Errorf("coverage %g exceeds 1", m)
	}
	// the crossing point is painted
	if c := grid[50][50]; c < 0.99 {
		t.Errorf("centre pixel has coverage %g", c)
	}
}

func TestStrokeDot(t *testing.T) {
	dot := func(yield func(path.Command, []vec.Vec2) bool) {
		pt := []vec.Vec2{{X: 50, Y: 50}}
		_ = yield(path.CmdMoveTo, pt) && yield(path.CmdLineTo, pt)
	}

	r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
	r.Width = 20
	grid := coverageGrid(100, 100, func(emit EmitFunc) { r.Stroke(dot, emit) })
	if got, want := totalCoverage(grid), math.Pi*100; got > want || got < want-12 {
		t.Errorf("round dot: expected area %g, got %g", want, got)
	}

	r.Reset(rect.Rect{URx: 100, URy: 100})
	r.Width = 20
	r.Cap = graphics.LineCapButt
	grid = coverageGrid(100, 100, func(emit EmitFunc) { r.Stroke(dot, emit) })
	if got := totalCoverage(grid); got != 0 {
		t.Errorf("butt dot: expected no coverage, got %g", got)
	}
}

func TestStrokeScaledCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 100, URy: 100})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 0, 0}
	r.Width = 2
	r.Cap = graphics.LineCapButt
	grid := coverageGrid(100, 100, func(emit EmitFunc) {
		r.Stroke(polyline(vec.Vec2{X: 5, Y: 20}, vec.Vec2{X: 35, Y: 20}), emit)
	})
	// 30×2 user units, scaled by 2 in each direction
	if got := totalCoverage(grid); math.Abs(got-240) > 1e-3 {
		t.Errorf("expected area 240, got %g", got)
	}
}

func TestClipLimitsOutput(t *testing.T) {
	r := NewRasteriser(rect.Rect{LLx: 10, LLy: 10, URx: 20, URy: 20})
	r.Width = 50
	r.Stroke(polyline(vec.Vec2{X: 0, Y: 15}, vec.Vec2{X: 100, Y: 15}), func(y, xMin int, coverage []float32) {
		if y < 10 || y >= 20 || xMin < 10 || xMin+len(coverage) > 20 {
			t.Errorf("row %d [%d, %d) outside clip", y, xMin, xMin+len(coverage))
		}
	})
}
