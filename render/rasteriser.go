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

// Package render turns pen paths into pixel images.
//
// The Rasteriser computes exact area coverage on a scan-line basis. Strokes
// are converted into closed outline polygons which are then filled together
// using the nonzero winding rule, so that a stroke crossing itself is
// painted only once. This matters for translucent markers: a second coat
// over the same pixels must not darken them.
package render

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row, starting at column xMin.
// Coverage values are in [0, 1]. The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// xAt returns the x coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// devBox is the device space bounding box of the collected edges.
type devBox struct {
	empty                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *devBox) add(x0, y0, x1, y1 float64) {
	if b.empty {
		b.xMin, b.xMax = min(x0, x1), max(x0, x1)
		b.yMin, b.yMax = min(y0, y1), max(y0, y1)
		b.empty = false
		return
	}
	b.xMin = min(b.xMin, x0, x1)
	b.xMax = max(b.xMax, x0, x1)
	b.yMin = min(b.yMin, y0, y1)
	b.yMax = max(b.yMax, y0, y1)
}

// Rasteriser converts paths into coverage values. A Rasteriser can be
// reused for many paths; its buffers grow as needed and are kept between
// calls. A Rasteriser must not be used concurrently.
type Rasteriser struct {
	// CTM maps user space to device space. It must be invertible.
	CTM matrix.Matrix

	// Clip is the output region in device space. The coordinates must be
	// integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon which replaces it.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// bufferedAreaLimit is the largest bounding box area, in pixels, for
	// which all rows are accumulated at once. Larger paths are scanned row
	// by row with an active edge list.
	bufferedAreaLimit int

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	rowMin    []int
	rowMax    []int
	crossings []float64
	box       devBox

	// stroker state, see stroke.go
	runs    []strokeRun
	segs    []strokeSegment
	rev     []strokeSegment
	dots    []vec.Vec2
	outline []vec.Vec2
	polys   []int
}

// NewRasteriser returns a Rasteriser for the given device clip rectangle.
// The CTM is the identity, the stroke width is 1, and lines use round caps
// and joins.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is retained.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound
	r.MiterLimit = defaultMiterLimit
	r.bufferedAreaLimit = bufferedAreaLimit
}

// Fill rasterises the interior of p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasteriser) Fill(p path.Path, emit EmitFunc) {
	r.beginEdges()

	var cur, first vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, first)
			}
			cur, first = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(cur, pts[0], pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			r.addEdge(cur, first)
			cur = first
			open = false
		}
	}
	if open {
		r.addEdge(cur, first)
	}

	r.fillEdges(emit)
}

// toDevice applies the linear part of the CTM.
func (r *Rasteriser) toDevice(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuad replaces the quadratic Bézier curve p0, p1, p2 by line
// segments. The number of segments is chosen so that the device space
// error stays below Flatness.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2, line func(a, b vec.Vec2)) {
	dev := r.toDevice(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		line(prev, pt)
		prev = pt
	}
}

// flattenCubic replaces a cubic Bézier curve by line segments, using
// Wang's bound for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	d1 := r.toDevice(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.toDevice(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if k := math.Sqrt(3 * m / (4 * r.Flatness)); k > 1 {
			n = int(math.Ceil(k))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.box = devBox{empty: true}
}

// addEdge transforms the user space segment a-b to device space and
// appends it to the edge list. Horizontal edges carry no coverage and are
// dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})
	r.box.add(x0, y0, x1, y1)
}

// fillEdges rasterises the collected edge list.
func (r *Rasteriser) fillEdges(emit EmitFunc) {
	if len(r.edges) == 0 || r.box.empty {
		return
	}

	xMin := max(int(math.Floor(r.box.xMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.box.xMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.box.yMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.box.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.bufferedAreaLimit {
		r.fillBuffered(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillScanned(xMin, xMax, yMin, yMax, emit)
	}
}

// The accumulation buffers hold, for every pixel of a row, the signed
// vertical extent of the edges crossing the pixel (cover) and the same
// extent weighted by the part of the pixel to the right of the crossing
// (area). Integrating from left to right, the coverage of pixel i is the
// sum of cover[0:i] plus area[i].

// accumulate adds the contribution of e within row y. xMin and xMax are
// the pixel columns represented by the buffers; edges left of xMin are
// folded into column xMin.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	lo, hi := e.yRange()
	yTop := max(float64(y), lo)
	yBot := min(float64(y+1), hi)
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(yTop), e.xAt(yBot)
	if xa > xb {
		xa, xb = xb, xa
	}
	pa := int(math.Floor(xa))
	pb := int(math.Floor(xb))

	switch {
	case pb < xMin:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case pa >= xMax:
		return
	case pa == pb:
		r.deposit(e, yTop, yBot, sign, pa, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns. Split it where it crosses
	// the column boundaries.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pa + 1; x <= pb; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		xm := e.xAt((y0 + y1) / 2)
		r.deposit(e, y0, y1, sign, int(math.Floor(xm)), cover, area, xMin, xMax)
	}
}

// deposit adds a piece of an edge which lies inside pixel column pix.
func (r *Rasteriser) deposit(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(yBot-yTop)
	if pix < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= xMax {
		return
	}
	frac := e.xAt((yTop+yBot)/2) - float64(pix)
	cover[pix-xMin] += c
	area[pix-xMin] += c * float32(1-frac)
}

// columnOf returns the buffer column in which e passes through row y.
func columnOf(e *edge, y int, xMin, xMax int) int {
	lo, hi := e.yRange()
	yTop := max(float64(y), lo)
	yBot := min(float64(y+1), hi)
	x := int(math.Floor(e.xAt((yTop + yBot) / 2)))
	return min(max(x, xMin), xMax-1) - xMin
}

// integrate turns the accumulated cover and area values of one row into
// nonzero coverage, in place.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero entry, and the offset of this part.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fillBuffered accumulates all rows of the bounding box in 2D buffers
// before integrating. This is fastest for small paths.
func (r *Rasteriser) fillBuffered(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)
	clear(r.cover)
	clear(r.area)
	r.rowMin = grow(r.rowMin, h)
	r.rowMax = grow(r.rowMax, h)
	for i := range h {
		r.rowMin[i] = w
		r.rowMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		first := max(int(math.Floor(lo)), yMin)
		last := min(int(math.Floor(hi))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			off := row * w
			r.accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)

			col := columnOf(e, y, xMin, xMax)
			r.rowMin[row] = min(r.rowMin[row], col)
			r.rowMax[row] = max(r.rowMax[row], col)
		}
	}

	for row := range h {
		if r.rowMax[row] < 0 {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrate(cov, r.area[off:off+w])
		if t, dx := trimZeros(cov); t != nil {
			emit(yMin+row, xMin+dx, t)
		}
	}
}

// fillScanned processes one row at a time, keeping a list of the edges
// which intersect the current row. Memory use is proportional to the
// width of the path instead of its area.
func (r *Rasteriser) fillScanned(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) {
			if lo, _ := r.edges[next].yRange(); lo >= bot {
				break
			}
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if _, hi := e.yRange(); hi <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			if lo, hi := e.yRange(); min(bot, hi) > max(top, lo) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area)
		if t, dx := trimZeros(r.cover); t != nil {
			emit(y, xMin+dx, t)
		}
	}
}

// grow returns buf resized to n elements, reusing its storage if possible.
// The contents are unspecified.
func grow[T any](buf []T, n int) []T {
	return slices.Grow(buf[:0], n)[:n]
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit converts miter joins with an angle below about
	// 11.5 degrees into bevels.
	defaultMiterLimit = 10.0

	bufferedAreaLimit = 65536

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspThreshold is the cosine below which two consecutive segments
	// are treated as reversing direction.
	cuspThreshold = -0.9999
)
