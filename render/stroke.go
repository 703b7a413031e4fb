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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a stroked path, in user space.
type strokeSegment struct {
	a, b vec.Vec2
	t    vec.Vec2 // unit tangent from a to b
	n    vec.Vec2 // unit normal, t rotated by +90°
	l    float64  // length
}

func (s strokeSegment) reversed() strokeSegment {
	return strokeSegment{a: s.b, b: s.a, t: s.t.Mul(-1), n: s.n.Mul(-1), l: s.l}
}

// strokeRun is a range of consecutive segments in Rasteriser.segs.
type strokeRun struct {
	first, end int
}

// Stroke rasterises the outline of p using Width, Cap, Join and
// MiterLimit.
//
// The outlines of all subpaths are filled in a single nonzero pass. A
// ClosePath command adds a line back to the start of the subpath; the
// result is stroked like an open subpath.
func (r *Rasteriser) Stroke(p path.Path, emit EmitFunc) {
	r.flatten(p)
	if len(r.runs) == 0 && len(r.dots) == 0 {
		return
	}

	r.outline = r.outline[:0]
	r.polys = r.polys[:0]
	d := r.Width / 2

	for _, pt := range r.dots {
		start := len(r.outline)
		switch r.Cap {
		case graphics.LineCapRound:
			r.addArc(pt, d, vec.Vec2{X: 1}, -2*math.Pi, true)
		case graphics.LineCapSquare:
			r.addSquare(pt, vec.Vec2{X: 1}, d)
		}
		r.closePoly(start)
	}

	for _, run := range r.runs {
		start := len(r.outline)
		r.outlineRun(r.segs[run.first:run.end], d)
		r.closePoly(start)
	}

	r.beginEdges()
	for i, start := range r.polys {
		end := len(r.outline)
		if i+1 < len(r.polys) {
			end = r.polys[i+1]
		}
		poly := r.outline[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.fillEdges(emit)
}

// closePoly records the outline vertices added since start as one polygon,
// or discards them if they cannot enclose any area.
func (r *Rasteriser) closePoly(start int) {
	if len(r.outline)-start < 3 {
		r.outline = r.outline[:start]
		return
	}
	r.polys = append(r.polys, start)
}

// flatten converts p into runs of line segments. Subpaths without any
// extent are collected in r.dots.
func (r *Rasteriser) flatten(p path.Path) {
	r.segs = r.segs[:0]
	r.runs = r.runs[:0]
	r.dots = r.dots[:0]

	var cur, first vec.Vec2
	runStart := 0
	open := false
	drawn := false

	finish := func() {
		if !open {
			return
		}
		switch {
		case len(r.segs) > runStart:
			r.runs = append(r.runs, strokeRun{first: runStart, end: len(r.segs)})
		case drawn:
			r.dots = append(r.dots, first)
		}
		runStart = len(r.segs)
		open = false
		drawn = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			cur, first = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			if !open {
				continue
			}
			drawn = true
			r.addSegment(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenQuad(cur, pts[0], pts[1], r.addSegment)
			cur = pts[1]
		case path.CmdCubeTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addSegment)
			cur = pts[2]
		case path.CmdClose:
			if !open {
				continue
			}
			drawn = true
			r.addSegment(cur, first)
			cur = first
			finish()
		}
	}
	finish()
}

func (r *Rasteriser) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{a: a, b: b, t: t, n: vec.Vec2{X: -t.Y, Y: t.X}, l: l})
}

// outlineRun appends the outline of an open run of segments: the start
// cap, the +n side, the end cap and the -n side walked backwards.
// The -n side of the run is the +n side of the reversed run. All outlines
// are built clockwise, so that overlapping polygons never cancel.
func (r *Rasteriser) outlineRun(segs []strokeSegment, d float64) {
	first := segs[0]
	last := segs[len(segs)-1]

	r.addCap(first.a, first.t.Mul(-1), d)
	r.outlineSide(segs, d)
	r.addCap(last.b, last.t, d)

	r.rev = r.rev[:0]
	for i := len(segs) - 1; i >= 0; i-- {
		r.rev = append(r.rev, segs[i].reversed())
	}
	r.outlineSide(r.rev, d)
}

// outlineSide appends the offset curve at distance d on the +n side of the
// segments, including the joins.
func (r *Rasteriser) outlineSide(segs []strokeSegment, d float64) {
	skip := false
	for i, seg := range segs {
		if !skip {
			r.outline = append(r.outline, seg.a.Add(seg.n.Mul(d)))
		}
		skip = false

		if i == len(segs)-1 {
			r.outline = append(r.outline, seg.b.Add(seg.n.Mul(d)))
			break
		}

		next := segs[i+1]
		sin := cross(seg.t, next.t)
		switch {
		case math.Abs(sin) < collinearityThreshold && seg.t.Dot(next.t) > 0:
			r.outline = append(r.outline, seg.b.Add(seg.n.Mul(d)))
		case sin > 0:
			// turning towards +n: this is the inner side
			skip = r.addInnerCorner(seg, next, d)
		default:
			r.outline = append(r.outline, seg.b.Add(seg.n.Mul(d)))
			r.addJoin(seg.b, seg.t, next.t, d)
		}
	}
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// addInnerCorner closes the inner side of the corner between seg and next.
// If the two offset lines meet within both segments, their intersection is
// used and the function returns true; the caller then omits the first
// offset point of next. Otherwise both offset points are added. The small
// fold this creates lies inside the stroke and does not change the nonzero
// fill.
func (r *Rasteriser) addInnerCorner(seg, next strokeSegment, d float64) bool {
	cos := seg.t.Dot(next.t)
	half := math.Sqrt((1 + cos) / 2) // cos of half the turning angle
	bis := seg.n.Add(next.n)
	if bl := bis.Length(); cos < 1-1e-9 && half > 1e-9 && bl > 1e-9 {
		// distance along the segments from the corner to the foot of
		// the intersection point
		along := d * math.Sqrt(max(0, 1-half*half)) / half
		if along <= seg.l && along <= next.l {
			r.outline = append(r.outline, seg.b.Add(bis.Mul(d/(half*bl))))
			return true
		}
	}
	r.outline = append(r.outline, seg.b.Add(seg.n.Mul(d)), seg.b.Add(next.n.Mul(d)))
	return false
}

// addCap appends the cap at p. The vector t points away from the stroke.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		r.outline = append(r.outline, ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(p, d, n, -math.Pi, true)
	}
}

// addJoin appends the outer join at p, where the direction changes from
// t1 to t2 with a turn away from the side being built. The offset point of
// the incoming segment is already in the outline.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cos := t1.Dot(t2)
	if cos < cuspThreshold {
		r.addCap(p, t1, d)
		r.addCap(p, t2.Mul(-1), d)
		return
	}

	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	switch r.Join {
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		r.addArc(p, d, n1, -angle, false)

	case graphics.LineJoinMiter:
		half := math.Sqrt((1 + cos) / 2)
		if half <= 0 || 1/half > r.MiterLimit+1e-10 {
			return
		}
		bis := n1.Add(vec.Vec2{X: -t2.Y, Y: t2.X})
		if l := bis.Length(); l > zeroLengthThreshold {
			r.outline = append(r.outline, p.Add(bis.Mul(d/(half*l))))
		}
	}
	// bevel: the two offset points are connected directly
}

// addArc appends points on the circle of the given radius around center,
// starting in direction dir and sweeping by the given angle (positive is
// counter-clockwise). The start point is omitted unless withStart is set.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, dir vec.Vec2, sweep float64, withStart bool) {
	devRadius := max(
		r.toDevice(vec.Vec2{X: radius}).Length(),
		r.toDevice(vec.Vec2{Y: radius}).Length(),
	)

	n := 1
	if devRadius >= r.Flatness {
		// a chord spanning angle θ deviates from the circle by
		// radius·(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(1, int(math.Ceil(math.Abs(sweep)/step)))
	}

	i0 := 1
	if withStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		v := vec.Vec2{X: dir.X*cos - dir.Y*sin, Y: dir.X*sin + dir.Y*cos}
		r.outline = append(r.outline, center.Add(v.Mul(radius)))
	}
}

// addSquare appends a square of side 2d centred at c, aligned with t.
func (r *Rasteriser) addSquare(c, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	r.outline = append(r.outline,
		c.Add(t.Mul(d)).Add(n.Mul(d)),
		c.Add(t.Mul(d)).Sub(n.Mul(d)),
		c.Sub(t.Mul(d)).Sub(n.Mul(d)),
		c.Sub(t.Mul(d)).Add(n.Mul(d)),
	)
}
