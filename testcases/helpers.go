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

package testcases

import (
	"math"
	"math/rand/v2"
)

// stepInterval is the time between consecutive generated events.
const stepInterval = 8

// drag builds Down at the first point, Move events through the middle
// points and Up at the last point. Coordinates are given as x, y pairs.
func drag(xy ...float64) []Step {
	n := len(xy) / 2
	steps := make([]Step, 0, n)
	for i := range n {
		kind := Move
		switch i {
		case 0:
			kind = Down
		case n - 1:
			kind = Up
		}
		steps = append(steps, Step{Type: kind, X: xy[2*i], Y: xy[2*i+1], Pressure: 0.5})
	}
	return retime(steps, 0)
}

// cancelAfter replaces the final Up of steps by a Cancel event.
func cancelAfter(steps []Step) []Step {
	last := len(steps) - 1
	steps[last] = Step{Type: Cancel, T: steps[last].T}
	return steps
}

// then concatenates step sequences, shifting the times of each sequence
// to follow the previous one.
func then(seqs ...[]Step) []Step {
	var res []Step
	var t int64
	for _, seq := range seqs {
		res = append(res, retime(seq, t)...)
		if len(res) > 0 {
			t = res[len(res)-1].T + 100
		}
	}
	return res
}

func retime(steps []Step, t0 int64) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.T = t0 + int64(i)*stepInterval
		out[i] = s
	}
	return out
}

// circle builds a closed drag around (cx, cy) with n Move events.
func circle(cx, cy, r float64, n int) []Step {
	xy := make([]float64, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		xy = append(xy, cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return drag(xy...)
}

// figureEight builds a self-crossing lemniscate.
func figureEight(cx, cy, a float64, n int) []Step {
	xy := make([]float64, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		s, c := math.Sincos(t)
		d := 1 + s*s
		xy = append(xy, cx+a*c/d, cy+a*s*c/d)
	}
	return drag(xy...)
}

// scribble builds a random walk inside the rectangle [x0, x1] × [y0, y1].
// The result only depends on the seed.
func scribble(seed uint64, n int, x0, y0, x1, y1 float64) []Step {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	x, y := (x0+x1)/2, (y0+y1)/2
	angle := 0.0
	xy := make([]float64, 0, 2*n)
	for range n {
		xy = append(xy, x, y)
		angle += (rng.Float64() - 0.5) * 1.2
		step := 2 + 6*rng.Float64()
		x = min(max(x+step*math.Cos(angle), x0), x1)
		y = min(max(y+step*math.Sin(angle), y0), y1)
	}
	return drag(xy...)
}
