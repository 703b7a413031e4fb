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

package pen

import (
	"math"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/marker/penpath"
)

// BuilderProgress is the outcome of a builder handling one event. The
// concrete types are BuilderInProgress, EmitContinue and BuilderFinished.
type BuilderProgress interface {
	isBuilderProgress()
}

// BuilderInProgress means that the event was consumed without producing
// new geometry.
type BuilderInProgress struct{}

// EmitContinue carries newly built segments. More input is expected.
type EmitContinue struct {
	Segments []penpath.Segment
}

// BuilderFinished carries the final segments. The builder must not be used
// afterwards.
type BuilderFinished struct {
	Segments []penpath.Segment
}

func (BuilderInProgress) isBuilderProgress() {}
func (EmitContinue) isBuilderProgress()      {}
func (BuilderFinished) isBuilderProgress()   {}

// Buildable is implemented by path builders. A builder only emits segments;
// it holds no reference to the stroke which receives them.
type Buildable interface {
	HandleEvent(ev Event, now time.Time, c Constraints) EventResult[BuilderProgress]
}

// Creator starts a new builder session anchored at the first pen sample.
type Creator func(start penpath.Element, now time.Time) Buildable

// Ratio is a direction to which constrained input snaps.
type Ratio int

const (
	Horizontal Ratio = iota
	Vertical
	OneToOne
)

// Constraints restrict emitted positions relative to the builder's start
// point. The zero value disables all constraints.
type Constraints struct {
	Enabled bool
	Ratios  []Ratio
}

// Apply snaps pos to the allowed direction closest to the line from start
// to pos. Without constraints pos is returned unchanged.
func (c Constraints) Apply(start, pos vec.Vec2) vec.Vec2 {
	if !c.Enabled || len(c.Ratios) == 0 {
		return pos
	}
	d := pos.Sub(start)
	if d.Length() == 0 {
		return pos
	}

	best := pos
	bestDist := math.Inf(1)
	for _, r := range c.Ratios {
		var dirs []vec.Vec2
		switch r {
		case Horizontal:
			dirs = []vec.Vec2{{X: 1, Y: 0}}
		case Vertical:
			dirs = []vec.Vec2{{X: 0, Y: 1}}
		case OneToOne:
			dirs = []vec.Vec2{{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, {X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}}
		}
		for _, dir := range dirs {
			cand := start.Add(dir.Mul(d.Dot(dir)))
			if dist := cand.Sub(pos).Length(); dist < bestDist {
				best, bestDist = cand, dist
			}
		}
	}
	return best
}

func constrain(start penpath.Element, el penpath.Element, c Constraints) penpath.Element {
	el.Pos = c.Apply(start.Pos, el.Pos)
	return el
}
