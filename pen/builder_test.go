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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/marker/penpath"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSimpleBuilderEmitsLines(t *testing.T) {
	b := NewSimpleBuilder(penpath.NewElement(10, 10, 1), t0)

	res := b.HandleEvent(Move{penpath.NewElement(20, 10, 1)}, t0, Constraints{})
	require.True(t, res.Handled)
	assert.Equal(t, Stop, res.Propagate)
	emit, ok := res.Progress.(EmitContinue)
	require.True(t, ok, "got %T", res.Progress)
	require.Len(t, emit.Segments, 1)
	assert.Equal(t, penpath.Line{To: penpath.NewElement(20, 10, 1)}, emit.Segments[0])

	// the same position again produces no geometry
	res = b.HandleEvent(Down{penpath.NewElement(20, 10, 0.5)}, t0, Constraints{})
	assert.IsType(t, BuilderInProgress{}, res.Progress)

	res = b.HandleEvent(Up{penpath.NewElement(30, 10, 1)}, t0, Constraints{})
	fin, ok := res.Progress.(BuilderFinished)
	require.True(t, ok, "got %T", res.Progress)
	require.Len(t, fin.Segments, 1)
	assert.Equal(t, 30.0, fin.Segments[0].End().Pos.X)
}

func TestSimpleBuilderUpWithoutMove(t *testing.T) {
	start := penpath.NewElement(5, 5, 1)
	b := NewSimpleBuilder(start, t0)

	res := b.HandleEvent(Up{start}, t0, Constraints{})
	fin, ok := res.Progress.(BuilderFinished)
	require.True(t, ok)
	require.Len(t, fin.Segments, 1)
	assert.Equal(t, start, fin.Segments[0].End())
}

func TestBuilderCancel(t *testing.T) {
	creators := map[string]Creator{
		"simple": NewSimpleBuilder,
		"curved": NewCurvedBuilder,
	}
	for name, create := range creators {
		t.Run(name, func(t *testing.T) {
			b := create(penpath.NewElement(0, 0, 1), t0)
			b.HandleEvent(Move{penpath.NewElement(4, 4, 1)}, t0, Constraints{})
			res := b.HandleEvent(Cancel{}, t0, Constraints{})
			fin, ok := res.Progress.(BuilderFinished)
			require.True(t, ok)
			assert.Empty(t, fin.Segments)
		})
	}
}

func TestCurvedBuilderIsContinuous(t *testing.T) {
	start := penpath.NewElement(0, 0, 1)
	b := NewCurvedBuilder(start, t0)
	p := penpath.New(start)

	samples := []vec.Vec2{{X: 10, Y: 0}, {X: 20, Y: 5}, {X: 30, Y: 15}, {X: 30, Y: 15}, {X: 35, Y: 30}}
	for _, s := range samples {
		res := b.HandleEvent(Move{penpath.Element{Pos: s, Pressure: 1}}, t0, Constraints{})
		if emit, ok := res.Progress.(EmitContinue); ok {
			p.Extend(emit.Segments...)
		}
	}
	res := b.HandleEvent(Up{penpath.NewElement(40, 40, 1)}, t0, Constraints{})
	fin := res.Progress.(BuilderFinished)
	p.Extend(fin.Segments...)

	// one curve per distinct sample plus the final one
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, vec.Vec2{X: 40, Y: 40}, p.End().Pos)

	q, ok := p.Segments[1].(penpath.Quad)
	require.True(t, ok)
	assert.Equal(t, vec.Vec2{X: 10, Y: 0}, q.Cp)
	assert.Equal(t, vec.Vec2{X: 15, Y: 2.5}, q.To.Pos)
}

func TestConstraints(t *testing.T) {
	start := vec.Vec2{X: 0, Y: 0}

	c := Constraints{}
	assert.Equal(t, vec.Vec2{X: 3, Y: 4}, c.Apply(start, vec.Vec2{X: 3, Y: 4}))

	c = Constraints{Enabled: true, Ratios: []Ratio{Horizontal, Vertical}}
	assert.Equal(t, vec.Vec2{X: 10, Y: 0}, c.Apply(start, vec.Vec2{X: 10, Y: 1}))
	assert.Equal(t, vec.Vec2{X: 0, Y: 10}, c.Apply(start, vec.Vec2{X: -1, Y: 10}))

	c = Constraints{Enabled: true, Ratios: []Ratio{OneToOne}}
	got := c.Apply(start, vec.Vec2{X: 10, Y: 8})
	assert.InDelta(t, got.X, got.Y, 1e-9)
	assert.InDelta(t, 9, got.X, 1e-9)

	got = c.Apply(start, vec.Vec2{X: 10, Y: -10})
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, -10, got.Y, 1e-9)
	assert.False(t, math.IsNaN(got.X))
}

func TestSimpleBuilderConstrained(t *testing.T) {
	b := NewSimpleBuilder(penpath.NewElement(0, 0, 1), t0)
	c := Constraints{Enabled: true, Ratios: []Ratio{Horizontal}}

	res := b.HandleEvent(Move{penpath.NewElement(10, 3, 1)}, t0, c)
	emit := res.Progress.(EmitContinue)
	assert.Equal(t, vec.Vec2{X: 10, Y: 0}, emit.Segments[0].End().Pos)
}
