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

package stroke

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/penpath"
	"seehuhn.de/go/marker/render"
)

var yellow = Color{R: 1, G: 0.9, B: 0, A: 0.5}

func line(x, y float64) penpath.Segment {
	return penpath.Line{To: penpath.NewElement(x, y, 1)}
}

func TestNewStrokeBounds(t *testing.T) {
	s := New(penpath.NewElement(10, 10, 1), 15, Circular, yellow)

	want := rect.Rect{LLx: 2.5, LLy: 2.5, URx: 17.5, URy: 17.5}
	assert.Equal(t, want, s.Bounds())
	require.Len(t, s.Hitboxes(), 1)
	assert.Equal(t, want, s.Hitboxes()[0])
}

func TestExtendMatchesUpdateGeometry(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 4, Circular, yellow)
	s.Extend(line(10, 0))
	s.Extend(line(10, 10), penpath.Quad{Cp: vec.Vec2{X: 20, Y: 20}, To: penpath.NewElement(0, 30, 1)})

	bounds, hitboxes := s.Bounds(), s.Hitboxes()
	s.UpdateGeometry()
	assert.Equal(t, bounds, s.Bounds())
	assert.Equal(t, hitboxes, s.Hitboxes())

	assert.Equal(t, bbox.Loosen(s.Path.Bounds(), 2), s.Bounds())
	assert.Len(t, s.Hitboxes(), 3)
}

func TestUpdateGeometryIdempotent(t *testing.T) {
	s := New(penpath.NewElement(5, 5, 1), 7, Rectangular, yellow)
	s.Extend(line(50, 5), line(60, 40), line(-3, 2))

	s.UpdateGeometry()
	b1, h1 := s.Bounds(), s.Hitboxes()
	s.UpdateGeometry()
	assert.Equal(t, b1, s.Bounds())
	assert.Equal(t, h1, s.Hitboxes())
}

func TestHitboxesCoverSegments(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 2, Circular, yellow)
	s.Extend(line(10, 0), line(10, 10))
	hb := s.Hitboxes()
	require.Len(t, hb, 2)
	assert.Equal(t, rect.Rect{LLx: -1, LLy: -1, URx: 11, URy: 1}, hb[0])
	assert.Equal(t, rect.Rect{LLx: 9, LLy: -1, URx: 11, URy: 11}, hb[1])
}

func TestReplacePath(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 2, Circular, yellow)

	err := s.ReplacePath(penpath.New(penpath.NewElement(1, 1, 1)))
	assert.True(t, errors.Is(err, ErrEmptyPath))
	assert.Equal(t, 0.0, s.Path.Start.Pos.X)

	p := penpath.NewWithSegments(penpath.NewElement(100, 100, 1), []penpath.Segment{line(110, 100)})
	require.NoError(t, s.ReplacePath(p))
	assert.Equal(t, rect.Rect{LLx: 99, LLy: 99, URx: 111, URy: 101}, s.Bounds())
}

func TestTailSegmentCount(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 2, Circular, yellow)
	for i := 1; i <= 6; i++ {
		s.Extend(line(float64(i), float64(i%2)))
	}
	for n := 0; n <= 9; n++ {
		tail := s.Tail(n)
		assert.Equal(t, min(n, 6), tail.Len(), "n=%d", n)
		if n > 0 && n < 6 {
			assert.Equal(t, s.Path.Segments[5-n].End(), tail.Start, "n=%d", n)
		}
	}
	assert.Equal(t, s.Path.Start, s.Tail(6).Start)
}

func TestScaleGeometricMean(t *testing.T) {
	s := New(penpath.NewElement(10, 10, 1), 10, Circular, yellow)
	s.Extend(line(20, 20))

	s.Scale(vec.Vec2{X: 2, Y: 0.5})
	assert.InDelta(t, 10, s.Width, 1e-12)
	assert.Equal(t, vec.Vec2{X: 40, Y: 10}, s.Path.End().Pos)
	assert.Equal(t, bbox.Loosen(s.Path.Bounds(), 5), s.Bounds())

	s.Scale(vec.Vec2{X: 4, Y: 1})
	assert.InDelta(t, 20, s.Width, 1e-12)
}

func TestTranslateRotate(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 2, Circular, yellow)
	s.Extend(line(10, 0))

	s.Translate(vec.Vec2{X: 5, Y: 5})
	assert.Equal(t, rect.Rect{LLx: 4, LLy: 4, URx: 16, URy: 6}, s.Bounds())

	s.Rotate(math.Pi/2, vec.Vec2{X: 5, Y: 5})
	end := s.Path.End().Pos
	assert.InDelta(t, 5, end.X, 1e-9)
	assert.InDelta(t, 15, end.Y, 1e-9)
	assert.Equal(t, 2.0, s.Width)
}

func TestStyleMapping(t *testing.T) {
	st := New(penpath.NewElement(0, 0, 1), 3, Circular, yellow).Style()
	assert.Equal(t, graphics.LineCapRound, st.Cap)
	assert.Equal(t, graphics.LineJoinRound, st.Join)
	assert.Equal(t, uint8(128), st.Color.A)

	st = New(penpath.NewElement(0, 0, 1), 3, Rectangular, yellow).Style()
	assert.Equal(t, graphics.LineCapButt, st.Cap)
	assert.Equal(t, graphics.LineJoinBevel, st.Join)
}

func TestGenImages(t *testing.T) {
	s := New(penpath.NewElement(20, 20, 1), 10, Circular, yellow)
	s.Extend(line(80, 20))

	g, err := s.GenImages(rect.Rect{URx: 200, URy: 200}, 1)
	require.NoError(t, err)
	full, ok := g.(render.Full)
	require.True(t, ok, "got %T", g)
	require.Len(t, full.Images, 1)
	assert.Equal(t, rect.Rect{LLx: 15, LLy: 15, URx: 85, URy: 25}, full.Images[0].Bounds)

	vp := rect.Rect{LLx: 50, LLy: 0, URx: 200, URy: 200}
	g, err = s.GenImages(vp, 2)
	require.NoError(t, err)
	part, ok := g.(render.Partial)
	require.True(t, ok, "got %T", g)
	assert.Equal(t, vp, part.Viewport)
	require.Len(t, part.Images, 1)
	assert.Equal(t, 50.0, part.Images[0].Bounds.LLx)

	vp = rect.Rect{LLx: 500, LLy: 500, URx: 600, URy: 600}
	g, err = s.GenImages(vp, 1)
	require.NoError(t, err)
	part, ok = g.(render.Partial)
	require.True(t, ok)
	assert.Empty(t, part.Images)
	assert.Equal(t, vp, part.Viewport)
}

func TestGenImagesFailureDegrades(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 10, Circular, yellow)
	s.Extend(line(1e6, 1e6))

	g, err := s.GenImages(rect.Rect{LLx: -10, LLy: -10, URx: 2e6, URy: 2e6}, 1)
	require.NoError(t, err)
	assert.Empty(t, g.Patches())
}

func TestGenImageForLastSegments(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 4, Rectangular, yellow)
	s.Extend(line(100, 0), line(100, 10), line(110, 10))

	img, err := s.GenImageForLastSegments(1, 1)
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 98, LLy: 8, URx: 112, URy: 12}, img.Bounds)

	_, err = s.GenImageForLastSegments(10, 0)
	assert.True(t, errors.Is(err, render.ErrEmptyBounds))
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 4, Circular, yellow)
	s.Extend(line(10, 0))
	c := s.Clone().(*MarkerStroke)

	s.Extend(line(20, 0))
	assert.Equal(t, 1, c.Path.Len())
	assert.Equal(t, 12.0, c.Bounds().URx)
}

func TestJSONRoundTrip(t *testing.T) {
	s := New(penpath.NewElement(1, 2, 0.5), 12, Rectangular, yellow)
	s.Extend(line(3, 4), penpath.Cubic{
		Cp1: vec.Vec2{X: 5, Y: 6}, Cp2: vec.Vec2{X: 7, Y: 8},
		To: penpath.NewElement(9, 10, 1),
	})

	data, err := Encode(s)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "rectangular", raw["markerstroke"]["shape"])
	assert.NotContains(t, raw["markerstroke"], "hitboxes")

	got, err := Decode(data)
	require.NoError(t, err)
	m := got.(*MarkerStroke)
	assert.Equal(t, s.Path, m.Path)
	assert.Equal(t, s.Width, m.Width)
	assert.Equal(t, s.Shape, m.Shape)
	assert.Equal(t, s.Color, m.Color)
	assert.Equal(t, s.Bounds(), m.Bounds())
	assert.Equal(t, s.Hitboxes(), m.Hitboxes())
}

func TestShapeDecoding(t *testing.T) {
	var sh Shape
	require.NoError(t, json.Unmarshal([]byte(`1`), &sh))
	assert.Equal(t, Rectangular, sh)
	require.NoError(t, json.Unmarshal([]byte(`"circular"`), &sh))
	assert.Equal(t, Circular, sh)

	err := json.Unmarshal([]byte(`7`), &sh)
	assert.True(t, errors.Is(err, ErrInvalidShape))
	err = json.Unmarshal([]byte(`"oval"`), &sh)
	assert.True(t, errors.Is(err, ErrInvalidShape))

	_, err = ShapeFromUint(2)
	assert.True(t, errors.Is(err, ErrInvalidShape))
}

func TestColor(t *testing.T) {
	c := Color{R: 1, G: 0.9, B: 0, A: 0.9}.WithAlphaScaled(0.5)
	assert.InDelta(t, 0.45, c.A, 1e-12)
	assert.Equal(t, uint8(115), c.NRGBA().A)
	assert.Equal(t, uint8(255), Color{R: 2}.NRGBA().R)
}

func TestDetachLastSegments(t *testing.T) {
	s := New(penpath.NewElement(0, 0, 1), 4, Circular, yellow)
	s.Extend(line(10, 0), line(20, 0), line(30, 0))

	d := s.DetachLastSegments(2)
	s.Extend(line(40, 0))

	m := d.(*MarkerStroke)
	assert.Equal(t, 2, m.Path.Len())
	assert.Equal(t, rect.Rect{LLx: 8, LLy: -2, URx: 32, URy: 2}, d.Bounds())

	img, err := d.GenImageForLastSegments(2, 1)
	require.NoError(t, err)
	assert.Equal(t, d.Bounds(), img.Bounds)
}
