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

package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

type content struct {
	r  rect.Rect
	ok bool
}

func (c content) ContentBounds() (rect.Rect, bool) { return c.r, c.ok }

var page = Format{Width: 100, Height: 200}

func TestCamera(t *testing.T) {
	c := NewCamera(800, 600)
	assert.Equal(t, rect.Rect{URx: 800, URy: 600}, c.Viewport())
	assert.Equal(t, 1.0, c.ImageScale())

	c.Offset = vec.Vec2{X: 200, Y: 100}
	c.Zoom = 2
	c.ScaleFactor = 1.5
	assert.Equal(t, rect.Rect{LLx: 100, LLy: 50, URx: 500, URy: 350}, c.Viewport())
	assert.Equal(t, 3.0, c.ImageScale())

	c.Zoom = 0
	assert.Equal(t, 1.5, c.ImageScale())
}

func TestFixedSizeNeverChanges(t *testing.T) {
	d := New(page, FixedSize)
	flags := d.ResizeAutoexpand(content{rect.Rect{URx: 1000, URy: 1000}, true}, NewCamera(5000, 5000))
	assert.False(t, flags.ResizeToFitContent)
	assert.Equal(t, rect.Rect{URx: 100, URy: 200}, d.Bounds())
}

func TestContinuousVertical(t *testing.T) {
	d := New(page, ContinuousVertical)

	flags := d.ResizeAutoexpand(content{rect.Rect{LLx: 10, LLy: 10, URx: 50, URy: 150}, true}, nil)
	assert.False(t, flags.Redraw)
	assert.Equal(t, 200.0, d.Height)

	flags = d.ResizeAutoexpand(content{rect.Rect{LLx: 10, LLy: 10, URx: 500, URy: 401}, true}, nil)
	assert.True(t, flags.ResizeToFitContent)
	assert.True(t, flags.Redraw)
	assert.Equal(t, 600.0, d.Height)
	assert.Equal(t, 100.0, d.Width)

	// no shrinking
	d.ResizeAutoexpand(content{}, nil)
	assert.Equal(t, 600.0, d.Height)
}

func TestInfinite(t *testing.T) {
	d := New(page, Infinite)
	cam := NewCamera(50, 50)
	cam.Offset = vec.Vec2{X: -30, Y: -10}

	flags := d.ResizeAutoexpand(content{rect.Rect{LLx: 0, LLy: 0, URx: 250, URy: 100}, true}, cam)
	require.True(t, flags.ResizeToFitContent)
	assert.Equal(t, rect.Rect{LLx: -100, LLy: -200, URx: 300, URy: 200}, d.Bounds())

	flags = d.ResizeAutoexpand(content{rect.Rect{URx: 10, URy: 10}, true}, NewCamera(10, 10))
	assert.False(t, flags.ResizeToFitContent)
}

func TestLayoutText(t *testing.T) {
	var l Layout
	require.NoError(t, l.UnmarshalText([]byte("Continuous-Vertical")))
	assert.Equal(t, ContinuousVertical, l)
	b, err := Infinite.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "infinite", string(b))
	assert.Error(t, l.UnmarshalText([]byte("spiral")))
}

func TestNewDocumentIdentity(t *testing.T) {
	a, b := New(A4, FixedSize), New(A4, FixedSize)
	assert.NotEqual(t, a.ID, b.ID)
}
