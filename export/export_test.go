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

package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/penpath"
	"seehuhn.de/go/marker/render"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
)

func sample() (*doc.Document, *store.Store) {
	d := doc.New(doc.Format{Width: 200, Height: 100}, doc.FixedSize)
	st := store.New()
	color := stroke.Color{R: 1, G: 0.9, A: 0.5}

	s := stroke.New(penpath.NewElement(20, 50, 1), 10, stroke.Circular, color)
	s.Extend(
		penpath.Line{To: penpath.NewElement(80, 50, 1)},
		penpath.Quad{Cp: vec.Vec2{X: 120, Y: 10}, To: penpath.NewElement(160, 50, 1)},
		penpath.Cubic{Cp1: vec.Vec2{X: 170, Y: 60}, Cp2: vec.Vec2{X: 175, Y: 80}, To: penpath.NewElement(180, 90, 1)},
	)
	st.InsertStroke(s, store.Highlighter)
	st.InsertStroke(stroke.New(penpath.NewElement(10, 10, 1), 6, stroke.Rectangular, color), store.Highlighter)
	return d, st
}

func TestPDF(t *testing.T) {
	d, st := sample()
	buf := &bytes.Buffer{}
	require.NoError(t, PDF(buf, d, st))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	empty := &bytes.Buffer{}
	require.NoError(t, PDF(empty, d, store.New()))
	assert.Greater(t, buf.Len(), empty.Len())

	d.Width = 0
	assert.Error(t, PDF(&bytes.Buffer{}, d, st))
}

func TestRaster(t *testing.T) {
	_, st := sample()
	img, err := Raster(st, rect.Rect{URx: 200, URy: 100}, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 200), img.Bounds())

	// on the straight part of the stroke
	c := img.RGBAAt(100, 100)
	assert.InDelta(t, 128, int(c.A), 1)
	assert.Zero(t, img.RGBAAt(100, 180).A)

	// the cached images of the store are not touched
	for _, key := range st.Keys() {
		assert.Empty(t, st.Images(key))
	}
}

func TestRasterErrors(t *testing.T) {
	_, st := sample()
	_, err := Raster(st, rect.Rect{URx: 0, URy: 10}, 1)
	assert.True(t, errors.Is(err, render.ErrEmptyBounds))
	_, err = Raster(st, rect.Rect{URx: 1e5, URy: 1e5}, 1)
	assert.True(t, errors.Is(err, render.ErrImageTooLarge))
}

func TestPNG(t *testing.T) {
	_, st := sample()
	buf := &bytes.Buffer{}
	require.NoError(t, PNG(buf, st, rect.Rect{LLx: 50, LLy: 0, URx: 150, URy: 100}, 1))

	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	_, _, _, a := img.At(10, 50).RGBA()
	assert.NotZero(t, a)
}
