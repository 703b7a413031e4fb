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

// Package store holds the strokes of a document together with their
// rendered images and the history checkpoints.
//
// A Store is owned by the goroutine which handles input events. It is not
// safe for concurrent use. Background rendering works on copies of the
// strokes and reports back through Task values, which are applied on the
// owning goroutine with ApplyTask.
package store

import (
	"cmp"
	"errors"
	"image"
	"slices"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/render"
	"seehuhn.de/go/marker/stroke"
)

// MaxHistory is the default number of history checkpoints kept by a
// store.
const MaxHistory = 100

// ErrDuplicateKey is returned by Restore when the key is already in use.
var ErrDuplicateKey = errors.New("store: duplicate key")

type entry struct {
	stroke stroke.Stroke
	layer  Layer
	seq    uint64

	images []*render.Image
	state  RenderState

	// gen is incremented whenever a full regeneration is requested. Render
	// results from an older generation are discarded.
	gen uint64
}

// Store maps keys to strokes.
type Store struct {
	entries map[Key]*entry
	nextSeq uint64

	history    []Checkpoint
	maxHistory int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		entries:    make(map[Key]*entry),
		maxHistory: MaxHistory,
	}
}

// SetMaxHistory changes the number of checkpoints kept. Values below one
// are treated as one.
func (st *Store) SetMaxHistory(n int) {
	st.maxHistory = max(n, 1)
	st.trimHistory()
}

// InsertStroke adds s to the given layer and returns its new key.
func (st *Store) InsertStroke(s stroke.Stroke, layer Layer) Key {
	key := NewKey()
	st.insert(key, s, layer)
	return key
}

// Restore adds s under a known key, for example when loading a document.
func (st *Store) Restore(key Key, s stroke.Stroke, layer Layer) error {
	if _, exists := st.entries[key]; exists {
		return ErrDuplicateKey
	}
	st.insert(key, s, layer)
	return nil
}

func (st *Store) insert(key Key, s stroke.Stroke, layer Layer) {
	st.entries[key] = &entry{
		stroke: s,
		layer:  layer,
		seq:    st.nextSeq,
	}
	st.nextSeq++
}

// Len returns the number of strokes.
func (st *Store) Len() int {
	return len(st.entries)
}

// GetStroke returns the stroke for key. The stroke must not be modified.
func (st *Store) GetStroke(key Key) (stroke.Stroke, bool) {
	e, ok := st.entries[key]
	if !ok {
		return nil, false
	}
	return e.stroke, true
}

// GetStrokeMut returns the stroke for key, for modification. The cached
// images are marked as stale until the next full regeneration.
func (st *Store) GetStrokeMut(key Key) (stroke.Stroke, bool) {
	e, ok := st.entries[key]
	if !ok {
		return nil, false
	}
	if e.state.Kind == RenderComplete || e.state.Kind == RenderForViewport {
		e.state = RenderState{Kind: RenderStale}
	}
	return e.stroke, true
}

// Layer returns the layer of the stroke for key.
func (st *Store) Layer(key Key) (Layer, bool) {
	e, ok := st.entries[key]
	if !ok {
		return 0, false
	}
	return e.layer, true
}

// Keys returns all keys in rendering order: by layer, and within a layer
// in insertion order.
func (st *Store) Keys() []Key {
	keys := make([]Key, 0, len(st.entries))
	for k := range st.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		ea, eb := st.entries[a], st.entries[b]
		if c := cmp.Compare(ea.layer, eb.layer); c != 0 {
			return c
		}
		return cmp.Compare(ea.seq, eb.seq)
	})
	return keys
}

// Remove deletes the stroke for key and reports whether it was present.
// Render results for the key which are still in flight are dropped.
func (st *Store) Remove(key Key) bool {
	if _, ok := st.entries[key]; !ok {
		return false
	}
	delete(st.entries, key)
	return true
}

// UpdateGeometryForStroke recomputes the cached geometry of the stroke.
func (st *Store) UpdateGeometryForStroke(key Key) {
	if e, ok := st.entries[key]; ok {
		e.stroke.UpdateGeometry()
	}
}

// ContentBounds returns the union of the bounds of all strokes. The
// second return value is false if the store is empty.
func (st *Store) ContentBounds() (rect.Rect, bool) {
	var res rect.Rect
	found := false
	for _, e := range st.entries {
		b := e.stroke.Bounds()
		if !bbox.Valid(b) {
			continue
		}
		if !found {
			res, found = b, true
		} else {
			res = bbox.Union(res, b)
		}
	}
	return res, found
}

// Images returns the rendered images of the stroke for key.
func (st *Store) Images(key Key) []*render.Image {
	e, ok := st.entries[key]
	if !ok {
		return nil
	}
	return slices.Clone(e.images)
}

// RenderState returns the state of the cached images of the stroke for
// key.
func (st *Store) RenderState(key Key) RenderState {
	e, ok := st.entries[key]
	if !ok {
		return RenderState{}
	}
	return e.state
}

// Draw composites the cached images of all strokes onto dst, which shows
// the given viewport at the given scale.
func (st *Store) Draw(dst *image.RGBA, viewport rect.Rect, scale float64) {
	for _, key := range st.Keys() {
		render.Draw(dst, viewport, scale, st.entries[key].images...)
	}
}

// Checkpoint is a snapshot of the store contents.
type Checkpoint struct {
	Time    time.Time
	Strokes []CheckpointStroke
}

// CheckpointStroke is one stroke of a checkpoint.
type CheckpointStroke struct {
	Key    Key
	Layer  Layer
	Stroke stroke.Stroke
}
