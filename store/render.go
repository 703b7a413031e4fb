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

package store

import (
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/internal/logger"
	"seehuhn.de/go/marker/render"
	"seehuhn.de/go/marker/stroke"
	"seehuhn.de/go/marker/tasks"
	"seehuhn.de/go/marker/widget"
)

// RenderKind describes the cached images of a stroke.
type RenderKind uint8

const (
	// RenderInvalid means that no images have been generated.
	RenderInvalid RenderKind = iota

	// RenderBusy means that a full regeneration is in progress.
	RenderBusy

	// RenderStale means that the stroke changed after its images were
	// generated.
	RenderStale

	// RenderComplete means that the images cover the whole stroke.
	RenderComplete

	// RenderForViewport means that the images cover only the part of the
	// stroke inside RenderState.Viewport.
	RenderForViewport
)

func (k RenderKind) String() string {
	switch k {
	case RenderInvalid:
		return "invalid"
	case RenderBusy:
		return "busy"
	case RenderStale:
		return "stale"
	case RenderComplete:
		return "complete"
	case RenderForViewport:
		return "for-viewport"
	default:
		return fmt.Sprintf("RenderKind(%d)", uint8(k))
	}
}

// RenderState is the state of the cached images of a stroke.
type RenderState struct {
	Kind     RenderKind
	Viewport rect.Rect
}

// Task is the result of a background rendering job. Tasks are applied to
// the store with ApplyTask.
type Task interface {
	isTask()
}

// UpdateStrokeWithImages replaces all images of a stroke.
type UpdateStrokeWithImages struct {
	Key    Key
	Gen    uint64
	Images render.Generated
}

// AppendImagesToStroke adds images to those of a stroke.
type AppendImagesToStroke struct {
	Key    Key
	Gen    uint64
	Images []*render.Image
}

func (UpdateStrokeWithImages) isTask() {}
func (AppendImagesToStroke) isTask()   {}

// Queue is the background queue used for rendering.
type Queue = tasks.Queue[Task]

// NewQueue starts a rendering queue.
func NewQueue(workers, buffer int) *Queue {
	return tasks.New[Task](workers, buffer)
}

// RegenerateRenderingForStroke renders the stroke for key on the calling
// goroutine and replaces its images. Requests still in flight for the
// stroke are superseded.
func (st *Store) RegenerateRenderingForStroke(key Key, viewport rect.Rect, scale float64) {
	e, ok := st.entries[key]
	if !ok {
		return
	}
	e.gen++
	t := UpdateStrokeWithImages{
		Key:    key,
		Gen:    e.gen,
		Images: genImages(e.stroke, viewport, scale),
	}
	st.ApplyTask(t)
}

// RegenerateRenderingForStrokeThreaded renders a copy of the stroke for
// key on the queue. Requests submitted earlier for the stroke are
// superseded, including incremental ones.
//
// If the queue does not accept the job, the stroke is rendered on the
// calling goroutine instead.
func (st *Store) RegenerateRenderingForStrokeThreaded(q *Queue, key Key, viewport rect.Rect, scale float64) {
	e, ok := st.entries[key]
	if !ok {
		return
	}
	e.gen++
	gen := e.gen
	s := e.stroke.Clone()

	err := q.Submit(key.String(), func() Task {
		return UpdateStrokeWithImages{
			Key:    key,
			Gen:    gen,
			Images: genImages(s, viewport, scale),
		}
	})
	if err != nil {
		logger.Get().Warn("rendering stroke inline", "key", key, "error", err)
		st.ApplyTask(UpdateStrokeWithImages{
			Key:    key,
			Gen:    gen,
			Images: genImages(s, viewport, scale),
		})
		return
	}
	e.state = RenderState{Kind: RenderBusy}
}

// AppendRenderingLastSegments renders the last n segments of the stroke
// for key on the queue and adds the result to the stroke's images.
// Nothing happens if the segments lie outside the viewport, or if the
// stroke cannot render partial paths.
func (st *Store) AppendRenderingLastSegments(q *Queue, key Key, n int, viewport rect.Rect, scale float64) {
	e, ok := st.entries[key]
	if !ok || n <= 0 {
		return
	}
	r, ok := e.stroke.(stroke.LastSegmentsRenderer)
	if !ok {
		return
	}
	tail := r.DetachLastSegments(n)
	if _, visible := bbox.Intersect(viewport, tail.Bounds()); !visible {
		return
	}
	gen := e.gen

	job := func() Task {
		t := AppendImagesToStroke{Key: key, Gen: gen}
		img, err := tail.GenImageForLastSegments(n, scale)
		if err != nil {
			logger.Get().Warn("rendering last segments failed",
				"key", key, "n", n, "error", err)
		} else {
			t.Images = []*render.Image{img}
		}
		return t
	}
	if err := q.Submit(key.String(), job); err != nil {
		logger.Get().Warn("dropping incremental render", "key", key, "error", err)
	}
}

// ApplyTask applies the result of a rendering job. Results for removed
// strokes and results which were superseded by a later full regeneration
// are discarded.
func (st *Store) ApplyTask(t Task) widget.Flags {
	var flags widget.Flags
	switch t := t.(type) {
	case UpdateStrokeWithImages:
		e, ok := st.entries[t.Key]
		if !ok || t.Gen != e.gen {
			logger.Get().Debug("discarding stale render result", "key", t.Key, "gen", t.Gen)
			return flags
		}
		e.images = t.Images.Patches()
		switch g := t.Images.(type) {
		case render.Partial:
			e.state = RenderState{Kind: RenderForViewport, Viewport: g.Viewport}
		default:
			e.state = RenderState{Kind: RenderComplete}
		}
		flags.Redraw = true

	case AppendImagesToStroke:
		e, ok := st.entries[t.Key]
		if !ok || t.Gen != e.gen {
			logger.Get().Debug("discarding stale incremental result", "key", t.Key, "gen", t.Gen)
			return flags
		}
		e.images = append(e.images, t.Images...)
		flags.Redraw = true
	}
	return flags
}

// ProcessPending applies all results which are ready on the queue,
// without waiting.
func (st *Store) ProcessPending(q *Queue) widget.Flags {
	var flags widget.Flags
	for {
		select {
		case t, ok := <-q.Results():
			if !ok {
				return flags
			}
			flags.Merge(st.ApplyTask(t))
		default:
			return flags
		}
	}
}

// Drain closes q and applies all outstanding results.
func (st *Store) Drain(q *Queue) (widget.Flags, error) {
	errc := make(chan error, 1)
	go func() { errc <- q.Close() }()

	var flags widget.Flags
	for t := range q.Results() {
		flags.Merge(st.ApplyTask(t))
	}
	return flags, <-errc
}

func genImages(s stroke.Stroke, viewport rect.Rect, scale float64) render.Generated {
	g, err := s.GenImages(viewport, scale)
	if err != nil {
		logger.Get().Warn("rendering stroke failed", "error", err)
		return render.Partial{Viewport: viewport}
	}
	return g
}
