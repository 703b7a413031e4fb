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

package marker

import (
	"time"

	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/internal/bbox"
	"seehuhn.de/go/marker/internal/logger"
	"seehuhn.de/go/marker/pen"
	"seehuhn.de/go/marker/penpath"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
	"seehuhn.de/go/marker/widget"
)

// InputOvershoot is the distance outside the document bounds within which
// a Down event still starts a stroke.
const InputOvershoot = 30.0

// EngineView gives a tool access to the engine state while it handles an
// event.
type EngineView struct {
	Document *doc.Document
	Store    *store.Store
	Camera   *doc.Camera
	Config   *Config

	// Tasks runs background renders. If Tasks is nil, no incremental
	// images are generated while drawing, and finished strokes are
	// rendered on the calling goroutine.
	Tasks *store.Queue
}

// Marker is the highlighter tool.
//
// A Marker is either idle, or it is drawing a single stroke. Event
// handling must not be called concurrently.
type Marker struct {
	state markerState

	// NewBuilder creates the path builder for each stroke. If nil,
	// pen.NewSimpleBuilder is used.
	NewBuilder pen.Creator
}

type markerState interface {
	isMarkerState()
}

type idle struct{}

type drawing struct {
	builder pen.Buildable
	key     store.Key
}

func (idle) isMarkerState()     {}
func (*drawing) isMarkerState() {}

// New returns an idle marker.
func New() *Marker {
	return &Marker{state: idle{}}
}

// Drawing reports whether a stroke is in progress, and returns its key.
func (m *Marker) Drawing() (store.Key, bool) {
	if d, ok := m.state.(*drawing); ok {
		return d.key, true
	}
	return store.Key{}, false
}

// HandleEvent processes one pointer event.
func (m *Marker) HandleEvent(ev pen.Event, now time.Time, v *EngineView) (pen.EventResult[pen.Progress], widget.Flags) {
	var flags widget.Flags
	var res pen.EventResult[pen.Progress]

	switch state := m.state.(type) {
	case *drawing:
		if _, ok := ev.(pen.Cancel); ok {
			m.cancel(state, now, v, &flags)
			res = pen.EventResult[pen.Progress]{
				Handled:   true,
				Propagate: pen.Stop,
				Progress:  pen.Finished,
			}
			break
		}
		res = m.forward(state, ev, now, v, &flags)

	default:
		down, ok := ev.(pen.Down)
		if !ok {
			res = pen.EventResult[pen.Progress]{Propagate: pen.Proceed, Progress: pen.Idle}
			break
		}
		if !down.Element.Within(bbox.Loosen(v.Document.Bounds(), InputOvershoot)) {
			logger.Get().Debug("marker: down outside document", "pos", down.Element.Pos)
			res = pen.EventResult[pen.Progress]{Propagate: pen.Proceed, Progress: pen.Idle}
			break
		}
		m.start(down.Element, now, v)
		res = pen.EventResult[pen.Progress]{
			Handled:   true,
			Propagate: pen.Stop,
			Progress:  pen.InProgress,
		}
	}

	return res, flags
}

// start creates a new stroke at elem and enters the drawing state.
func (m *Marker) start(elem penpath.Element, now time.Time, v *EngineView) {
	cfg := v.config()
	s := stroke.New(elem, cfg.Width, cfg.Shape, cfg.EffectiveColor())
	key := v.Store.InsertStroke(s, cfg.Layer())
	v.Store.RegenerateRenderingForStroke(key, v.Camera.Viewport(), v.Camera.ImageScale())

	newBuilder := m.NewBuilder
	if newBuilder == nil {
		newBuilder = pen.NewSimpleBuilder
	}
	m.state = &drawing{
		builder: newBuilder(elem, now),
		key:     key,
	}
	logger.Get().Debug("marker: stroke started", "key", key, "width", cfg.Width)
}

// forward passes ev to the path builder. A Down event while drawing
// continues the current stroke.
func (m *Marker) forward(d *drawing, ev pen.Event, now time.Time, v *EngineView, flags *widget.Flags) pen.EventResult[pen.Progress] {
	br := d.builder.HandleEvent(ev, now, pen.Constraints{})
	res := pen.EventResult[pen.Progress]{
		Handled:   br.Handled,
		Propagate: br.Propagate,
		Progress:  pen.InProgress,
	}

	switch p := br.Progress.(type) {
	case pen.EmitContinue:
		m.appendSegments(d, p.Segments, v, flags)

	case pen.BuilderFinished:
		m.appendSegments(d, p.Segments, v, flags)
		m.finish(d, now, v, flags, false)
		res.Progress = pen.Finished
	}
	return res
}

func (m *Marker) appendSegments(d *drawing, segs []penpath.Segment, v *EngineView, flags *widget.Flags) {
	if len(segs) == 0 {
		return
	}
	s, ok := v.Store.GetStrokeMut(d.key)
	if !ok {
		return
	}
	ms, ok := s.(*stroke.MarkerStroke)
	if !ok {
		return
	}
	ms.Extend(segs...)
	flags.StoreModified = true

	if v.Tasks != nil {
		v.Store.AppendRenderingLastSegments(v.Tasks, d.key, len(segs), v.Camera.Viewport(), v.Camera.ImageScale())
	}
}

// cancel ends the stroke without consulting the builder. A stroke which
// has no segments yet gets a zero-length one, so that it is drawn as a dot.
func (m *Marker) cancel(d *drawing, now time.Time, v *EngineView, flags *widget.Flags) {
	if s, ok := v.Store.GetStrokeMut(d.key); ok {
		if ms, ok := s.(*stroke.MarkerStroke); ok && ms.Path.Len() == 0 {
			ms.Extend(penpath.Line{To: ms.Path.Start})
		}
	}
	m.finish(d, now, v, flags, true)
}

// finish recomputes the geometry, renders the whole stroke, grows the
// document and records a history checkpoint.
func (m *Marker) finish(d *drawing, now time.Time, v *EngineView, flags *widget.Flags, inline bool) {
	v.Store.UpdateGeometryForStroke(d.key)

	viewport, scale := v.Camera.Viewport(), v.Camera.ImageScale()
	if inline || v.Tasks == nil {
		v.Store.RegenerateRenderingForStroke(d.key, viewport, scale)
		flags.Redraw = true
	} else {
		v.Store.RegenerateRenderingForStrokeThreaded(v.Tasks, d.key, viewport, scale)
	}

	flags.Merge(v.Document.ResizeAutoexpand(v.Store, v.Camera))
	m.state = idle{}
	flags.Merge(v.Store.Record(now))
	flags.StoreModified = true

	logger.Get().Debug("marker: stroke finished", "key", d.key, "cancelled", inline)
}

func (v *EngineView) config() Config {
	if v.Config == nil {
		return DefaultConfig()
	}
	return v.Config.Clamped()
}
