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
	"time"

	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/pen"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/widget"
)

// Epoch is the time of the first step of every replay.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Result holds the engine state after a replay.
type Result struct {
	Document *doc.Document
	Store    *store.Store
	Camera   *doc.Camera

	// Results has one entry per step.
	Results []pen.EventResult[pen.Progress]

	// Flags accumulates the flags of all steps, including the ones
	// returned while applying background renders.
	Flags widget.Flags
}

// Replay feeds the steps of sc to a new marker. If workers is positive,
// renders run on a queue with that many workers, and the queue is drained
// before Replay returns. Otherwise all rendering happens inline.
func (sc *Scenario) Replay(workers int) (*Result, error) {
	var q *store.Queue
	if workers > 0 {
		q = store.NewQueue(workers, 16)
	}
	return sc.ReplayOn(q)
}

// ReplayOn is like Replay, but uses q for background renders. The queue
// is closed before ReplayOn returns. If q is nil, all rendering happens
// inline.
func (sc *Scenario) ReplayOn(q *store.Queue) (*Result, error) {
	d := doc.New(doc.Format{Width: sc.Width, Height: sc.Height}, sc.Layout)
	cam := doc.NewCamera(sc.Width, sc.Height)
	if sc.Zoom > 0 {
		cam.Zoom = sc.Zoom
		cam.Size.X *= sc.Zoom
		cam.Size.Y *= sc.Zoom
	}
	if sc.ScaleFactor > 0 {
		cam.ScaleFactor = sc.ScaleFactor
	}

	res := &Result{
		Document: d,
		Store:    store.New(),
		Camera:   cam,
	}
	v := &marker.EngineView{
		Document: d,
		Store:    res.Store,
		Camera:   cam,
		Config:   sc.Config,
		Tasks:    q,
	}

	m := marker.New()
	for _, step := range sc.Steps {
		r, flags := m.HandleEvent(step.Event(), step.Time(Epoch), v)
		res.Results = append(res.Results, r)
		res.Flags.Merge(flags)
		if q != nil {
			res.Flags.Merge(res.Store.ProcessPending(q))
		}
	}

	if q != nil {
		flags, err := res.Store.Drain(q)
		res.Flags.Merge(flags)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
