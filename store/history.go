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
	"slices"
	"time"

	"seehuhn.de/go/marker/widget"
)

// Record appends a checkpoint of the current contents to the history.
// The oldest checkpoints are dropped once the history is full.
func (st *Store) Record(now time.Time) widget.Flags {
	keys := st.Keys()
	cp := Checkpoint{
		Time:    now,
		Strokes: make([]CheckpointStroke, len(keys)),
	}
	for i, key := range keys {
		e := st.entries[key]
		cp.Strokes[i] = CheckpointStroke{
			Key:    key,
			Layer:  e.layer,
			Stroke: e.stroke.Clone(),
		}
	}
	st.history = append(st.history, cp)
	st.trimHistory()

	return widget.Flags{HistoryRecorded: true}
}

// HistoryLen returns the number of checkpoints.
func (st *Store) HistoryLen() int {
	return len(st.history)
}

// Checkpoints returns the history, oldest first.
func (st *Store) Checkpoints() []Checkpoint {
	return slices.Clone(st.history)
}

func (st *Store) trimHistory() {
	if excess := len(st.history) - st.maxHistory; excess > 0 {
		clear(st.history[:excess])
		st.history = st.history[excess:]
	}
}
