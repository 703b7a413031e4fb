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

// Package widget describes the side effects of engine operations which the
// surrounding user interface has to act on.
package widget

// Flags records what changed while handling an event. The zero value means
// "nothing to do".
type Flags struct {
	// Redraw requests a repaint of the canvas.
	Redraw bool

	// ResizeToFitContent asks the UI to recompute scroll ranges, because
	// the document bounds changed.
	ResizeToFitContent bool

	// StoreModified marks the document as changed since the last save.
	StoreModified bool

	// HistoryRecorded is set when a history checkpoint was written.
	HistoryRecorded bool

	// RefreshUI asks for the pen configuration widgets to be refreshed.
	RefreshUI bool
}

// Merge sets every flag which is set in other.
func (f *Flags) Merge(other Flags) {
	f.Redraw = f.Redraw || other.Redraw
	f.ResizeToFitContent = f.ResizeToFitContent || other.ResizeToFitContent
	f.StoreModified = f.StoreModified || other.StoreModified
	f.HistoryRecorded = f.HistoryRecorded || other.HistoryRecorded
	f.RefreshUI = f.RefreshUI || other.RefreshUI
}
