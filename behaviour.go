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

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker/internal/logger"
	"seehuhn.de/go/marker/pen"
	"seehuhn.de/go/marker/widget"
)

// PenStyle identifies a kind of pen.
type PenStyle int

const (
	BrushStyle PenStyle = iota
	ShaperStyle
	TyperStyle
	EraserStyle
	SelectorStyle
	ToolsStyle
	MarkerStyle
)

// ClipboardContent is one clipboard entry together with its MIME type.
type ClipboardContent struct {
	Data     []byte
	MimeType string
}

// ClipboardResult is delivered by the clipboard operations of a pen.
type ClipboardResult struct {
	Content []ClipboardContent
	Flags   widget.Flags
	Err     error
}

// PenBehaviour is the interface implemented by every pen of the engine.
type PenBehaviour interface {
	Init(v *EngineView) widget.Flags
	Deinit() widget.Flags
	Style() PenStyle
	UpdateState(v *EngineView) widget.Flags
	HandleEvent(ev pen.Event, now time.Time, v *EngineView) (pen.EventResult[pen.Progress], widget.Flags)
	HandleAnimationFrame(v *EngineView)

	// BoundsOnDoc returns the area in which the pen draws decorations on
	// the document. The second return value is false if there are none.
	BoundsOnDoc(v *EngineView) (rect.Rect, bool)

	FetchClipboardContent(v *EngineView) <-chan ClipboardResult
	CutClipboardContent(v *EngineView) <-chan ClipboardResult
}

var _ PenBehaviour = (*Marker)(nil)

// Init implements the PenBehaviour interface.
func (m *Marker) Init(*EngineView) widget.Flags {
	return widget.Flags{}
}

// Deinit implements the PenBehaviour interface.
func (m *Marker) Deinit() widget.Flags {
	return widget.Flags{}
}

// Style implements the PenBehaviour interface.
func (m *Marker) Style() PenStyle {
	return MarkerStyle
}

// UpdateState implements the PenBehaviour interface.
func (m *Marker) UpdateState(*EngineView) widget.Flags {
	return widget.Flags{}
}

// HandleAnimationFrame implements the PenBehaviour interface.
func (m *Marker) HandleAnimationFrame(*EngineView) {}

// BoundsOnDoc implements the PenBehaviour interface. The marker draws no
// decorations.
func (m *Marker) BoundsOnDoc(*EngineView) (rect.Rect, bool) {
	return rect.Rect{}, false
}

// FetchClipboardContent implements the PenBehaviour interface. The marker
// has nothing to copy, so the result is always empty.
func (m *Marker) FetchClipboardContent(*EngineView) <-chan ClipboardResult {
	return emptyClipboard()
}

// CutClipboardContent implements the PenBehaviour interface. The marker
// has nothing to cut, so the result is always empty.
func (m *Marker) CutClipboardContent(*EngineView) <-chan ClipboardResult {
	return emptyClipboard()
}

// emptyClipboard returns a one-shot channel holding an empty result.
func emptyClipboard() <-chan ClipboardResult {
	ch := make(chan ClipboardResult, 1)
	select {
	case ch <- ClipboardResult{}:
	default:
		logger.Get().Error("marker: sending clipboard content failed")
	}
	close(ch)
	return ch
}
