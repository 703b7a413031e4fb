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

// Package marker implements a freehand highlighter tool.
//
// The Marker type turns a stream of pointer events into translucent
// strokes of uniform width. While the pen moves, only the newly added
// segments are rendered, on a background queue. When the stroke ends, the
// whole stroke is rendered again as a single image, so that places where
// it overlaps itself are painted only once.
//
// The remaining packages of this module provide the parts the tool is
// built from: path data ([seehuhn.de/go/marker/penpath]), path builders
// ([seehuhn.de/go/marker/pen]), the rasteriser
// ([seehuhn.de/go/marker/render]), stroke geometry
// ([seehuhn.de/go/marker/stroke]) and the stroke store
// ([seehuhn.de/go/marker/store]).
package marker

//go:generate go run ./testcases/export

import (
	"log/slog"

	"seehuhn.de/go/marker/internal/logger"
)

// SetLogger installs the logger used by all packages of this module.
// Passing nil disables logging, which is also the default.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}
