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

// Command markerreplay replays recorded pointer events through the marker
// tool, and converts saved documents to images.
package main

import (
	"fmt"
	"os"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(&env{stdout: os.Stdout, stderr: os.Stderr})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "markerreplay:", err)
		os.Exit(1)
	}
}
