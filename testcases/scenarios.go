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
	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/stroke"
)

func withConfig(modify func(*marker.Config)) *marker.Config {
	cfg := marker.DefaultConfig()
	modify(&cfg)
	return &cfg
}

var basicScenarios = []Scenario{
	{
		Name:    "dot",
		Width:   128,
		Height:  128,
		Steps:   drag(64, 64, 64, 64),
		Strokes: 1,
	},
	{
		Name:    "line_horizontal",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 64, 40, 64, 80, 64, 112, 64),
		Strokes: 1,
	},
	{
		Name:    "line_diagonal",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 16, 50, 50, 112, 112),
		Strokes: 1,
	},
	{
		Name:    "corner",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 100, 64, 20, 112, 100),
		Strokes: 1,
	},
	{
		Name:    "repeated_positions",
		Width:   128,
		Height:  128,
		Steps:   drag(20, 20, 20, 20, 60, 20, 60, 20, 60, 20, 100, 60),
		Strokes: 1,
	},
	{
		Name:   "two_strokes",
		Width:  128,
		Height: 128,
		Steps: then(
			drag(16, 32, 112, 32),
			drag(16, 96, 112, 96),
		),
		Strokes: 2,
	},
	{
		Name:   "second_down",
		Width:  128,
		Height: 128,
		Steps: []Step{
			{Type: Down, X: 20, Y: 64, T: 0},
			{Type: Down, X: 40, Y: 64, T: 8},
			{Type: Move, X: 70, Y: 64, T: 16},
			{Type: Down, X: 90, Y: 64, T: 24},
			{Type: Up, X: 108, Y: 64, T: 32},
		},
		Strokes: 1,
	},
}

var cancelScenarios = []Scenario{
	{
		Name:    "cancel_immediate",
		Width:   128,
		Height:  128,
		Steps:   []Step{{Type: Down, X: 64, Y: 64}, {Type: Cancel, T: 8}},
		Strokes: 1,
	},
	{
		Name:    "cancel_midway",
		Width:   128,
		Height:  128,
		Steps:   cancelAfter(drag(16, 16, 40, 30, 70, 50, 100, 90, 0, 0)),
		Strokes: 1,
	},
	{
		Name:   "cancel_then_draw",
		Width:  128,
		Height: 128,
		Steps: then(
			cancelAfter(drag(16, 16, 60, 16, 0, 0)),
			drag(16, 80, 100, 80),
		),
		Strokes: 2,
	},
	{
		Name:    "cancel_while_idle",
		Width:   128,
		Height:  128,
		Steps:   []Step{{Type: Cancel}, {Type: Move, X: 10, Y: 10, T: 8}, {Type: Up, X: 10, Y: 10, T: 16}},
		Strokes: 0,
	},
}

var overlapScenarios = []Scenario{
	{
		Name:    "backtrack",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 64, 112, 64, 30, 64, 100, 64),
		Strokes: 1,
	},
	{
		Name:    "zigzag",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 16, 112, 40, 16, 64, 112, 88, 16, 112),
		Strokes: 1,
	},
	{
		Name:    "cross",
		Width:   128,
		Height:  128,
		Steps:   drag(16, 16, 112, 112, 112, 16, 16, 112),
		Strokes: 1,
	},
	{
		Name:    "loop",
		Width:   128,
		Height:  128,
		Steps:   circle(64, 64, 40, 48),
		Strokes: 1,
	},
	{
		Name:    "figure_eight",
		Width:   160,
		Height:  128,
		Steps:   figureEight(80, 64, 60, 64),
		Strokes: 1,
	},
}

var shapeScenarios = []Scenario{
	{
		Name:    "rectangular_line",
		Width:   128,
		Height:  128,
		Config:  withConfig(func(c *marker.Config) { c.Shape = stroke.Rectangular }),
		Steps:   drag(16, 64, 112, 64),
		Strokes: 1,
	},
	{
		Name:    "rectangular_corner",
		Width:   128,
		Height:  128,
		Config:  withConfig(func(c *marker.Config) { c.Shape = stroke.Rectangular; c.Width = 20 }),
		Steps:   drag(16, 100, 64, 20, 112, 100),
		Strokes: 1,
	},
	{
		Name:    "rectangular_dot",
		Width:   128,
		Height:  128,
		Config:  withConfig(func(c *marker.Config) { c.Shape = stroke.Rectangular }),
		Steps:   drag(64, 64, 64, 64),
		Strokes: 1,
	},
	{
		Name:    "thin",
		Width:   128,
		Height:  128,
		Config:  withConfig(func(c *marker.Config) { c.Width = marker.WidthMin }),
		Steps:   drag(16, 20, 112, 21, 16, 22),
		Strokes: 1,
	},
	{
		Name:    "wide",
		Width:   256,
		Height:  256,
		Config:  withConfig(func(c *marker.Config) { c.Width = 80; c.Strength = 1 }),
		Steps:   drag(60, 128, 196, 128),
		Strokes: 1,
	},
	{
		Name:    "transparent",
		Width:   128,
		Height:  128,
		Config:  withConfig(func(c *marker.Config) { c.Strength = 0 }),
		Steps:   drag(16, 64, 112, 64),
		Strokes: 1,
	},
}

var boundsScenarios = []Scenario{
	{
		Name:    "outside_ignored",
		Width:   500,
		Height:  500,
		Steps:   drag(-100, -100, 10, 10, 50, 50),
		Strokes: 0,
	},
	{
		Name:    "past_edge",
		Width:   500,
		Height:  500,
		Layout:  doc.Infinite,
		Steps:   drag(10, 10, 1000, 1000),
		Strokes: 1,
	},
	{
		Name:    "margin_corner",
		Width:   500,
		Height:  500,
		Steps:   drag(-29, -29, 20, 20),
		Strokes: 1,
	},
	{
		Name:    "continuous_grow",
		Width:   200,
		Height:  200,
		Layout:  doc.ContinuousVertical,
		Steps:   drag(100, 180, 100, 260, 120, 450),
		Strokes: 1,
	},
	{
		Name:    "fixed_no_grow",
		Width:   200,
		Height:  200,
		Steps:   drag(100, 180, 100, 400),
		Strokes: 1,
	},
}

var largeScenarios = []Scenario{
	{
		Name:    "long_scribble",
		Width:   512,
		Height:  512,
		Steps:   scribble(1, 2000, 20, 20, 492, 492),
		Strokes: 1,
	},
	{
		Name:    "many_strokes",
		Width:   512,
		Height:  512,
		Steps:   then(scribble(2, 50, 20, 20, 250, 250), scribble(3, 50, 260, 20, 492, 250), scribble(4, 50, 20, 260, 492, 492)),
		Strokes: 3,
	},
	{
		Name:    "max_width",
		Width:   1024,
		Height:  1024,
		Config:  withConfig(func(c *marker.Config) { c.Width = marker.WidthMax }),
		Steps:   drag(300, 512, 724, 512),
		Strokes: 1,
	},
}

var zoomScenarios = []Scenario{
	{
		Name:    "zoom_2x",
		Width:   128,
		Height:  128,
		Zoom:    2,
		Steps:   drag(16, 16, 64, 100, 112, 30),
		Strokes: 1,
	},
	{
		Name:    "zoom_half",
		Width:   256,
		Height:  256,
		Zoom:    0.5,
		Steps:   drag(20, 20, 128, 200, 236, 40),
		Strokes: 1,
	},
	{
		Name:    "zoom_fractional",
		Width:   128,
		Height:  128,
		Zoom:    1.37,
		Steps:   circle(64, 64, 30, 24),
		Strokes: 1,
	},
	{
		Name:    "subpixel_moves",
		Width:   64,
		Height:  64,
		Zoom:    4,
		Config:  withConfig(func(c *marker.Config) { c.Width = 3 }),
		Steps:   drag(10, 10, 10.1, 10.05, 10.2, 10.1, 10.35, 10.1, 30.5, 30.25),
		Strokes: 1,
	},
	{
		Name:        "hidpi",
		Width:       128,
		Height:      128,
		ScaleFactor: 2,
		Steps:       drag(16, 64, 64, 40, 112, 64),
		Strokes:     1,
	},
}
