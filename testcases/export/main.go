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

// Command export replays all scenarios and writes the pointer events
// together with the resulting strokes to testdata/testcases.json.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/stroke"
	"seehuhn.de/go/marker/testcases"
)

func main() {
	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			js, err := toJSON(category, &sc)
			if err != nil {
				panic(fmt.Errorf("%s_%s: %w", category, sc.Name, err))
			}
			out.Scenarios = append(out.Scenarios, js)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScenario struct {
	Name     string            `json:"name"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Layout   doc.Layout        `json:"layout"`
	Zoom     float64           `json:"zoom,omitempty"`
	Config   marker.Config     `json:"config"`
	Steps    []testcases.Step  `json:"steps"`
	Strokes  []json.RawMessage `json:"strokes"`
	Document [4]float64        `json:"document"`
}

func toJSON(category string, sc *testcases.Scenario) (jsonScenario, error) {
	res, err := sc.Replay(0)
	if err != nil {
		return jsonScenario{}, err
	}

	cfg := marker.DefaultConfig()
	if sc.Config != nil {
		cfg = sc.Config.Clamped()
	}
	b := res.Document.Bounds()
	js := jsonScenario{
		Name:     category + "_" + sc.Name,
		Width:    sc.Width,
		Height:   sc.Height,
		Layout:   sc.Layout,
		Zoom:     sc.Zoom,
		Config:   cfg,
		Steps:    sc.Steps,
		Document: [4]float64{b.LLx, b.LLy, b.URx, b.URy},
	}
	for _, key := range res.Store.Keys() {
		s, _ := res.Store.GetStroke(key)
		data, err := stroke.Encode(s)
		if err != nil {
			return jsonScenario{}, err
		}
		js.Strokes = append(js.Strokes, data)
	}
	return js, nil
}
