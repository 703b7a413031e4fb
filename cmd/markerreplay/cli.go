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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/marker"
	"seehuhn.de/go/marker/config"
	"seehuhn.de/go/marker/doc"
	"seehuhn.de/go/marker/export"
	"seehuhn.de/go/marker/internal/db"
	"seehuhn.de/go/marker/store"
	"seehuhn.de/go/marker/stroke"
	"seehuhn.de/go/marker/testcases"
)

// env holds the state shared by all commands.
type env struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "markerreplay",
		Usage:   "Replay pointer events through the marker tool",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML configuration file"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug|info|warn|error (overrides the configuration)"},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			replayCmd(e),
			renderCmd(e),
			listCmd(e),
			scenariosCmd(e),
		},
		Writer:    e.stdout,
		ErrWriter: e.stderr,
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// setup loads the configuration and installs the logger.
func (e *env) setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	if level := c.String("log-level"); level != "" {
		cfg = config.Merge(cfg, &config.Config{Log: config.Log{Level: level}})
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	level, _ := cfg.Log.SlogLevel()
	h := slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level})
	marker.SetLogger(slog.New(h))
	return nil
}

// replaySummary is printed after a replay.
type replaySummary struct {
	Name     string    `json:"name"`
	Document uuid.UUID `json:"document"`
	Bounds   rect.Rect `json:"bounds"`
	Strokes  int       `json:"strokes"`
	History  int       `json:"history"`
	Outputs  []string  `json:"outputs,omitempty"`
}

// replayCmd creates the replay command.
func replayCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Replay a JSON event script, or a built-in scenario",
		ArgsUsage: "SCRIPT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "Replay the named built-in scenario instead of a script"},
			&cli.Float64Flag{Name: "width", Usage: "Document width (default: page format)"},
			&cli.Float64Flag{Name: "height", Usage: "Document height (default: page format)"},
			&cli.StringFlag{Name: "layout", Usage: "Document layout: fixed-size|continuous-vertical|infinite"},
			&cli.Float64Flag{Name: "zoom", Value: 1, Usage: "Camera zoom"},
			&cli.Float64Flag{Name: "marker-width", Usage: "Marker width (overrides the configuration)"},
			&cli.BoolFlag{Name: "inline", Usage: "Render on the main goroutine instead of the queue"},
			&cli.StringFlag{Name: "db", Usage: "Save the document to this SQLite file"},
			&cli.StringFlag{Name: "png", Usage: "Write the document as PNG"},
			&cli.StringFlag{Name: "pdf", Usage: "Write the document as PDF"},
		},
		Action: func(c *cli.Context) error {
			sc, err := e.scenario(c)
			if err != nil {
				return err
			}

			var q *store.Queue
			if !c.Bool("inline") {
				workers := e.cfg.Render.Workers
				if workers == 0 {
					workers = runtime.GOMAXPROCS(0)
				}
				q = store.NewQueue(workers, e.cfg.Render.QueueBuffer)
			}
			res, err := sc.ReplayOn(q)
			if err != nil {
				return err
			}

			summary := replaySummary{
				Name:     sc.Name,
				Document: res.Document.ID,
				Bounds:   res.Document.Bounds(),
				Strokes:  res.Store.Len(),
				History:  res.Store.HistoryLen(),
			}

			if path := c.String("db"); path != "" {
				database, err := db.Open(path)
				if err != nil {
					return err
				}
				err = db.SaveDocument(c.Context, database, res.Document, res.Store)
				if err2 := database.Close(); err == nil {
					err = err2
				}
				if err != nil {
					return err
				}
				summary.Outputs = append(summary.Outputs, path)
			}
			if path := c.String("png"); path != "" {
				err := writeFile(path, func(w io.Writer) error {
					return export.PNG(w, res.Store, res.Document.Bounds(), e.cfg.Render.ScaleFactor)
				})
				if err != nil {
					return err
				}
				summary.Outputs = append(summary.Outputs, path)
			}
			if path := c.String("pdf"); path != "" {
				err := writeFile(path, func(w io.Writer) error {
					return export.PDF(w, res.Document, res.Store)
				})
				if err != nil {
					return err
				}
				summary.Outputs = append(summary.Outputs, path)
			}

			return e.outputJSON(summary)
		},
	}
}

// scenario builds the scenario to replay from the command line.
func (e *env) scenario(c *cli.Context) (*testcases.Scenario, error) {
	overlay := &config.Config{}
	if c.IsSet("marker-width") {
		overlay.Marker.Width = c.Float64("marker-width")
	}
	cfg := config.Merge(e.cfg, overlay)
	if layout := c.String("layout"); layout != "" {
		// FixedSize is the zero value, so Merge cannot select it
		if err := cfg.Document.Layout.UnmarshalText([]byte(layout)); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if name := c.String("scenario"); name != "" {
		sc, ok := findScenario(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		if c.IsSet("marker-width") {
			mc := marker.DefaultConfig()
			if sc.Config != nil {
				mc = *sc.Config
			}
			mc.Width = cfg.Marker.Width
			sc.Config = &mc
		}
		return sc, nil
	}

	if c.NArg() != 1 {
		return nil, errors.New("replay: expected one script file")
	}
	script := c.Args().First()
	data, err := os.ReadFile(script)
	if err != nil {
		return nil, err
	}
	steps, err := testcases.ParseScript(data)
	if err != nil {
		return nil, err
	}

	sc := &testcases.Scenario{
		Name:        strings.TrimSuffix(filepath.Base(script), filepath.Ext(script)),
		Width:       cfg.Document.Format.Width,
		Height:      cfg.Document.Format.Height,
		Layout:      cfg.Document.Layout,
		Zoom:        c.Float64("zoom"),
		ScaleFactor: cfg.Render.ScaleFactor,
		Config:      &cfg.Marker,
		Steps:       steps,
	}
	if c.IsSet("width") {
		sc.Width = c.Float64("width")
	}
	if c.IsSet("height") {
		sc.Height = c.Float64("height")
	}
	if !(sc.Width > 0 && sc.Height > 0) {
		return nil, fmt.Errorf("replay: invalid document size %gx%g", sc.Width, sc.Height)
	}
	return sc, nil
}

// findScenario looks up a built-in scenario by its full name.
func findScenario(name string) (*testcases.Scenario, bool) {
	for category, list := range testcases.All {
		for _, sc := range list {
			if category+"_"+sc.Name == name {
				return &sc, true
			}
		}
	}
	return nil, false
}

// renderCmd creates the render command.
func renderCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a saved document to PNG or PDF",
		ArgsUsage: "DB",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Document ID (default: the most recently saved document)"},
			&cli.StringFlag{Name: "png", Usage: "Write the document as PNG"},
			&cli.StringFlag{Name: "pdf", Usage: "Write the document as PDF"},
			&cli.Float64Flag{Name: "scale", Usage: "Pixels per document unit (default: configured scale factor)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("render: expected one database file")
			}
			if c.String("png") == "" && c.String("pdf") == "" {
				return errors.New("render: nothing to do, use --png or --pdf")
			}

			database, err := db.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer database.Close()

			var id uuid.UUID
			if s := c.String("id"); s != "" {
				id, err = uuid.Parse(s)
				if err != nil {
					return err
				}
			} else {
				ids, err := db.ListDocuments(c.Context, database)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					return db.ErrNotFound
				}
				id = ids[0]
			}

			d, st, err := db.LoadDocument(c.Context, database, id)
			if err != nil {
				return err
			}

			scale := e.cfg.Render.ScaleFactor
			if c.IsSet("scale") {
				scale = c.Float64("scale")
			}
			if path := c.String("png"); path != "" {
				err := writeFile(path, func(w io.Writer) error {
					return export.PNG(w, st, d.Bounds(), scale)
				})
				if err != nil {
					return err
				}
			}
			if path := c.String("pdf"); path != "" {
				err := writeFile(path, func(w io.Writer) error {
					return export.PDF(w, d, st)
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// documentInfo is one entry of the list output.
type documentInfo struct {
	ID      uuid.UUID  `json:"id"`
	Layout  doc.Layout `json:"layout"`
	Bounds  rect.Rect  `json:"bounds"`
	Strokes int        `json:"strokes"`
}

// listCmd creates the list command.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the documents saved in a database",
		ArgsUsage: "DB",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("list: expected one database file")
			}
			database, err := db.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer database.Close()

			ids, err := db.ListDocuments(c.Context, database)
			if err != nil {
				return err
			}
			infos := []documentInfo{}
			for _, id := range ids {
				d, st, err := db.LoadDocument(c.Context, database, id)
				if err != nil {
					return err
				}
				infos = append(infos, documentInfo{
					ID:      d.ID,
					Layout:  d.Layout,
					Bounds:  d.Bounds(),
					Strokes: st.Len(),
				})
			}
			return e.outputJSON(infos)
		},
	}
}

// scenarioInfo is one entry of the scenarios output.
type scenarioInfo struct {
	Name    string       `json:"name"`
	Steps   int          `json:"steps"`
	Strokes int          `json:"strokes"`
	Shape   stroke.Shape `json:"shape"`
}

// scenariosCmd creates the scenarios command.
func scenariosCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "List the built-in scenarios",
		Action: func(c *cli.Context) error {
			infos := []scenarioInfo{}
			for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
				for _, sc := range testcases.All[category] {
					shape := marker.DefaultConfig().Shape
					if sc.Config != nil {
						shape = sc.Config.Shape
					}
					infos = append(infos, scenarioInfo{
						Name:    category + "_" + sc.Name,
						Steps:   len(sc.Steps),
						Strokes: sc.Strokes,
						Shape:   shape,
					})
				}
			}
			return e.outputJSON(infos)
		},
	}
}

// Helper functions

// outputJSON writes v to stdout as JSON.
func (e *env) outputJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFile creates path and fills it using write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}
