// Package scene assembles the solid, its labels, the visibility engine and the view state
// from one schema.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gotetra/pkg/labels"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/solid"
	"github.com/philipparndt/gotetra/pkg/viewer"
	"github.com/philipparndt/gotetra/pkg/visibility"
)

// Scene is everything built once per schema
type Scene struct {
	Schema   *schema.Schema
	Solid    *solid.Solid
	Layout   *labels.Layout
	Engine   *visibility.Engine
	State    *viewer.ViewState
	Warnings []solid.Warning
	logger   *slog.Logger
}

// Build constructs a scene. Construction errors are fatal; ambiguous vertex labels are
// reported in Warnings.
func Build(sc *schema.Schema, logger *slog.Logger) (*Scene, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, warnings, err := solid.Build(sc, solid.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build solid: %w", err)
	}

	layout := labels.Build(s, sc)
	return &Scene{
		Schema:   sc,
		Solid:    s,
		Layout:   layout,
		Engine:   visibility.NewEngine(s, layout, sc.Policy()),
		State:    viewer.NewViewState(sc),
		Warnings: warnings,
		logger:   logger,
	}, nil
}

// Load reads the schema at path, or uses the built-in schema when path is empty, and builds it
func Load(path string, logger *slog.Logger) (*Scene, error) {
	sc, err := LoadSchema(path)
	if err != nil {
		return nil, err
	}
	return Build(sc, logger)
}

// LoadSchema reads the schema at path, or returns the built-in schema when path is empty
func LoadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return schema.Default(), nil
	}
	sc, err := schema.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sc, nil
}

// Picker creates a picker over this scene that reports picks to loader
func (s *Scene) Picker(loader viewer.ContentLoader) *viewer.Picker {
	return viewer.NewPicker(s.Solid, s.Layout, s.State, loader, s.logger)
}

// Frame runs one visibility pass for the current state
func (s *Scene) Frame() visibility.Result {
	return s.Engine.Update(s.State.Frame())
}

// Title returns the schema title for status lines
func (s *Scene) Title() string {
	if s.Schema.Title != "" {
		return s.Schema.Title
	}
	return "loaded"
}
