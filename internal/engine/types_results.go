package engine

import (
	"github.com/danieljhkim/fontgarden/internal/planner"
)

// ImportResult represents the result of an import.
type ImportResult struct {
	// Plan is the generated plan
	Plan *planner.ImportPlan

	// DefaultStyle is the style whose primary layer supplied codepoints
	DefaultStyle string

	// Applied is the list of operations that were executed (empty if DryRun)
	Applied []planner.Operation

	// Glyphs is the number of glyphs in the saved project
	Glyphs int

	// Created indicates the target did not exist before
	Created bool
}

// DiffResult represents the result of previewing an import.
type DiffResult struct {
	// Plan is the generated plan
	Plan *planner.ImportPlan

	// TargetExists indicates whether the fontgarden already exists
	TargetExists bool
}

// ExportResult represents the result of an export.
type ExportResult struct {
	// Sources lists the written UFO sources, sorted by style
	Sources []ExportedSource
}

// ExportedSource describes one written UFO source.
type ExportedSource struct {
	// Style is the style name stamped into the source
	Style string

	// Path is the UFO directory
	Path string

	// Glyphs is the number of glyphs in the default layer
	Glyphs int

	// Layers is the number of layers including the default layer
	Layers int
}

// StatusResult represents the current fontgarden status.
type StatusResult struct {
	// Path is the fontgarden directory
	Path string

	// Glyphs is the total number of glyphs
	Glyphs int

	// LayerFiles is the total number of stored layer payloads
	LayerFiles int

	// Sets contains per-set counts, sorted by name
	Sets []SetInfo

	// Styles is the sorted list of styles with at least one layer
	Styles []string
}

// SetInfo describes one set of a fontgarden.
type SetInfo struct {
	// Name is the set name ("Common" for unclassified glyphs)
	Name string

	// Glyphs is the number of glyphs in the set
	Glyphs int

	// Empty is the number of glyphs in the set without any layer
	Empty int
}
