// Package engine provides the core business logic for fontgarden operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates loading UFO sources, merging them
// into a project, planning selective imports, saving projects and exporting
// them back to sources.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - LoadSources/Merge: Source merge engine (UFO sources into a project)
//   - PlanImport/Import: Selective import scoped to target sets
//   - Export: Writes one UFO source per style
//   - Status: Summarizes a fontgarden without decoding layer payloads
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danieljhkim/fontgarden/internal/categorize"
	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/garden"
	"github.com/danieljhkim/fontgarden/internal/planner"
)

// Engine orchestrates all fontgarden operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs          fsops.FS
	store       *garden.Store
	categorizer categorize.Categorizer
	logger      *slog.Logger
	workers     int
}

// New creates a new Engine with the given dependencies. workers bounds
// parallel file and source I/O (<= 0 means unbounded).
func New(
	fs fsops.FS,
	categorizer categorize.Categorizer,
	logger *slog.Logger,
	workers int,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if categorizer == nil {
		categorizer = categorize.Default()
	}
	return &Engine{
		fs:          fs,
		store:       garden.NewStore(fs, workers, logger),
		categorizer: categorizer,
		logger:      logger,
		workers:     workers,
	}
}

// executeOperation applies a single planned operation to a merged project.
func (e *Engine) executeOperation(p *garden.Project, op planner.Operation) error {
	switch op.Type {
	case planner.OpAdd:
		return e.executeAdd(p, op)
	case planner.OpModify:
		return nil
	case planner.OpRemoveLayers:
		return e.executeRemoveLayers(p, op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// executeAdd assigns the planned set to an added glyph.
func (e *Engine) executeAdd(p *garden.Project, op planner.Operation) error {
	if op.Set == "" {
		return nil
	}
	g, ok := p.Glyph(op.Glyph)
	if !ok {
		return fmt.Errorf("%w: added glyph %q missing after merge", ErrNotFound, op.Glyph)
	}
	if op.Set == garden.CommonSetName {
		g.Set = ""
	} else {
		g.Set = op.Set
	}
	return nil
}

// executeRemoveLayers drops the planned layers of a removed glyph.
func (e *Engine) executeRemoveLayers(p *garden.Project, op planner.Operation) error {
	g, ok := p.Glyph(op.Glyph)
	if !ok {
		return nil
	}
	for _, layer := range op.Layers {
		delete(g.Layers, layer)
	}
	e.logger.Debug("removed layers", "glyph", op.Glyph, "layers", op.Layers)
	return nil
}

// loadOrCreateProject loads the fontgarden at path, or returns an empty
// project when nothing exists there yet.
func (e *Engine) loadOrCreateProject(ctx context.Context, path string) (*garden.Project, bool, error) {
	exists, err := e.fs.Exists(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check fontgarden %s: %w", path, err)
	}
	if !exists {
		return garden.New(), false, nil
	}

	p, err := e.store.Load(ctx, path)
	if err != nil {
		return nil, true, fmt.Errorf("failed to load fontgarden: %w", err)
	}
	return p, true, nil
}
