package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/fontgarden/internal/garden"
	"github.com/danieljhkim/fontgarden/internal/planner"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

// PlanImport previews an import: it loads the sources and the fontgarden and
// classifies glyphs into added, modified and removed without writing
// anything. A missing fontgarden compares as empty.
func (e *Engine) PlanImport(ctx context.Context, req *DiffRequest) (*DiffResult, error) {
	sources, err := e.LoadSources(ctx, req.Sources)
	if err != nil {
		return nil, err
	}

	p, exists, err := e.loadOrCreateProject(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	return &DiffResult{
		Plan:         e.buildPlan(p, sources, req.TargetSets),
		TargetExists: exists,
	}, nil
}

// Algorithm steps:
// 1. Load sources (parallel) and reject duplicate styles
// 2. Load the fontgarden, or start empty if it does not exist
// 3. Plan: compute the reference set and added/modified/removed glyphs
// 4. Merge every source into the project
// 5. Execute the plan: assign sets to added glyphs, drop removed layers
// 6. Save the project (if not DryRun)
// 7. Return result
func (e *Engine) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	sources, err := e.LoadSources(ctx, req.Sources)
	if err != nil {
		return nil, err
	}

	p, exists, err := e.loadOrCreateProject(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	plan := e.buildPlan(p, sources, req.TargetSets)
	for _, c := range plan.Conflicts {
		e.logger.Warn("importing glyph outside target sets", "glyph", c.Glyph, "set", c.Existing)
	}

	if req.DryRun {
		defaultStyle, err := DefaultStyle(sources)
		if err != nil {
			return nil, err
		}
		return &ImportResult{
			Plan:         plan,
			DefaultStyle: defaultStyle,
			Applied:      []planner.Operation{},
			Glyphs:       len(p.Glyphs) + len(plan.Scope.Added),
			Created:      !exists,
		}, nil
	}

	defaultStyle, err := e.Merge(p, sources)
	if err != nil {
		return nil, err
	}

	appliedOps := []planner.Operation{}
	for _, op := range plan.Operations {
		if err := e.executeOperation(p, op); err != nil {
			return nil, fmt.Errorf("failed to execute operation: %w", err)
		}
		appliedOps = append(appliedOps, op)
	}

	if err := e.store.Save(ctx, req.Target, p); err != nil {
		return nil, fmt.Errorf("failed to save fontgarden: %w", err)
	}

	return &ImportResult{
		Plan:         plan,
		DefaultStyle: defaultStyle,
		Applied:      appliedOps,
		Glyphs:       len(p.Glyphs),
		Created:      !exists,
	}, nil
}

func (e *Engine) buildPlan(p *garden.Project, sources map[string]*ufo.Font, targetSets []string) *planner.ImportPlan {
	plan := planner.BuildImportPlan(p, importedGlyphs(sources), sortedStyles(sources), targetSets)
	e.logger.Info("computed import scope",
		"target_sets", targetSets,
		"added", len(plan.Scope.Added),
		"modified", len(plan.Scope.Modified),
		"removed", len(plan.Scope.Removed),
	)
	return plan
}
