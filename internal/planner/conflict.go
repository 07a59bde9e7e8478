package planner

import (
	"fmt"

	"github.com/danieljhkim/fontgarden/internal/garden"
)

// Conflict represents a conflict detected during planning.
type Conflict struct {
	// Glyph is the glyph where the conflict was detected
	Glyph string

	// Reason is a human-readable explanation of the conflict
	Reason string

	// Existing is the set the glyph is stored in
	Existing string
}

// ConflictChecker finds imported glyphs that a selective import would
// overwrite although they lie outside its target sets.
type ConflictChecker struct {
	project   *garden.Project
	reference map[string]struct{}
	selective bool
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(p *garden.Project, scope *Scope) *ConflictChecker {
	reference := make(map[string]struct{}, len(scope.Reference))
	for _, name := range scope.Reference {
		reference[name] = struct{}{}
	}
	return &ConflictChecker{
		project:   p,
		reference: reference,
		selective: len(scope.TargetSets) > 0,
	}
}

// CheckGlyph checks an imported glyph name.
// Returns a Conflict if the glyph is stored outside the reference set, or nil
// if the import stays within scope.
func (c *ConflictChecker) CheckGlyph(name string) *Conflict {
	if !c.selective {
		return nil
	}

	g, stored := c.project.Glyphs[name]
	if !stored {
		return nil
	}
	if _, ok := c.reference[name]; ok {
		return nil
	}

	return &Conflict{
		Glyph:    name,
		Reason:   fmt.Sprintf("Glyph is stored in set %q outside the target sets; its imported layers overwrite the stored ones", g.SetName()),
		Existing: g.SetName(),
	}
}
