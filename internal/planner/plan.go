package planner

import (
	"slices"

	"github.com/danieljhkim/fontgarden/internal/garden"
)

// ImportPlan represents a plan to import sources into a fontgarden.
type ImportPlan struct {
	// Styles is the sorted list of styles being imported
	Styles []string

	// Scope is the added/modified/removed classification
	Scope *Scope

	// Operations is the ordered list of per-glyph operations to execute
	Operations []Operation

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict
}

// Operation represents a single glyph-level change.
type Operation struct {
	// Type is the operation type: "add", "modify", "remove_layers"
	Type string

	// Glyph is the glyph name
	Glyph string

	// Set is the set an added glyph is assigned to; empty leaves it to
	// categorization
	Set string

	// Layers lists the layers dropped by a remove_layers operation
	Layers []string
}

// Operation type constants
const (
	OpAdd          = "add"
	OpModify       = "modify"
	OpRemoveLayers = "remove_layers"
)

// NewImportPlan creates a new empty ImportPlan.
func NewImportPlan(styles []string) *ImportPlan {
	return &ImportPlan{
		Styles:     styles,
		Operations: []Operation{},
		Conflicts:  []Conflict{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *ImportPlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddOperation adds an operation to the plan.
func (p *ImportPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *ImportPlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// AssignedSet returns the set added glyphs are assigned to: the only target
// set when there is exactly one, empty otherwise.
func AssignedSet(targetSets []string) string {
	if len(targetSets) == 1 {
		return targetSets[0]
	}
	return ""
}

// BuildImportPlan classifies the imported glyphs against p and lists the
// operations an import performs: adds first, then modifications, then layer
// removals, each in glyph name order.
func BuildImportPlan(p *garden.Project, imported map[string]struct{}, styles, targetSets []string) *ImportPlan {
	styles = slices.Clone(styles)
	slices.Sort(styles)

	plan := NewImportPlan(styles)
	plan.Scope = ComputeScope(p, imported, targetSets)

	assigned := AssignedSet(targetSets)
	for _, name := range plan.Scope.Added {
		plan.AddOperation(Operation{Type: OpAdd, Glyph: name, Set: assigned})
	}
	for _, name := range plan.Scope.Modified {
		plan.AddOperation(Operation{Type: OpModify, Glyph: name})
	}
	for _, name := range plan.Scope.Removed {
		layers := RemovedLayers(p.Glyphs[name], styles)
		if len(layers) == 0 {
			continue
		}
		plan.AddOperation(Operation{Type: OpRemoveLayers, Glyph: name, Layers: layers})
	}

	checker := NewConflictChecker(p, plan.Scope)
	for _, name := range sortedKeys(imported) {
		if c := checker.CheckGlyph(name); c != nil {
			plan.AddConflict(*c)
		}
	}
	return plan
}

// RemovedLayers returns the sorted layer names of g that belong to one of
// styles. Layers of other styles are never removed by an import.
func RemovedLayers(g *garden.Glyph, styles []string) []string {
	var layers []string
	for layerName := range g.Layers {
		style, _ := garden.SplitLayerName(layerName)
		if slices.Contains(styles, style) {
			layers = append(layers, layerName)
		}
	}
	slices.Sort(layers)
	return layers
}
