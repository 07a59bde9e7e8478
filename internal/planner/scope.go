package planner

import (
	"slices"

	"github.com/danieljhkim/fontgarden/internal/garden"
)

// Scope is the result of comparing an import against a project.
type Scope struct {
	// TargetSets restricts the comparison; empty means every set.
	TargetSets []string

	// Reference holds the stored glyphs the import is compared against.
	Reference []string

	// Added are imported glyphs not stored anywhere in the project.
	Added []string

	// Modified are reference glyphs that are also imported.
	Modified []string

	// Removed are reference glyphs missing from the import.
	Removed []string
}

// ComputeScope compares the imported glyph names with p. When targetSets is
// empty every stored glyph is in the reference set. Otherwise the reference
// set holds the glyphs whose set is one of targetSets, plus every stored glyph
// they reach through component references. All name lists are sorted.
func ComputeScope(p *garden.Project, imported map[string]struct{}, targetSets []string) *Scope {
	reference := ReferenceSet(p, targetSets)

	scope := &Scope{
		TargetSets: slices.Clone(targetSets),
		Reference:  sortedKeys(reference),
	}

	for name := range imported {
		if _, ok := p.Glyphs[name]; !ok {
			scope.Added = append(scope.Added, name)
		}
	}
	for _, name := range scope.Reference {
		if _, ok := imported[name]; ok {
			scope.Modified = append(scope.Modified, name)
		} else {
			scope.Removed = append(scope.Removed, name)
		}
	}
	slices.Sort(scope.Added)
	return scope
}

// ReferenceSet returns the stored glyphs in targetSets, closed transitively
// over component bases. Bases that are not stored in p are ignored.
func ReferenceSet(p *garden.Project, targetSets []string) map[string]struct{} {
	reference := make(map[string]struct{})
	if len(targetSets) == 0 {
		for name := range p.Glyphs {
			reference[name] = struct{}{}
		}
		return reference
	}

	var queue []string
	for name, g := range p.Glyphs {
		if slices.Contains(targetSets, g.SetName()) {
			reference[name] = struct{}{}
			queue = append(queue, name)
		}
	}

	for len(queue) > 0 {
		name := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for _, base := range p.Glyphs[name].ComponentBases() {
			if _, seen := reference[base]; seen {
				continue
			}
			if _, stored := p.Glyphs[base]; !stored {
				continue
			}
			reference[base] = struct{}{}
			queue = append(queue, base)
		}
	}
	return reference
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
