package planner

import "github.com/danieljhkim/fontgarden/internal/garden"

// glyph builds a stored glyph in set with one layer per style, the first
// layer referencing bases as components.
func glyph(set string, styles []string, bases ...string) *garden.Glyph {
	g := &garden.Glyph{Set: set}
	for i, style := range styles {
		var layer garden.Layer
		layer.XAdvance = garden.Float(500)
		if i == 0 {
			for _, base := range bases {
				layer.Components = append(layer.Components, garden.Component{Base: base, Transform: garden.Identity})
			}
		}
		g.SetLayer(style, layer)
	}
	return g
}

func names(ns ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ns))
	for _, n := range ns {
		m[n] = struct{}{}
	}
	return m
}
