package engine

import (
	"path/filepath"
	"testing"

	"github.com/danieljhkim/fontgarden/internal/categorize"
	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

func newTestEngine() *Engine {
	return New(fsops.NewRealFS(), categorize.Default(), nil, 4)
}

// glyphSpec describes a source glyph for tests.
type glyphSpec struct {
	name       string
	codepoints []rune
	width      float64
	components []string
}

func (s glyphSpec) build() *ufo.Glyph {
	g := ufo.NewGlyph(s.name)
	g.Codepoints = s.codepoints
	g.Width = s.width
	if len(s.components) == 0 {
		g.Contours = []ufo.Contour{{Points: []ufo.Point{
			{X: 0, Y: 0, Type: ufo.Move},
			{X: s.width, Y: 0, Type: ufo.Line},
			{X: s.width, Y: 700, Type: ufo.Line},
		}}}
	}
	for _, base := range s.components {
		g.Components = append(g.Components, ufo.Component{Base: base, Transform: ufo.Identity})
	}
	return g
}

// newFont builds a source with the given style (empty leaves it unset) and
// default layer glyphs.
func newFont(style string, glyphs ...glyphSpec) *ufo.Font {
	f := ufo.New()
	if style != "" {
		f.SetStyleName(style)
	}
	for _, g := range glyphs {
		f.DefaultLayer().Insert(g.build())
	}
	return f
}

// writeFont saves f below dir and returns its path.
func writeFont(t *testing.T, dir, name string, f *ufo.Font) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := f.Save(path); err != nil {
		t.Fatalf("failed to save source %s: %v", path, err)
	}
	return path
}
