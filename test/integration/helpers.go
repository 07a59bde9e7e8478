// Package integration exercises the engine end to end against the real
// filesystem, with optional fault injection.
package integration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/fontgarden/internal/categorize"
	"github.com/danieljhkim/fontgarden/internal/engine"
	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

// errInjected is returned by faultFS for failing operations.
var errInjected = errors.New("injected failure")

// faultFS is the real filesystem with switchable failures.
type faultFS struct {
	*fsops.RealFS

	// failWrite fails WriteFile for matching paths when set.
	failWrite func(path string) bool

	// failReplace fails every ReplaceDir when set.
	failReplace bool
}

func newFaultFS() *faultFS {
	return &faultFS{RealFS: fsops.NewRealFS()}
}

func (f *faultFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	if f.failWrite != nil && f.failWrite(path) {
		return fmt.Errorf("write %s: %w", path, errInjected)
	}
	return f.RealFS.WriteFile(path, data, perm)
}

func (f *faultFS) ReplaceDir(staged, target string) error {
	if f.failReplace {
		return fmt.Errorf("replace %s: %w", target, errInjected)
	}
	return f.RealFS.ReplaceDir(staged, target)
}

// setupTestEngine creates an engine on top of a fault-injecting filesystem.
func setupTestEngine(t *testing.T) (*engine.Engine, *faultFS) {
	t.Helper()
	fsys := newFaultFS()
	return engine.New(fsys, categorize.Default(), nil, 4), fsys
}

// sourceGlyph describes one glyph of a test source.
type sourceGlyph struct {
	name       string
	codepoint  rune
	width      float64
	components []string
	background bool
}

// writeSource saves a UFO source for style below dir.
func writeSource(t *testing.T, dir, style string, glyphs ...sourceGlyph) string {
	t.Helper()

	f := ufo.New()
	f.SetStyleName(style)
	for _, sg := range glyphs {
		g := ufo.NewGlyph(sg.name)
		if sg.codepoint != 0 {
			g.Codepoints = []rune{sg.codepoint}
		}
		g.Width = sg.width
		if len(sg.components) == 0 {
			g.Contours = []ufo.Contour{{Points: []ufo.Point{
				{X: 0, Y: 0, Type: ufo.Move},
				{X: sg.width, Y: 0, Type: ufo.Line},
				{X: sg.width / 2, Y: 700, Type: ufo.Line, Smooth: true},
			}}}
		}
		for _, base := range sg.components {
			g.Components = append(g.Components, ufo.Component{Base: base, Transform: ufo.Identity})
		}
		f.DefaultLayer().Insert(g)

		if sg.background {
			bg, err := f.GetOrCreateLayer("public.background")
			if err != nil {
				t.Fatalf("failed to create background layer: %v", err)
			}
			b := ufo.NewGlyph(sg.name)
			b.Anchors = []ufo.Anchor{{Name: "top", X: sg.width / 2, Y: 700}}
			bg.Insert(b)
		}
	}

	path := filepath.Join(dir, "Family-"+style+".ufo")
	if err := f.Save(path); err != nil {
		t.Fatalf("failed to save source %s: %v", path, err)
	}
	return path
}

// snapshot reads every file below root, keyed by slash-separated relative
// path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to snapshot %s: %v", root, err)
	}
	return files
}

// assertSameTree fails when two snapshots differ.
func assertSameTree(t *testing.T, want, got map[string]string) {
	t.Helper()

	for path, data := range want {
		other, ok := got[path]
		if !ok {
			t.Errorf("missing file %s", path)
			continue
		}
		if other != data {
			t.Errorf("file %s differs:\nwant:\n%s\ngot:\n%s", path, data, other)
		}
	}
	for path := range got {
		if _, ok := want[path]; !ok {
			t.Errorf("unexpected file %s", path)
		}
	}
}

// assertNoStaging fails when a staging directory was left next to target.
func assertNoStaging(t *testing.T, target string) {
	t.Helper()

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("failed to read %s: %v", filepath.Dir(target), err)
	}
	prefix := "." + filepath.Base(target) + ".tmp-"
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			t.Errorf("staging directory %s left behind", e.Name())
		}
	}
}
