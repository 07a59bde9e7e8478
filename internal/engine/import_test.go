package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/garden"
	"github.com/danieljhkim/fontgarden/internal/planner"
)

func loadProject(t *testing.T, path string) *garden.Project {
	t.Helper()
	p, err := garden.NewStore(fsops.NewRealFS(), 0, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	return p
}

func layerKeys(g *garden.Glyph) []string {
	keys := make([]string, 0, len(g.Layers))
	for k := range g.Layers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func TestImport_CreatesTarget(t *testing.T) {
	dir := t.TempDir()
	regular := writeFont(t, dir, "Regular.ufo", newFont("Regular",
		glyphSpec{name: "a", codepoints: []rune{'a'}, width: 500},
		glyphSpec{name: "aacute", codepoints: []rune{'á'}, width: 500, components: []string{"a", "acutecomb"}},
		glyphSpec{name: "acutecomb", codepoints: []rune{0x0301}},
	))
	target := filepath.Join(dir, "Font.fontgarden")

	result, err := newTestEngine().Import(context.Background(), &ImportRequest{
		Target:  target,
		Sources: []string{regular},
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if !result.Created {
		t.Error("expected Created for a new target")
	}
	if result.Glyphs != 3 {
		t.Errorf("Glyphs = %d, want 3", result.Glyphs)
	}
	if want := []string{"a", "aacute", "acutecomb"}; !reflect.DeepEqual(result.Plan.Scope.Added, want) {
		t.Errorf("Added = %v, want %v", result.Plan.Scope.Added, want)
	}

	p := loadProject(t, target)
	if got := p.Glyphs["a"].Set; got != "Latin" {
		t.Errorf("a set = %q, want Latin", got)
	}
	if got := p.Glyphs["acutecomb"].Set; got != "" {
		t.Errorf("acutecomb set = %q, want Common", got)
	}
	if _, err := os.Stat(filepath.Join(target, "set.Common.csv")); err != nil {
		t.Errorf("expected Common manifest: %v", err)
	}
}

// seedProject imports Regular and Bold sources into a new fontgarden.
func seedProject(t *testing.T, dir string) string {
	t.Helper()
	regular := writeFont(t, dir, "seed-Regular.ufo", newFont("Regular",
		glyphSpec{name: "a", codepoints: []rune{'a'}, width: 500},
		glyphSpec{name: "b", codepoints: []rune{'b'}, width: 500},
		glyphSpec{name: "alpha", codepoints: []rune{'α'}, width: 520},
	))
	bold := writeFont(t, dir, "seed-Bold.ufo", newFont("Bold",
		glyphSpec{name: "a", width: 550},
		glyphSpec{name: "b", width: 550},
	))
	target := filepath.Join(dir, "Font.fontgarden")

	if _, err := newTestEngine().Import(context.Background(), &ImportRequest{
		Target:  target,
		Sources: []string{regular, bold},
	}); err != nil {
		t.Fatalf("seed import failed: %v", err)
	}
	return target
}

func TestImport_SelectiveRemovesOnlyImportedStyles(t *testing.T) {
	dir := t.TempDir()
	target := seedProject(t, dir)

	// Re-import only Regular for the Latin set: b is gone from the source,
	// c is new.
	update := writeFont(t, dir, "update-Regular.ufo", newFont("Regular",
		glyphSpec{name: "a", codepoints: []rune{'a'}, width: 510},
		glyphSpec{name: "c", codepoints: []rune{'c'}, width: 500},
	))

	result, err := newTestEngine().Import(context.Background(), &ImportRequest{
		Target:     target,
		Sources:    []string{update},
		TargetSets: []string{"Latin"},
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	scope := result.Plan.Scope
	if want := []string{"c"}; !reflect.DeepEqual(scope.Added, want) {
		t.Errorf("Added = %v, want %v", scope.Added, want)
	}
	if want := []string{"a"}; !reflect.DeepEqual(scope.Modified, want) {
		t.Errorf("Modified = %v, want %v", scope.Modified, want)
	}
	if want := []string{"b"}; !reflect.DeepEqual(scope.Removed, want) {
		t.Errorf("Removed = %v, want %v", scope.Removed, want)
	}

	p := loadProject(t, target)

	if got := *p.Glyphs["a"].Layers["Regular"].XAdvance; got != 510 {
		t.Errorf("a Regular x_advance = %v, want 510", got)
	}
	if want := []string{"Bold"}; !reflect.DeepEqual(layerKeys(p.Glyphs["b"]), want) {
		t.Errorf("b layers = %v, want only Bold kept", layerKeys(p.Glyphs["b"]))
	}
	if got := p.Glyphs["c"].Set; got != "Latin" {
		t.Errorf("c set = %q, want Latin", got)
	}
	if want := []string{"Regular"}; !reflect.DeepEqual(layerKeys(p.Glyphs["alpha"]), want) {
		t.Errorf("alpha outside the target set must be untouched, layers = %v", layerKeys(p.Glyphs["alpha"]))
	}
}

func TestImport_SingleTargetSetAssignsAddedGlyphs(t *testing.T) {
	dir := t.TempDir()
	target := seedProject(t, dir)

	update := writeFont(t, dir, "update-Regular.ufo", newFont("Regular",
		glyphSpec{name: "a", codepoints: []rune{'a'}, width: 500},
		glyphSpec{name: "b", codepoints: []rune{'b'}, width: 500},
		glyphSpec{name: "zero", codepoints: []rune{'0'}, width: 500},
	))

	if _, err := newTestEngine().Import(context.Background(), &ImportRequest{
		Target:     target,
		Sources:    []string{update},
		TargetSets: []string{"Latin"},
	}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	p := loadProject(t, target)
	if got := p.Glyphs["zero"].Set; got != "Latin" {
		t.Errorf("zero set = %q, want Latin from the only target set", got)
	}
}

func TestImport_DryRun(t *testing.T) {
	dir := t.TempDir()
	source := writeFont(t, dir, "Regular.ufo", newFont("Regular", glyphSpec{name: "a", codepoints: []rune{'a'}}))
	target := filepath.Join(dir, "Font.fontgarden")

	result, err := newTestEngine().Import(context.Background(), &ImportRequest{
		Target:  target,
		Sources: []string{source},
		DryRun:  true,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(result.Applied) != 0 {
		t.Errorf("DryRun applied %d operations", len(result.Applied))
	}
	if len(result.Plan.Operations) != 1 || result.Plan.Operations[0].Type != planner.OpAdd {
		t.Errorf("Operations = %+v, want one add", result.Plan.Operations)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("DryRun must not create the target, stat err = %v", err)
	}
}

func TestPlanImport(t *testing.T) {
	dir := t.TempDir()
	target := seedProject(t, dir)
	update := writeFont(t, dir, "update-Bold.ufo", newFont("Bold", glyphSpec{name: "a", width: 560}))

	before := loadProject(t, target)

	result, err := newTestEngine().PlanImport(context.Background(), &DiffRequest{
		Target:     target,
		Sources:    []string{update},
		TargetSets: []string{"Latin"},
	})
	if err != nil {
		t.Fatalf("PlanImport failed: %v", err)
	}

	if !result.TargetExists {
		t.Error("expected TargetExists")
	}
	if want := []string{"b"}; !reflect.DeepEqual(result.Plan.Scope.Removed, want) {
		t.Errorf("Removed = %v, want %v", result.Plan.Scope.Removed, want)
	}
	want := []planner.Operation{
		{Type: planner.OpModify, Glyph: "a"},
		{Type: planner.OpRemoveLayers, Glyph: "b", Layers: []string{"Bold"}},
	}
	if !reflect.DeepEqual(result.Plan.Operations, want) {
		t.Errorf("Operations = %+v, want %+v", result.Plan.Operations, want)
	}

	if after := loadProject(t, target); !reflect.DeepEqual(before, after) {
		t.Error("PlanImport must not modify the fontgarden")
	}
}

func TestPlanImport_MissingTarget(t *testing.T) {
	dir := t.TempDir()
	source := writeFont(t, dir, "Regular.ufo", newFont("Regular", glyphSpec{name: "a"}))

	result, err := newTestEngine().PlanImport(context.Background(), &DiffRequest{
		Target:  filepath.Join(dir, "missing"),
		Sources: []string{source},
	})
	if err != nil {
		t.Fatalf("PlanImport failed: %v", err)
	}
	if result.TargetExists {
		t.Error("TargetExists should be false")
	}
	if want := []string{"a"}; !reflect.DeepEqual(result.Plan.Scope.Added, want) {
		t.Errorf("Added = %v, want %v", result.Plan.Scope.Added, want)
	}
}

func TestImport_TargetIsFile(t *testing.T) {
	dir := t.TempDir()
	source := writeFont(t, dir, "Regular.ufo", newFont("Regular", glyphSpec{name: "a"}))
	target := filepath.Join(dir, "file")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newTestEngine().Import(context.Background(), &ImportRequest{Target: target, Sources: []string{source}})
	if err == nil {
		t.Fatal("expected error importing into a file")
	}
}
