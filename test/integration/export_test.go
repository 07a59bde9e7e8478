package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/fontgarden/internal/engine"
)

func TestExport_FailedReplaceKeepsPreviousSource(t *testing.T) {
	eng, fsys := setupTestEngine(t)
	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "Family.fontgarden")
	out := filepath.Join(dir, "out")

	source := writeSource(t, dir, "Regular", familyGlyphs(true)...)
	if _, err := eng.Import(ctx, &engine.ImportRequest{Target: target, Sources: []string{source}}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if _, err := eng.Export(ctx, &engine.ExportRequest{Source: target, OutputDir: out}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	exported := filepath.Join(out, "Family-Regular.ufo")
	before := snapshot(t, exported)

	fsys.failReplace = true
	if _, err := eng.Export(ctx, &engine.ExportRequest{Source: target, OutputDir: out}); !errors.Is(err, errInjected) {
		t.Fatalf("Export() error = %v, want injected failure", err)
	}

	assertSameTree(t, before, snapshot(t, exported))
	assertNoStaging(t, exported)
}

func TestExport_StyleFilterWritesOnlySelectedStyles(t *testing.T) {
	eng, _ := setupTestEngine(t)
	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "Family.fontgarden")

	sources := []string{
		writeSource(t, dir, "Regular", familyGlyphs(true)...),
		writeSource(t, dir, "Bold", familyGlyphs(false)...),
	}
	if _, err := eng.Import(ctx, &engine.ImportRequest{Target: target, Sources: sources}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	result, err := eng.Export(ctx, &engine.ExportRequest{
		Source:    target,
		OutputDir: filepath.Join(dir, "out"),
		Styles:    []string{"Regular"},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(result.Sources) != 1 || result.Sources[0].Style != "Regular" {
		t.Fatalf("Export() = %+v, want only Regular", result.Sources)
	}
	if result.Sources[0].Layers != 2 {
		t.Errorf("Regular layers = %d, want 2 (default and background)", result.Sources[0].Layers)
	}
	if result.Sources[0].Glyphs != len(familyGlyphs(true)) {
		t.Errorf("Regular glyphs = %d, want %d", result.Sources[0].Glyphs, len(familyGlyphs(true)))
	}
}
