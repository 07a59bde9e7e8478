package engine

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/garden"
)

func TestStatus(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Font")

	p := garden.New()
	a := p.GetOrCreate("a")
	a.Set = "Latin"
	a.SetLayer("Regular", garden.Layer{XAdvance: garden.Float(500)})
	a.SetLayer("Bold", garden.Layer{XAdvance: garden.Float(550)})
	a.SetLayer("Bold.background", garden.Layer{XAdvance: garden.Float(550)})
	b := p.GetOrCreate("b")
	b.Set = "Latin"
	p.GetOrCreate("zero").SetLayer("Regular", garden.Layer{XAdvance: garden.Float(500)})

	if err := garden.NewStore(fsops.NewRealFS(), 0, nil).Save(ctx, path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	result, err := newTestEngine().Status(ctx, &StatusRequest{Path: path})
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if result.Glyphs != 3 {
		t.Errorf("Glyphs = %d, want 3", result.Glyphs)
	}
	if result.LayerFiles != 4 {
		t.Errorf("LayerFiles = %d, want 4", result.LayerFiles)
	}
	if want := []string{"Bold", "Regular"}; !reflect.DeepEqual(result.Styles, want) {
		t.Errorf("Styles = %v, want %v", result.Styles, want)
	}
	want := []SetInfo{
		{Name: "Common", Glyphs: 1, Empty: 0},
		{Name: "Latin", Glyphs: 2, Empty: 1},
	}
	if !reflect.DeepEqual(result.Sets, want) {
		t.Errorf("Sets = %+v, want %+v", result.Sets, want)
	}
}

func TestStatus_NotAFontgarden(t *testing.T) {
	_, err := newTestEngine().Status(context.Background(), &StatusRequest{Path: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, garden.ErrNotAFontgarden) {
		t.Errorf("expected ErrNotAFontgarden, got %v", err)
	}
}
