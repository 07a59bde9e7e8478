package garden

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/fontgarden/internal/fanout"
	"github.com/danieljhkim/fontgarden/internal/filenames"
	"github.com/danieljhkim/fontgarden/internal/fsops"
)

const (
	glyphsDirName = "glyphs"
	layerExt      = ".json"
)

// Store loads and saves projects on disk.
type Store struct {
	fs      fsops.FS
	workers int
	logger  *slog.Logger
}

// NewStore creates a new Store. workers bounds the per-glyph fan-out
// (<= 0 means unbounded); a nil logger discards output.
func NewStore(fs fsops.FS, workers int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		fs:      fs,
		workers: workers,
		logger:  logger,
	}
}

// glyphDir returns the directory holding a glyph's layer files.
func glyphDir(root, glyph string) string {
	return filepath.Join(root, glyphsDirName, filenames.Encode(glyph))
}

// layerFileName returns the file name of a layer payload. The extension is
// appended rather than substituted since layer names contain dots.
func layerFileName(layer string) string {
	return filenames.Encode(layer) + layerExt
}

// Save replaces the directory at root with the project.
//
// The project is written into a sibling staging directory first and swapped
// into place at the end, so a failure midway leaves the previous content of
// root untouched.
func (s *Store) Save(ctx context.Context, root string, p *Project) error {
	staged, err := s.fs.StagingDir(root)
	if err != nil {
		return fmt.Errorf("failed to create target fontgarden directory: %w", err)
	}

	if err := s.write(ctx, staged, p); err != nil {
		_ = s.fs.RemoveAll(staged)
		return err
	}

	if err := s.fs.ReplaceDir(staged, root); err != nil {
		_ = s.fs.RemoveAll(staged)
		return fmt.Errorf("failed to save fontgarden %s: %w", root, err)
	}

	s.logger.Info("saved fontgarden", "path", root, "glyphs", len(p.Glyphs))
	return nil
}

// write writes all manifests and layer files of p below dir.
func (s *Store) write(ctx context.Context, dir string, p *Project) error {
	bySet := p.BySet()
	sets := make([]string, 0, len(bySet))
	for set := range bySet {
		sets = append(sets, set)
	}

	err := fanout.ForEach(ctx, s.workers, sets, func(ctx context.Context, set string) error {
		return s.writeManifest(dir, set, p, bySet[set])
	})
	if err != nil {
		return err
	}

	var names []string
	for _, name := range p.Names() {
		if !p.Glyphs[name].IsEmpty() {
			names = append(names, name)
		}
	}

	return fanout.ForEach(ctx, s.workers, names, func(ctx context.Context, name string) error {
		return s.writeGlyph(dir, name, p.Glyphs[name])
	})
}

// writeManifest writes the manifest of one set.
func (s *Store) writeManifest(dir, set string, p *Project, names []string) error {
	fileName := manifestFileName(set)
	if err := s.fs.ValidateFileName(fileName); err != nil {
		return fmt.Errorf("failed to save set data %q: %w", set, err)
	}

	data, err := encodeManifest(p, names)
	if err != nil {
		return fmt.Errorf("failed to save set data %q: %w", set, err)
	}

	path := filepath.Join(dir, fileName)
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save set data %q to %s: %w", set, path, err)
	}
	return nil
}

// writeGlyph writes the non-empty layers of one glyph into its directory.
func (s *Store) writeGlyph(dir, name string, g *Glyph) error {
	if err := s.fs.ValidateFileName(filenames.Encode(name)); err != nil {
		return fmt.Errorf("failed to create directory for glyph %q: %w", name, err)
	}

	gdir := glyphDir(dir, name)
	if err := s.fs.MkdirAll(gdir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for glyph %q: %w", name, err)
	}

	for layerName, layer := range g.Layers {
		if layer.IsEmpty() {
			continue
		}

		fileName := layerFileName(layerName)
		path := filepath.Join(gdir, fileName)
		if err := s.fs.ValidateFileName(fileName); err != nil {
			return &LayerError{Op: "save", Path: path, Glyph: name, Layer: layerName, Err: err}
		}

		data, err := encodeLayer(layer)
		if err != nil {
			return &LayerError{Op: "encode", Path: path, Glyph: name, Layer: layerName, Err: err}
		}
		if err := s.fs.WriteFile(path, data, 0644); err != nil {
			return &LayerError{Op: "save", Path: path, Glyph: name, Layer: layerName, Err: err}
		}
	}

	s.logger.Debug("wrote glyph", "glyph", name, "layers", len(g.Layers))
	return nil
}

// Load reads the fontgarden at root, including all layer payloads.
func (s *Store) Load(ctx context.Context, root string) (*Project, error) {
	p, err := s.LoadShallow(ctx, root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range p.Names() {
		isDir, err := s.fs.IsDir(glyphDir(root, name))
		if err != nil {
			return nil, fmt.Errorf("failed to stat glyph directory of %q: %w", name, err)
		}
		if isDir {
			names = append(names, name)
		}
	}

	err = fanout.ForEach(ctx, s.workers, names, func(ctx context.Context, name string) error {
		return s.readGlyph(root, name, p.Glyphs[name])
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded fontgarden", "path", root, "glyphs", len(p.Glyphs), "with_layers", len(names))
	return p, nil
}

// LoadShallow reads only the manifests at root: glyph metadata without any
// layers.
func (s *Store) LoadShallow(ctx context.Context, root string) (*Project, error) {
	isDir, err := s.fs.IsDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrNotAFontgarden, root)
	}

	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	p := New()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		set, ok := setFromManifestFileName(entry.Name())
		if !ok {
			continue
		}
		if err := s.readManifest(filepath.Join(root, entry.Name()), set, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// readManifest adds the glyphs of one set manifest to p.
func (s *Store) readManifest(path, set string, p *Project) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read set data %s: %w", path, err)
	}

	records, err := decodeManifest(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to load set data %s: %w", path, err)
	}

	if err := s.fs.ValidateFileName(filenames.Encode(set)); err != nil {
		return fmt.Errorf("failed to load set data %s: %w: set %q: %w", path, ErrUnsafeName, set, err)
	}

	for _, rec := range records {
		if err := s.fs.ValidateFileName(filenames.Encode(rec.Name)); err != nil {
			return fmt.Errorf("failed to load set data %s: %w: glyph %q: %w", path, ErrUnsafeName, rec.Name, err)
		}
		if existing, ok := p.Glyphs[rec.Name]; ok {
			return &DuplicateGlyphError{Glyph: rec.Name, Set: set, OtherSet: existing.SetName()}
		}

		g := &Glyph{
			Codepoints:     rec.Codepoints,
			Category:       rec.Category,
			PostscriptName: rec.PostscriptName,
		}
		if set != CommonSetName {
			g.Set = set
		}
		p.Glyphs[rec.Name] = g
	}
	return nil
}

// readGlyph loads every layer file of one glyph into g.
func (s *Store) readGlyph(root, name string, g *Glyph) error {
	gdir := glyphDir(root, name)
	entries, err := s.fs.ReadDir(gdir)
	if err != nil {
		return fmt.Errorf("failed to read glyph directory %s: %w", gdir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), layerExt) {
			continue
		}

		layerName := filenames.Decode(strings.TrimSuffix(entry.Name(), layerExt))
		path := filepath.Join(gdir, entry.Name())

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return &LayerError{Op: "load", Path: path, Glyph: name, Layer: layerName, Err: err}
		}
		layer, err := decodeLayer(data)
		if err != nil {
			return &LayerError{Op: "decode", Path: path, Glyph: name, Layer: layerName, Err: err}
		}
		g.SetLayer(layerName, layer)
	}
	return nil
}

// LayerNames lists the layer names stored for each glyph of p below root
// without decoding the payloads.
func (s *Store) LayerNames(root string, p *Project) (map[string][]string, error) {
	result := make(map[string][]string)
	for _, name := range p.Names() {
		gdir := glyphDir(root, name)
		isDir, err := s.fs.IsDir(gdir)
		if err != nil {
			return nil, fmt.Errorf("failed to stat glyph directory %s: %w", gdir, err)
		}
		if !isDir {
			continue
		}

		entries, err := s.fs.ReadDir(gdir)
		if err != nil {
			return nil, fmt.Errorf("failed to read glyph directory %s: %w", gdir, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), layerExt) {
				result[name] = append(result[name], filenames.Decode(strings.TrimSuffix(entry.Name(), layerExt)))
			}
		}
	}
	return result, nil
}
