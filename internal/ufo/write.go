package ufo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Creator is written to metainfo.plist.
const Creator = "com.github.danieljhkim.fontgarden"

// Save writes the font as a UFO 3 directory at path. The directory is created
// if needed; existing files with the same names are overwritten.
func (f *Font) Save(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create UFO directory %s: %w", path, err)
	}

	if err := writePlist(filepath.Join(path, metaInfoFile), metaInfo{Creator: Creator, FormatVersion: 3}); err != nil {
		return err
	}
	if len(f.Info) > 0 {
		if err := writePlist(filepath.Join(path, fontInfoFile), f.Info); err != nil {
			return err
		}
	}
	if len(f.Lib) > 0 {
		if err := writePlist(filepath.Join(path, libFile), f.Lib); err != nil {
			return err
		}
	}

	takenDirs := map[string]bool{defaultLayerDir: true}
	layerContents := make([][]string, 0, len(f.layers))
	for i, layer := range f.layers {
		dir := defaultLayerDir
		if i > 0 {
			dir = userNameToFileName(layer.name, "glyphs.", "", takenDirs)
		}
		layerContents = append(layerContents, []string{layer.name, dir})

		if err := saveLayer(filepath.Join(path, dir), layer); err != nil {
			return fmt.Errorf("failed to save layer %q: %w", layer.name, err)
		}
	}

	return writePlist(filepath.Join(path, layerContentsFile), layerContents)
}

func saveLayer(dir string, layer *Layer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	taken := make(map[string]bool)
	contents := make(map[string]string, len(layer.glyphs))
	for _, g := range layer.Glyphs() {
		fileName := userNameToFileName(g.Name, "", ".glif", taken)
		contents[g.Name] = fileName

		data, err := encodeGlif(g)
		if err != nil {
			return fmt.Errorf("failed to encode glyph %q: %w", g.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, fileName), data, 0644); err != nil {
			return fmt.Errorf("failed to write glyph %q: %w", g.Name, err)
		}
	}

	return writePlist(filepath.Join(dir, contentsFile), contents)
}
