package ufo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	metaInfoFile      = "metainfo.plist"
	fontInfoFile      = "fontinfo.plist"
	libFile           = "lib.plist"
	layerContentsFile = "layercontents.plist"
	contentsFile      = "contents.plist"
	defaultLayerDir   = "glyphs"
)

// ErrNotAUFO indicates a path that is not a UFO directory.
var ErrNotAUFO = errors.New("not a UFO")

type metaInfo struct {
	Creator       string `plist:"creator,omitempty"`
	FormatVersion int    `plist:"formatVersion"`
}

// Load reads the UFO at path.
func Load(path string) (*Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load UFO source %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to load UFO source %s: %w", path, ErrNotAUFO)
	}

	var meta metaInfo
	if err := readPlist(filepath.Join(path, metaInfoFile), &meta); err != nil {
		return nil, fmt.Errorf("failed to load UFO source %s: %w: %w", path, ErrNotAUFO, err)
	}
	if meta.FormatVersion < 1 || meta.FormatVersion > 3 {
		return nil, fmt.Errorf("failed to load UFO source %s: unsupported format version %d", path, meta.FormatVersion)
	}

	f := &Font{
		Info: make(map[string]interface{}),
		Lib:  make(map[string]interface{}),
	}
	if err := readOptionalPlist(filepath.Join(path, fontInfoFile), &f.Info); err != nil {
		return nil, fmt.Errorf("failed to load UFO source %s: %w", path, err)
	}
	if err := readOptionalPlist(filepath.Join(path, libFile), &f.Lib); err != nil {
		return nil, fmt.Errorf("failed to load UFO source %s: %w", path, err)
	}

	layerContents := [][]string{{DefaultLayerName, defaultLayerDir}}
	if err := readOptionalPlist(filepath.Join(path, layerContentsFile), &layerContents); err != nil {
		return nil, fmt.Errorf("failed to load UFO source %s: %w", path, err)
	}

	for _, entry := range layerContents {
		if len(entry) != 2 {
			return nil, fmt.Errorf("failed to load UFO source %s: malformed %s entry %v", path, layerContentsFile, entry)
		}
		name, dir := entry[0], entry[1]

		layer, err := loadLayer(filepath.Join(path, dir), name)
		if err != nil {
			return nil, fmt.Errorf("failed to load UFO source %s: layer %q: %w", path, name, err)
		}

		// The layer stored in "glyphs" is the default one.
		if dir == defaultLayerDir {
			f.layers = append([]*Layer{layer}, f.layers...)
		} else {
			f.layers = append(f.layers, layer)
		}
	}

	if len(f.layers) == 0 || f.layers[0].name != layerNameForDir(layerContents, defaultLayerDir) {
		return nil, fmt.Errorf("failed to load UFO source %s: no default layer in %q", path, defaultLayerDir)
	}

	return f, nil
}

func layerNameForDir(layerContents [][]string, dir string) string {
	for _, entry := range layerContents {
		if len(entry) == 2 && entry[1] == dir {
			return entry[0]
		}
	}
	return ""
}

// readOptionalPlist decodes path into v, leaving v untouched when the file
// does not exist.
func readOptionalPlist(path string, v interface{}) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return readPlist(path, v)
}

func loadLayer(dir, name string) (*Layer, error) {
	layer := newLayer(name)

	contents := make(map[string]string)
	if err := readOptionalPlist(filepath.Join(dir, contentsFile), &contents); err != nil {
		return nil, err
	}

	for glyphName, fileName := range contents {
		path := filepath.Join(dir, fileName)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read glyph %q: %w", glyphName, err)
		}
		g, err := parseGlif(glyphName, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse glyph %q at %s: %w", glyphName, path, err)
		}
		layer.Insert(g)
	}
	return layer, nil
}
