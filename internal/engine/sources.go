package engine

import (
	"context"
	"slices"

	"github.com/danieljhkim/fontgarden/internal/fanout"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

// DefaultStyleName is the style of a source without a style name, and the
// preferred default source.
const DefaultStyleName = "Regular"

// LoadSources loads the UFO sources at paths in parallel and keys them by
// style name. Two sources with the same style name are rejected; the error
// names the later one in paths order.
func (e *Engine) LoadSources(ctx context.Context, paths []string) (map[string]*ufo.Font, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}

	fonts := make([]*ufo.Font, len(paths))
	indexes := make([]int, len(paths))
	for i := range indexes {
		indexes[i] = i
	}

	err := fanout.ForEach(ctx, e.workers, indexes, func(ctx context.Context, i int) error {
		font, err := ufo.Load(paths[i])
		if err != nil {
			return err
		}
		fonts[i] = font
		return nil
	})
	if err != nil {
		return nil, err
	}

	sources := make(map[string]*ufo.Font, len(paths))
	pathByStyle := make(map[string]string, len(paths))
	for i, font := range fonts {
		style := SourceStyle(font)
		if other, ok := pathByStyle[style]; ok {
			return nil, &DuplicateStyleError{Style: style, Path: paths[i], OtherPath: other}
		}
		sources[style] = font
		pathByStyle[style] = paths[i]
		e.logger.Debug("loaded source", "path", paths[i], "style", style, "layers", len(font.Layers()))
	}

	e.logger.Info("loaded sources", "count", len(sources))
	return sources, nil
}

// SourceStyle returns the style name of a source, DefaultStyleName when the
// source has none.
func SourceStyle(font *ufo.Font) string {
	if style, ok := font.StyleName(); ok {
		return style
	}
	return DefaultStyleName
}

// DefaultStyle picks the default source: DefaultStyleName when present,
// otherwise the lexicographically smallest style.
func DefaultStyle(sources map[string]*ufo.Font) (string, error) {
	if len(sources) == 0 {
		return "", ErrNoSources
	}
	if _, ok := sources[DefaultStyleName]; ok {
		return DefaultStyleName, nil
	}
	return sortedStyles(sources)[0], nil
}

func sortedStyles(sources map[string]*ufo.Font) []string {
	styles := make([]string, 0, len(sources))
	for style := range sources {
		styles = append(styles, style)
	}
	slices.Sort(styles)
	return styles
}

// importedGlyphs returns every glyph name present in any layer of any source.
func importedGlyphs(sources map[string]*ufo.Font) map[string]struct{} {
	names := make(map[string]struct{})
	for _, font := range sources {
		for _, layer := range font.Layers() {
			for _, g := range layer.Glyphs() {
				names[g.Name] = struct{}{}
			}
		}
	}
	return names
}
