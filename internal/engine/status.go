package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/danieljhkim/fontgarden/internal/garden"
)

// Status summarizes the fontgarden at req.Path from its manifests and the
// names of its layer files, without decoding any layer payload.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	p, err := e.store.LoadShallow(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fontgarden: %w", err)
	}

	layerNames, err := e.store.LayerNames(req.Path, p)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Path:   req.Path,
		Glyphs: len(p.Glyphs),
		Sets:   []SetInfo{},
		Styles: []string{},
	}

	styles := make(map[string]struct{})
	for _, layers := range layerNames {
		result.LayerFiles += len(layers)
		for _, layer := range layers {
			style, _ := garden.SplitLayerName(layer)
			styles[style] = struct{}{}
		}
	}
	for style := range styles {
		result.Styles = append(result.Styles, style)
	}
	slices.Sort(result.Styles)

	bySet := p.BySet()
	for set, names := range bySet {
		info := SetInfo{Name: set, Glyphs: len(names)}
		for _, name := range names {
			if len(layerNames[name]) == 0 {
				info.Empty++
			}
		}
		result.Sets = append(result.Sets, info)
	}
	slices.SortFunc(result.Sets, func(a, b SetInfo) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return result, nil
}
