package engine

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/danieljhkim/fontgarden/internal/fanout"
	"github.com/danieljhkim/fontgarden/internal/garden"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

// Export writes the fontgarden at req.Source as UFO sources, one per style,
// named "<fontgarden>-<style>.ufo" in req.OutputDir. Existing sources of the
// same name are replaced.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	p, err := e.store.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to load fontgarden: %w", err)
	}

	fonts, err := BuildSources(p, req.Styles)
	if err != nil {
		return nil, err
	}
	if len(fonts) == 0 {
		return nil, fmt.Errorf("%w: no layer matches styles %v", ErrNothingToExport, req.Styles)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := e.fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	base := exportBaseName(req.Source)
	styles := slices.Sorted(maps.Keys(fonts))

	exported, err := fanout.MapKeys(ctx, e.workers, fonts, func(ctx context.Context, style string, font *ufo.Font) (ExportedSource, error) {
		path := filepath.Join(outputDir, base+"-"+style+".ufo")
		if err := e.writeSource(path, font); err != nil {
			return ExportedSource{}, fmt.Errorf("failed to write source %s: %w", path, err)
		}

		e.logger.Debug("exported source", "style", style, "path", path)
		return ExportedSource{
			Style:  style,
			Path:   path,
			Glyphs: font.DefaultLayer().Len(),
			Layers: len(font.Layers()),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Sources: make([]ExportedSource, 0, len(styles))}
	for _, style := range styles {
		result.Sources = append(result.Sources, exported[style])
	}

	e.logger.Info("exported fontgarden", "path", req.Source, "sources", len(styles))
	return result, nil
}

// writeSource saves font into a staging directory next to path and swaps it
// into place.
func (e *Engine) writeSource(path string, font *ufo.Font) error {
	staged, err := e.fs.StagingDir(path)
	if err != nil {
		return err
	}
	if err := font.Save(staged); err != nil {
		_ = e.fs.RemoveAll(staged)
		return err
	}
	if err := e.fs.ReplaceDir(staged, path); err != nil {
		_ = e.fs.RemoveAll(staged)
		return err
	}
	return nil
}

// exportBaseName derives the source file name prefix from the fontgarden
// directory name, without extension.
func exportBaseName(source string) string {
	base := filepath.Base(filepath.Clean(source))
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// BuildSources converts p into UFO sources keyed by style. Only layers whose
// style is in styles are exported; an empty styles exports everything.
//
// A primary layer "<style>" fills the source's default layer, including the
// glyph's codepoints. A layer "<style>.<sub>" fills the source layer <sub>,
// without codepoints. Every source carries the postscript name and category
// dictionaries of all exported glyphs.
func BuildSources(p *garden.Project, styles []string) (map[string]*ufo.Font, error) {
	fonts := make(map[string]*ufo.Font)
	postscriptNames := make(map[string]interface{})
	categories := make(map[string]interface{})

	fontFor := func(style string) *ufo.Font {
		font, ok := fonts[style]
		if !ok {
			font = ufo.New()
			fonts[style] = font
		}
		return font
	}

	for _, name := range p.Names() {
		g := p.Glyphs[name]
		layerNames := slices.Sorted(maps.Keys(g.Layers))

		for _, layerName := range layerNames {
			style, sublayer := garden.SplitLayerName(layerName)
			if len(styles) > 0 && !slices.Contains(styles, style) {
				continue
			}
			if err := ufo.ValidateName(name); err != nil {
				return nil, &ufo.NamingError{Kind: "glyph", Glyph: name, Name: name, Err: err}
			}

			font := fontFor(style)
			if sublayer == "" {
				ug, err := exportGlyph(name, g.Layers[layerName], g.Codepoints)
				if err != nil {
					return nil, err
				}
				font.DefaultLayer().Insert(ug)

				if g.PostscriptName != "" {
					postscriptNames[name] = g.PostscriptName
				}
				if g.Category != garden.CategoryUnassigned {
					categories[name] = g.Category.String()
				}
				continue
			}

			layer, err := font.GetOrCreateLayer(sublayer)
			if err != nil {
				return nil, err
			}
			ug, err := exportGlyph(name, g.Layers[layerName], nil)
			if err != nil {
				return nil, err
			}
			layer.Insert(ug)
		}
	}

	for style, font := range fonts {
		font.SetStyleName(style)
		if len(postscriptNames) > 0 {
			font.Lib[ufo.PostscriptNamesKey] = maps.Clone(postscriptNames)
		}
		if len(categories) > 0 {
			font.Lib[ufo.OpenTypeCategoriesKey] = maps.Clone(categories)
		}
	}
	return fonts, nil
}

// exportGlyph converts one layer payload into a source glyph.
func exportGlyph(name string, layer garden.Layer, codepoints garden.Codepoints) (*ufo.Glyph, error) {
	ug := ufo.NewGlyph(name)
	if len(codepoints) > 0 {
		ug.Codepoints = slices.Clone([]rune(codepoints))
	}

	if layer.XAdvance != nil {
		ug.Width = *layer.XAdvance
	}
	if layer.YAdvance != nil && layer.VerticalOrigin != nil {
		ug.Height = *layer.YAdvance
		ug.SetLib(ufo.VerticalOriginKey, *layer.VerticalOrigin)
	}

	for _, a := range layer.Anchors {
		if err := ufo.ValidateName(a.Name); err != nil {
			return nil, &ufo.NamingError{Kind: "anchor", Glyph: name, Name: a.Name, Err: err}
		}
		ug.Anchors = append(ug.Anchors, ufo.Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}

	for _, c := range layer.Contours {
		contour := ufo.Contour{Points: make([]ufo.Point, 0, len(c.Points))}
		for _, pt := range c.Points {
			contour.Points = append(contour.Points, ufo.Point{
				X:      pt.X,
				Y:      pt.Y,
				Type:   pointTypeToUFO[pt.Type],
				Smooth: pt.Smooth,
			})
		}
		ug.Contours = append(ug.Contours, contour)
	}

	for _, c := range layer.Components {
		if err := ufo.ValidateName(c.Base); err != nil {
			return nil, &ufo.NamingError{Kind: "component", Glyph: name, Name: c.Base, Err: err}
		}
		t := c.Transform
		ug.Components = append(ug.Components, ufo.Component{
			Base: c.Base,
			Transform: ufo.AffineTransform{
				XScale:  t.XScale,
				XYScale: t.XYScale,
				YXScale: t.YXScale,
				YScale:  t.YScale,
				XOffset: t.XOffset,
				YOffset: t.YOffset,
			},
		})
	}

	return ug, nil
}
