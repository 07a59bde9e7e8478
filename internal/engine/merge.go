package engine

import (
	"github.com/danieljhkim/fontgarden/internal/categorize"
	"github.com/danieljhkim/fontgarden/internal/garden"
	"github.com/danieljhkim/fontgarden/internal/ufo"
)

// Merge folds sources, keyed by style name, into p.
//
// Every layer of every source is stored under its compound layer name,
// replacing a previous layer of that name. Only the default source's primary
// layer sets codepoints and assigns a set to glyphs that have none. The
// default source's postscript name and category dictionaries are applied
// last, to glyphs already in p.
func (e *Engine) Merge(p *garden.Project, sources map[string]*ufo.Font) (string, error) {
	defaultStyle, err := DefaultStyle(sources)
	if err != nil {
		return "", err
	}

	for _, style := range sortedStyles(sources) {
		font := sources[style]
		for _, layer := range font.Layers() {
			layerName := SourceLayerName(style, font, layer)
			primary := style == defaultStyle && font.IsDefault(layer)

			for _, ug := range layer.Glyphs() {
				g := p.GetOrCreate(ug.Name)
				if primary {
					g.Codepoints = garden.NewCodepoints(ug.Codepoints...)
					if g.Set == "" {
						if set, ok := categorize.Glyph(e.categorizer, ug.Name, g.Codepoints); ok {
							g.Set = set
						}
					}
				}
				g.SetLayer(layerName, convertGlyph(ug))
			}
			e.logger.Debug("merged layer", "style", style, "layer", layer.Name(), "as", layerName, "glyphs", layer.Len())
		}
	}

	applyOverrides(p, sources[defaultStyle])

	e.logger.Info("merged sources", "styles", sortedStyles(sources), "default", defaultStyle, "glyphs", len(p.Glyphs))
	return defaultStyle, nil
}

// SourceLayerName maps a source layer to its compound layer name: the
// default layer is the style itself, the background layer is
// "<style>.background" and any other layer is "<style>.<layer>".
func SourceLayerName(style string, font *ufo.Font, layer *ufo.Layer) string {
	switch {
	case font.IsDefault(layer):
		return style
	case layer.Name() == ufo.BackgroundLayerName:
		return garden.LayerName(style, "background")
	default:
		return garden.LayerName(style, layer.Name())
	}
}

// applyOverrides applies the font-wide postscript name and category
// dictionaries of font to the matching glyphs of p.
func applyOverrides(p *garden.Project, font *ufo.Font) {
	for name, v := range font.LibDict(ufo.PostscriptNamesKey) {
		if g, ok := p.Glyph(name); ok {
			s, _ := v.(string)
			g.PostscriptName = s
		}
	}

	for name, v := range font.LibDict(ufo.OpenTypeCategoriesKey) {
		if g, ok := p.Glyph(name); ok {
			s, _ := v.(string)
			category, err := garden.ParseCategory(s)
			if err != nil {
				category = garden.CategoryUnassigned
			}
			g.Category = category
		}
	}
}

// convertGlyph converts one source glyph into a layer payload.
func convertGlyph(ug *ufo.Glyph) garden.Layer {
	layer := garden.Layer{XAdvance: garden.Float(ug.Width)}
	if origin, ok := ug.LibFloat(ufo.VerticalOriginKey); ok {
		layer.SetVerticalMetrics(ug.Height, origin)
	}

	for _, a := range ug.Anchors {
		layer.Anchors = append(layer.Anchors, garden.Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}

	for _, c := range ug.Contours {
		contour := garden.Contour{Points: make([]garden.ContourPoint, 0, len(c.Points))}
		for _, pt := range c.Points {
			contour.Points = append(contour.Points, garden.ContourPoint{
				X:      pt.X,
				Y:      pt.Y,
				Type:   pointTypeToGarden[pt.Type],
				Smooth: pt.Smooth,
			})
		}
		layer.Contours = append(layer.Contours, contour)
	}

	for _, c := range ug.Components {
		t := c.Transform
		layer.Components = append(layer.Components, garden.Component{
			Base: c.Base,
			Transform: garden.Transform{
				XScale:  t.XScale,
				XYScale: t.XYScale,
				YXScale: t.YXScale,
				YScale:  t.YScale,
				XOffset: t.XOffset,
				YOffset: t.YOffset,
			},
		})
	}

	return layer
}

var pointTypeToGarden = map[ufo.PointType]garden.PointType{
	ufo.OffCurve: garden.OffCurve,
	ufo.Move:     garden.Move,
	ufo.Line:     garden.Line,
	ufo.Curve:    garden.Curve,
	ufo.QCurve:   garden.QCurve,
}

var pointTypeToUFO = map[garden.PointType]ufo.PointType{
	garden.OffCurve: ufo.OffCurve,
	garden.Move:     ufo.Move,
	garden.Line:     ufo.Line,
	garden.Curve:    ufo.Curve,
	garden.QCurve:   ufo.QCurve,
}
