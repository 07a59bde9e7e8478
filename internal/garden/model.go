// Package garden implements the fontgarden data model and its on-disk form.
//
// A fontgarden is a directory holding one CSV manifest per glyph set
// (set.<set>.csv) and one JSON file per non-empty glyph layer
// (glyphs/<glyph>/<layer>.json). Manifests are the only source of glyph-level
// metadata and of the glyph universe: a glyph that no manifest names does not
// exist, even if a directory for it is lying around.
//
// Key components:
//   - Project: glyph name to Glyph map, the unit that is loaded and saved
//   - Glyph: codepoints, category, postscript name, set and per-layer payloads
//   - Layer: anchors, components, contours and advances of one style/sublayer
//   - Store: Load/Save against a directory through fsops.FS
package garden

import (
	"slices"
	"strings"
)

// CommonSetName is the set of glyphs without a classification.
const CommonSetName = "Common"

// Project maps glyph names to glyphs. Components and layers refer to other
// glyphs and styles only by name.
type Project struct {
	Glyphs map[string]*Glyph
}

// New creates an empty Project.
func New() *Project {
	return &Project{Glyphs: make(map[string]*Glyph)}
}

// Glyph returns the glyph with the given name.
func (p *Project) Glyph(name string) (*Glyph, bool) {
	g, ok := p.Glyphs[name]
	return g, ok
}

// GetOrCreate returns the named glyph, inserting an empty one if needed.
func (p *Project) GetOrCreate(name string) *Glyph {
	if g, ok := p.Glyphs[name]; ok {
		return g
	}
	g := &Glyph{}
	p.Glyphs[name] = g
	return g
}

// Names returns all glyph names in sorted order.
func (p *Project) Names() []string {
	names := make([]string, 0, len(p.Glyphs))
	for name := range p.Glyphs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BySet groups sorted glyph names by set name.
func (p *Project) BySet() map[string][]string {
	sets := make(map[string][]string)
	for _, name := range p.Names() {
		set := p.Glyphs[name].SetName()
		sets[set] = append(sets[set], name)
	}
	return sets
}

// Styles returns the sorted style names used by any layer of any glyph.
func (p *Project) Styles() []string {
	seen := make(map[string]struct{})
	for _, g := range p.Glyphs {
		for layerName := range g.Layers {
			style, _ := SplitLayerName(layerName)
			seen[style] = struct{}{}
		}
	}
	styles := make([]string, 0, len(seen))
	for s := range seen {
		styles = append(styles, s)
	}
	slices.Sort(styles)
	return styles
}

// Glyph is one named design unit.
type Glyph struct {
	Codepoints Codepoints
	// Layers is keyed by layer name, see LayerName.
	Layers   map[string]Layer
	Category Category
	// PostscriptName renames the glyph on export; empty means no rename.
	PostscriptName string
	// Set is the classification label; empty means CommonSetName.
	Set string
}

// SetName returns the glyph's set, substituting CommonSetName when unset.
func (g *Glyph) SetName() string {
	if g.Set == "" {
		return CommonSetName
	}
	return g.Set
}

// SetLayer stores a layer under the given layer name, replacing any previous
// one.
func (g *Glyph) SetLayer(name string, layer Layer) {
	if g.Layers == nil {
		g.Layers = make(map[string]Layer)
	}
	g.Layers[name] = layer
}

// IsEmpty reports whether the glyph has no non-empty layer and therefore no
// directory on disk.
func (g *Glyph) IsEmpty() bool {
	for _, layer := range g.Layers {
		if !layer.IsEmpty() {
			return false
		}
	}
	return true
}

// ComponentBases returns the names of all glyphs referenced as components in
// any layer, deduplicated and sorted.
func (g *Glyph) ComponentBases() []string {
	var bases []string
	for _, layer := range g.Layers {
		for _, c := range layer.Components {
			bases = append(bases, c.Base)
		}
	}
	slices.Sort(bases)
	return slices.Compact(bases)
}

// LayerName builds the compound layer key of a style's sublayer. An empty
// sublayer names the style's primary layer.
func LayerName(style, sublayer string) string {
	if sublayer == "" {
		return style
	}
	return style + "." + sublayer
}

// SplitLayerName splits a layer key on its first '.' into style and
// sublayer. The sublayer is empty for a primary layer.
func SplitLayerName(name string) (style, sublayer string) {
	style, sublayer, _ = strings.Cut(name, ".")
	return style, sublayer
}

// Layer is the outline and metrics payload of one glyph in one style layer.
type Layer struct {
	Anchors    []Anchor    `json:"anchors"`
	Components []Component `json:"components"`
	Contours   []Contour   `json:"contours"`
	// VerticalOrigin and YAdvance are set together or not at all.
	VerticalOrigin *float64 `json:"vertical_origin,omitempty"`
	XAdvance       *float64 `json:"x_advance,omitempty"`
	YAdvance       *float64 `json:"y_advance,omitempty"`
}

// IsEmpty reports whether the layer carries nothing worth persisting.
func (l Layer) IsEmpty() bool {
	return len(l.Anchors) == 0 &&
		len(l.Components) == 0 &&
		len(l.Contours) == 0 &&
		l.XAdvance == nil &&
		l.YAdvance == nil
}

// SetVerticalMetrics sets the vertical advance together with its origin.
func (l *Layer) SetVerticalMetrics(yAdvance, origin float64) {
	l.YAdvance = &yAdvance
	l.VerticalOrigin = &origin
}

// Contour is a closed or open sequence of points.
type Contour struct {
	Points []ContourPoint `json:"points"`
}

// ContourPoint is a single outline point, stored verbatim.
type ContourPoint struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Type   PointType `json:"typ,omitempty"`
	Smooth bool      `json:"smooth,omitempty"`
}

// Anchor is a named attachment point.
type Anchor struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Component places another glyph, named by Base, into a layer.
type Component struct {
	Base      string
	Transform Transform
}

// Transform is a 2x3 affine transformation.
type Transform struct {
	XScale  float64
	XYScale float64
	YXScale float64
	YScale  float64
	XOffset float64
	YOffset float64
}

// Identity is the transform [1 0 0 1 0 0].
var Identity = Transform{XScale: 1, YScale: 1}

// Float returns a pointer to v, for the optional metrics of a Layer.
func Float(v float64) *float64 {
	return &v
}
