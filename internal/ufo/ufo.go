// Package ufo reads and writes Unified Font Object (UFO 3) source
// directories, the per-style sources a fontgarden is synchronized with.
//
// Only the parts a fontgarden exchanges are modelled: font info and lib
// property lists, layers, and per-glyph advance, codepoints, anchors,
// contours, components and glyph lib. Everything else in fontinfo.plist and
// lib.plist is carried through untouched as plist values.
package ufo

import (
	"slices"
)

const (
	// DefaultLayerName is the conventional name of a font's default layer.
	DefaultLayerName = "public.default"

	// BackgroundLayerName is the conventional name of a background layer.
	BackgroundLayerName = "public.background"

	// PostscriptNamesKey is the font lib key mapping glyph names to
	// production names.
	PostscriptNamesKey = "public.postscriptNames"

	// OpenTypeCategoriesKey is the font lib key mapping glyph names to
	// OpenType categories.
	OpenTypeCategoriesKey = "public.openTypeCategories"

	// VerticalOriginKey is the glyph lib key of the vertical origin.
	VerticalOriginKey = "public.verticalOrigin"

	styleNameKey = "styleName"
)

// Font is one UFO source.
type Font struct {
	// Info holds fontinfo.plist.
	Info map[string]interface{}
	// Lib holds lib.plist.
	Lib map[string]interface{}

	// layers[0] is the default layer.
	layers []*Layer
}

// New creates a blank font with an empty default layer.
func New() *Font {
	return &Font{
		Info:   make(map[string]interface{}),
		Lib:    make(map[string]interface{}),
		layers: []*Layer{newLayer(DefaultLayerName)},
	}
}

// StyleName returns the styleName from font info, if set.
func (f *Font) StyleName() (string, bool) {
	s, ok := f.Info[styleNameKey].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// SetStyleName sets the styleName in font info.
func (f *Font) SetStyleName(name string) {
	f.Info[styleNameKey] = name
}

// DefaultLayer returns the default layer.
func (f *Font) DefaultLayer() *Layer {
	return f.layers[0]
}

// Layers returns all layers, the default layer first.
func (f *Font) Layers() []*Layer {
	return f.layers
}

// IsDefault reports whether l is the font's default layer.
func (f *Font) IsDefault(l *Layer) bool {
	return f.layers[0] == l
}

// Layer returns the layer with the given name.
func (f *Font) Layer(name string) (*Layer, bool) {
	for _, l := range f.layers {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

// GetOrCreateLayer returns the named layer, appending a new one if missing.
func (f *Font) GetOrCreateLayer(name string) (*Layer, error) {
	if l, ok := f.Layer(name); ok {
		return l, nil
	}
	if err := ValidateName(name); err != nil {
		return nil, &NamingError{Kind: "layer", Name: name, Err: err}
	}
	l := newLayer(name)
	f.layers = append(f.layers, l)
	return l, nil
}

// LibDict returns a dictionary from the font lib, or nil.
func (f *Font) LibDict(key string) map[string]interface{} {
	d, _ := f.Lib[key].(map[string]interface{})
	return d
}

// Layer is a named collection of glyphs.
type Layer struct {
	name   string
	glyphs map[string]*Glyph
}

func newLayer(name string) *Layer {
	return &Layer{name: name, glyphs: make(map[string]*Glyph)}
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Len returns the number of glyphs in the layer.
func (l *Layer) Len() int {
	return len(l.glyphs)
}

// Glyph returns the glyph with the given name.
func (l *Layer) Glyph(name string) (*Glyph, bool) {
	g, ok := l.glyphs[name]
	return g, ok
}

// Glyphs returns the layer's glyphs sorted by name.
func (l *Layer) Glyphs() []*Glyph {
	glyphs := make([]*Glyph, 0, len(l.glyphs))
	for _, g := range l.glyphs {
		glyphs = append(glyphs, g)
	}
	slices.SortFunc(glyphs, func(a, b *Glyph) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return glyphs
}

// Insert adds g to the layer, replacing a glyph of the same name.
func (l *Layer) Insert(g *Glyph) {
	l.glyphs[g.Name] = g
}

// Glyph is one glyph of one layer.
type Glyph struct {
	Name       string
	Codepoints []rune
	Width      float64
	Height     float64
	Anchors    []Anchor
	Contours   []Contour
	Components []Component
	Lib        map[string]interface{}
}

// NewGlyph creates an empty glyph.
func NewGlyph(name string) *Glyph {
	return &Glyph{Name: name}
}

// LibFloat returns a numeric glyph lib value.
func (g *Glyph) LibFloat(key string) (float64, bool) {
	return toFloat(g.Lib[key])
}

// SetLib sets a glyph lib value.
func (g *Glyph) SetLib(key string, value interface{}) {
	if g.Lib == nil {
		g.Lib = make(map[string]interface{})
	}
	g.Lib[key] = value
}

// Anchor is a named attachment point.
type Anchor struct {
	Name string
	X, Y float64
}

// Contour is a sequence of points.
type Contour struct {
	Points []Point
}

// Point is a contour point.
type Point struct {
	X, Y   float64
	Type   PointType
	Smooth bool
	Name   string
}

// PointType is the segment type of a contour point.
type PointType int

const (
	OffCurve PointType = iota
	Move
	Line
	Curve
	QCurve
)

var pointTypeAttrs = [...]string{
	OffCurve: "",
	Move:     "move",
	Line:     "line",
	Curve:    "curve",
	QCurve:   "qcurve",
}

func (t PointType) String() string {
	if t == OffCurve {
		return "offcurve"
	}
	return pointTypeAttrs[t]
}

// Component places another glyph.
type Component struct {
	Base      string
	Transform AffineTransform
}

// AffineTransform is a 2x3 affine transformation.
type AffineTransform struct {
	XScale, XYScale, YXScale, YScale, XOffset, YOffset float64
}

// Identity is the transform [1 0 0 1 0 0].
var Identity = AffineTransform{XScale: 1, YScale: 1}

// toFloat converts a decoded plist number.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
