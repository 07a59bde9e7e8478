package ufo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type glifXML struct {
	XMLName  xml.Name     `xml:"glyph"`
	Name     string       `xml:"name,attr"`
	Format   string       `xml:"format,attr"`
	Advance  *advanceXML  `xml:"advance"`
	Unicodes []unicodeXML `xml:"unicode"`
	Anchors  []anchorXML  `xml:"anchor"`
	Outline  *outlineXML  `xml:"outline"`
	Lib      *libXML      `xml:"lib"`
}

type advanceXML struct {
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

type unicodeXML struct {
	Hex string `xml:"hex,attr"`
}

type anchorXML struct {
	X    string `xml:"x,attr"`
	Y    string `xml:"y,attr"`
	Name string `xml:"name,attr,omitempty"`
}

type outlineXML struct {
	Contours   []contourXML   `xml:"contour"`
	Components []componentXML `xml:"component"`
}

type contourXML struct {
	Points []pointXML `xml:"point"`
}

type pointXML struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Type   string `xml:"type,attr,omitempty"`
	Smooth string `xml:"smooth,attr,omitempty"`
	Name   string `xml:"name,attr,omitempty"`
}

type componentXML struct {
	Base    string `xml:"base,attr"`
	XScale  string `xml:"xScale,attr,omitempty"`
	XYScale string `xml:"xyScale,attr,omitempty"`
	YXScale string `xml:"yxScale,attr,omitempty"`
	YScale  string `xml:"yScale,attr,omitempty"`
	XOffset string `xml:"xOffset,attr,omitempty"`
	YOffset string `xml:"yOffset,attr,omitempty"`
}

type libXML struct {
	Inner []byte `xml:",innerxml"`
}

// parseGlif decodes a .glif file. Format 1 anchors (single named move
// points) are converted to anchors.
func parseGlif(name string, data []byte) (*Glyph, error) {
	var gx glifXML
	if err := xml.Unmarshal(data, &gx); err != nil {
		return nil, err
	}

	g := NewGlyph(name)
	var err error

	if gx.Advance != nil {
		if g.Width, err = parseNumber(gx.Advance.Width, 0); err != nil {
			return nil, fmt.Errorf("advance width: %w", err)
		}
		if g.Height, err = parseNumber(gx.Advance.Height, 0); err != nil {
			return nil, fmt.Errorf("advance height: %w", err)
		}
	}

	for _, u := range gx.Unicodes {
		v, err := strconv.ParseUint(u.Hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("unicode %q: %w", u.Hex, err)
		}
		r := rune(v)
		if !containsRune(g.Codepoints, r) {
			g.Codepoints = append(g.Codepoints, r)
		}
	}

	for _, a := range gx.Anchors {
		anchor, err := parseAnchor(a.Name, a.X, a.Y)
		if err != nil {
			return nil, err
		}
		g.Anchors = append(g.Anchors, anchor)
	}

	if gx.Outline != nil {
		for _, cx := range gx.Outline.Contours {
			if gx.Format == "1" && len(cx.Points) == 1 && cx.Points[0].Type == "move" && cx.Points[0].Name != "" {
				p := cx.Points[0]
				anchor, err := parseAnchor(p.Name, p.X, p.Y)
				if err != nil {
					return nil, err
				}
				g.Anchors = append(g.Anchors, anchor)
				continue
			}

			contour, err := parseContour(cx)
			if err != nil {
				return nil, err
			}
			g.Contours = append(g.Contours, contour)
		}

		for _, cx := range gx.Outline.Components {
			component, err := parseComponent(cx)
			if err != nil {
				return nil, err
			}
			g.Components = append(g.Components, component)
		}
	}

	if gx.Lib != nil {
		lib, err := decodeLibDict(gx.Lib.Inner)
		if err != nil {
			return nil, fmt.Errorf("glyph lib: %w", err)
		}
		g.Lib = lib
	}

	return g, nil
}

func parseAnchor(name, x, y string) (Anchor, error) {
	a := Anchor{Name: name}
	var err error
	if a.X, err = parseNumber(x, 0); err != nil {
		return Anchor{}, fmt.Errorf("anchor %q x: %w", name, err)
	}
	if a.Y, err = parseNumber(y, 0); err != nil {
		return Anchor{}, fmt.Errorf("anchor %q y: %w", name, err)
	}
	return a, nil
}

func parseContour(cx contourXML) (Contour, error) {
	c := Contour{Points: make([]Point, 0, len(cx.Points))}
	for _, px := range cx.Points {
		p := Point{Name: px.Name, Smooth: px.Smooth == "yes"}
		var err error
		if p.X, err = parseNumber(px.X, 0); err != nil {
			return Contour{}, fmt.Errorf("point x: %w", err)
		}
		if p.Y, err = parseNumber(px.Y, 0); err != nil {
			return Contour{}, fmt.Errorf("point y: %w", err)
		}
		switch px.Type {
		case "", "offcurve":
			p.Type = OffCurve
		case "move":
			p.Type = Move
		case "line":
			p.Type = Line
		case "curve":
			p.Type = Curve
		case "qcurve":
			p.Type = QCurve
		default:
			return Contour{}, fmt.Errorf("unknown point type %q", px.Type)
		}
		c.Points = append(c.Points, p)
	}
	return c, nil
}

func parseComponent(cx componentXML) (Component, error) {
	c := Component{Base: cx.Base}
	fields := []struct {
		dst  *float64
		attr string
		def  float64
	}{
		{&c.Transform.XScale, cx.XScale, 1},
		{&c.Transform.XYScale, cx.XYScale, 0},
		{&c.Transform.YXScale, cx.YXScale, 0},
		{&c.Transform.YScale, cx.YScale, 1},
		{&c.Transform.XOffset, cx.XOffset, 0},
		{&c.Transform.YOffset, cx.YOffset, 0},
	}
	for _, f := range fields {
		v, err := parseNumber(f.attr, f.def)
		if err != nil {
			return Component{}, fmt.Errorf("component %q: %w", cx.Base, err)
		}
		*f.dst = v
	}
	return c, nil
}

// encodeGlif renders g as a format 2 .glif file.
func encodeGlif(g *Glyph) ([]byte, error) {
	gx := glifXML{Name: g.Name, Format: "2"}

	if g.Width != 0 || g.Height != 0 {
		gx.Advance = &advanceXML{}
		if g.Width != 0 {
			gx.Advance.Width = formatNumber(g.Width)
		}
		if g.Height != 0 {
			gx.Advance.Height = formatNumber(g.Height)
		}
	}

	for _, r := range g.Codepoints {
		gx.Unicodes = append(gx.Unicodes, unicodeXML{Hex: fmt.Sprintf("%04X", r)})
	}

	for _, a := range g.Anchors {
		gx.Anchors = append(gx.Anchors, anchorXML{X: formatNumber(a.X), Y: formatNumber(a.Y), Name: a.Name})
	}

	if len(g.Contours) > 0 || len(g.Components) > 0 {
		gx.Outline = &outlineXML{}
		for _, c := range g.Contours {
			var cx contourXML
			for _, p := range c.Points {
				px := pointXML{X: formatNumber(p.X), Y: formatNumber(p.Y), Type: pointTypeAttrs[p.Type], Name: p.Name}
				if p.Smooth {
					px.Smooth = "yes"
				}
				cx.Points = append(cx.Points, px)
			}
			gx.Outline.Contours = append(gx.Outline.Contours, cx)
		}
		for _, c := range g.Components {
			gx.Outline.Components = append(gx.Outline.Components, encodeComponent(c))
		}
	}

	if len(g.Lib) > 0 {
		inner, err := encodeLibDict(g.Lib)
		if err != nil {
			return nil, fmt.Errorf("glyph lib: %w", err)
		}
		gx.Lib = &libXML{Inner: inner}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(gx); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeComponent(c Component) componentXML {
	cx := componentXML{Base: c.Base}
	t := c.Transform
	if t.XScale != 1 {
		cx.XScale = formatNumber(t.XScale)
	}
	if t.XYScale != 0 {
		cx.XYScale = formatNumber(t.XYScale)
	}
	if t.YXScale != 0 {
		cx.YXScale = formatNumber(t.YXScale)
	}
	if t.YScale != 1 {
		cx.YScale = formatNumber(t.YScale)
	}
	if t.XOffset != 0 {
		cx.XOffset = formatNumber(t.XOffset)
	}
	if t.YOffset != 0 {
		cx.YOffset = formatNumber(t.YOffset)
	}
	return cx
}

func parseNumber(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
