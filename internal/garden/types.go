package garden

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Codepoints is a deduplicated set of Unicode scalar values. It keeps
// insertion order so that the first codepoint is stable across a round trip.
type Codepoints []rune

// NewCodepoints builds a set from runes, dropping duplicates.
func NewCodepoints(runes ...rune) Codepoints {
	var c Codepoints
	for _, r := range runes {
		c = c.Add(r)
	}
	return c
}

// Add returns the set with r included.
func (c Codepoints) Add(r rune) Codepoints {
	if slices.Contains(c, r) {
		return c
	}
	return append(c, r)
}

// Contains reports whether r is in the set.
func (c Codepoints) Contains(r rune) bool {
	return slices.Contains(c, r)
}

// String formats the set as space-separated uppercase hex with at least four
// digits, the manifest representation.
func (c Codepoints) String() string {
	parts := make([]string, len(c))
	for i, r := range c {
		parts[i] = fmt.Sprintf("%04X", r)
	}
	return strings.Join(parts, " ")
}

// ParseCodepoints parses the manifest representation of a codepoint set.
func ParseCodepoints(s string) (Codepoints, error) {
	var c Codepoints
	for _, field := range strings.Fields(s) {
		v, err := strconv.ParseUint(field, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %q is not hexadecimal", ErrInvalidCodepoints, s, field)
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w %q: %s is not a Unicode scalar value", ErrInvalidCodepoints, s, field)
		}
		c = c.Add(r)
	}
	return c, nil
}

// Category is the OpenType glyph class.
type Category int

const (
	CategoryUnassigned Category = iota
	CategoryBase
	CategoryLigature
	CategoryMark
	CategoryComponent
)

var categoryNames = [...]string{
	CategoryUnassigned: "unassigned",
	CategoryBase:       "base",
	CategoryLigature:   "ligature",
	CategoryMark:       "mark",
	CategoryComponent:  "component",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// ParseCategory parses a lowercase category name.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	return CategoryUnassigned, fmt.Errorf("invalid category %q: must be unassigned, base, ligature, mark or component", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// PointType is the role of a contour point.
type PointType int

const (
	OffCurve PointType = iota
	Move
	Line
	Curve
	QCurve
)

var pointTypeNames = [...]string{
	OffCurve: "OffCurve",
	Move:     "Move",
	Line:     "Line",
	Curve:    "Curve",
	QCurve:   "QCurve",
}

func (t PointType) String() string {
	if t < 0 || int(t) >= len(pointTypeNames) {
		return "PointType(" + strconv.Itoa(int(t)) + ")"
	}
	return pointTypeNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t PointType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(pointTypeNames) {
		return nil, fmt.Errorf("invalid point type %d", int(t))
	}
	return []byte(pointTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PointType) UnmarshalText(text []byte) error {
	for i, name := range pointTypeNames {
		if string(text) == name {
			*t = PointType(i)
			return nil
		}
	}
	return fmt.Errorf("invalid point type %q", text)
}
