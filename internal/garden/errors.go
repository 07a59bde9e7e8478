package garden

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAFontgarden indicates the load root is not a directory.
	ErrNotAFontgarden = errors.New("a fontgarden must be a directory")

	// ErrDuplicateGlyph indicates a glyph is listed in more than one set.
	ErrDuplicateGlyph = errors.New("glyph listed in more than one set")

	// ErrInvalidCodepoints indicates unparseable codepoint text in a manifest.
	ErrInvalidCodepoints = errors.New("invalid codepoints")

	// ErrUnsafeName indicates a manifest names a glyph or set that does not
	// encode to a single safe path element.
	ErrUnsafeName = errors.New("unsafe name")
)

// DuplicateGlyphError reports a glyph that two manifests both claim.
type DuplicateGlyphError struct {
	Glyph    string
	Set      string
	OtherSet string
}

func (e *DuplicateGlyphError) Error() string {
	return fmt.Sprintf("cannot load set %q as glyph %q it contains is in set %q already", e.Set, e.Glyph, e.OtherSet)
}

// Is makes errors.Is(err, ErrDuplicateGlyph) hold.
func (e *DuplicateGlyphError) Is(target error) bool {
	return target == ErrDuplicateGlyph
}

// LayerError reports a failure reading or writing one layer payload.
type LayerError struct {
	Op    string
	Path  string
	Glyph string
	Layer string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("failed to %s glyph %q, layer %q at %s: %v", e.Op, e.Glyph, e.Layer, e.Path, e.Err)
}

func (e *LayerError) Unwrap() error {
	return e.Err
}
