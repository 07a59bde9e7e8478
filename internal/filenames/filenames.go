// Package filenames maps glyph, layer and set names to file names that stay
// distinct on case-preserving but case-insensitive filesystems.
//
// Every uppercase (or titlecase) character is followed by an underscore and
// every literal underscore is doubled, so "A" becomes "A_" and "a_" becomes
// "a__". Folding the case of an encoded name can therefore never produce the
// encoding of another name.
package filenames

import (
	"strings"
	"unicode"
)

// Escape is the marker written after uppercase characters and doubled for
// literal underscores.
const Escape = '_'

// Encode transforms a name into a filesystem-safe file name.
func Encode(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		switch {
		case isUpper(r):
			b.WriteRune(r)
			b.WriteRune(Escape)
		case r == Escape:
			b.WriteRune(Escape)
			b.WriteRune(Escape)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode reverses Encode.
func Decode(filename string) string {
	var b strings.Builder
	b.Grow(len(filename))
	afterUpper, afterEscape := false, false
	for _, r := range filename {
		if r == Escape && (afterUpper || afterEscape) {
			// Marker belongs to the previous character, which is already written.
			afterUpper, afterEscape = false, false
			continue
		}
		b.WriteRune(r)
		afterUpper = isUpper(r)
		afterEscape = r == Escape
	}
	return b.String()
}

// isUpper reports characters with an uppercase mapping target, including
// Other_Uppercase symbols such as Ⓐ and Ⅰ that are not in category Lu.
func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r) || unicode.Is(unicode.Other_Uppercase, r)
}
