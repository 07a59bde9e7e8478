// Package categorize guesses the writing system a glyph belongs to. The
// result names the set a glyph is filed under when it is first merged into a
// fontgarden.
package categorize

import (
	"sort"
	"strings"
	"unicode"
)

// Categorizer looks up the script of a code point or a glyph name. Script
// names follow the Unicode script property, e.g. "Latin" or "Cyrillic".
type Categorizer interface {
	ScriptForCodepoint(r rune) (string, bool)
	ScriptForName(name string) (string, bool)
}

// Glyph categorizes a glyph. When the glyph has code points the first one is
// decisive. Otherwise the full name is tried, then the part of the name before
// the first ".".
func Glyph(c Categorizer, name string, codepoints []rune) (string, bool) {
	if len(codepoints) > 0 {
		return c.ScriptForCodepoint(codepoints[0])
	}
	if script, ok := c.ScriptForName(name); ok {
		return script, true
	}
	if base, _, found := strings.Cut(name, "."); found {
		return c.ScriptForName(base)
	}
	return "", false
}

// Default returns the built-in categorizer backed by the Unicode script
// tables and a static table of production glyph names.
func Default() Categorizer {
	return defaultCategorizer{}
}

type defaultCategorizer struct{}

// Scripts that never classify a glyph on their own.
var unclassified = map[string]bool{
	"Common":    true,
	"Inherited": true,
	"Unknown":   true,
}

var scriptNames = func() []string {
	names := make([]string, 0, len(unicode.Scripts))
	for name := range unicode.Scripts {
		if !unclassified[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}()

func (defaultCategorizer) ScriptForCodepoint(r rune) (string, bool) {
	for _, name := range scriptNames {
		if unicode.Is(unicode.Scripts[name], r) {
			return name, true
		}
	}
	return "", false
}

func (c defaultCategorizer) ScriptForName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if r, ok := glyphNames[name]; ok {
		return c.ScriptForCodepoint(r)
	}
	if r, ok := parseUniName(name); ok {
		return c.ScriptForCodepoint(r)
	}
	if r, ok := singleRune(name); ok {
		return c.ScriptForCodepoint(r)
	}
	if _, suffix, found := cutLast(name, "-"); found {
		if script, ok := scriptSuffixes[suffix]; ok {
			return script, true
		}
	}
	if first, _, found := strings.Cut(name, "_"); found && first != "" {
		return c.ScriptForName(first)
	}
	if base, ok := splitAccented(name); ok {
		return c.ScriptForName(base)
	}
	return "", false
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
