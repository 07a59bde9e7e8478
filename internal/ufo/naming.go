package ufo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidName is returned for names that break the UFO naming rules.
var ErrInvalidName = errors.New("invalid name")

// NamingError reports a glyph, anchor, component or layer name that a UFO
// cannot carry.
type NamingError struct {
	// Kind is "glyph", "anchor", "component" or "layer".
	Kind string
	// Glyph is the glyph the name was found in, if any.
	Glyph string
	Name  string
	Err   error
}

func (e *NamingError) Error() string {
	if e.Glyph != "" && e.Kind != "glyph" {
		return fmt.Sprintf("invalid %s name %q in glyph %q: %v", e.Kind, e.Name, e.Glyph, e.Err)
	}
	return fmt.Sprintf("invalid %s name %q: %v", e.Kind, e.Name, e.Err)
}

func (e *NamingError) Unwrap() error {
	return e.Err
}

// ValidateName checks a name against the UFO identifier rules: it must be
// non-empty and free of control characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for _, r := range name {
		if isControl(r) {
			return fmt.Errorf("%w: control character %U", ErrInvalidName, r)
		}
	}
	return nil
}

func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

const illegalFileChars = "\"*+/:<>?[\\]|"

var reservedFileNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "clock$": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

const maxFileNameLength = 255

// userNameToFileName implements the UFO 3 user name to file name convention.
// existing holds the lowercased names already taken in the target directory.
func userNameToFileName(name, prefix, suffix string, existing map[string]bool) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0 && r == '.' && prefix == "":
			b.WriteRune('_')
		case isControl(r) || strings.ContainsRune(illegalFileChars, r):
			b.WriteRune('_')
		case unicode.IsUpper(r):
			b.WriteRune(r)
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	parts := strings.Split(b.String(), ".")
	for i, part := range parts {
		if reservedFileNames[strings.ToLower(part)] {
			parts[i] = "_" + part
		}
	}
	base := strings.Join(parts, ".")

	if budget := maxFileNameLength - len(prefix) - len(suffix); len(base) > budget {
		base = truncateUTF8(base, budget)
	}

	full := prefix + base + suffix
	if !existing[strings.ToLower(full)] {
		existing[strings.ToLower(full)] = true
		return full
	}

	for counter := 1; ; counter++ {
		n := fmt.Sprintf("%015d", counter)
		stem := base
		if budget := maxFileNameLength - len(prefix) - len(suffix) - len(n); len(stem) > budget {
			stem = truncateUTF8(stem, budget)
		}
		full = prefix + stem + n + suffix
		if !existing[strings.ToLower(full)] {
			existing[strings.ToLower(full)] = true
			return full
		}
	}
}

func truncateUTF8(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
