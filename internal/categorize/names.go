package categorize

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// scriptSuffixes maps production name suffixes such as "de-cy" to scripts.
var scriptSuffixes = map[string]string{
	"ar":   "Arabic",
	"arab": "Arabic",
	"armn": "Armenian",
	"beng": "Bengali",
	"cy":   "Cyrillic",
	"cyrl": "Cyrillic",
	"deva": "Devanagari",
	"ethi": "Ethiopic",
	"geor": "Georgian",
	"gr":   "Greek",
	"grek": "Greek",
	"gujr": "Gujarati",
	"guru": "Gurmukhi",
	"hb":   "Hebrew",
	"hebr": "Hebrew",
	"khmr": "Khmer",
	"knda": "Kannada",
	"lao":  "Lao",
	"latn": "Latin",
	"mlym": "Malayalam",
	"mymr": "Myanmar",
	"orya": "Oriya",
	"sinh": "Sinhala",
	"taml": "Tamil",
	"telu": "Telugu",
	"thai": "Thai",
	"tibt": "Tibetan",
}

// glyphNames maps well-known glyph names to the character they draw.
var glyphNames = map[string]rune{
	"AE":         'Æ',
	"ae":         'æ',
	"OE":         'Œ',
	"oe":         'œ',
	"Eth":        'Ð',
	"eth":        'ð',
	"Thorn":      'Þ',
	"thorn":      'þ',
	"Oslash":     'Ø',
	"oslash":     'ø',
	"Lslash":     'Ł',
	"lslash":     'ł',
	"Eng":        'Ŋ',
	"eng":        'ŋ',
	"germandbls": 'ß',
	"dotlessi":   'ı',
	"dotlessj":   'ȷ',
	"Dcroat":     'Đ',
	"dcroat":     'đ',
	"Hbar":       'Ħ',
	"hbar":       'ħ',
	"longs":      'ſ',

	"kgreenlandic": 'ĸ',

	"Alpha":   'Α',
	"Beta":    'Β',
	"Gamma":   'Γ',
	"Delta":   'Δ',
	"Epsilon": 'Ε',
	"Zeta":    'Ζ',
	"Eta":     'Η',
	"Theta":   'Θ',
	"Iota":    'Ι',
	"Kappa":   'Κ',
	"Lambda":  'Λ',
	"Mu":      'Μ',
	"Nu":      'Ν',
	"Xi":      'Ξ',
	"Omicron": 'Ο',
	"Pi":      'Π',
	"Rho":     'Ρ',
	"Sigma":   'Σ',
	"Tau":     'Τ',
	"Upsilon": 'Υ',
	"Phi":     'Φ',
	"Chi":     'Χ',
	"Psi":     'Ψ',
	"Omega":   'Ω',
	"alpha":   'α',
	"beta":    'β',
	"gamma":   'γ',
	"delta":   'δ',
	"epsilon": 'ε',
	"zeta":    'ζ',
	"eta":     'η',
	"theta":   'θ',
	"iota":    'ι',
	"kappa":   'κ',
	"lambda":  'λ',
	"mu":      'μ',
	"nu":      'ν',
	"xi":      'ξ',
	"omicron": 'ο',
	"pi":      'π',
	"rho":     'ρ',
	"sigma":   'σ',
	"tau":     'τ',
	"upsilon": 'υ',
	"phi":     'φ',
	"chi":     'χ',
	"psi":     'ψ',
	"omega":   'ω',

	"sigmafinal": 'ς',
}

// markSuffixes are accent names that follow a base letter in composite
// glyph names such as "aacute" or "Scommaaccent".
var markSuffixes = []string{
	"acute",
	"breve",
	"caron",
	"cedilla",
	"circumflex",
	"commaaccent",
	"dieresis",
	"dotaccent",
	"grave",
	"hungarumlaut",
	"macron",
	"ogonek",
	"ring",
	"tilde",
}

// parseUniName decodes "uniXXXX" and "uXXXX" to "uXXXXXX" names. For
// ligature names such as "uni00660069" the first code point is returned.
func parseUniName(name string) (rune, bool) {
	var digits string
	switch {
	case strings.HasPrefix(name, "uni") && len(name) >= 7 && (len(name)-3)%4 == 0:
		digits = name[3:7]
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		digits = name[1:]
	default:
		return 0, false
	}
	for _, c := range digits {
		if !isUpperHex(c) {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

func isUpperHex(c rune) bool {
	return ('0' <= c && c <= '9') || ('A' <= c && c <= 'F')
}

func singleRune(name string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return 0, false
	}
	return r, true
}

// splitAccented splits "aacute" into its base "a" when the remainder is a
// known accent name.
func splitAccented(name string) (string, bool) {
	for _, mark := range markSuffixes {
		if base, found := strings.CutSuffix(name, mark); found && base != "" {
			return base, true
		}
	}
	return "", false
}
