package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text for comparison: lowercase, no diacritics,
// only [a-z0-9 '] retained, surrounding whitespace trimmed
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if isKept(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isKept(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\'':
		return true
	default:
		return false
	}
}
