package domain

import (
	"strings"
	"unicode"
)

// NormalizeTerm reduces raw lookup input to its canonical key: only letters
// and digits are kept (any script), and the result is lowercased.
// Punctuation-only input yields "", which callers must reject.
func NormalizeTerm(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		// Per-rune mapping keeps the result stable under re-normalization;
		// strings.ToLower may expand a rune into letter + combining mark.
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalName trims and lowercases a generated language name or dictionary
// form before storage. Inner spaces are kept, so "Ice Cream" stays two words.
func CanonicalName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
