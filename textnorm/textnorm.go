// Package textnorm turns free-text queries and catalog strings into a
// canonical, accent-insensitive form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritic marks and trims surrounding
// whitespace, so "  José " becomes "jose". It never fails: if the Unicode
// transform cannot be applied the lowercased, trimmed input is returned.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	// A fresh transformer per call; transform.Chain results are stateful.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return strings.TrimSpace(lowered)
	}
	return strings.TrimSpace(folded)
}

// Tokenize normalizes s and splits it on runs of whitespace.
// Blank input yields no tokens.
func Tokenize(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
