package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips accents so "Peña" matches "pena".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// contains is a folded substring match. An empty needle matches everything.
func contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// newCollator orders names the Spanish way. Collators are not safe for
// concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
}
