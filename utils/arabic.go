package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks, which for Arabic covers the harakat
// (fatha, damma, kasra, shadda, sukun...) users rarely type when searching.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeArabic folds an Arabic string for matching: diacritics stripped,
// alef variants and taa marbuta collapsed, whitespace trimmed.
func NormalizeArabic(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		switch r {
		case 'أ', 'إ', 'آ', 'ٱ':
			b.WriteRune('ا')
		case 'ة':
			b.WriteRune('ه')
		case 'ى':
			b.WriteRune('ي')
		case 'ـ': // tatweel
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// MatchesArabic reports whether query matches text under normalization.
func MatchesArabic(text, query string) bool {
	return strings.Contains(NormalizeArabic(text), NormalizeArabic(query))
}
