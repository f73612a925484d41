package textmatch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var wordSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Normalize folds a string for comparison: lower-case, trimmed, diacritics
// stripped ("Canción" -> "cancion"). The operation is idempotent.
func Normalize(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))

	// NFD decomposition, then drop combining marks
	decomposed := norm.NFD.String(lower)
	var out strings.Builder
	out.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out.WriteRune(r)
	}

	return norm.NFC.String(out.String())
}

// Words splits a normalized string into its non-empty words.
func Words(s string) []string {
	parts := wordSplitPattern.Split(Normalize(s), -1)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// ContainsWord reports whether text contains word as a whole word
// (both sides normalized).
func ContainsWord(text, word string) bool {
	target := Normalize(word)
	if target == "" {
		return false
	}
	for _, w := range Words(text) {
		if w == target {
			return true
		}
	}
	return false
}
