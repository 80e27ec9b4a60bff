package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespaceRun matches any run of whitespace for collapsing.
var whitespaceRun = regexp.MustCompile(`\s+`)

// decorativeSuffix matches the "(více)" / "(more)" show-more annotation the
// source site appends to long titles, case-insensitively.
var decorativeSuffix = regexp.MustCompile(`(?i)\s*\((?:více|more)\)\s*$`)

// NormalizeTitle collapses whitespace, trims, and strips the decorative
// trailing marker from a scraped title. Idempotent; empty input stays empty.
func NormalizeTitle(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := whitespaceRun.ReplaceAllString(raw, " ")
	cleaned = decorativeSuffix.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

var comparisonFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldForComparison lowercases and strips diacritics so titles from the
// accented source site compare against their Latin-script counterparts.
func FoldForComparison(s string) string {
	folded, _, err := transform.String(comparisonFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Words splits a folded string into its whitespace-delimited words.
func Words(s string) []string {
	return strings.Fields(FoldForComparison(s))
}

// WordOverlap counts words shared between two titles after folding.
func WordOverlap(a, b string) int {
	wordsA := Words(a)
	if len(wordsA) == 0 {
		return 0
	}
	setB := make(map[string]struct{})
	for _, w := range Words(b) {
		setB[w] = struct{}{}
	}
	overlap := 0
	for _, w := range wordsA {
		if _, ok := setB[w]; ok {
			overlap++
			delete(setB, w)
		}
	}
	return overlap
}
