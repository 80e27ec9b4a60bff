package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DescriptionLimit is the character budget for plot blurbs in the dataset.
const DescriptionLimit = 250

// distributorNote matches parenthetical distributor call-outs embedded in
// source-site blurbs, e.g. "(Netflix)" or "(HBO Max)".
var distributorNote = regexp.MustCompile(`\s*\((?:Netflix|HBO(?:\s*Max)?|Disney\+?|Prime Video|Apple TV\+?|SkyShowtime|Voyo|Paramount\+?)\)`)

var sentenceEnd = regexp.MustCompile(`[.!?]["')\]]?\s`)

// CleanDescription strips distributor noise, collapses whitespace, and
// truncates to DescriptionLimit, preferring the last sentence boundary before
// the limit over a mid-sentence cut.
func CleanDescription(raw string) string {
	cleaned := distributorNote.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
	if len(cleaned) <= DescriptionLimit {
		return cleaned
	}

	// Back up to a rune boundary so the cut never splits a multi-byte
	// character.
	limit := DescriptionLimit
	for limit > 0 && !utf8.RuneStart(cleaned[limit]) {
		limit--
	}
	head := cleaned[:limit]
	if cut := lastSentenceEnd(head); cut > DescriptionLimit/2 {
		return strings.TrimSpace(head[:cut])
	}
	// No usable sentence boundary; cut at the last word instead.
	if space := strings.LastIndexByte(head, ' '); space > 0 {
		head = head[:space]
	}
	return strings.TrimSpace(head) + "…"
}

// lastSentenceEnd returns the index just past the final sentence terminator
// in s, or -1 when none exists.
func lastSentenceEnd(s string) int {
	matches := sentenceEnd.FindAllStringIndex(s+" ", -1)
	if len(matches) == 0 {
		return -1
	}
	last := matches[len(matches)-1]
	end := last[1] - 1 // drop the trailing space the pattern consumed
	if end > len(s) {
		end = len(s)
	}
	return end
}
