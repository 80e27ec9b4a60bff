package extract

import (
	"regexp"
	"strings"

	"ratingsync/internal/render"
	"ratingsync/internal/textutil"
)

// labeledOriginalTitle matches a labeled phrase in plain page text, covering
// both the source language and English variants of the label.
var labeledOriginalTitle = regexp.MustCompile(`(?i)(?:původní název|original title)\s*:\s*([^\n|]+)`)

// OriginalTitleCascade extracts the work's original-language title. The
// source site changed its markup over the years, so newer layout selectors
// come first and legacy ones trail, before structured data and a labeled-text
// scan close out the cascade.
func OriginalTitleCascade() Cascade {
	return Cascade{
		Field: "originalTitle",
		Tactics: []Tactic{
			{
				// Current layout: names list in the film header, with the
				// original title carried on an item flagged by its country icon.
				Name:    "header-names",
				Attempt: selectorText(`.film-header-name .film-names li:first-of-type`),
			},
			{
				Name:    "names-list",
				Attempt: selectorText(`ul.film-names li:first-of-type`),
			},
			{
				// Legacy layout used a simple .names block.
				Name:    "legacy-names",
				Attempt: selectorText(`.names .item:first-of-type, .names li:first-of-type`),
			},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					return textutil.NormalizeTitle(jsonLDString(page, "alternateName", "originalTitle"))
				},
			},
			{
				Name: "labeled-text",
				Attempt: func(page *render.Page) string {
					match := labeledOriginalTitle.FindStringSubmatch(page.Text())
					if len(match) < 2 {
						return ""
					}
					return textutil.NormalizeTitle(strings.TrimSpace(match[1]))
				},
			},
		},
	}
}
