package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ratingsync/internal/render"
	"ratingsync/internal/textutil"
)

// Tactic is one independent attempt at pulling a field out of a page. It
// returns the extracted value or "" when the page does not match.
type Tactic struct {
	Name    string
	Attempt func(*render.Page) string
}

// Cascade is an ordered list of tactics for one field. Order encodes trust:
// earlier tactics are preferred and the first non-empty result wins outright.
type Cascade struct {
	Field   string
	Tactics []Tactic
}

// Extract runs the cascade, returning the winning value and the name of the
// tactic that produced it. Both are empty when every tactic misses.
func (c Cascade) Extract(page *render.Page) (string, string) {
	if page == nil {
		return "", ""
	}
	for _, tactic := range c.Tactics {
		if value := strings.TrimSpace(tactic.Attempt(page)); value != "" {
			return value, tactic.Name
		}
	}
	return "", ""
}

// selectorText returns the trimmed text of the first node matching selector.
func selectorText(selector string) func(*render.Page) string {
	return func(page *render.Page) string {
		return textutil.NormalizeTitle(page.Find(selector).First().Text())
	}
}

// selectorAttr returns the named attribute of the first node matching selector.
func selectorAttr(selector, attr string) func(*render.Page) string {
	return func(page *render.Page) string {
		value, _ := page.Find(selector).First().Attr(attr)
		return strings.TrimSpace(value)
	}
}

// joinedSelectorText collects text from every node matching selector and
// joins the distinct values with ", ".
func joinedSelectorText(selector string, limit int) func(*render.Page) string {
	return func(page *render.Page) string {
		seen := make(map[string]struct{})
		var parts []string
		page.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if limit > 0 && len(parts) >= limit {
				return
			}
			text := textutil.NormalizeTitle(sel.Text())
			if text == "" {
				return
			}
			if _, dup := seen[text]; dup {
				return
			}
			seen[text] = struct{}{}
			parts = append(parts, text)
		})
		return strings.Join(parts, ", ")
	}
}
