package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
)

// ExternalURLFor builds the canonical IMDb title URL for an id.
func ExternalURLFor(id string) string {
	if strings.TrimSpace(id) == "" {
		return ""
	}
	return "https://www.imdb.com/title/" + id + "/"
}

// IMDBIDCascade extracts the IMDb title id from a detail page. Tactic order
// runs from the site's dedicated IMDb button down to a raw-text scan of the
// whole document.
func IMDBIDCascade() Cascade {
	return Cascade{
		Field: "externalId",
		Tactics: []Tactic{
			{
				Name: "imdb-button",
				Attempt: func(page *render.Page) string {
					href, _ := page.Find(`a.button-imdb, a[title="profil na IMDb.com"]`).First().Attr("href")
					return ratings.IMDBIDPattern.FindString(href)
				},
			},
			{
				Name: "anchor-href",
				Attempt: func(page *render.Page) string {
					var id string
					page.Find(`a[href*="imdb.com/title/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
						href, _ := sel.Attr("href")
						if found := ratings.IMDBIDPattern.FindString(href); found != "" {
							id = found
							return false
						}
						return true
					})
					return id
				},
			},
			{
				Name: "structured-data",
				Attempt: func(page *render.Page) string {
					if id := ratings.IMDBIDPattern.FindString(jsonLDString(page, "sameAs", "url")); id != "" {
						return id
					}
					return ratings.IMDBIDPattern.FindString(jsonLDRawText(page))
				},
			},
			{
				Name: "raw-text",
				Attempt: func(page *render.Page) string {
					return ratings.IMDBIDPattern.FindString(page.Text())
				},
			},
		},
	}
}
