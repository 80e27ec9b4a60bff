package walk

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/textutil"
)

var (
	yearInfo   = regexp.MustCompile(`\((\d{4})\)`)
	kindInfo   = regexp.MustCompile(`\(([^)0-9][^)]*)\)`)
	starsClass = regexp.MustCompile(`stars-(\d)`)
)

// ParseListing extracts the rated-item rows from one listing page. Rows
// missing a linked title are skipped; everything else degrades to empty
// fields. Both the current table layout and the legacy list layout parse.
func ParseListing(page *render.Page) []ratings.Item {
	if page == nil {
		return nil
	}

	rows := page.Find(`table tbody tr`)
	if rows.Length() == 0 {
		rows = page.Find(`table tr:has(td)`)
	}

	var items []ratings.Item
	rows.Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a.film-title-name, td.name a, a[href*="/film/"]`).First()
		title := textutil.NormalizeTitle(link.Text())
		href, _ := link.Attr("href")
		sourceURL := page.AbsURL(href)
		if title == "" || sourceURL == "" {
			return
		}

		info := row.Find(`.film-title-info, .film-info, span.info`).Text()
		item := ratings.Item{
			Title:     title,
			Year:      firstSubmatch(yearInfo, info),
			Kind:      parseRowKind(info),
			Rating:    parseRowRating(row),
			RatedOn:   strings.TrimSpace(row.Find(`td.date-only, td.date, .date-only`).First().Text()),
			SourceURL: sourceURL,
		}
		items = append(items, item)
	})
	return items
}

func firstSubmatch(pattern *regexp.Regexp, s string) string {
	if m := pattern.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return ""
}

func parseRowKind(info string) ratings.Kind {
	for _, m := range kindInfo.FindAllStringSubmatch(info, -1) {
		if kind := ratings.ParseKind(m[1]); kind != ratings.KindWork {
			return kind
		}
	}
	return ratings.KindWork
}

func parseRowRating(row *goquery.Selection) string {
	stars := row.Find(`span.stars, .star-rating .stars`).First()
	class, _ := stars.Attr("class")
	if strings.Contains(class, "trash") {
		return "0"
	}
	return firstSubmatch(starsClass, class)
}
