package testsupport

import (
	"fmt"
	"strings"
)

// ListingPage wraps rows in the listing-table markup the walker parses.
func ListingPage(rows ...string) string {
	return `<html><body><table><tbody>` + strings.Join(rows, "") + `</tbody></table></body></html>`
}

// ListingRow builds one rated-item row. info is the parenthesized year and
// kind annotation, e.g. "(2020)" or "(seriál) (2022)".
func ListingRow(title, href, info, stars, date string) string {
	return fmt.Sprintf(`<tr>
		<td class="name"><a class="film-title-name" href=%q>%s</a>
			<span class="film-title-info">%s</span></td>
		<td><span class="star-rating"><span class="stars stars-%s"></span></span></td>
		<td class="date-only">%s</td>
	</tr>`, href, title, info, stars, date)
}

// DetailPage builds a minimal detail page carrying an original-title block
// and, when imdbID is non-empty, an IMDb profile button.
func DetailPage(imdbID, originalTitle string) string {
	imdb := ""
	if imdbID != "" {
		imdb = fmt.Sprintf(`<a class="button-imdb" href="https://www.imdb.com/title/%s/">IMDb</a>`, imdbID)
	}
	return fmt.Sprintf(`<html><body>
		<div class="film-header-name"><ul class="film-names"><li>%s</li></ul></div>
		%s
	</body></html>`, originalTitle, imdb)
}
