package extract

import (
	"net/url"
	"strings"

	"ratingsync/internal/ratings"
)

// ParentURL derives the show-level URL for an episode or season detail page
// by dropping the last path segment. It returns "" when the URL has no deeper
// segment to drop, or when the kind never has a parent.
func ParentURL(sourceURL string, kind ratings.Kind) string {
	switch kind {
	case ratings.KindEpisode, ratings.KindSeason, ratings.KindSeries:
	default:
		return ""
	}

	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	// A parent exists only for URLs shaped like /film/<show>/<episode>/.
	if len(segments) < 3 {
		return ""
	}
	parsed.Path = "/" + strings.Join(segments[:len(segments)-1], "/") + "/"
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}
