package ratings

import (
	"regexp"
	"sort"
	"strings"
)

// Kind classifies what sort of work a rating refers to.
type Kind string

const (
	KindWork    Kind = "work"
	KindSeries  Kind = "series"
	KindEpisode Kind = "episode"
	KindSeason  Kind = "season"
)

// ParseKind maps free-form source annotations to a Kind, defaulting to KindWork.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "series", "seriál", "serial":
		return KindSeries
	case "episode", "epizoda":
		return KindEpisode
	case "season", "série", "serie", "řada", "season)":
		return KindSeason
	default:
		return KindWork
	}
}

// IMDBIDPattern matches the external identifier convention used throughout
// the pipeline (an IMDb title id).
var IMDBIDPattern = regexp.MustCompile(`tt\d+`)

// Item is one rated work collected from the source listing, with enrichment
// fields filled in by the detail pipeline. Optional fields are empty strings
// when absent, never null, so every serialization sees a full record.
type Item struct {
	Title         string `json:"title"`
	Year          string `json:"year"`
	Kind          Kind   `json:"kind"`
	Rating        string `json:"rating"`
	RatedOn       string `json:"ratedOn"`
	SourceURL     string `json:"sourceUrl"`
	ExternalID    string `json:"externalId"`
	ExternalURL   string `json:"externalUrl"`
	OriginalTitle string `json:"originalTitle"`
	Genre         string `json:"genre"`
	Director      string `json:"director"`
	Cast          string `json:"cast"`
	Description   string `json:"description"`

	// ListIndex preserves the listing position so results can be re-sorted
	// after concurrent enrichment completes in arbitrary order.
	ListIndex int `json:"-"`
}

// Key returns the dedup key. No two items in a collected run share one.
func (i Item) Key() string {
	return i.SourceURL + "\x00" + i.Title
}

// Enriched reports whether the item carries a resolved external identifier.
func (i Item) Enriched() bool {
	return strings.TrimSpace(i.ExternalID) != ""
}

// FieldNames lists the persisted dataset columns in their stable order.
func FieldNames() []string {
	return []string{
		"title", "year", "kind", "rating", "ratedOn", "sourceUrl",
		"externalId", "externalUrl", "originalTitle",
		"genre", "director", "cast", "description",
	}
}

// Fields returns the item's values in FieldNames order.
func (i Item) Fields() []string {
	return []string{
		i.Title, i.Year, string(i.Kind), i.Rating, i.RatedOn, i.SourceURL,
		i.ExternalID, i.ExternalURL, i.OriginalTitle,
		i.Genre, i.Director, i.Cast, i.Description,
	}
}

// SortByListOrder orders items by their original listing position.
func SortByListOrder(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].ListIndex < items[b].ListIndex
	})
}

// Dedup returns items with later duplicates (same Key) removed, preserving order.
func Dedup(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
