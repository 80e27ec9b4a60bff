package enrich

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ratingsync/internal/detailcache"
	"ratingsync/internal/extract"
	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/retry"
	"ratingsync/internal/xref"
)

type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]bool
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (*render.Page, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail[rawURL] {
		return nil, errors.New("boom")
	}
	html, ok := f.pages[rawURL]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", rawURL)
	}
	return render.NewPageFromString(rawURL, html)
}

func (f *stubFetcher) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubSearcher struct {
	match xref.Match
	calls int
}

func (s *stubSearcher) Search(context.Context, string, string) xref.Match {
	s.calls++
	return s.match
}

func detailHTML(imdbID, originalTitle string) string {
	imdb := ""
	if imdbID != "" {
		imdb = fmt.Sprintf(`<a class="button-imdb" href="https://www.imdb.com/title/%s/">IMDb</a>`, imdbID)
	}
	return fmt.Sprintf(`<html><body>
		<div class="film-header-name"><ul class="film-names"><li>%s</li></ul></div>
		%s
	</body></html>`, originalTitle, imdb)
}

func newTestEnricher(t *testing.T, fetcher render.Fetcher, searcher Searcher) (*Enricher, *detailcache.Store) {
	t.Helper()
	cache := detailcache.NewStore(filepath.Join(t.TempDir(), "details.json"), true, nil)
	return New(fetcher, extract.New(nil), searcher, cache, nil), cache
}

func defaultOptions() Options {
	return Options{
		Concurrency: 2,
		DetailRetry: retry.Policy{Attempts: 2, BaseDelay: time.Millisecond},
	}
}

func TestRunEnrichesFromDetailPage(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.test/film/1-duna/": detailHTML("tt15239678", "Dune: Part Two"),
		"https://example.test/film/2-haj/":  detailHTML("tt0057012", "Dr. Strangelove"),
	}}
	enricher, cache := newTestEnricher(t, fetcher, nil)

	items := []ratings.Item{
		{Title: "Duna: Část druhá", SourceURL: "https://example.test/film/1-duna/"},
		{Title: "Dr. Divnoláska", SourceURL: "https://example.test/film/2-haj/"},
	}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if stats.Resolved != 2 || stats.Failures != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if items[0].ExternalID != "tt15239678" {
		t.Errorf("external id = %q", items[0].ExternalID)
	}
	if items[0].ExternalURL == "" {
		t.Error("external url not set")
	}
	if items[1].OriginalTitle != "Dr. Strangelove" {
		t.Errorf("original title = %q", items[1].OriginalTitle)
	}

	entry, found := cache.Get(items[0].SourceURL)
	if !found || entry.Status != detailcache.StatusResolved {
		t.Errorf("cache entry = %+v found=%v", entry, found)
	}
}

func TestRunCacheHitSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	enricher, cache := newTestEnricher(t, fetcher, nil)

	sourceURL := "https://example.test/film/1-cached/"
	cache.Put(sourceURL, detailcache.Entry{
		ExternalID:    "tt0111161",
		ExternalURL:   "https://www.imdb.com/title/tt0111161/",
		OriginalTitle: "The Shawshank Redemption",
	})

	items := []ratings.Item{{Title: "Vykoupení z věznice Shawshank", SourceURL: sourceURL}}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if fetcher.fetchCount() != 0 {
		t.Fatalf("fetch calls = %d, want 0 on cache hit", fetcher.fetchCount())
	}
	if stats.CacheHits != 1 || stats.Resolved != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if items[0].ExternalID != "tt0111161" || items[0].OriginalTitle != "The Shawshank Redemption" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestRunFailureContained(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]string{
			"https://example.test/film/2-good/": detailHTML("tt0468569", "The Dark Knight"),
		},
		fail: map[string]bool{"https://example.test/film/1-bad/": true},
	}
	enricher, _ := newTestEnricher(t, fetcher, nil)

	items := []ratings.Item{
		{Title: "Bad", SourceURL: "https://example.test/film/1-bad/"},
		{Title: "Good", SourceURL: "https://example.test/film/2-good/"},
	}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if stats.Failures != 1 || stats.Resolved != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if items[0].ExternalID != "" {
		t.Errorf("failed item external id = %q, want empty", items[0].ExternalID)
	}
	if items[1].ExternalID != "tt0468569" {
		t.Errorf("good item external id = %q", items[1].ExternalID)
	}
}

func TestRunParentPageFallback(t *testing.T) {
	episodeURL := "https://example.test/film/721220-odlouceni/1023451-svoboda/"
	parentURL := "https://example.test/film/721220-odlouceni/"
	fetcher := &stubFetcher{pages: map[string]string{
		episodeURL: detailHTML("", ""),
		parentURL:  detailHTML("tt11280740", "Severance"),
	}}
	enricher, _ := newTestEnricher(t, fetcher, nil)

	items := []ratings.Item{{
		Title:     "Odloučení - Svoboda",
		Kind:      ratings.KindEpisode,
		SourceURL: episodeURL,
	}}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if stats.Resolved != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if items[0].ExternalID != "tt11280740" || items[0].OriginalTitle != "Severance" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestRunSearchFallback(t *testing.T) {
	sourceURL := "https://example.test/film/5-obscure/"
	fetcher := &stubFetcher{pages: map[string]string{
		sourceURL: detailHTML("", "Obscure Picture"),
	}}
	searcher := &stubSearcher{match: xref.Match{
		ExternalID:  "tt9999999",
		ExternalURL: "https://www.imdb.com/title/tt9999999/",
	}}
	enricher, cache := newTestEnricher(t, fetcher, searcher)

	items := []ratings.Item{{Title: "Neznámý film", Year: "1998", SourceURL: sourceURL}}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if searcher.calls != 1 {
		t.Fatalf("search calls = %d, want 1", searcher.calls)
	}
	if stats.Resolved != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if items[0].ExternalID != "tt9999999" {
		t.Errorf("external id = %q", items[0].ExternalID)
	}
	if entry, _ := cache.Get(sourceURL); entry.Status != detailcache.StatusResolved {
		t.Errorf("cache status = %q", entry.Status)
	}
}

func TestRunCacheHitWithoutMatchKeepsDetailFields(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	enricher, cache := newTestEnricher(t, fetcher, nil)

	sourceURL := "https://example.test/film/7-nowhere/"
	cache.Put(sourceURL, detailcache.Entry{
		Status:        detailcache.StatusNotFound,
		OriginalTitle: "Nowhere To Be Found",
		Genre:         "Drama",
	})

	items := []ratings.Item{{Title: "Nikde", SourceURL: sourceURL}}
	stats := enricher.Run(context.Background(), items, defaultOptions())

	if fetcher.fetchCount() != 0 {
		t.Fatalf("fetch calls = %d, want 0 on cache hit", fetcher.fetchCount())
	}
	if stats.CacheHits != 1 || stats.NotFound != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if items[0].OriginalTitle != "Nowhere To Be Found" || items[0].Genre != "Drama" {
		t.Errorf("cached detail fields lost: %+v", items[0])
	}
	if items[0].ExternalID != "" {
		t.Errorf("external id = %q, want empty without a match", items[0].ExternalID)
	}
}

func TestRunConfirmedAbsenceCachedAcrossRuns(t *testing.T) {
	sourceURL := "https://example.test/film/7-nowhere/"
	fetcher := &stubFetcher{pages: map[string]string{
		sourceURL: detailHTML("", "Nowhere To Be Found"),
	}}
	searcher := &stubSearcher{}
	enricher, cache := newTestEnricher(t, fetcher, searcher)

	items := []ratings.Item{{Title: "Nikde", SourceURL: sourceURL}}
	first := enricher.Run(context.Background(), items, defaultOptions())
	if first.NotFound != 1 {
		t.Fatalf("first run stats = %+v", first)
	}
	if entry, found := cache.Get(sourceURL); !found || entry.Status != detailcache.StatusNotFound {
		t.Fatalf("entry = %+v found=%v, want confirmed absence", entry, found)
	}

	fetched := fetcher.fetchCount()
	second := enricher.Run(context.Background(), items, defaultOptions())
	if second.CacheHits != 1 || second.NotFound != 1 {
		t.Errorf("second run stats = %+v", second)
	}
	if fetcher.fetchCount() != fetched {
		t.Errorf("confirmed absence triggered %d extra fetches", fetcher.fetchCount()-fetched)
	}
	if items[0].OriginalTitle != "Nowhere To Be Found" {
		t.Errorf("original title after cached run = %q", items[0].OriginalTitle)
	}
}

func TestRunManyItemsSmallPool(t *testing.T) {
	pages := map[string]string{}
	items := make([]ratings.Item, 20)
	for i := range items {
		u := fmt.Sprintf("https://example.test/film/%d-x/", i)
		pages[u] = detailHTML(fmt.Sprintf("tt%07d", i+1), fmt.Sprintf("Title %d", i))
		items[i] = ratings.Item{Title: fmt.Sprintf("Titul %d", i), SourceURL: u, ListIndex: i}
	}
	fetcher := &stubFetcher{pages: pages}
	enricher, _ := newTestEnricher(t, fetcher, nil)

	opts := defaultOptions()
	opts.Concurrency = 3
	opts.FlushInterval = 5
	stats := enricher.Run(context.Background(), items, opts)

	if stats.Processed != 20 || stats.Resolved != 20 {
		t.Fatalf("stats = %+v", stats)
	}
	for i, item := range items {
		if item.ExternalID == "" {
			t.Errorf("item %d missing external id", i)
		}
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{pages: map[string]string{}}
	enricher, _ := newTestEnricher(t, fetcher, nil)

	items := []ratings.Item{{Title: "X", SourceURL: "https://example.test/film/1-x/"}}
	stats := enricher.Run(ctx, items, defaultOptions())
	if stats.Failures != 0 {
		t.Errorf("cancellation counted as failure: %+v", stats)
	}
	if items[0].ExternalID != "" {
		t.Errorf("item modified after cancel: %+v", items[0])
	}
}
