package enrich

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ratingsync/internal/detailcache"
	"ratingsync/internal/extract"
	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/retry"
	"ratingsync/internal/xref"
)

// Searcher is the title-search fallback used when no identifier can be
// extracted from a detail page. *xref.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, title, year string) xref.Match
}

// Options tune one enrichment pass.
type Options struct {
	Concurrency   int
	DetailRetry   retry.Policy
	ItemDelay     time.Duration
	FlushInterval int
}

// Stats summarizes an enrichment pass.
type Stats struct {
	Processed  int64
	CacheHits  int64
	Resolved   int64
	NotFound   int64
	Failures   int64
	FetchCalls int64
}

// Enricher fills the detail fields of listed items: cached result when
// available, otherwise detail-page extraction with a parent-page fallback
// for episodic entries and a title search as the last resort.
type Enricher struct {
	fetcher   render.Fetcher
	extractor *extract.Extractor
	searcher  Searcher
	cache     *detailcache.Store
	logger    *slog.Logger
}

func New(fetcher render.Fetcher, extractor *extract.Extractor, searcher Searcher, cache *detailcache.Store, logger *slog.Logger) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		extractor: extractor,
		searcher:  searcher,
		cache:     cache,
		logger:    logging.NewComponentLogger(logger, "enrich"),
	}
}

// Run enriches items in place with a fixed pool of workers claiming work
// through a shared cursor. One item failing never stops the pass; the item
// keeps its listing fields and the workers move on. Run returns early only
// when ctx is cancelled, with whatever was enriched so far applied.
func (e *Enricher) Run(ctx context.Context, items []ratings.Item, opts Options) Stats {
	if len(items) == 0 {
		return Stats{}
	}

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	var stats Stats
	var cursor atomic.Int64
	var processed atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			logger := e.logger.With(logging.Int(logging.FieldWorker, worker))
			for {
				idx := cursor.Add(1) - 1
				if idx >= int64(len(items)) {
					return
				}
				if ctx.Err() != nil {
					return
				}

				e.enrichOne(ctx, &items[idx], opts, &stats, logger)

				done := processed.Add(1)
				if opts.FlushInterval > 0 && done%int64(opts.FlushInterval) == 0 {
					if err := e.cache.Flush(); err != nil {
						logger.Warn("interim cache flush failed", logging.Error(err))
					}
				}
				if opts.ItemDelay > 0 && !sleep(ctx, opts.ItemDelay) {
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if err := e.cache.Flush(); err != nil {
		e.logger.Warn("final cache flush failed", logging.Error(err))
	}
	return stats
}

func (e *Enricher) enrichOne(ctx context.Context, item *ratings.Item, opts Options, stats *Stats, logger *slog.Logger) {
	atomic.AddInt64(&stats.Processed, 1)

	if entry, found := e.cache.Get(item.SourceURL); found {
		atomic.AddInt64(&stats.CacheHits, 1)
		if entry.Status == detailcache.StatusResolved {
			atomic.AddInt64(&stats.Resolved, 1)
		} else {
			atomic.AddInt64(&stats.NotFound, 1)
		}
		// Entries without a cross-reference still carry detail-page fields
		// worth restoring.
		applyEntry(item, entry)
		return
	}

	details, err := e.lookup(ctx, item, opts, stats, logger)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		atomic.AddInt64(&stats.Failures, 1)
		logger.Warn("item enrichment failed",
			logging.String(logging.FieldTitle, item.Title),
			logging.String(logging.FieldSourceURL, item.SourceURL),
			logging.Error(err),
			logging.String(logging.FieldImpact, "item kept with listing fields only"))
		return
	}

	applyDetails(item, details)
	if details.ExternalID != "" {
		atomic.AddInt64(&stats.Resolved, 1)
	} else {
		atomic.AddInt64(&stats.NotFound, 1)
	}
	e.cache.Put(item.SourceURL, detailcache.Entry{
		ExternalID:    details.ExternalID,
		ExternalURL:   details.ExternalURL,
		OriginalTitle: details.OriginalTitle,
		Genre:         details.Genre,
		Director:      details.Director,
		Cast:          details.Cast,
		Description:   details.Description,
	})
}

func (e *Enricher) lookup(ctx context.Context, item *ratings.Item, opts Options, stats *Stats, logger *slog.Logger) (extract.Details, error) {
	page, err := retry.Do(ctx, opts.DetailRetry, func(ctx context.Context) (*render.Page, error) {
		atomic.AddInt64(&stats.FetchCalls, 1)
		return e.fetcher.Fetch(ctx, item.SourceURL)
	})
	if err != nil {
		return extract.Details{}, err
	}

	details := e.extractor.Details(page)
	if !details.Complete() {
		if parent := extract.ParentURL(item.SourceURL, item.Kind); parent != "" {
			atomic.AddInt64(&stats.FetchCalls, 1)
			if parentPage, perr := e.fetcher.Fetch(ctx, parent); perr == nil {
				details = details.Merge(e.extractor.Details(parentPage))
			} else if ctx.Err() != nil {
				return extract.Details{}, ctx.Err()
			} else {
				logger.Debug("parent page fetch failed",
					logging.String(logging.FieldSourceURL, parent),
					logging.Error(perr))
			}
		}
	}

	if details.ExternalID == "" && e.searcher != nil {
		title := item.OriginalTitle
		if title == "" {
			title = details.OriginalTitle
		}
		if title == "" {
			title = item.Title
		}
		if match := e.searcher.Search(ctx, title, item.Year); match.ExternalID != "" {
			details.ExternalID = match.ExternalID
			details.ExternalURL = match.ExternalURL
			logger.Debug("identifier recovered by search",
				logging.String(logging.FieldTitle, item.Title),
				logging.String("external_id", match.ExternalID))
		}
	}
	return details, nil
}

func applyEntry(item *ratings.Item, entry detailcache.Entry) {
	item.ExternalID = entry.ExternalID
	item.ExternalURL = entry.ExternalURL
	item.OriginalTitle = entry.OriginalTitle
	item.Genre = entry.Genre
	item.Director = entry.Director
	item.Cast = entry.Cast
	item.Description = entry.Description
}

func applyDetails(item *ratings.Item, details extract.Details) {
	item.ExternalID = details.ExternalID
	item.ExternalURL = details.ExternalURL
	item.OriginalTitle = details.OriginalTitle
	item.Genre = details.Genre
	item.Director = details.Director
	item.Cast = details.Cast
	item.Description = details.Description
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
