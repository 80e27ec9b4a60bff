package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ratingsync/internal/config"
	"ratingsync/internal/dataset"
	"ratingsync/internal/detailcache"
	"ratingsync/internal/enrich"
	"ratingsync/internal/extract"
	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/retry"
	"ratingsync/internal/runstate"
	"ratingsync/internal/walk"
	"ratingsync/internal/xref"
)

// RunOptions select per-invocation behavior that is not part of the config.
type RunOptions struct {
	// Resume seeds the walk from the last checkpoint instead of page one.
	Resume bool
}

// Summary reports what one run accomplished.
type Summary struct {
	RunID             string
	PagesWalked       int
	Total             int
	WithExternalID    int
	WithOriginalTitle int
	CacheHits         int
	NotFound          int
	Failures          int
	Resumed           bool
	CSVPath           string
	JSONPath          string
	CatalogPath       string
	Elapsed           time.Duration
}

// Harvester wires the full pipeline: walk the listing, enrich the items,
// and persist the dataset. Fetcher and Searcher are built from the config
// when nil; tests inject stubs.
type Harvester struct {
	Fetcher  render.Fetcher
	Searcher enrich.Searcher

	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Harvester {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Harvester{cfg: cfg, logger: logger}
}

// Run executes one harvest under the single-instance lock. The run state
// checkpoint survives interruption and is cleared only after the dataset
// has been written.
func (h *Harvester) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	start := time.Now()
	cfg := h.cfg

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	logger := h.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("harvest starting",
		logging.String("source", cfg.Source.BaseURL),
		logging.Bool("resume", opts.Resume),
		logging.Bool("skip_details", cfg.Harvest.SkipDetails))

	fetcher, err := h.fetcher(logger)
	if err != nil {
		return nil, err
	}

	checkpoint := runstate.New(cfg.RunStatePath(), logger)
	walkOpts := walk.Options{
		ListingURL: h.listingURL,
		MaxPages:   cfg.Harvest.MaxPages,
		MaxItems:   cfg.Harvest.MaxItems,
		PageRetry: retry.Policy{
			Attempts:  cfg.Harvest.PageRetryAttempts,
			BaseDelay: time.Duration(cfg.Harvest.PageRetryDelayMS) * time.Millisecond,
			Fixed:     true,
		},
		CheckpointInterval: cfg.Harvest.CheckpointPageInterval,
		Checkpoint:         checkpoint,
	}

	resumed := false
	if opts.Resume {
		state, err := checkpoint.Load()
		if err != nil {
			logger.Warn("run state unreadable, starting from page one", logging.Error(err))
		} else if state != nil {
			walkOpts.Seed = state.Items
			walkOpts.StartPage = state.LastPage + 1
			resumed = true
			logger.Info("resuming interrupted run",
				logging.Int(logging.FieldPage, walkOpts.StartPage),
				logging.Int("seeded_items", len(state.Items)))
		}
	}

	walked, err := walk.New(fetcher, logger).Walk(ctx, walkOpts)
	if err != nil {
		// Preserve progress for a later --resume.
		if saveErr := checkpoint.Save(walked.LastPage, walked.Items); saveErr != nil {
			logger.Warn("failed to save run state", logging.Error(saveErr))
		}
		return nil, fmt.Errorf("walk listing: %w", err)
	}
	items := walked.Items
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	summary := &Summary{
		RunID:       runID,
		PagesWalked: walked.LastPage,
		Total:       len(items),
		Resumed:     resumed,
	}

	if !cfg.Harvest.SkipDetails {
		cache := detailcache.NewStore(cfg.CachePath(), cfg.Cache.Enabled, logger)
		enricher := enrich.New(fetcher, extract.New(logger), h.searcher(logger), cache, logger)
		stats := enricher.Run(ctx, items, enrich.Options{
			Concurrency: cfg.Harvest.Concurrency,
			DetailRetry: retry.Policy{
				Attempts:  cfg.Harvest.DetailRetryAttempts,
				BaseDelay: time.Duration(cfg.Harvest.DetailRetryBaseMS) * time.Millisecond,
			},
			ItemDelay:     time.Duration(cfg.Harvest.EffectiveItemDelayMS()) * time.Millisecond,
			FlushInterval: cfg.Harvest.CacheFlushItemInterval,
		})
		summary.CacheHits = int(stats.CacheHits)
		summary.NotFound = int(stats.NotFound)
		summary.Failures = int(stats.Failures)
		if err := ctx.Err(); err != nil {
			if saveErr := checkpoint.Save(walked.LastPage, items); saveErr != nil {
				logger.Warn("failed to save run state", logging.Error(saveErr))
			}
			return nil, err
		}
	}

	ratings.SortByListOrder(items)
	for _, item := range items {
		if item.Enriched() {
			summary.WithExternalID++
		}
		if item.OriginalTitle != "" {
			summary.WithOriginalTitle++
		}
	}

	summary.CSVPath = filepath.Join(cfg.Paths.OutputDir, cfg.Output.CSVName)
	summary.JSONPath = filepath.Join(cfg.Paths.OutputDir, cfg.Output.JSONName)
	if err := dataset.WriteCSV(summary.CSVPath, items); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	if err := dataset.WriteJSON(summary.JSONPath, items); err != nil {
		return nil, fmt.Errorf("write json: %w", err)
	}

	if cfg.Output.CatalogEnabled {
		if err := h.updateCatalog(ctx, items, summary); err != nil {
			// The per-run exports already landed; the catalog can catch up
			// next run.
			logger.Warn("catalog update failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "cumulative catalog is stale"))
		}
	}

	if err := checkpoint.Clear(); err != nil {
		logger.Warn("failed to clear run state", logging.Error(err))
	}

	summary.Elapsed = time.Since(start)
	logger.Info("harvest complete",
		logging.Int("total", summary.Total),
		logging.Int("with_external_id", summary.WithExternalID),
		logging.Int("cache_hits", summary.CacheHits),
		logging.Int("failures", summary.Failures),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (h *Harvester) updateCatalog(ctx context.Context, items []ratings.Item, summary *Summary) error {
	catalog, err := dataset.OpenCatalog(h.cfg.CatalogPath())
	if err != nil {
		return err
	}
	defer func() { _ = catalog.Close() }()
	if err := catalog.Upsert(ctx, items); err != nil {
		return err
	}
	summary.CatalogPath = catalog.Path()
	return nil
}

func (h *Harvester) listingURL(page int) string {
	base := strings.TrimRight(h.cfg.Source.BaseURL, "/")
	path := h.cfg.Source.RatingsPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if page <= 1 {
		return base + path
	}
	return fmt.Sprintf("%s%s?page=%d", base, path, page)
}

func (h *Harvester) fetcher(logger *slog.Logger) (render.Fetcher, error) {
	if h.Fetcher != nil {
		return h.Fetcher, nil
	}
	fetcher, err := render.NewHTTPFetcher(render.Options{
		UserAgent:      h.cfg.Source.UserAgent,
		RequestTimeout: time.Duration(h.cfg.Source.RequestTimeout) * time.Second,
		RequestsPerSec: h.cfg.Source.RequestsPerSec,
		ConsentCookies: consentCookies(h.cfg.Source),
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build fetcher: %w", err)
	}
	return fetcher, nil
}

// consentCookies converts the configured name/value pairs into cookies for
// the source site.
func consentCookies(source config.Source) map[string][]*http.Cookie {
	if len(source.ConsentCookies) == 0 {
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(source.ConsentCookies))
	for name, value := range source.ConsentCookies {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	sort.Slice(cookies, func(i, j int) bool { return cookies[i].Name < cookies[j].Name })
	return map[string][]*http.Cookie{source.BaseURL: cookies}
}

func (h *Harvester) searcher(logger *slog.Logger) enrich.Searcher {
	if h.Searcher != nil {
		return h.Searcher
	}
	return xref.NewClient(xref.Options{
		BaseURL:        h.cfg.IMDB.BaseURL,
		SuggestionBase: h.cfg.IMDB.SuggestionBaseURL,
		MaxCandidates:  h.cfg.IMDB.MaxCandidates,
		UserAgent:      h.cfg.Source.UserAgent,
		Logger:         logger,
	})
}
