package walk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/retry"
	"ratingsync/internal/runstate"
)

// Options bound a walk. Zero MaxPages and MaxItems mean unbounded; the
// walker still stops when a page yields no rows or no unseen rows.
type Options struct {
	// ListingURL builds the absolute URL for a 1-based page number.
	ListingURL func(page int) string

	StartPage int
	MaxPages  int
	MaxItems  int

	// Seed carries items recovered from an earlier interrupted run so
	// the dedup set and list ordering continue where they left off.
	Seed []ratings.Item

	PageRetry          retry.Policy
	CheckpointInterval int
	Checkpoint         *runstate.Checkpoint
}

// Result is the accumulated listing plus where the walk ended.
type Result struct {
	Items    []ratings.Item
	LastPage int
}

// Walker pages through a rating listing until the source runs out of new
// rows or a configured limit trips.
type Walker struct {
	fetcher render.Fetcher
	logger  *slog.Logger
}

func New(fetcher render.Fetcher, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Walker{fetcher: fetcher, logger: logger.With(logging.String(logging.FieldComponent, "walk"))}
}

// Walk runs the pagination loop. A page whose fetch fails after retries
// ends the walk with the rows gathered so far rather than failing the run;
// only context cancellation returns an error.
func (w *Walker) Walk(ctx context.Context, opts Options) (Result, error) {
	if opts.ListingURL == nil {
		return Result{}, fmt.Errorf("walk: listing URL builder is required")
	}

	items := append([]ratings.Item(nil), opts.Seed...)
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		seen[items[i].Key()] = struct{}{}
	}

	page := opts.StartPage
	if page < 1 {
		page = 1
	}
	res := Result{Items: items, LastPage: page - 1}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if opts.MaxPages > 0 && page > opts.MaxPages {
			w.logger.Info("page limit reached", logging.Int("max_pages", opts.MaxPages))
			return res, nil
		}

		pageURL := opts.ListingURL(page)
		start := time.Now()
		rendered, err := retry.Do(ctx, opts.PageRetry, func(ctx context.Context) (*render.Page, error) {
			return w.fetcher.Fetch(ctx, pageURL)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			w.logger.Warn("page fetch failed, stopping walk",
				logging.Int(logging.FieldPage, page),
				logging.String("url", pageURL),
				logging.Error(err))
			return res, nil
		}

		rows := ParseListing(rendered)
		if len(rows) == 0 {
			w.logger.Info("empty page, listing exhausted", logging.Int(logging.FieldPage, page))
			return res, nil
		}

		added := 0
		for _, item := range rows {
			key := item.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			item.ListIndex = len(res.Items)
			res.Items = append(res.Items, item)
			added++
			if opts.MaxItems > 0 && len(res.Items) >= opts.MaxItems {
				res.LastPage = page
				w.logger.Info("item limit reached",
					logging.Int("max_items", opts.MaxItems),
					logging.Int(logging.FieldPage, page))
				w.checkpoint(opts, res)
				return res, nil
			}
		}

		res.LastPage = page
		w.logger.Info("page walked",
			logging.Int(logging.FieldPage, page),
			logging.Int("rows", len(rows)),
			logging.Int("new", added),
			logging.Int("total", len(res.Items)),
			logging.Duration("elapsed", time.Since(start)))

		if added == 0 {
			w.logger.Info("no unseen rows, stopping walk", logging.Int(logging.FieldPage, page))
			return res, nil
		}

		if opts.CheckpointInterval > 0 && page%opts.CheckpointInterval == 0 {
			w.checkpoint(opts, res)
		}
		page++
	}
}

func (w *Walker) checkpoint(opts Options, res Result) {
	if opts.Checkpoint == nil {
		return
	}
	if err := opts.Checkpoint.Save(res.LastPage, res.Items); err != nil {
		w.logger.Warn("checkpoint save failed", logging.Error(err))
	}
}
