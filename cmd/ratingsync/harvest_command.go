package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ratingsync/internal/harvest"
)

func newHarvestCommand(ctx *commandContext) *cobra.Command {
	var (
		maxPages    int
		maxItems    int
		concurrency int
		skipDetails bool
		resume      bool
		noCache     bool
		testMode    bool
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Walk the rating list and write the enriched dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max-pages") {
				cfg.Harvest.MaxPages = maxPages
			}
			if cmd.Flags().Changed("max-items") {
				cfg.Harvest.MaxItems = maxItems
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Harvest.Concurrency = concurrency
			}
			if skipDetails {
				cfg.Harvest.SkipDetails = true
			}
			if noCache {
				cfg.Cache.Enabled = false
			}
			if testMode {
				cfg.Harvest.TestMode = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := harvest.New(cfg, logger).Run(runCtx, harvest.RunOptions{Resume: resume})
			if err != nil {
				if runCtx.Err() != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Interrupted; progress saved, rerun with --resume to continue")
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Stop after this many listing pages (0 = no limit)")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "Stop after this many items (0 = no limit)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Detail-page worker count")
	cmd.Flags().BoolVar(&skipDetails, "skip-details", false, "Collect listing fields only, no detail pages")
	cmd.Flags().BoolVar(&resume, "resume", false, "Continue an interrupted run from its checkpoint")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore and do not update the detail cache")
	cmd.Flags().BoolVar(&testMode, "test-mode", false, "Shorten inter-item delays for fixture runs")

	return cmd
}

func renderSummary(s *harvest.Summary) string {
	rows := [][]string{
		{"Items collected", strconv.Itoa(s.Total)},
		{"Pages walked", strconv.Itoa(s.PagesWalked)},
		{"With external ID", strconv.Itoa(s.WithExternalID)},
		{"With original title", strconv.Itoa(s.WithOriginalTitle)},
		{"Cache hits", strconv.Itoa(s.CacheHits)},
		{"Confirmed absent", strconv.Itoa(s.NotFound)},
		{"Failures", strconv.Itoa(s.Failures)},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
		{"CSV", s.CSVPath},
		{"JSON", s.JSONPath},
	}
	if s.CatalogPath != "" {
		rows = append(rows, []string{"Catalog", s.CatalogPath})
	}
	return renderTable([]string{"Harvest", "Value"}, rows)
}
