package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ratingsync/internal/detailcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the detail cache",
	}
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List cached detail entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := detailcache.NewStore(cfg.CachePath(), true, nil)
			entries := store.Entries()
			out := cmd.OutOrStdout()

			if asJSON {
				type shownEntry struct {
					Source string `json:"source"`
					detailcache.Entry
				}
				shown := make([]shownEntry, 0, len(entries))
				for _, entry := range entries {
					shown = append(shown, shownEntry{Source: detailcache.SourceURL(entry.Key), Entry: entry})
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(shown)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					detailcache.SourceURL(entry.Key),
					string(entry.Status),
					entry.ExternalID,
					entry.OriginalTitle,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Source", "Status", "External ID", "Original title"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit entries as JSON")
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := detailcache.NewStore(cfg.CachePath(), true, nil)
			resolved, notFound := store.Counts()

			rows := [][]string{
				{"Path", cfg.CachePath()},
				{"Entries", strconv.Itoa(store.Len())},
				{"Resolved", strconv.Itoa(resolved)},
				{"Confirmed absent", strconv.Itoa(notFound)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Cache", "Value"}, rows))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached detail entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := detailcache.NewStore(cfg.CachePath(), true, nil)
			n := store.Len()
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries\n", n)
			return nil
		},
	}
}
