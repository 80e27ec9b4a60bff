package testsupport

import (
	"path/filepath"
	"testing"

	"ratingsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and retry/delay tuning fast enough for fixture-backed runs.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Source.BaseURL = "https://example.test"
	cfg.Source.RatingsPath = "/uzivatel/42/hodnoceni/"
	cfg.Harvest.Concurrency = 2
	cfg.Harvest.PageRetryAttempts = 1
	cfg.Harvest.PageRetryDelayMS = 1
	cfg.Harvest.DetailRetryAttempts = 1
	cfg.Harvest.DetailRetryBaseMS = 1
	cfg.Harvest.TestMode = true

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSkipDetails disables the detail-page stage on the test config.
func WithSkipDetails() ConfigOption {
	return func(c *config.Config) {
		c.Harvest.SkipDetails = true
	}
}

// WithCacheDisabled turns the detail cache off on the test config.
func WithCacheDisabled() ConfigOption {
	return func(c *config.Config) {
		c.Cache.Enabled = false
	}
}
