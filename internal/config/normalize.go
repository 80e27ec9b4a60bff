package config

import (
	"fmt"
	"net/url"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeIMDB()
	c.normalizeHarvest()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Cache.Path) != "" {
		if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
			return fmt.Errorf("cache.path: %w", err)
		}
	}
	if strings.TrimSpace(c.Output.CatalogPath) != "" {
		if c.Output.CatalogPath, err = expandPath(c.Output.CatalogPath); err != nil {
			return fmt.Errorf("output.catalog_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeSource() error {
	c.Source.BaseURL = strings.TrimRight(strings.TrimSpace(c.Source.BaseURL), "/")
	if c.Source.BaseURL != "" {
		if _, err := url.Parse(c.Source.BaseURL); err != nil {
			return fmt.Errorf("source.base_url: %w", err)
		}
	}
	c.Source.RatingsPath = strings.TrimSpace(c.Source.RatingsPath)
	if c.Source.RatingsPath != "" && !strings.HasPrefix(c.Source.RatingsPath, "/") {
		c.Source.RatingsPath = "/" + c.Source.RatingsPath
	}
	if c.Source.RequestTimeout <= 0 {
		c.Source.RequestTimeout = defaultRequestTimeout
	}
	if c.Source.RequestsPerSec <= 0 {
		c.Source.RequestsPerSec = defaultRequestsPerSec
	}
	if strings.TrimSpace(c.Source.UserAgent) == "" {
		c.Source.UserAgent = defaultUserAgent
	}
	return nil
}

func (c *Config) normalizeIMDB() {
	c.IMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.IMDB.BaseURL), "/")
	if c.IMDB.BaseURL == "" {
		c.IMDB.BaseURL = defaultIMDBBaseURL
	}
	c.IMDB.SuggestionBaseURL = strings.TrimRight(strings.TrimSpace(c.IMDB.SuggestionBaseURL), "/")
	if c.IMDB.SuggestionBaseURL == "" {
		c.IMDB.SuggestionBaseURL = defaultSuggestionBaseURL
	}
	if c.IMDB.MaxCandidates <= 0 {
		c.IMDB.MaxCandidates = defaultMaxCandidates
	}
}

func (c *Config) normalizeHarvest() {
	if c.Harvest.Concurrency <= 0 {
		c.Harvest.Concurrency = defaultConcurrency
	}
	if c.Harvest.CheckpointPageInterval <= 0 {
		c.Harvest.CheckpointPageInterval = defaultCheckpointPages
	}
	if c.Harvest.CacheFlushItemInterval <= 0 {
		c.Harvest.CacheFlushItemInterval = defaultCacheFlushItems
	}
	if c.Harvest.PageRetryAttempts <= 0 {
		c.Harvest.PageRetryAttempts = defaultPageRetries
	}
	if c.Harvest.PageRetryDelayMS <= 0 {
		c.Harvest.PageRetryDelayMS = defaultPageRetryDelayMS
	}
	if c.Harvest.DetailRetryAttempts <= 0 {
		c.Harvest.DetailRetryAttempts = defaultDetailRetries
	}
	if c.Harvest.DetailRetryBaseMS <= 0 {
		c.Harvest.DetailRetryBaseMS = defaultDetailBaseMS
	}
}

func (c *Config) normalizeOutput() {
	if strings.TrimSpace(c.Output.CSVName) == "" {
		c.Output.CSVName = defaultCSVName
	}
	if strings.TrimSpace(c.Output.JSONName) == "" {
		c.Output.JSONName = defaultJSONName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
