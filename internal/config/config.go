package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Source contains configuration for the rating-list site being harvested.
// ConsentCookies are sent with every request to the source site, bypassing
// cookie-consent interstitials that would otherwise replace page content.
type Source struct {
	BaseURL        string            `toml:"base_url"`
	RatingsPath    string            `toml:"ratings_path"`
	UserAgent      string            `toml:"user_agent"`
	RequestTimeout int               `toml:"request_timeout"`
	RequestsPerSec int               `toml:"requests_per_sec"`
	ConsentCookies map[string]string `toml:"consent_cookies"`
}

// IMDB contains configuration for the cross-reference lookup site.
type IMDB struct {
	BaseURL           string `toml:"base_url"`
	SuggestionBaseURL string `toml:"suggestion_base_url"`
	MaxCandidates     int    `toml:"max_candidates"`
}

// Harvest contains pipeline tuning: limits, concurrency, retries, and delays.
type Harvest struct {
	Concurrency            int  `toml:"concurrency"`
	MaxPages               int  `toml:"max_pages"`
	MaxItems               int  `toml:"max_items"`
	SkipDetails            bool `toml:"skip_details"`
	CheckpointPageInterval int  `toml:"checkpoint_page_interval"`
	CacheFlushItemInterval int  `toml:"cache_flush_item_interval"`
	PageRetryAttempts      int  `toml:"page_retry_attempts"`
	PageRetryDelayMS       int  `toml:"page_retry_delay_ms"`
	DetailRetryAttempts    int  `toml:"detail_retry_attempts"`
	DetailRetryBaseMS      int  `toml:"detail_retry_base_ms"`
	ItemDelayMS            int  `toml:"item_delay_ms"`
	TestMode               bool `toml:"test_mode"`
}

// Cache contains configuration for the persistent detail cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Output contains configuration for dataset persistence.
type Output struct {
	CSVName        string `toml:"csv_name"`
	JSONName       string `toml:"json_name"`
	CatalogEnabled bool   `toml:"catalog_enabled"`
	CatalogPath    string `toml:"catalog_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ratingsync.
//
// Configuration sections by subsystem:
//   - Paths: data, output, and log directories
//   - Source: rating-list site location and request pacing
//   - IMDB: cross-reference search endpoints
//   - Harvest: limits, concurrency, retry, and delay tuning
//   - Cache: persistent detail-cache location and toggle
//   - Output: dataset file names and SQLite catalog
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Source  Source  `toml:"source"`
	IMDB    IMDB    `toml:"imdb"`
	Harvest Harvest `toml:"harvest"`
	Cache   Cache   `toml:"cache"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ratingsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ratingsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a harvest run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CachePath returns the resolved detail-cache file location.
func (c *Config) CachePath() string {
	if strings.TrimSpace(c.Cache.Path) != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.Paths.DataDir, "details_cache.json")
}

// RunStatePath returns the resolved run-state checkpoint file location.
func (c *Config) RunStatePath() string {
	return filepath.Join(c.Paths.DataDir, "runstate.json")
}

// CatalogPath returns the resolved SQLite catalog location.
func (c *Config) CatalogPath() string {
	if strings.TrimSpace(c.Output.CatalogPath) != "" {
		return c.Output.CatalogPath
	}
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

// LockPath returns the single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "ratingsync.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
