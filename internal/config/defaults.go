package config

const (
	defaultDataDir           = "~/.local/share/ratingsync"
	defaultOutputDir         = "~/ratingsync"
	defaultLogDir            = "~/.local/share/ratingsync/logs"
	defaultSourceBaseURL     = "https://www.csfd.cz"
	defaultRatingsPath       = "/uzivatel/hodnoceni/"
	defaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) ratingsync/1.0"
	defaultRequestTimeout    = 30
	defaultRequestsPerSec    = 2
	defaultIMDBBaseURL       = "https://www.imdb.com"
	defaultSuggestionBaseURL = "https://v2.sg.media-imdb.com/suggestion"
	defaultMaxCandidates     = 10
	defaultConcurrency       = 3
	defaultCheckpointPages   = 5
	defaultCacheFlushItems   = 25
	defaultPageRetries       = 3
	defaultPageRetryDelayMS  = 2000
	defaultDetailRetries     = 3
	defaultDetailBaseMS      = 1000
	defaultItemDelayMS       = 500
	defaultTestItemDelayMS   = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultCSVName           = "ratings.csv"
	defaultJSONName          = "ratings.json"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Source: Source{
			BaseURL:        defaultSourceBaseURL,
			RatingsPath:    defaultRatingsPath,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
			RequestsPerSec: defaultRequestsPerSec,
		},
		IMDB: IMDB{
			BaseURL:           defaultIMDBBaseURL,
			SuggestionBaseURL: defaultSuggestionBaseURL,
			MaxCandidates:     defaultMaxCandidates,
		},
		Harvest: Harvest{
			Concurrency:            defaultConcurrency,
			CheckpointPageInterval: defaultCheckpointPages,
			CacheFlushItemInterval: defaultCacheFlushItems,
			PageRetryAttempts:      defaultPageRetries,
			PageRetryDelayMS:       defaultPageRetryDelayMS,
			DetailRetryAttempts:    defaultDetailRetries,
			DetailRetryBaseMS:      defaultDetailBaseMS,
			ItemDelayMS:            defaultItemDelayMS,
		},
		Cache: Cache{
			Enabled: true,
		},
		Output: Output{
			CSVName:        defaultCSVName,
			JSONName:       defaultJSONName,
			CatalogEnabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// EffectiveItemDelayMS returns the inter-item worker delay, shortened in test mode.
func (h Harvest) EffectiveItemDelayMS() int {
	if h.TestMode {
		return defaultTestItemDelayMS
	}
	if h.ItemDelayMS <= 0 {
		return defaultItemDelayMS
	}
	return h.ItemDelayMS
}
