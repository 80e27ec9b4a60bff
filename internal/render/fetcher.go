package render

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"ratingsync/internal/logging"
)

// Fetcher renders a URL into a queryable Page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

// HTTPFetcher fetches pages over plain HTTP with a shared cookie jar and a
// process-wide rate limit. The jar carries the consent cookie so every worker
// reuses the same warmed session.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger
}

// Options configures an HTTPFetcher.
type Options struct {
	UserAgent      string
	RequestTimeout time.Duration
	RequestsPerSec int
	// ConsentCookies are pre-seeded into the jar for the given site so the
	// source never serves a consent interstitial instead of content.
	ConsentCookies map[string][]*http.Cookie
	Logger         *slog.Logger
}

// NewHTTPFetcher builds a fetcher with a fresh cookie jar.
func NewHTTPFetcher(opts Options) (*HTTPFetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	for site, cookies := range opts.ConsentCookies {
		siteURL, err := url.Parse(site)
		if err != nil {
			return nil, fmt.Errorf("parse consent cookie site %q: %w", site, err)
		}
		jar.SetCookies(siteURL, cookies)
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	perSec := opts.RequestsPerSec
	if perSec <= 0 {
		perSec = 2
	}

	return &HTTPFetcher{
		client:    &http.Client{Jar: jar, Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perSec), perSec),
		userAgent: opts.UserAgent,
		logger:    logging.NewComponentLogger(opts.Logger, "fetcher"),
	}, nil
}

// Fetch retrieves and parses one page. Non-2xx statuses are errors so the
// retry governor can distinguish transient server trouble from empty pages.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept-Language", "cs,en;q=0.8")

	requestStart := time.Now()
	resp, err := f.client.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s returned %d (latency=%v)", rawURL, resp.StatusCode, latency)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	page, err := NewPage(finalURL, resp.Body)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("page fetched",
		logging.String("url", finalURL),
		logging.Duration("latency", latency),
		logging.Int("status", resp.StatusCode))

	return page, nil
}
