package xref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
	"ratingsync/internal/render"
	"ratingsync/internal/textutil"
)

// Match is the resolved cross-reference for a title.
type Match struct {
	ExternalID  string
	ExternalURL string
}

// Client queries the external reference site by title when direct extraction
// failed. Lookups never return errors to callers: no result, a malformed
// payload, and a network failure all yield an empty match.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	suggestionBase string
	maxCandidates  int
	userAgent      string
	logger         *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	SuggestionBase string
	MaxCandidates  int
	UserAgent      string
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// NewClient builds a search client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 10
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		suggestionBase: strings.TrimRight(opts.SuggestionBase, "/"),
		maxCandidates:  maxCandidates,
		userAgent:      opts.UserAgent,
		logger:         logging.NewComponentLogger(opts.Logger, "xref"),
	}
}

// Search looks up the best external match for a title. The zero Match means
// no confident result; failures along the way degrade to that, never to an
// error, because a missed cross-reference only costs one empty dataset field.
func (c *Client) Search(ctx context.Context, title, year string) Match {
	query := textutil.NormalizeTitle(title)
	if len([]rune(query)) < 2 {
		return Match{}
	}

	candidates := c.suggestionCandidates(ctx, query)
	if len(candidates) == 0 {
		candidates = c.findCandidates(ctx, query)
	}
	if len(candidates) == 0 {
		return Match{}
	}

	best := pickBest(query, year, candidates, c.maxCandidates)
	if best == nil {
		c.logger.Debug("no candidate scored",
			logging.String("query", query),
			logging.Int("candidates", len(candidates)))
		return Match{}
	}

	externalURL := best.URL
	if externalURL == "" {
		externalURL = "https://www.imdb.com/title/" + best.ID + "/"
	}
	c.logger.Debug("cross-reference resolved",
		logging.String("query", query),
		logging.String("external_id", best.ID),
		logging.String("matched_title", best.Title))
	return Match{ExternalID: best.ID, ExternalURL: externalURL}
}

// suggestionPayload models the embedded JSON returned by the suggestion API.
type suggestionPayload struct {
	D []struct {
		ID    string `json:"id"`
		Label string `json:"l"`
		Year  int    `json:"y"`
	} `json:"d"`
}

// suggestionCandidates queries the structured suggestion endpoint. Preferred
// over DOM scraping because the payload shape is far more stable than the
// site's find-page markup.
func (c *Client) suggestionCandidates(ctx context.Context, query string) []Candidate {
	if c.suggestionBase == "" {
		return nil
	}
	folded := textutil.FoldForComparison(query)
	if folded == "" {
		return nil
	}
	// The endpoint shards by the query's first character; treat it as a rune
	// so multi-byte titles do not produce a broken shard path.
	first, _ := utf8.DecodeRuneInString(folded)
	endpoint := fmt.Sprintf("%s/%s/%s.json",
		c.suggestionBase,
		url.PathEscape(string(first)),
		url.PathEscape(strings.ReplaceAll(folded, " ", "_")))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Debug("suggestion lookup failed", logging.String("query", query), logging.Error(err))
		return nil
	}
	defer body.Close()

	var payload suggestionPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		c.logger.Debug("suggestion payload malformed", logging.String("query", query), logging.Error(err))
		return nil
	}

	candidates := make([]Candidate, 0, len(payload.D))
	for _, entry := range payload.D {
		if !ratings.IMDBIDPattern.MatchString(entry.ID) {
			continue
		}
		year := ""
		if entry.Year > 0 {
			year = strconv.Itoa(entry.Year)
		}
		candidates = append(candidates, Candidate{
			ID:    entry.ID,
			URL:   "https://www.imdb.com/title/" + entry.ID + "/",
			Title: entry.Label,
			Year:  year,
		})
	}
	return candidates
}

var yearInParens = regexp.MustCompile(`\((\d{4})\)`)

// findCandidates scrapes the reference site's find page. Covers both the
// current list markup and the legacy result table.
func (c *Client) findCandidates(ctx context.Context, query string) []Candidate {
	if c.baseURL == "" {
		return nil
	}
	endpoint := c.baseURL + "/find/?s=tt&q=" + url.QueryEscape(query)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Debug("find lookup failed", logging.String("query", query), logging.Error(err))
		return nil
	}
	defer body.Close()

	page, err := render.NewPage(endpoint, body)
	if err != nil {
		c.logger.Debug("find page malformed", logging.String("query", query), logging.Error(err))
		return nil
	}

	var candidates []Candidate
	appendRow := func(sel *goquery.Selection) {
		link := sel.Find(`a[href*="/title/tt"]`).First()
		href, _ := link.Attr("href")
		id := ratings.IMDBIDPattern.FindString(href)
		if id == "" {
			return
		}
		title := textutil.NormalizeTitle(link.Text())
		year := ""
		if m := yearInParens.FindStringSubmatch(sel.Text()); len(m) == 2 {
			year = m[1]
		}
		candidates = append(candidates, Candidate{
			ID:    id,
			URL:   "https://www.imdb.com/title/" + id + "/",
			Title: title,
			Year:  year,
		})
	}

	rows := page.Find(`li.find-title-result`)
	if rows.Length() == 0 {
		rows = page.Find(`td.result_text`)
	}
	rows.Each(func(_ int, sel *goquery.Selection) {
		appendRow(sel)
	})
	return candidates
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("search returned %d", resp.StatusCode)
	}
	return resp.Body, nil
}
