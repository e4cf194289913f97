// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv is the HTTP client for the arXiv query API. It issues
// serialized query strings against the export endpoint, paginates,
// rate-limits outbound requests, and parses the Atom feed into typed
// records.
package arxiv

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxivist/internal/httputil"
	"github.com/pdiddy/arxivist/pkg/query"
	"github.com/pdiddy/arxivist/pkg/types"
)

// DefaultBaseURL is the public arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const (
	defaultTimeout      = 10 * time.Second
	defaultUserAgent    = "arxivist/0.1"
	defaultRateInterval = 3 * time.Second
	defaultMaxResults   = 10

	// maxPageSize is the slice limit arXiv recommends per request.
	maxPageSize = 2000

	// maxErrorBody bounds how much of an error response APIError keeps.
	maxErrorBody = 4 << 10
)

// idPattern matches new-style ("2301.07041", optional version) and
// legacy ("hep-th/9901001") arXiv identifiers.
var idPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5}(v\d+)?|[a-z-]+(\.[A-Z]{2})?/\d{7}(v\d+)?)$`)

// Client queries the arXiv API. It is safe for concurrent use: the rate
// limiter serializes outbound requests to one per interval across all
// callers, and waiting callers honor context cancellation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint. Tests use this
// with httptest servers.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateInterval sets the minimum interval between outbound requests.
// A zero or negative interval disables rate limiting.
func WithRateInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithMaxRetries sets the retry budget for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient returns a Client with the arXiv-recommended defaults: 10 s
// timeout, one request per 3 s, and 3 retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		limiter:    rate.NewLimiter(rate.Every(defaultRateInterval), 1),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a Client from a configuration struct.
func FromConfig(cfg types.ClientConfig) *Client {
	opts := []Option{WithRateInterval(cfg.RateInterval)}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, WithMaxRetries(cfg.MaxRetries))
	}
	return NewClient(opts...)
}

// Page selects one slice of a result list. A zero MaxResults requests
// the default page size (10).
type Page struct {
	Start      int
	MaxResults int
}

func (p Page) validate() error {
	if p.Start < 0 {
		return &query.InvalidQueryError{Reason: "start must be >= 0"}
	}
	if p.MaxResults < 0 {
		return &query.InvalidQueryError{Reason: "max results must be >= 0"}
	}
	if p.MaxResults > maxPageSize {
		return &query.InvalidQueryError{Reason: "max results must be <= 2000 per request; page large sets in slices"}
	}
	return nil
}

// Search serializes the builder and issues one search request for the
// given page.
func (c *Client) Search(ctx context.Context, b *query.Builder, page Page) (*types.ResultSet, error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, &query.InvalidQueryError{Reason: "empty query"}
	}
	sortBy, sortOrder := b.Sort()
	return c.search(ctx, s, sortBy, sortOrder, page)
}

// SearchRaw issues a pre-serialized query string as-is.
func (c *Client) SearchRaw(ctx context.Context, queryString string, page Page) (*types.ResultSet, error) {
	if queryString == "" {
		return nil, &query.InvalidQueryError{Reason: "empty query"}
	}
	return c.search(ctx, queryString, "", "", page)
}

// SearchAll paginates through results pageSize at a time until limit
// papers are collected or the reported total is exhausted. Any failed
// page fails the whole call; no truncated result sets.
func (c *Client) SearchAll(ctx context.Context, b *query.Builder, pageSize, limit int) (*types.ResultSet, error) {
	if pageSize <= 0 {
		pageSize = defaultMaxResults
	}
	if limit <= 0 {
		return nil, &query.InvalidQueryError{Reason: "limit must be > 0"}
	}

	var out *types.ResultSet
	for start := 0; ; start += pageSize {
		want := pageSize
		if remaining := limit - start; remaining < want {
			want = remaining
		}
		rs, err := c.Search(ctx, b, Page{Start: start, MaxResults: want})
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = rs
		} else {
			out.Entries = append(out.Entries, rs.Entries...)
		}
		if len(out.Entries) >= limit ||
			len(rs.Entries) < want ||
			(rs.TotalResults > 0 && start+len(rs.Entries) >= rs.TotalResults) {
			break
		}
	}
	if len(out.Entries) > limit {
		out.Entries = out.Entries[:limit]
	}
	return out, nil
}

// GetByID fetches a single paper by its arXiv identifier, new-style or
// legacy, with an optional version suffix. It returns ErrNotFound when
// the API knows no such paper.
func (c *Client) GetByID(ctx context.Context, id string) (*types.Paper, error) {
	if !idPattern.MatchString(id) {
		return nil, &query.InvalidQueryError{Reason: "malformed arXiv identifier: " + id}
	}

	params := url.Values{}
	params.Set("id_list", id)
	params.Set("start", "0")
	params.Set("max_results", "1")

	rs, err := c.get(ctx, params, "", "", "")
	if err != nil {
		return nil, err
	}
	if len(rs.Entries) == 0 {
		return nil, ErrNotFound
	}
	return &rs.Entries[0], nil
}

func (c *Client) search(ctx context.Context, queryString, sortBy, sortOrder string, page Page) (*types.ResultSet, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	maxResults := page.MaxResults
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{}
	params.Set("search_query", queryString)
	params.Set("start", strconv.Itoa(page.Start))
	params.Set("max_results", strconv.Itoa(maxResults))
	if sortBy != "" {
		params.Set("sortBy", sortBy)
		params.Set("sortOrder", sortOrder)
	}

	return c.get(ctx, params, queryString, sortBy, sortOrder)
}

// get performs one rate-limited, retried GET and parses the feed.
func (c *Client) get(ctx context.Context, params url.Values, queryString, sortBy, sortOrder string) (*types.ResultSet, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parseFeed(resp.Body, queryString, sortBy, sortOrder)
}
