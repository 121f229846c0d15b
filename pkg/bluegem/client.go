// Package bluegem provides a typed client for the CSBlueGem API, the
// sale history and pattern data service for blue gem items.
package bluegem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/csbluegem-go/internal/metrics"
)

const (
	defaultBaseURL   = "https://api.csbluegem.com/v2"
	defaultBatchSize = 25
	defaultTimeout   = 30 * time.Second

	maxResponseBytes = 16 << 20
)

// API is the operation surface of the CSBlueGem service. Client is the
// canonical implementation.
type API interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	SearchPatterns(ctx context.Context, req SearchRequest, patterns []int) (*SearchResponse, error)
	PatternData(ctx context.Context, req PatternDataRequest) (*PatternDataResponse, error)
	PriceCheck(ctx context.Context, item Item, pattern int, wear float64) (int, error)
}

var _ API = (*Client)(nil)

// Client talks to the CSBlueGem API. It is safe for concurrent use; all
// methods honor context cancellation.
type Client struct {
	baseURL   string
	client    *http.Client
	log       *slog.Logger
	userAgent string
	nowFunc   func() time.Time
	batchSize int
	limiter   *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger for request-level debug logging. By
// default logs are discarded.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithNowFunc injects the clock used to compute Sale.DaysSince.
// Intended for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = now
	}
}

// WithPatternBatchSize sets how many patterns a single SearchPatterns
// request may carry. The API caps the list at 25, the default. Sizes
// below one keep the default.
func WithPatternBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithRateLimit throttles outgoing requests to perSecond with the given
// burst. The API is a free public service; long-running pollers should
// set this. A perSecond of zero or less disables throttling, the
// default.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New creates a CSBlueGem client. The API needs no authentication.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: defaultTimeout},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		userAgent: defaultUserAgent(),
		nowFunc:   time.Now,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections held by the client. The client must
// not be used afterwards.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// Search queries sale records for an item. An empty result is returned
// as an empty response, not an error.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return c.search(ctx, req.encode(), req.currency())
}

// SearchPatterns queries sale records for a specific set of paint
// seeds. The set is split into batches of at most the configured batch
// size; batches are requested one at a time, never concurrently, and
// their sales are concatenated in batch order. Meta sizes and totals
// are summed across batches. A failing batch fails the whole call with
// no partial results.
func (c *Client) SearchPatterns(ctx context.Context, req SearchRequest, patterns []int) (*SearchResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, badArgumentf("no patterns given")
	}
	if req.Pattern != nil {
		return nil, badArgumentf("request Pattern and a pattern set are mutually exclusive")
	}
	for _, p := range patterns {
		if !ValidPattern(p) {
			return nil, badArgumentf("pattern %d must be between 0 and 1000", p)
		}
	}

	metrics.ChunkedSearches.Inc()

	chunks := Chunk(patterns, c.batchSize)
	metrics.ChunkedSearchBatches.Observe(float64(len(chunks)))

	out := &SearchResponse{Meta: SearchMeta{Currency: req.currency()}}
	for _, chunk := range chunks {
		params := req.encode()
		params.Set("patterns", joinPatterns(chunk))

		resp, err := c.search(ctx, params, req.currency())
		if err != nil {
			return nil, err
		}

		out.Sales = append(out.Sales, resp.Sales...)
		out.Meta.Size += resp.Meta.Size
		out.Meta.Total += resp.Meta.Total
		out.Meta.Currency = resp.Meta.Currency
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, params url.Values, currency Currency) (*SearchResponse, error) {
	body, err := c.do(ctx, "/search", params)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		metrics.ParseFailures.WithLabelValues("search").Inc()
		return nil, malformedf("decoding search response: %v", err)
	}

	resp, err := parseSearchResponse(doc, currency, c.now())
	if err != nil {
		metrics.ParseFailures.WithLabelValues("search").Inc()
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return resp, nil
}

// PatternData queries gem measurements per paint seed for an item.
func (c *Client) PatternData(ctx context.Context, req PatternDataRequest) (*PatternDataResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "/patterndata", req.encode())
	if err != nil {
		return nil, fmt.Errorf("querying pattern data: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		metrics.ParseFailures.WithLabelValues("patterndata").Inc()
		return nil, malformedf("decoding pattern data response: %v", err)
	}

	// Pattern data prices are not currency-denominated; USD is the
	// documented fallback for the meta block.
	resp, err := parsePatternDataResponse(doc, CurrencyUSD)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("patterndata").Inc()
		return nil, fmt.Errorf("parsing pattern data response: %w", err)
	}
	return resp, nil
}

// PriceCheck estimates the USD value of an item with the given paint
// seed and wear.
func (c *Client) PriceCheck(ctx context.Context, item Item, pattern int, wear float64) (int, error) {
	if !item.Valid() {
		return 0, badArgumentf("unknown item %q", string(item))
	}
	if !ValidPattern(pattern) {
		return 0, badArgumentf("pattern %d must be between 0 and 1000", pattern)
	}
	if !ValidWear(wear) {
		return 0, badArgumentf("wear %v must be in (0, 1]", wear)
	}

	params := url.Values{}
	params.Set("skin", string(item))
	params.Set("pattern", strconv.Itoa(pattern))
	params.Set("wear", formatFloat(wear))

	body, err := c.do(ctx, "/pricecheck", params)
	if err != nil {
		return 0, fmt.Errorf("price checking: %w", err)
	}

	price, err := parsePriceCheck(body)
	if err != nil {
		metrics.ParseFailures.WithLabelValues("pricecheck").Inc()
		return 0, err
	}
	return price, nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path + "?" + params.Encode()
	endpoint := strings.TrimPrefix(path, "/")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limit: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.APICalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.APICalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	elapsed := time.Since(start)
	metrics.APICalls.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APICallDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())

	c.log.DebugContext(ctx, "api request",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) now() time.Time {
	return c.nowFunc().UTC()
}

func joinPatterns(patterns []int) string {
	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ",")
}
