package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"
	_ "time/tzdata" // Europe/Berlin on hosts without zoneinfo

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mobil-koeln/railhop/internal/cache"
	"github.com/mobil-koeln/railhop/internal/metrics"
	"github.com/mobil-koeln/railhop/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "railhop (+https://github.com/mobil-koeln/railhop)"

	// maxErrorBody bounds how much of an error response is read for its message
	maxErrorBody = 4 << 10
)

// Cache stores normalized connections between lookups
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// RateLimiter guards the upstream call budget
type RateLimiter interface {
	CheckRateLimit(key string, maxRequests int, window time.Duration) bool
}

// Client is the journey lookup client for the DB journeys API
type Client struct {
	httpClient *http.Client
	baseURL    string
	timezone   *time.Location
	cache      Cache
	limiter    RateLimiter
	logger     *zap.Logger

	ttl         time.Duration
	maxRequests int
	window      time.Duration

	estimatePrice func() float64
	flights       singleflight.Group
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at a different API host
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithStore uses s as both the connections cache and the rate limiter
func WithStore(s *cache.Store) ClientOption {
	return func(c *Client) {
		c.cache = s
		c.limiter = s
	}
}

// WithCache sets the connections cache
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithRateLimiter sets the limiter consulted before upstream calls
func WithRateLimiter(l RateLimiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithRateLimit sets the upstream call budget per fixed window
func WithRateLimit(maxRequests int, window time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRequests = maxRequests
		c.window = window
	}
}

// WithConnectionsTTL sets how long normalized connections are cached
func WithConnectionsTTL(d time.Duration) ClientOption {
	return func(c *Client) {
		c.ttl = d
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithPriceEstimator sets the fare used for journeys the API returns
// without a price
func WithPriceEstimator(f func() float64) ClientOption {
	return func(c *Client) {
		c.estimatePrice = f
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	tz, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:       BaseURL,
		timezone:      tz,
		logger:        zap.NewNop(),
		ttl:           cache.ConnectionsTTL,
		maxRequests:   cache.RateLimitMaxRequests,
		window:        cache.RateLimitWindow,
		estimatePrice: estimatePrice,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cache == nil || c.limiter == nil {
		store := cache.New()
		if c.cache == nil {
			c.cache = store
		}
		if c.limiter == nil {
			c.limiter = store
		}
	}

	return c, nil
}

// estimatePrice returns a fare in [35, 75) EUR
func estimatePrice() float64 {
	return 35 + rand.Float64()*40 // #nosec G404 -- display-only placeholder fare
}

// Timezone returns the client's timezone
func (c *Client) Timezone() *time.Location {
	return c.timezone
}

// ConnectionsRequest contains parameters for a one-direction lookup
type ConnectionsRequest struct {
	OriginID      string // Origin EVA number (required)
	DestinationID string // Destination EVA number (required)
	Date          string // Travel date, YYYY-MM-DD (required)
	Time          string // Earliest departure, HH:MM (default: 06:00)
}

// FetchConnections returns up to five connections for one direction,
// ordered by departure time. Fresh cached results are returned without
// touching the network or the rate limit. Concurrent lookups for the same
// request share one upstream call.
//
// Failures are returned as ErrRateLimitExceeded, *APIError, ErrNoConnections,
// ErrNetwork or ErrTimeout; the caller decides how to degrade.
func (c *Client) FetchConnections(ctx context.Context, req ConnectionsRequest) ([]models.TrainConnection, error) {
	clockTime := req.Time
	if clockTime == "" {
		clockTime = DefaultDepartureTime
	}
	key := cache.ConnectionsKey(req.OriginID, req.DestinationID, req.Date, clockTime)

	if conns, ok := c.cachedConnections(key); ok {
		metrics.RecordCacheHit(metrics.CacheConnections)
		c.logger.Debug("connections cache hit", zap.String("key", key))
		return conns, nil
	}
	metrics.RecordCacheMiss(metrics.CacheConnections)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	// The shared lookup outlives any single caller; each caller stops
	// waiting when its own context ends. The HTTP client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(key, func() (any, error) {
		// A previous flight for this key may have filled the cache
		if conns, ok := c.cachedConnections(key); ok {
			return conns, nil
		}
		return c.fetchConnections(flightCtx, req, clockTime, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]models.TrainConnection)), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}

func (c *Client) cachedConnections(key string) ([]models.TrainConnection, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	conns, ok := v.([]models.TrainConnection)
	if !ok {
		return nil, false
	}
	return slices.Clone(conns), true
}

func (c *Client) fetchConnections(ctx context.Context, req ConnectionsRequest, clockTime, key string) ([]models.TrainConnection, error) {
	if !c.limiter.CheckRateLimit(cache.RateLimitKey, c.maxRequests, c.window) {
		metrics.RecordUpstreamRequest(metrics.OutcomeRateLimited)
		c.logger.Warn("rate limit exceeded for connections API",
			zap.Int("max_requests", c.maxRequests),
			zap.Duration("window", c.window))
		return nil, ErrRateLimitExceeded
	}

	body, err := c.GetJourneysRaw(ctx, req.OriginID, req.DestinationID, req.Date, clockTime)
	if err != nil {
		outcome := upstreamOutcome(err)
		metrics.RecordUpstreamRequest(outcome)
		c.logger.Warn("transport API request failed",
			zap.String("outcome", outcome),
			zap.Error(err))
		return nil, err
	}

	var resp models.JourneysResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RecordUpstreamRequest(metrics.OutcomeUpstreamError)
		return nil, fmt.Errorf("failed to parse journeys response: %w", err)
	}

	conns := resp.ToConnections(c.timezone, c.estimatePrice)
	if len(conns) == 0 {
		metrics.RecordUpstreamRequest(metrics.OutcomeEmpty)
		c.logger.Warn("transport API returned no connections",
			zap.String("from", req.OriginID),
			zap.String("to", req.DestinationID),
			zap.String("date", req.Date))
		return nil, ErrNoConnections
	}

	models.SortByDeparture(conns)
	c.cache.Set(key, conns, c.ttl)
	metrics.RecordUpstreamRequest(metrics.OutcomeSuccess)

	return slices.Clone(conns), nil
}

// GetJourneysRaw fetches itineraries and returns raw JSON.
// It bypasses the cache and the rate limiter.
func (c *Client) GetJourneysRaw(ctx context.Context, originID, destinationID, date, clockTime string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("from", originID)
	params.Set("to", destinationID)
	params.Set("departure", date+"T"+clockTime)
	params.Set("results", strconv.Itoa(DefaultResults))

	reqURL := c.baseURL + EndpointJourneys + "?" + params.Encode()

	return c.doRequest(ctx, reqURL)
}

// doRequest performs an HTTP GET request
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("x-correlation-id", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstreamDuration(time.Since(start).Seconds())
	if err != nil {
		// Check for context errors
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newResponseError(resp, extractEndpoint(reqURL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	return body, nil
}

// isTimeout reports whether err is a deadline or client timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamOutcome classifies a failed lookup for the upstream metric
func upstreamOutcome(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalidRequest
	case errors.Is(err, ErrRateLimitExceeded):
		return metrics.OutcomeUpstreamThrottled
	case errors.Is(err, ErrServerError):
		return metrics.OutcomeServerError
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return metrics.OutcomeUpstreamError
	}
	return metrics.OutcomeNetworkError
}

// newResponseError builds an APIError, preferring the message the API puts
// in its JSON error body.
func newResponseError(resp *http.Response, endpoint string) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(data, &body) == nil && body.Msg != "" {
		return NewAPIErrorWithMessage(resp.StatusCode, endpoint, body.Msg)
	}
	return NewAPIError(resp.StatusCode, resp.Status, endpoint)
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
