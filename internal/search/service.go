// Package search answers train searches for the Hamburg–Amsterdam route.
// Live connections come from the journeys API; when any lookup fails the
// search degrades to synthetic connections instead of returning an error.
package search

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/mobil-koeln/railhop/internal/api"
	"github.com/mobil-koeln/railhop/internal/cache"
	"github.com/mobil-koeln/railhop/internal/metrics"
	"github.com/mobil-koeln/railhop/internal/mock"
	"github.com/mobil-koeln/railhop/internal/models"
)

// DefaultFallbackDelay is how long a degraded search waits before answering,
// so synthetic results take about as long as live ones.
const DefaultFallbackDelay = 1500 * time.Millisecond

// ConnectionFetcher looks up connections for one direction
type ConnectionFetcher interface {
	FetchConnections(ctx context.Context, req api.ConnectionsRequest) ([]models.TrainConnection, error)
}

// ResultCache stores whole search results
type ResultCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// Service composes outbound and return lookups into one result
type Service struct {
	fetcher       ConnectionFetcher
	cache         ResultCache
	logger        *zap.Logger
	clock         clock.Clock
	ttl           time.Duration
	fallbackDelay time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock sets the clock used for the fallback delay
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithResultTTL sets how long successful results are cached
func WithResultTTL(d time.Duration) Option {
	return func(s *Service) {
		s.ttl = d
	}
}

// WithFallbackDelay sets the wait before synthetic results are returned
func WithFallbackDelay(d time.Duration) Option {
	return func(s *Service) {
		s.fallbackDelay = d
	}
}

// NewService creates a search service
func NewService(fetcher ConnectionFetcher, resultCache ResultCache, opts ...Option) *Service {
	s := &Service{
		fetcher:       fetcher,
		cache:         resultCache,
		logger:        zap.NewNop(),
		clock:         clock.New(),
		ttl:           cache.ConnectionsTTL,
		fallbackDelay: DefaultFallbackDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns outbound and, for round trips, return connections.
// It never fails: lookup errors are logged and answered with synthetic
// connections after the fallback delay. Only live results are cached.
func (s *Service) Search(ctx context.Context, params models.SearchParams) models.SearchResult {
	key := cache.SearchKey(params)
	if v, ok := s.cache.Get(key); ok {
		if result, ok := v.(models.SearchResult); ok {
			metrics.RecordCacheHit(metrics.CacheSearch)
			return result
		}
	}
	metrics.RecordCacheMiss(metrics.CacheSearch)

	result, err := s.searchLive(ctx, params)
	if err == nil {
		s.cache.Set(key, result, s.ttl)
		return result
	}

	s.logger.Warn("train search failed, using synthetic connections",
		zap.String("date", params.Date),
		zap.String("trip_type", string(params.TripType)),
		zap.Error(err))
	metrics.RecordSearchFallback()

	s.wait(ctx, s.fallbackDelay)
	return fallbackResult(params)
}

func (s *Service) searchLive(ctx context.Context, params models.SearchParams) (models.SearchResult, error) {
	from := models.Stations[models.CityHamburg]
	to := models.Stations[models.CityAmsterdam]

	outbound, err := s.fetcher.FetchConnections(ctx, api.ConnectionsRequest{
		OriginID:      from.EVA,
		DestinationID: to.EVA,
		Date:          params.Date,
	})
	if err != nil {
		return models.SearchResult{}, err
	}

	result := models.SearchResult{
		Outbound:     outbound,
		SearchParams: params,
	}

	if params.TripType != models.TripRoundTrip {
		return result, nil
	}
	returnDate, ok := params.ResolveReturnDate()
	if !ok {
		return result, nil
	}

	back, err := s.fetcher.FetchConnections(ctx, api.ConnectionsRequest{
		OriginID:      to.EVA,
		DestinationID: from.EVA,
		Date:          returnDate,
	})
	if err != nil {
		return models.SearchResult{}, err
	}
	result.Return = back

	return result, nil
}

// wait blocks for d or until ctx is done
func (s *Service) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := s.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// fallbackResult builds a result from synthetic connections
func fallbackResult(params models.SearchParams) models.SearchResult {
	outbound := mock.GenerateConnections(params.Date, false)
	models.SortByDeparture(outbound)

	result := models.SearchResult{
		Outbound:     outbound,
		SearchParams: params,
		Fallback:     true,
	}

	if params.TripType == models.TripRoundTrip {
		if returnDate, ok := params.ResolveReturnDate(); ok {
			back := mock.GenerateConnections(returnDate, true)
			models.SortByDeparture(back)
			result.Return = back
		}
	}

	return result
}
