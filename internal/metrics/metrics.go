// Package metrics exposes Prometheus counters for cache, upstream, search
// and booking activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream request outcomes
const (
	OutcomeSuccess       = "success"
	OutcomeRateLimited   = "rate_limited"
	OutcomeUpstreamError = "upstream_error"
	OutcomeNetworkError  = "network_error"
	OutcomeEmpty         = "empty"

	OutcomeTimeout           = "timeout"
	OutcomeNotFound          = "not_found"
	OutcomeInvalidRequest    = "invalid_request"
	OutcomeUpstreamThrottled = "upstream_throttled"
	OutcomeServerError       = "server_error"
)

// Cache types
const (
	CacheConnections = "connections"
	CacheSearch      = "search"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railhop_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railhop_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railhop_upstream_requests_total",
			Help: "Upstream journey lookups by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "railhop_upstream_request_duration_seconds",
			Help:    "Duration of upstream journey requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "railhop_search_fallbacks_total",
			Help: "Searches answered with synthetic connections",
		},
	)

	Bookings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "railhop_bookings_total",
			Help: "Simulated bookings confirmed",
		},
	)
)

// RecordCacheHit records a cache hit
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordUpstreamRequest records the outcome of one upstream lookup
func RecordUpstreamRequest(outcome string) {
	UpstreamRequests.WithLabelValues(outcome).Inc()
}

// ObserveUpstreamDuration records the latency of one upstream HTTP call
func ObserveUpstreamDuration(seconds float64) {
	UpstreamDuration.Observe(seconds)
}

// RecordSearchFallback records a search served from synthetic data
func RecordSearchFallback() {
	SearchFallbacks.Inc()
}

// RecordBooking records a confirmed booking
func RecordBooking() {
	Bookings.Inc()
}
