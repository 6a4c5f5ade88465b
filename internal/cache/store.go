// Package cache provides the process-wide in-memory store shared by the
// journey lookup and the search orchestrator: a TTL cache with lazy expiry
// and a fixed-window request limiter living in a separate key namespace.
package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// ConnectionsTTL is how long normalized upstream connections and whole
	// search results stay fresh.
	ConnectionsTTL = 5 * time.Minute

	// StationsTTL is reserved for station lookups.
	StationsTTL = 60 * time.Minute

	// RateLimitKey is the limiter key guarding the upstream journeys API.
	RateLimitKey = "connections-api"

	// RateLimitMaxRequests is the upstream call budget per window.
	RateLimitMaxRequests = 10

	// RateLimitWindow is the fixed window length for RateLimitMaxRequests.
	RateLimitWindow = 60 * time.Second
)

// entry is a cached value with its creation time and lifetime.
type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

// visibleAt reports whether the entry may be served at now.
// A zero TTL entry is stale on the next read.
func (e *entry) visibleAt(now time.Time) bool {
	if e.ttl <= 0 {
		return false
	}
	return !now.After(e.createdAt.Add(e.ttl))
}

// rateLimitEntry is the counter for one limiter key.
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// Store is an in-memory TTL cache plus fixed-window rate limiter.
// It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	clock      clock.Clock
	entries    map[string]*entry
	rateLimits map[string]*rateLimitEntry
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used for expiry and rate-limit windows
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{
		clock:      clock.New(),
		entries:    make(map[string]*entry),
		rateLimits: make(map[string]*rateLimitEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key if it is present and unexpired.
// Expired entries are removed as a side effect.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !e.visibleAt(s.clock.Now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores value under key, replacing any existing entry.
// A negative ttl is treated as zero.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry{
		data:      value,
		createdAt: s.clock.Now(),
		ttl:       ttl,
	}
}

// Len returns the number of stored cache entries, including expired
// entries that have not been read since they expired.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops all cache entries and all rate-limit state
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry)
	s.rateLimits = make(map[string]*rateLimitEntry)
}

// CheckRateLimit counts one request against key and reports whether it is
// allowed. Windows are fixed: the first request at or after the current
// window's reset time opens a new window with a count of one. Denied
// requests do not change the counter.
func (s *Store) CheckRateLimit(key string, maxRequests int, window time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	rl, ok := s.rateLimits[key]
	if !ok || !now.Before(rl.resetAt) {
		s.rateLimits[key] = &rateLimitEntry{
			count:   1,
			resetAt: now.Add(window),
		}
		return true
	}

	if rl.count >= maxRequests {
		return false
	}

	rl.count++
	return true
}

// GetAs returns the value stored under key when it exists and has type T
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
