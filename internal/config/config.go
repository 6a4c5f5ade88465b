// Package config holds the tunables of railhop. Every value has a fixed
// default; an optional YAML file may override them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mobil-koeln/railhop/internal/api"
	"github.com/mobil-koeln/railhop/internal/booking"
	"github.com/mobil-koeln/railhop/internal/cache"
	"github.com/mobil-koeln/railhop/internal/search"
)

// Config represents the main configuration structure
type Config struct {
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Search    SearchConfig    `yaml:"search"`
	Booking   BookingConfig   `yaml:"booking"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

// UpstreamConfig configures the journeys API client
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig configures entry lifetimes
type CacheConfig struct {
	ConnectionsTTL time.Duration `yaml:"connections_ttl"`
	StationsTTL    time.Duration `yaml:"stations_ttl"`
}

// RateLimitConfig configures the upstream call budget
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests"`
	Window      time.Duration `yaml:"window"`
}

// SearchConfig configures the search orchestrator
type SearchConfig struct {
	FallbackDelay time.Duration `yaml:"fallback_delay"`
}

// BookingConfig configures the booking simulation
type BookingConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL: api.BaseURL,
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			ConnectionsTTL: cache.ConnectionsTTL,
			StationsTTL:    cache.StationsTTL,
		},
		RateLimit: RateLimitConfig{
			MaxRequests: cache.RateLimitMaxRequests,
			Window:      cache.RateLimitWindow,
		},
		Search: SearchConfig{
			FallbackDelay: search.DefaultFallbackDelay,
		},
		Booking: BookingConfig{
			Delay: booking.DefaultDelay,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		LogLevel: "warn",
	}
}

// Load reads configuration from path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var fromFile Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fromFile); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	cfg.merge(&fromFile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies every value set in o over c
func (c *Config) merge(o *Config) {
	if o.Upstream.BaseURL != "" {
		c.Upstream.BaseURL = o.Upstream.BaseURL
	}
	if o.Upstream.Timeout != 0 {
		c.Upstream.Timeout = o.Upstream.Timeout
	}
	if o.Cache.ConnectionsTTL != 0 {
		c.Cache.ConnectionsTTL = o.Cache.ConnectionsTTL
	}
	if o.Cache.StationsTTL != 0 {
		c.Cache.StationsTTL = o.Cache.StationsTTL
	}
	if o.RateLimit.MaxRequests != 0 {
		c.RateLimit.MaxRequests = o.RateLimit.MaxRequests
	}
	if o.RateLimit.Window != 0 {
		c.RateLimit.Window = o.RateLimit.Window
	}
	if o.Search.FallbackDelay != 0 {
		c.Search.FallbackDelay = o.Search.FallbackDelay
	}
	if o.Booking.Delay != 0 {
		c.Booking.Delay = o.Booking.Delay
	}
	if o.Server.Addr != "" {
		c.Server.Addr = o.Server.Addr
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate rejects values the services cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Upstream.Timeout < 0 {
		errs = append(errs, errors.New("upstream.timeout must not be negative"))
	}
	if c.Cache.ConnectionsTTL < 0 {
		errs = append(errs, errors.New("cache.connections_ttl must not be negative"))
	}
	if c.RateLimit.MaxRequests < 1 {
		errs = append(errs, errors.New("rate_limit.max_requests must be at least 1"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be positive"))
	}
	if c.Search.FallbackDelay < 0 {
		errs = append(errs, errors.New("search.fallback_delay must not be negative"))
	}
	if c.Booking.Delay < 0 {
		errs = append(errs, errors.New("booking.delay must not be negative"))
	}
	return errors.Join(errs...)
}
