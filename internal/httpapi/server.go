// Package httpapi serves search and booking over a JSON HTTP API for a
// browser front-end.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/mobil-koeln/railhop/internal/models"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Searcher answers train searches
type Searcher interface {
	Search(ctx context.Context, params models.SearchParams) models.SearchResult
}

// Booker confirms bookings
type Booker interface {
	Book(ctx context.Context, connectionID string, details models.PassengerDetails) (models.Booking, error)
}

// CacheAdmin exposes cache statistics and invalidation
type CacheAdmin interface {
	Len() int
	Clear()
}

// Server holds the dependencies of the HTTP handlers
type Server struct {
	search  Searcher
	booking Booker
	cache   CacheAdmin
	logger  *zap.Logger

	allowedOrigins []string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithAllowedOrigins enables CORS for the given browser origins
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// NewServer constructs the Server with all its dependencies
func NewServer(search Searcher, booking Booker, cache CacheAdmin, opts ...Option) *Server {
	s := &Server{
		search:  search,
		booking: booking,
		cache:   cache,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with all routes and middleware mounted
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(NewZapLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
	}

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/bookings", s.handleBook)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Delete("/cache", s.handleCacheClear)
	})

	return r
}

// ListenAndServe serves h on addr until ctx is done, then gives in-flight
// requests up to 15 seconds to complete.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
