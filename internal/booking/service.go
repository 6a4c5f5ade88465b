// Package booking simulates booking confirmations. Nothing is persisted and
// no payment is taken.
package booking

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/mobil-koeln/railhop/internal/metrics"
	"github.com/mobil-koeln/railhop/internal/models"
)

const (
	// DefaultDelay is the simulated processing time of a booking
	DefaultDelay = 2 * time.Second

	// ReferencePrefix starts every booking reference
	ReferencePrefix = "DB"

	referenceLength   = 8
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Service confirms bookings
type Service struct {
	clock  clock.Clock
	delay  time.Duration
	logger *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithDelay sets the simulated processing time
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		s.delay = d
	}
}

// WithClock sets the clock used for the processing delay
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a booking service
func NewService(opts ...Option) *Service {
	s := &Service{
		clock:  clock.New(),
		delay:  DefaultDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book confirms a booking of connectionID for the passenger after the
// simulated processing delay. Required passenger fields are checked by the
// caller. It fails only when ctx ends first or no reference can be drawn.
func (s *Service) Book(ctx context.Context, connectionID string, details models.PassengerDetails) (models.Booking, error) {
	if s.delay > 0 {
		timer := s.clock.Timer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return models.Booking{}, fmt.Errorf("booking cancelled: %w", ctx.Err())
		}
	}

	ref, err := NewReference()
	if err != nil {
		return models.Booking{}, err
	}

	metrics.RecordBooking()
	s.logger.Info("booking confirmed",
		zap.String("reference", ref),
		zap.String("connection_id", connectionID))

	return models.Booking{
		Success:          true,
		BookingReference: ref,
		ConnectionID:     connectionID,
		PassengerDetails: details,
	}, nil
}

// NewReference returns "DB" followed by eight random uppercase letters or digits
func NewReference() (string, error) {
	b := make([]byte, referenceLength)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		n, err := crand.Int(crand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		b[i] = referenceAlphabet[n.Int64()]
	}
	return ReferencePrefix + string(b), nil
}
