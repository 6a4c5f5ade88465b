package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TrainConnection is one bookable journey between the route endpoints
type TrainConnection struct {
	ID        string   `json:"id"`
	Departure Endpoint `json:"departure"`
	Arrival   Endpoint `json:"arrival"`
	Duration  string   `json:"duration"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	Changes   int      `json:"changes"`
	TrainType string   `json:"trainType"`
	Carrier   string   `json:"carrier"`
	Available bool     `json:"available"`

	// EstimatedPrice is set when the upstream had no fare and Price was synthesized
	EstimatedPrice bool `json:"estimatedPrice,omitempty"`
}

// Endpoint is the departure or arrival side of a connection
type Endpoint struct {
	Time     string `json:"time"`
	Date     string `json:"date,omitempty"`
	Station  string `json:"station"`
	Platform string `json:"platform,omitempty"`
}

// ClockMinutes parses an "HH:MM" clock time into minutes since midnight
func ClockMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	return hours*60 + minutes, nil
}

// CalculateDuration returns the elapsed time between two "HH:MM" clock
// times as "<hours>h <minutes>m". An arrival earlier than the departure is
// taken to be on the next day; journeys longer than a day are not
// representable.
func CalculateDuration(departure, arrival string) string {
	dep, _ := ClockMinutes(departure)
	arr, _ := ClockMinutes(arrival)

	total := arr - dep
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// DurationMinutes parses a duration produced by CalculateDuration
func DurationMinutes(d string) int {
	hours, rest, _ := strings.Cut(d, "h")
	h, _ := strconv.Atoi(strings.TrimSpace(hours))
	m, _ := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "m")))
	return h*60 + m
}

// departureMinutes is the sort key for departure ordering; unparsable
// times sort first.
func departureMinutes(c TrainConnection) int {
	m, _ := ClockMinutes(c.Departure.Time)
	return m
}

// SortByDeparture orders connections in place by departure clock time,
// keeping the original order of equal times.
func SortByDeparture(conns []TrainConnection) {
	slices.SortStableFunc(conns, func(a, b TrainConnection) int {
		return departureMinutes(a) - departureMinutes(b)
	})
}

// SortKey selects the ordering of displayed results
type SortKey string

const (
	SortDeparture SortKey = "departure"
	SortPrice     SortKey = "price"
	SortDuration  SortKey = "duration"
	SortChanges   SortKey = "changes"
)

// SortKeys lists the supported orderings in display order
var SortKeys = []SortKey{SortPrice, SortDuration, SortChanges, SortDeparture}

// ParseSortKey parses a sort key name
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", NewValidationError("sort", fmt.Sprintf("invalid value: %v", s))
}

// Next returns the ordering that follows k in SortKeys
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// SortBy returns a copy of conns ordered by key. The input is not modified.
func SortBy(conns []TrainConnection, key SortKey) []TrainConnection {
	out := slices.Clone(conns)
	var cmp func(a, b TrainConnection) int
	switch key {
	case SortPrice:
		cmp = func(a, b TrainConnection) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		}
	case SortDuration:
		cmp = func(a, b TrainConnection) int {
			return DurationMinutes(a.Duration) - DurationMinutes(b.Duration)
		}
	case SortChanges:
		cmp = func(a, b TrainConnection) int {
			return a.Changes - b.Changes
		}
	default:
		cmp = func(a, b TrainConnection) int {
			return departureMinutes(a) - departureMinutes(b)
		}
	}
	slices.SortStableFunc(out, cmp)
	return out
}
