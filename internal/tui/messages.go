package tui

import (
	"github.com/mobil-koeln/railhop/internal/models"
)

// searchResultMsg carries a search result back to the model.
// seq is used for stale-result detection.
type searchResultMsg struct {
	seq    int
	result models.SearchResult
}

// bookingResultMsg carries the outcome of a booking.
type bookingResultMsg struct {
	booking models.Booking
	err     error
}
