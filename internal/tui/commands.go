package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railhop/internal/models"
)

const (
	searchTimeout  = 30 * time.Second
	bookingTimeout = 10 * time.Second
)

// runSearch returns a tea.Cmd that runs a train search.
func runSearch(searcher Searcher, params models.SearchParams, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		return searchResultMsg{
			seq:    seq,
			result: searcher.Search(ctx, params),
		}
	}
}

// runBooking returns a tea.Cmd that books a connection.
func runBooking(booker Booker, connectionID string, details models.PassengerDetails) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bookingTimeout)
		defer cancel()

		booking, err := booker.Book(ctx, connectionID, details)
		return bookingResultMsg{
			booking: booking,
			err:     err,
		}
	}
}
