package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railhop/internal/models"
)

// Searcher answers train searches
type Searcher interface {
	Search(ctx context.Context, params models.SearchParams) models.SearchResult
}

// Booker confirms bookings
type Booker interface {
	Book(ctx context.Context, connectionID string, details models.PassengerDetails) (models.Booking, error)
}

type screen int

const (
	screenSearch screen = iota
	screenResults
	screenBooking
	screenConfirmation
)

type formField int

const (
	fieldDate formField = iota
	fieldTrip
	fieldReturnDate
	fieldNights
)

type leg int

const (
	legOutbound leg = iota
	legReturn
)

type passengerField int

const (
	fieldFirstName passengerField = iota
	fieldLastName
	fieldEmail
	fieldPhone
	passengerFieldCount
)

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	searcher Searcher
	booker   Booker
	width    int
	height   int
	screen   screen

	// Search form
	dateInput   textinput.Model
	returnInput textinput.Model
	nightsInput textinput.Model
	tripType    models.TripType
	formField   formField
	formErr     error

	// Results
	searching bool
	searchSeq int
	result    *models.SearchResult
	sortKey   models.SortKey
	leg       leg
	cursors   [2]int

	// Booking
	selected        *models.TrainConnection
	passengerInputs []textinput.Model
	passengerField  passengerField
	booking         bool
	bookingErr      error
	confirmation    *models.Booking
}

// New creates a new TUI model. The departure date starts at today.
func New(searcher Searcher, booker Booker) Model {
	date := newInput("YYYY-MM-DD", 10)
	date.SetValue(time.Now().Format(models.DateLayout))
	date.Focus()

	return Model{
		searcher:        searcher,
		booker:          booker,
		screen:          screenSearch,
		dateInput:       date,
		returnInput:     newInput("YYYY-MM-DD", 10),
		nightsInput:     newInput("0", 3),
		tripType:        models.TripOneWay,
		formField:       fieldDate,
		sortKey:         models.SortDeparture,
		passengerInputs: newPassengerInputs(),
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 20
	return ti
}

func newPassengerInputs() []textinput.Model {
	inputs := []textinput.Model{
		newInput("Anna", 50),
		newInput("Schmidt", 50),
		newInput("anna@example.com", 100),
		newInput("optional", 30),
	}
	for i := range inputs {
		inputs[i].Width = 30
	}
	return inputs
}

// Init returns the initial command (textinput blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// legConnections returns the connections of l in the current sort order
func (m Model) legConnections(l leg) []models.TrainConnection {
	if m.result == nil {
		return nil
	}
	conns := m.result.Outbound
	if l == legReturn {
		conns = m.result.Return
	}
	return models.SortBy(conns, m.sortKey)
}

// hasReturn reports whether the current result has a return leg
func (m Model) hasReturn() bool {
	return m.result != nil && len(m.result.Return) > 0
}
