package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railhop/internal/models"
	"github.com/mobil-koeln/railhop/internal/testutil"
)

type fakeSearcher struct {
	calls  int
	params models.SearchParams
	result models.SearchResult
}

func (f *fakeSearcher) Search(_ context.Context, params models.SearchParams) models.SearchResult {
	f.calls++
	f.params = params
	r := f.result
	r.SearchParams = params
	return r
}

type fakeBooker struct {
	connectionID string
	details      models.PassengerDetails
	err          error
}

func (f *fakeBooker) Book(_ context.Context, connectionID string, details models.PassengerDetails) (models.Booking, error) {
	f.connectionID = connectionID
	f.details = details
	if f.err != nil {
		return models.Booking{}, f.err
	}
	return models.Booking{
		Success:          true,
		BookingReference: "DBAB12CD34",
		ConnectionID:     connectionID,
		PassengerDetails: details,
	}, nil
}

func sampleConnections(prefix string) []models.TrainConnection {
	return []models.TrainConnection{
		{ID: prefix + "-1", Departure: models.Endpoint{Time: "06:45", Station: "Hamburg Hbf"}, Arrival: models.Endpoint{Time: "12:55"}, Duration: "6h 10m", Price: 79.9, Currency: "EUR", Changes: 1, TrainType: "ICE 1"},
		{ID: prefix + "-2", Departure: models.Endpoint{Time: "09:01", Station: "Hamburg Hbf", Platform: "14"}, Arrival: models.Endpoint{Time: "14:20"}, Duration: "5h 19m", Price: 59.9, Currency: "EUR", TrainType: "IC 145"},
		{ID: prefix + "-3", Departure: models.Endpoint{Time: "11:30", Station: "Hamburg Hbf"}, Arrival: models.Endpoint{Time: "17:10"}, Duration: "5h 40m", Price: 42.5, Currency: "EUR", TrainType: "ICE 3", EstimatedPrice: true},
	}
}

func newTestModel() (Model, *fakeSearcher, *fakeBooker) {
	s := &fakeSearcher{result: models.SearchResult{Outbound: sampleConnections("out")}}
	b := &fakeBooker{}
	m := New(s, b)
	m.width = 100
	m.height = 40
	return m, s, b
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

// deliver runs cmd and feeds its message back into the model
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew(t *testing.T) {
	m := New(&fakeSearcher{}, &fakeBooker{})

	testutil.AssertEqual(t, m.screen, screenSearch)
	testutil.AssertEqual(t, m.formField, fieldDate)
	testutil.AssertEqual(t, m.tripType, models.TripOneWay)
	testutil.AssertEqual(t, m.sortKey, models.SortDeparture)
	testutil.AssertEqual(t, m.dateInput.Value(), time.Now().Format(models.DateLayout))
	testutil.AssertTrue(t, m.dateInput.Focused())
	testutil.AssertLen(t, m.passengerInputs, int(passengerFieldCount))
}

func TestModel_Init(t *testing.T) {
	m := New(&fakeSearcher{}, &fakeBooker{})
	testutil.AssertTrue(t, m.Init() != nil)
}

func TestModel_WindowSize(t *testing.T) {
	m := New(&fakeSearcher{}, &fakeBooker{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	m = next.(Model)

	testutil.AssertEqual(t, m.width, 120)
	testutil.AssertEqual(t, m.height, 45)
}

func TestSearch_OneWay(t *testing.T) {
	m, s, _ := newTestModel()
	m.dateInput.SetValue("2025-06-10")

	m, cmd := press(t, m, "enter")
	testutil.AssertEqual(t, m.screen, screenResults)
	testutil.AssertTrue(t, m.searching)
	testutil.AssertEqual(t, m.searchSeq, 1)

	m = deliver(t, m, cmd)
	testutil.AssertFalse(t, m.searching)
	testutil.AssertEqual(t, s.calls, 1)
	testutil.AssertEqual(t, s.params.From, models.CityHamburg)
	testutil.AssertEqual(t, s.params.To, models.CityAmsterdam)
	testutil.AssertEqual(t, s.params.Date, "2025-06-10")
	testutil.AssertEqual(t, s.params.TripType, models.TripOneWay)
	testutil.AssertLen(t, m.legConnections(legOutbound), 3)
	testutil.AssertFalse(t, m.hasReturn())
}

func TestSearch_RoundTripFields(t *testing.T) {
	m, s, _ := newTestModel()
	m.dateInput.SetValue("2025-06-10")

	// Move to trip toggle and switch to round trip
	m, _ = press(t, m, "tab", " ")
	testutil.AssertEqual(t, m.formField, fieldTrip)
	testutil.AssertEqual(t, m.tripType, models.TripRoundTrip)
	testutil.AssertLen(t, m.formFields(), 4)

	m, _ = press(t, m, "tab", "tab")
	testutil.AssertEqual(t, m.formField, fieldNights)
	testutil.AssertTrue(t, m.nightsInput.Focused())
	m, _ = press(t, m, "2")
	testutil.AssertEqual(t, m.nightsInput.Value(), "2")

	// Wraps back to the date field
	m, _ = press(t, m, "tab")
	testutil.AssertEqual(t, m.formField, fieldDate)

	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)
	testutil.AssertEqual(t, s.params.TripType, models.TripRoundTrip)
	testutil.AssertEqual(t, s.params.OvernightStays, 2)
	testutil.AssertEqual(t, m.screen, screenResults)
}

func TestSearch_ValidationError(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m Model) Model
		errMsg string
	}{
		{
			name: "missing date",
			setup: func(m Model) Model {
				m.dateInput.SetValue("")
				return m
			},
			errMsg: models.MsgMissingDepartureDate,
		},
		{
			name: "round trip without return",
			setup: func(m Model) Model {
				m.dateInput.SetValue("2025-06-10")
				m.tripType = models.TripRoundTrip
				return m
			},
			errMsg: models.MsgMissingReturn,
		},
		{
			name: "bad nights",
			setup: func(m Model) Model {
				m.dateInput.SetValue("2025-06-10")
				m.tripType = models.TripRoundTrip
				m.nightsInput.SetValue("two")
				return m
			},
			errMsg: "invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s, _ := newTestModel()
			m = tt.setup(m)

			m, cmd := press(t, m, "enter")
			testutil.AssertTrue(t, cmd == nil)
			testutil.AssertEqual(t, m.screen, screenSearch)
			testutil.AssertEqual(t, s.calls, 0)
			testutil.AssertError(t, m.formErr)
			testutil.AssertContains(t, m.formErr.Error(), tt.errMsg)
		})
	}
}

func TestSearch_TripToggleQuits(t *testing.T) {
	m, _, _ := newTestModel()
	m, _ = press(t, m, "tab")

	_, cmd := press(t, m, "q")
	testutil.AssertTrue(t, isQuit(cmd))
}

func TestSearch_QTypedIntoDate(t *testing.T) {
	m, _, _ := newTestModel()
	m.dateInput.SetValue("")

	m, _ = press(t, m, "q")
	testutil.AssertEqual(t, m.screen, screenSearch)
	testutil.AssertEqual(t, m.dateInput.Value(), "q")
}

func TestSearchResultMsg_Stale(t *testing.T) {
	m, _, _ := newTestModel()
	m.searchSeq = 2
	m.searching = true
	m.screen = screenResults

	next, _ := m.Update(searchResultMsg{seq: 1, result: models.SearchResult{Outbound: sampleConnections("old")}})
	m = next.(Model)

	testutil.AssertTrue(t, m.searching)
	testutil.AssertTrue(t, m.result == nil)
}

func searchedModel(t *testing.T, roundTrip bool) (Model, *fakeBooker) {
	t.Helper()
	m, s, b := newTestModel()
	if roundTrip {
		s.result.Return = sampleConnections("ret")
	}
	m.dateInput.SetValue("2025-06-10")
	m, cmd := press(t, m, "enter")
	return deliver(t, m, cmd), b
}

func TestResults_Navigation(t *testing.T) {
	m, _ := searchedModel(t, false)
	testutil.AssertEqual(t, m.cursors[legOutbound], 0)

	m, _ = press(t, m, "j", "down")
	testutil.AssertEqual(t, m.cursors[legOutbound], 2)

	// Clamped at the end
	m, _ = press(t, m, "j")
	testutil.AssertEqual(t, m.cursors[legOutbound], 2)

	m, _ = press(t, m, "k")
	testutil.AssertEqual(t, m.cursors[legOutbound], 1)

	m, _ = press(t, m, "end")
	testutil.AssertEqual(t, m.cursors[legOutbound], 2)
}

func TestResults_SortCycle(t *testing.T) {
	m, _ := searchedModel(t, false)
	m, _ = press(t, m, "j")

	m, _ = press(t, m, "s")
	testutil.AssertEqual(t, m.sortKey, models.SortPrice)
	testutil.AssertEqual(t, m.cursors[legOutbound], 0)

	conns := m.legConnections(legOutbound)
	testutil.AssertEqual(t, conns[0].ID, "out-3")
	testutil.AssertEqual(t, conns[2].ID, "out-1")

	// The stored result keeps departure order
	testutil.AssertEqual(t, m.result.Outbound[0].ID, "out-1")
}

func TestResults_TabSwitchesLeg(t *testing.T) {
	m, _ := searchedModel(t, false)
	m, _ = press(t, m, "tab")
	testutil.AssertEqual(t, m.leg, legOutbound)

	m, _ = searchedModel(t, true)
	m, _ = press(t, m, "tab")
	testutil.AssertEqual(t, m.leg, legReturn)
	m, _ = press(t, m, "j")
	testutil.AssertEqual(t, m.cursors[legReturn], 1)
	testutil.AssertEqual(t, m.cursors[legOutbound], 0)
	m, _ = press(t, m, "tab")
	testutil.AssertEqual(t, m.leg, legOutbound)
}

func TestResults_EscBackToSearch(t *testing.T) {
	m, _ := searchedModel(t, false)
	m, _ = press(t, m, "esc")
	testutil.AssertEqual(t, m.screen, screenSearch)
	testutil.AssertTrue(t, m.dateInput.Focused())

	// Esc on the form returns to the existing result
	m, _ = press(t, m, "esc")
	testutil.AssertEqual(t, m.screen, screenResults)
}

func TestResults_EnterIgnoredWhileSearching(t *testing.T) {
	m, _, _ := newTestModel()
	m.dateInput.SetValue("2025-06-10")
	m, _ = press(t, m, "enter")

	m, cmd := press(t, m, "enter")
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.screen, screenResults)
}

func TestBooking_Flow(t *testing.T) {
	m, b := searchedModel(t, false)
	m, _ = press(t, m, "j", "enter")

	testutil.AssertEqual(t, m.screen, screenBooking)
	testutil.AssertEqual(t, m.selected.ID, "out-2")
	testutil.AssertTrue(t, m.passengerInputs[fieldFirstName].Focused())

	m.passengerInputs[fieldFirstName].SetValue("Anna")
	m.passengerInputs[fieldLastName].SetValue("Schmidt")
	m.passengerInputs[fieldEmail].SetValue("anna@example.com")

	m, cmd := press(t, m, "enter")
	testutil.AssertTrue(t, m.booking)

	m = deliver(t, m, cmd)
	testutil.AssertFalse(t, m.booking)
	testutil.AssertEqual(t, m.screen, screenConfirmation)
	testutil.AssertEqual(t, b.connectionID, "out-2")
	testutil.AssertEqual(t, b.details.Email, "anna@example.com")
	testutil.AssertEqual(t, m.confirmation.BookingReference, "DBAB12CD34")

	// Book another journey
	m, _ = press(t, m, "enter")
	testutil.AssertEqual(t, m.screen, screenSearch)
	testutil.AssertTrue(t, m.confirmation == nil)
	testutil.AssertEqual(t, m.passengerInputs[fieldFirstName].Value(), "")
}

func TestBooking_InvalidDetails(t *testing.T) {
	m, b := searchedModel(t, false)
	m, _ = press(t, m, "enter")

	m.passengerInputs[fieldFirstName].SetValue("Anna")
	m.passengerInputs[fieldLastName].SetValue("Schmidt")
	m.passengerInputs[fieldEmail].SetValue("not-an-email")

	m, cmd := press(t, m, "enter")
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertFalse(t, m.booking)
	testutil.AssertTrue(t, models.IsValidationError(m.bookingErr))
	testutil.AssertEqual(t, b.connectionID, "")
}

func TestBooking_Failure(t *testing.T) {
	m, b := searchedModel(t, false)
	b.err = errors.New("booking backend down")
	m, _ = press(t, m, "enter")

	m.passengerInputs[fieldFirstName].SetValue("Anna")
	m.passengerInputs[fieldLastName].SetValue("Schmidt")
	m.passengerInputs[fieldEmail].SetValue("anna@example.com")

	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)

	testutil.AssertEqual(t, m.screen, screenBooking)
	testutil.AssertError(t, m.bookingErr)
	testutil.AssertTrue(t, m.confirmation == nil)
}

func TestBooking_FieldCycle(t *testing.T) {
	m, _ := searchedModel(t, false)
	m, _ = press(t, m, "enter")

	m, _ = press(t, m, "tab", "tab", "tab")
	testutil.AssertEqual(t, m.passengerField, fieldPhone)
	m, _ = press(t, m, "tab")
	testutil.AssertEqual(t, m.passengerField, fieldFirstName)
	m, _ = press(t, m, "shift+tab")
	testutil.AssertEqual(t, m.passengerField, fieldPhone)

	m, _ = press(t, m, "esc")
	testutil.AssertEqual(t, m.screen, screenResults)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel()
	_, cmd := press(t, m, "ctrl+c")
	testutil.AssertTrue(t, isQuit(cmd))

	m, _ = searchedModel(t, false)
	_, cmd = press(t, m, "q")
	testutil.AssertTrue(t, isQuit(cmd))
}
