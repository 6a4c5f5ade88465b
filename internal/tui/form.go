package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railhop/internal/models"
)

// renderChip renders a toggle label; the focused chip is drawn in reverse video.
func renderChip(label string, active bool, focused bool) string {
	if focused {
		if active {
			return styleChipCursor.Render("[" + label + "]")
		}
		return styleChipCursor.Render(" " + label + " ")
	}
	if active {
		return styleTrain.Render("[" + label + "]")
	}
	return styleMuted.Render(" " + label + " ")
}

// formFields returns the search form fields shown for the current trip type.
func (m Model) formFields() []formField {
	if m.tripType == models.TripRoundTrip {
		return []formField{fieldDate, fieldTrip, fieldReturnDate, fieldNights}
	}
	return []formField{fieldDate, fieldTrip}
}

// input returns the text input backing f, or nil for the trip toggle.
func (m *Model) input(f formField) *textinput.Model {
	switch f {
	case fieldDate:
		return &m.dateInput
	case fieldReturnDate:
		return &m.returnInput
	case fieldNights:
		return &m.nightsInput
	}
	return nil
}

// focusField moves the search form cursor to f.
func (m Model) focusField(f formField) Model {
	m.dateInput.Blur()
	m.returnInput.Blur()
	m.nightsInput.Blur()
	m.formField = f
	if in := m.input(f); in != nil {
		in.Focus()
	}
	return m
}

// moveField moves the search form cursor by delta, wrapping around.
func (m Model) moveField(delta int) Model {
	fields := m.formFields()
	idx := 0
	for i, f := range fields {
		if f == m.formField {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	return m.focusField(fields[idx])
}

func (m Model) toggleTripType() Model {
	if m.tripType == models.TripOneWay {
		m.tripType = models.TripRoundTrip
	} else {
		m.tripType = models.TripOneWay
	}
	m.formErr = nil
	return m
}

// searchParams builds validated search parameters from the form.
func (m Model) searchParams() (models.SearchParams, error) {
	p := models.SearchParams{
		From:     models.CityHamburg,
		To:       models.CityAmsterdam,
		Date:     strings.TrimSpace(m.dateInput.Value()),
		TripType: m.tripType,
	}
	if m.tripType == models.TripRoundTrip {
		p.ReturnDate = strings.TrimSpace(m.returnInput.Value())
		if s := strings.TrimSpace(m.nightsInput.Value()); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return p, models.NewValidationError("overnightStays", fmt.Sprintf("invalid value: %v", s))
			}
			p.OvernightStays = n
		}
	}
	return p, p.Validate()
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		params, err := m.searchParams()
		if err != nil {
			m.formErr = err
			return m, nil
		}
		m.formErr = nil
		m.searchSeq++
		m.searching = true
		m.result = nil
		m.screen = screenResults
		return m, runSearch(m.searcher, params, m.searchSeq)

	case "tab", "down":
		return m.moveField(1), nil

	case "shift+tab", "up":
		return m.moveField(-1), nil

	case "esc":
		if m.result != nil {
			m.screen = screenResults
		}
		return m, nil
	}

	if m.formField == fieldTrip {
		switch msg.String() {
		case " ", "h", "l", "left", "right":
			return m.toggleTripType(), nil
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	// Forward to textinput
	return m.updateFocusedInput(msg)
}

// passengerDetails collects the booking form values.
func (m Model) passengerDetails() models.PassengerDetails {
	value := func(f passengerField) string {
		return strings.TrimSpace(m.passengerInputs[f].Value())
	}
	return models.PassengerDetails{
		FirstName: value(fieldFirstName),
		LastName:  value(fieldLastName),
		Email:     value(fieldEmail),
		Phone:     value(fieldPhone),
	}
}

// focusPassengerField moves the booking form cursor to f.
func (m Model) focusPassengerField(f passengerField) Model {
	for i := range m.passengerInputs {
		m.passengerInputs[i].Blur()
	}
	m.passengerField = f
	m.passengerInputs[f].Focus()
	return m
}

func (m Model) handleBookingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ignore input while a booking is in flight
	if m.booking {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.bookingErr = nil
		m.screen = screenResults
		return m, nil

	case "tab", "down":
		return m.focusPassengerField((m.passengerField + 1) % passengerFieldCount), nil

	case "shift+tab", "up":
		return m.focusPassengerField((m.passengerField + passengerFieldCount - 1) % passengerFieldCount), nil

	case "enter":
		if m.selected == nil {
			return m, nil
		}
		details := m.passengerDetails()
		if err := details.Validate(); err != nil {
			m.bookingErr = err
			return m, nil
		}
		m.bookingErr = nil
		m.booking = true
		return m, runBooking(m.booker, m.selected.ID, details)
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the text input that has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenSearch:
		if in := m.input(m.formField); in != nil {
			*in, cmd = in.Update(msg)
		}
	case screenBooking:
		m.passengerInputs[m.passengerField], cmd = m.passengerInputs[m.passengerField].Update(msg)
	}
	return m, cmd
}
