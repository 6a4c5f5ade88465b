package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case bookingResultMsg:
		return m.handleBookingResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages (cursor blink) to the focused input
	return m.updateFocusedInput(msg)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results
	if msg.seq != m.searchSeq {
		return m, nil
	}
	m.searching = false
	result := msg.result
	m.result = &result
	m.leg = legOutbound
	m.cursors = [2]int{}
	return m, nil
}

func (m Model) handleBookingResult(msg bookingResultMsg) (tea.Model, tea.Cmd) {
	m.booking = false
	if msg.err != nil {
		m.bookingErr = msg.err
		return m, nil
	}
	booking := msg.booking
	m.confirmation = &booking
	m.screen = screenConfirmation
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.screen {
	case screenSearch:
		return m.handleSearchKeys(msg)
	case screenResults:
		return m.handleResultKeys(msg)
	case screenBooking:
		return m.handleBookingKeys(msg)
	case screenConfirmation:
		return m.handleConfirmationKeys(msg)
	}

	return m, nil
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	conns := m.legConnections(m.leg)

	// Keep the cursor inside the list
	cursor := &m.cursors[m.leg]
	if *cursor >= len(conns) {
		*cursor = len(conns) - 1
	}
	if *cursor < 0 {
		*cursor = 0
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "/":
		m.screen = screenSearch
		return m.focusField(fieldDate), nil

	case "tab", "shift+tab":
		if m.hasReturn() {
			if m.leg == legOutbound {
				m.leg = legReturn
			} else {
				m.leg = legOutbound
			}
		}
		return m, nil

	case "j", "down":
		if *cursor < len(conns)-1 {
			*cursor++
		}
		return m, nil

	case "k", "up":
		if *cursor > 0 {
			*cursor--
		}
		return m, nil

	case "home":
		*cursor = 0
		return m, nil

	case "end":
		if len(conns) > 0 {
			*cursor = len(conns) - 1
		}
		return m, nil

	case "s":
		m.sortKey = m.sortKey.Next()
		m.cursors = [2]int{}
		return m, nil

	case "enter":
		if m.searching || len(conns) == 0 {
			return m, nil
		}
		selected := conns[*cursor]
		m.selected = &selected
		m.bookingErr = nil
		m.screen = screenBooking
		return m.focusPassengerField(fieldFirstName), nil
	}

	return m, nil
}

func (m Model) handleConfirmationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter", "esc":
		// Book another journey
		m.confirmation = nil
		m.selected = nil
		m.passengerInputs = newPassengerInputs()
		m.passengerField = fieldFirstName
		m.screen = screenSearch
		return m.focusField(fieldDate), nil
	}
	return m, nil
}
