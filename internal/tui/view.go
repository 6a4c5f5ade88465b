package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/railhop/internal/models"
	"github.com/mobil-koeln/railhop/internal/output"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := renderHeader()
	statusBar := m.renderStatusBar()

	var body string
	switch m.screen {
	case screenSearch:
		body = m.renderSearchForm()
	case screenResults:
		body = m.renderResults()
	case screenBooking:
		body = m.renderBookingForm()
	case screenConfirmation:
		body = m.renderConfirmation()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// renderHeader renders the brand name and the served route.
func renderHeader() string {
	from := models.Stations[models.CityHamburg].DisplayName
	to := models.Stations[models.CityAmsterdam].DisplayName
	return styleLogo.Render(" railhop ") + styleMuted.Render(" "+from+" ⇄ "+to)
}

// renderSearchForm renders the search inputs.
func (m Model) renderSearchForm() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("SEARCH"))
	b.WriteString("\n\n")

	b.WriteString(formLabel("Date") + m.dateInput.View() + "\n")

	tripFocused := m.formField == fieldTrip
	b.WriteString(formLabel("Trip") +
		renderChip("One-way", m.tripType == models.TripOneWay, tripFocused && m.tripType == models.TripOneWay) + " " +
		renderChip("Round trip", m.tripType == models.TripRoundTrip, tripFocused && m.tripType == models.TripRoundTrip) + "\n")

	if m.tripType == models.TripRoundTrip {
		b.WriteString(formLabel("Return date") + m.returnInput.View() + "\n")
		b.WriteString(formLabel("Nights") + m.nightsInput.View() + "\n")
	}

	if m.formErr != nil {
		b.WriteString("\n" + styleError.Render(errorMessage(m.formErr)))
	}

	return stylePanelFocused.Width(m.panelWidth()).Render(b.String())
}

func formLabel(s string) string {
	return styleMuted.Render(fmt.Sprintf("%-13s", s+":"))
}

// errorMessage returns the user-facing part of err
func errorMessage(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Field + ": " + ve.Message
	}
	return err.Error()
}

// renderResults renders the outbound and return lists.
func (m Model) renderResults() string {
	if m.searching {
		return stylePanelNormal.Width(m.panelWidth()).Render(styleLoading.Render(" Searching connections..."))
	}
	if m.result == nil {
		return stylePanelNormal.Width(m.panelWidth()).Render(styleMuted.Render(" No search yet"))
	}

	var sections []string
	if m.result.Fallback {
		sections = append(sections, styleWarning.Render(" Live timetable unavailable, showing sample connections."))
	}

	from := models.Stations[models.CityHamburg].DisplayName
	to := models.Stations[models.CityAmsterdam].DisplayName

	sections = append(sections, m.renderLeg(legOutbound, "OUTBOUND", from+" → "+to, m.result.SearchParams.Date))
	if m.hasReturn() {
		returnDate, _ := m.result.SearchParams.ResolveReturnDate()
		sections = append(sections, m.renderLeg(legReturn, "RETURN", to+" → "+from, returnDate))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLeg renders one direction's connection list inside a panel.
func (m Model) renderLeg(l leg, title, route, date string) string {
	width := m.panelWidth()
	conns := m.legConnections(l)

	var b strings.Builder
	b.WriteString(styleHeader.Render(title) + "  " + route + "  " + styleMuted.Render(date))
	b.WriteString("  " + styleMuted.Render("sorted by "+string(m.sortKey)))
	b.WriteString("\n")

	if len(conns) == 0 {
		b.WriteString(styleMuted.Render(" No connections found"))
	}

	start, end := visibleRange(m.cursors[l], len(conns), m.listHeight())
	for i := start; i < end; i++ {
		selected := l == m.leg && i == m.cursors[l]
		b.WriteString(renderConnectionLine(conns[i], selected))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	border := stylePanelNormal
	if l == m.leg {
		border = stylePanelFocused
	}
	return border.Width(width).Render(b.String())
}

// renderConnectionLine renders a single connection row.
func renderConnectionLine(c models.TrainConnection, selected bool) string {
	train := truncate(c.TrainType, 14)

	price := stylePrice.Render(output.FormatPrice(c))
	if c.EstimatedPrice {
		price = styleEstimated.Render(output.FormatPrice(c))
	}

	platform := ""
	if c.Departure.Platform != "" {
		platform = stylePlatform.Render("Pl." + c.Departure.Platform)
	}

	line := fmt.Sprintf("%s → %s  %-7s  %-9s  %s  %-6s  %s",
		styleTime.Render(c.Departure.Time),
		styleTime.Render(c.Arrival.Time),
		c.Duration,
		output.FormatChanges(c.Changes),
		styleTrain.Render(fmt.Sprintf("%-14s", train)),
		platform,
		price,
	)

	if selected {
		return styleSelected.Render(" > ") + line
	}
	return "   " + line
}

// renderBookingForm renders passenger inputs for the selected connection.
func (m Model) renderBookingForm() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("COMPLETE YOUR BOOKING"))
	b.WriteString("\n\n")

	if m.selected != nil {
		c := m.selected
		b.WriteString(fmt.Sprintf("%s %s → %s %s  %s  %s\n\n",
			styleTime.Render(c.Departure.Time), c.Departure.Station,
			styleTime.Render(c.Arrival.Time), c.Arrival.Station,
			styleTrain.Render(c.TrainType),
			output.FormatPrice(*c),
		))
	}

	labels := []string{"First name", "Last name", "Email", "Phone"}
	for i, label := range labels {
		b.WriteString(formLabel(label) + m.passengerInputs[i].View() + "\n")
	}

	switch {
	case m.booking:
		b.WriteString("\n" + styleLoading.Render("Booking..."))
	case m.bookingErr != nil:
		b.WriteString("\n" + styleError.Render(errorMessage(m.bookingErr)))
	}

	return stylePanelFocused.Width(m.panelWidth()).Render(b.String())
}

// renderConfirmation renders the booking confirmation.
func (m Model) renderConfirmation() string {
	if m.confirmation == nil {
		return ""
	}
	bk := m.confirmation
	p := bk.PassengerDetails

	var b strings.Builder
	b.WriteString(styleSuccess.Render("Booking confirmed!"))
	b.WriteString("\n\n")
	b.WriteString(formLabel("Reference") + styleHeader.Render(bk.BookingReference) + "\n")
	b.WriteString(formLabel("Connection") + bk.ConnectionID + "\n")
	b.WriteString(formLabel("Passenger") + p.FirstName + " " + p.LastName + "\n")
	b.WriteString(formLabel("Email") + p.Email + "\n")
	b.WriteString("\n" + styleMuted.Render("A confirmation email is on its way."))

	return stylePanelFocused.Width(m.panelWidth()).Render(b.String())
}

// renderStatusBar renders key hints for the current screen.
func (m Model) renderStatusBar() string {
	var hints string
	switch m.screen {
	case screenSearch:
		if m.formField == fieldTrip {
			hints = "Space:toggle  Tab:next  Enter:search  q:quit"
		} else {
			hints = "Tab:next  Enter:search  Esc:results  Ctrl+C:quit"
		}
	case screenResults:
		hints = "j/k:navigate  Enter:book  s:sort  Tab:leg  Esc:search  q:quit"
	case screenBooking:
		hints = "Tab:next field  Enter:confirm  Esc:results  Ctrl+C:quit"
	case screenConfirmation:
		hints = "Enter:book another journey  q:quit"
	}

	return styleStatusBar.Width(m.width).Render(" " + hints)
}

// panelWidth is the inner width of full-width panels
func (m Model) panelWidth() int {
	w := m.width - 2 // subtract border
	if w < 20 {
		w = 20
	}
	return w
}

// listHeight is the number of rows each connection list may show
func (m Model) listHeight() int {
	legs := 1
	if m.hasReturn() {
		legs = 2
	}
	h := (m.height-6)/legs - 3 // header, status bar, borders, titles
	if h < 3 {
		h = 3
	}
	return h
}

// visibleRange calculates the visible window of items to keep cursor in view.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate shortens s to width, marking the cut with "~".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-1] + "~"
}
