package output

import (
	"fmt"
	"io"

	"github.com/mobil-koeln/railhop/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors  *Colors
	Sort    models.SortKey
	ShowIDs bool
}

// RenderSearchResult renders outbound and return connections
func RenderSearchResult(w io.Writer, result models.SearchResult, opts TableOptions) {
	c := opts.Colors
	if c == nil {
		c = NewColors(ColorNever)
	}

	if result.Fallback {
		_, _ = fmt.Fprintln(w, c.Warning("Live timetable unavailable, showing sample connections."))
		_, _ = fmt.Fprintln(w)
	}

	params := result.SearchParams
	hamburg := models.Stations[models.CityHamburg].DisplayName
	amsterdam := models.Stations[models.CityAmsterdam].DisplayName

	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		c.Header("Outbound"),
		c.Station("%s → %s", hamburg, amsterdam),
		c.Muted(params.Date),
	)
	RenderConnections(w, result.Outbound, opts)

	if result.Return == nil {
		return
	}

	returnDate, _ := params.ResolveReturnDate()
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		c.Header("Return"),
		c.Station("%s → %s", amsterdam, hamburg),
		c.Muted(returnDate),
	)
	RenderConnections(w, result.Return, opts)
}

// RenderConnections renders connections as a formatted table in the
// requested order
func RenderConnections(w io.Writer, conns []models.TrainConnection, opts TableOptions) {
	if len(conns) == 0 {
		_, _ = fmt.Fprintln(w, "No connections found.")
		return
	}

	c := opts.Colors
	if c == nil {
		c = NewColors(ColorNever)
	}

	sortKey := opts.Sort
	if sortKey == "" {
		sortKey = models.SortDeparture
	}

	for _, conn := range models.SortBy(conns, sortKey) {
		// Train type (truncate/pad to 14 chars)
		train := conn.TrainType
		if len(train) > 14 {
			train = train[:14]
		}

		// Platform (fixed 7-char width: "Pl.XXX" or spaces)
		platformStr := "       "
		if p := conn.Departure.Platform; p != "" {
			if len(p) > 3 {
				p = p[:3]
			}
			platformStr = fmt.Sprintf("Pl.%-3s ", p)
		}

		_, _ = fmt.Fprintf(w, "%s → %s  %-7s  %-9s  %s  %s  %s\n",
			c.Time(conn.Departure.Time),
			c.Time(conn.Arrival.Time),
			conn.Duration,
			FormatChanges(conn.Changes),
			c.Train("%-14s", train),
			c.Platform(platformStr),
			formatPrice(c, conn),
		)

		if opts.ShowIDs {
			_, _ = fmt.Fprintf(w, "               %s %s\n", c.Muted("ID:"), conn.ID)
		}
	}
}

// RenderBooking renders a booking confirmation
func RenderBooking(w io.Writer, b models.Booking, opts TableOptions) {
	c := opts.Colors
	if c == nil {
		c = NewColors(ColorNever)
	}

	if !b.Success {
		_, _ = fmt.Fprintln(w, c.Warning("Booking failed."))
		return
	}

	p := b.PassengerDetails
	_, _ = fmt.Fprintln(w, c.Success("Booking confirmed!"))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Reference: "), c.Header(b.BookingReference))
	_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Connection:"), b.ConnectionID)
	_, _ = fmt.Fprintf(w, "  %s %s %s\n", c.Muted("Passenger: "), p.FirstName, p.LastName)
	_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Email:     "), p.Email)
	if p.Phone != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Phone:     "), p.Phone)
	}
}

// FormatChanges renders a change count ("direct", "1 change", "2 changes")
func FormatChanges(n int) string {
	switch n {
	case 0:
		return "direct"
	case 1:
		return "1 change"
	default:
		return fmt.Sprintf("%d changes", n)
	}
}

// FormatPrice renders a fare with two decimals; synthesized fares are
// prefixed with "~"
func FormatPrice(conn models.TrainConnection) string {
	s := fmt.Sprintf("%.2f %s", conn.Price, conn.Currency)
	if conn.EstimatedPrice {
		return "~" + s
	}
	return s
}

func formatPrice(c *Colors, conn models.TrainConnection) string {
	if conn.EstimatedPrice {
		return c.Estimated("%s", FormatPrice(conn))
	}
	return c.Price("%s", FormatPrice(conn))
}
