package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mobil-koeln/railhop/internal/models"
	"github.com/mobil-koeln/railhop/internal/testutil"
)

func testConnection(id, dep, arr string, price float64, changes int) models.TrainConnection {
	return models.TrainConnection{
		ID:        id,
		Departure: models.Endpoint{Time: dep, Station: "Hamburg Hbf", Platform: "14"},
		Arrival:   models.Endpoint{Time: arr, Station: "Amsterdam Centraal", Platform: "5b"},
		Duration:  models.CalculateDuration(dep, arr),
		Price:     price,
		Currency:  "EUR",
		Changes:   changes,
		TrainType: "ICE",
		Carrier:   models.RouteCarrier,
		Available: true,
	}
}

func TestRenderConnections_Empty(t *testing.T) {
	var buf bytes.Buffer
	opts := TableOptions{Colors: NewColors(ColorNever)}

	RenderConnections(&buf, nil, opts)

	testutil.AssertContains(t, buf.String(), "No connections found")
}

func TestRenderConnections_SingleConnection(t *testing.T) {
	var buf bytes.Buffer
	opts := TableOptions{Colors: NewColors(ColorNever)}

	RenderConnections(&buf, []models.TrainConnection{
		testConnection("conn-1", "06:45", "12:55", 49.99, 1),
	}, opts)

	output := buf.String()
	testutil.AssertContains(t, output, "06:45 → 12:55")
	testutil.AssertContains(t, output, "6h 10m")
	testutil.AssertContains(t, output, "1 change")
	testutil.AssertContains(t, output, "ICE")
	testutil.AssertContains(t, output, "Pl.14")
	testutil.AssertContains(t, output, "49.99 EUR")
	testutil.AssertNotContains(t, output, "~49.99")
	testutil.AssertNotContains(t, output, "conn-1")
}

func TestRenderConnections_EstimatedPrice(t *testing.T) {
	conn := testConnection("transport-0", "09:01", "14:20", 52.1, 0)
	conn.EstimatedPrice = true

	var buf bytes.Buffer
	RenderConnections(&buf, []models.TrainConnection{conn}, TableOptions{Colors: NewColors(ColorNever)})

	output := buf.String()
	testutil.AssertContains(t, output, "~52.10 EUR")
	testutil.AssertContains(t, output, "direct")
}

func TestRenderConnections_ShowIDs(t *testing.T) {
	var buf bytes.Buffer
	opts := TableOptions{Colors: NewColors(ColorNever), ShowIDs: true}

	RenderConnections(&buf, []models.TrainConnection{
		testConnection("conn-1-2025-06-10", "06:45", "12:55", 49.99, 1),
	}, opts)

	testutil.AssertContains(t, buf.String(), "ID: conn-1-2025-06-10")
}

func TestRenderConnections_MissingPlatform(t *testing.T) {
	conn := testConnection("conn-1", "06:45", "12:55", 49.99, 1)
	conn.Departure.Platform = ""

	var buf bytes.Buffer
	RenderConnections(&buf, []models.TrainConnection{conn}, TableOptions{})

	testutil.AssertNotContains(t, buf.String(), "Pl.")
}

func TestRenderConnections_LongTrainType(t *testing.T) {
	conn := testConnection("conn-1", "06:45", "12:55", 49.99, 1)
	conn.TrainType = "nationalExpressSpecial"

	var buf bytes.Buffer
	RenderConnections(&buf, []models.TrainConnection{conn}, TableOptions{Colors: NewColors(ColorNever)})

	output := buf.String()
	testutil.AssertContains(t, output, "nationalExpres")
	testutil.AssertNotContains(t, output, "nationalExpressSpecial")
}

func TestRenderConnections_SortOrder(t *testing.T) {
	conns := []models.TrainConnection{
		testConnection("a", "06:45", "12:55", 79.99, 1),
		testConnection("b", "09:15", "14:30", 39.99, 0),
		testConnection("c", "12:30", "18:45", 59.99, 2),
	}

	tests := []struct {
		name  string
		sort  models.SortKey
		first string
	}{
		{"default is departure", "", "06:45"},
		{"departure", models.SortDeparture, "06:45"},
		{"price", models.SortPrice, "09:15"},
		{"duration", models.SortDuration, "09:15"},
		{"changes", models.SortChanges, "09:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderConnections(&buf, conns, TableOptions{Colors: NewColors(ColorNever), Sort: tt.sort})

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			testutil.AssertLen(t, lines, 3)
			testutil.AssertTrue(t, strings.HasPrefix(lines[0], tt.first))
		})
	}

	// Rendering must not reorder the caller's slice
	testutil.AssertEqual(t, conns[0].ID, "a")
}

func TestRenderSearchResult_OneWay(t *testing.T) {
	result := models.SearchResult{
		Outbound: []models.TrainConnection{testConnection("conn-1", "06:45", "12:55", 49.99, 1)},
		SearchParams: models.SearchParams{
			From:     models.CityHamburg,
			To:       models.CityAmsterdam,
			Date:     "2025-06-10",
			TripType: models.TripOneWay,
		},
	}

	var buf bytes.Buffer
	RenderSearchResult(&buf, result, TableOptions{Colors: NewColors(ColorNever)})

	output := buf.String()
	testutil.AssertContains(t, output, "Outbound")
	testutil.AssertContains(t, output, "Hamburg Hbf → Amsterdam Centraal")
	testutil.AssertContains(t, output, "2025-06-10")
	testutil.AssertNotContains(t, output, "Return")
	testutil.AssertNotContains(t, output, "sample connections")
}

func TestRenderSearchResult_RoundTripFallback(t *testing.T) {
	result := models.SearchResult{
		Outbound: []models.TrainConnection{testConnection("conn-1", "06:45", "12:55", 49.99, 1)},
		Return:   []models.TrainConnection{testConnection("conn-2", "09:15", "14:30", 39.99, 0)},
		SearchParams: models.SearchParams{
			From:           models.CityHamburg,
			To:             models.CityAmsterdam,
			Date:           "2025-06-10",
			TripType:       models.TripRoundTrip,
			OvernightStays: 2,
		},
		Fallback: true,
	}

	var buf bytes.Buffer
	RenderSearchResult(&buf, result, TableOptions{Colors: NewColors(ColorNever)})

	output := buf.String()
	testutil.AssertContains(t, output, "sample connections")
	testutil.AssertContains(t, output, "Return")
	testutil.AssertContains(t, output, "Amsterdam Centraal → Hamburg Hbf")
	testutil.AssertContains(t, output, "2025-06-12")
}

func TestRenderBooking(t *testing.T) {
	b := models.Booking{
		Success:          true,
		BookingReference: "DBA1B2C3D4",
		ConnectionID:     "conn-1-2025-06-10",
		PassengerDetails: models.PassengerDetails{
			FirstName: "Anna",
			LastName:  "Schmidt",
			Email:     "anna@example.com",
		},
	}

	var buf bytes.Buffer
	RenderBooking(&buf, b, TableOptions{Colors: NewColors(ColorNever)})

	output := buf.String()
	testutil.AssertContains(t, output, "Booking confirmed")
	testutil.AssertContains(t, output, "DBA1B2C3D4")
	testutil.AssertContains(t, output, "conn-1-2025-06-10")
	testutil.AssertContains(t, output, "Anna Schmidt")
	testutil.AssertContains(t, output, "anna@example.com")
	testutil.AssertNotContains(t, output, "Phone")
}

func TestRenderBooking_Failed(t *testing.T) {
	var buf bytes.Buffer
	RenderBooking(&buf, models.Booking{}, TableOptions{})

	testutil.AssertContains(t, buf.String(), "Booking failed")
}

func TestFormatChanges(t *testing.T) {
	testutil.AssertEqual(t, FormatChanges(0), "direct")
	testutil.AssertEqual(t, FormatChanges(1), "1 change")
	testutil.AssertEqual(t, FormatChanges(3), "3 changes")
}
