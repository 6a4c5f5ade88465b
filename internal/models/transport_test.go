package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mobil-koeln/railhop/internal/testutil"
)

var cest = time.FixedZone("CEST", 2*60*60)

func fixedPrice() float64 { return 42.5 }

func TestToConnections_Sample(t *testing.T) {
	var resp JourneysResponse
	if err := json.Unmarshal([]byte(testutil.SampleJourneysResponse), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	conns := resp.ToConnections(cest, fixedPrice)
	if len(conns) != 2 {
		t.Fatalf("got %d connections, want 2", len(conns))
	}

	// Upstream order is preserved
	first := conns[0]
	if first.ID != "transport-0" {
		t.Errorf("ID = %q, want transport-0", first.ID)
	}
	if first.Departure.Time != "09:01" || first.Arrival.Time != "14:20" {
		t.Errorf("times = %s-%s, want 09:01-14:20", first.Departure.Time, first.Arrival.Time)
	}
	if first.Departure.Date != "2025-06-10" {
		t.Errorf("Departure.Date = %q", first.Departure.Date)
	}
	if first.Departure.Station != "Hamburg Hbf" || first.Arrival.Station != "Amsterdam Centraal" {
		t.Errorf("stations = %q -> %q", first.Departure.Station, first.Arrival.Station)
	}
	if first.Departure.Platform != "14" || first.Arrival.Platform != "11a" {
		t.Errorf("platforms = %q -> %q", first.Departure.Platform, first.Arrival.Platform)
	}
	if first.Duration != "5h 19m" {
		t.Errorf("Duration = %q, want 5h 19m", first.Duration)
	}
	if first.Price != 59.9 || first.EstimatedPrice {
		t.Errorf("Price = %v (estimated %v), want 59.9", first.Price, first.EstimatedPrice)
	}
	if first.Changes != 0 {
		t.Errorf("Changes = %d, want 0", first.Changes)
	}
	if first.TrainType != "national" {
		t.Errorf("TrainType = %q, want national", first.TrainType)
	}
	if first.Carrier != RouteCarrier || first.Currency != "EUR" || !first.Available {
		t.Errorf("unexpected constant fields: %+v", first)
	}

	second := conns[1]
	if second.ID != "transport-1" {
		t.Errorf("ID = %q, want transport-1", second.ID)
	}
	if second.Departure.Station != "Hamburg Hbf" || second.Arrival.Station != "Amsterdam Centraal" {
		t.Errorf("stations = %q -> %q", second.Departure.Station, second.Arrival.Station)
	}
	if second.Changes != 1 {
		t.Errorf("Changes = %d, want 1", second.Changes)
	}
	if second.Duration != "6h 10m" {
		t.Errorf("Duration = %q, want 6h 10m", second.Duration)
	}
	if second.Price != 42.5 || !second.EstimatedPrice {
		t.Errorf("Price = %v (estimated %v), want estimated 42.5", second.Price, second.EstimatedPrice)
	}
	if second.TrainType != "nationalExpress" {
		t.Errorf("TrainType = %q, want nationalExpress", second.TrainType)
	}
}

func TestToConnections_ConvertsToLocation(t *testing.T) {
	resp := JourneysResponse{Journeys: []TransportJourney{{
		ID: "abc",
		Legs: []TransportLeg{{
			Departure: "2025-06-10T04:45:00Z",
			Arrival:   "2025-06-10T10:55:00Z",
		}},
		Price: &TransportPrice{Amount: 49.99},
	}}}

	conns := resp.ToConnections(cest, fixedPrice)
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	c := conns[0]
	if c.ID != "transport-abc" {
		t.Errorf("ID = %q, want transport-abc", c.ID)
	}
	if c.Departure.Time != "06:45" || c.Arrival.Time != "12:55" {
		t.Errorf("times = %s-%s, want 06:45-12:55", c.Departure.Time, c.Arrival.Time)
	}
	if c.TrainType != DefaultTrainType {
		t.Errorf("TrainType = %q, want %q", c.TrainType, DefaultTrainType)
	}
	if c.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", c.Currency, DefaultCurrency)
	}
}

func TestToConnections_LocalTimestamp(t *testing.T) {
	resp := JourneysResponse{Journeys: []TransportJourney{{
		Legs: []TransportLeg{{
			Departure: "2025-06-10T23:30:00",
			Arrival:   "2025-06-11T01:00:00",
		}},
	}}}

	conns := resp.ToConnections(cest, fixedPrice)
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	if conns[0].Duration != "1h 30m" {
		t.Errorf("Duration = %q, want 1h 30m", conns[0].Duration)
	}
	if conns[0].Arrival.Date != "2025-06-11" {
		t.Errorf("Arrival.Date = %q, want 2025-06-11", conns[0].Arrival.Date)
	}
}

func TestToConnections_SkipsUnusableJourneys(t *testing.T) {
	resp := JourneysResponse{Journeys: []TransportJourney{
		{ID: "no-legs"},
		{ID: "bad-time", Legs: []TransportLeg{{Departure: "soon", Arrival: "later"}}},
		{ID: "ok", Legs: []TransportLeg{{
			Departure: "2025-06-10T06:45:00+02:00",
			Arrival:   "2025-06-10T12:55:00+02:00",
		}}, Price: &TransportPrice{Amount: 0}},
	}}

	conns := resp.ToConnections(cest, fixedPrice)
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	if conns[0].ID != "transport-ok" {
		t.Errorf("ID = %q, want transport-ok", conns[0].ID)
	}
	// A zero fare counts as missing
	if !conns[0].EstimatedPrice {
		t.Error("zero price should be estimated")
	}
}

func TestToConnections_Empty(t *testing.T) {
	var resp JourneysResponse
	if err := json.Unmarshal([]byte(testutil.SampleEmptyJourneysResponse), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if conns := resp.ToConnections(cest, fixedPrice); len(conns) != 0 {
		t.Errorf("got %d connections, want 0", len(conns))
	}
}
