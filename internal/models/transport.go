package models

import (
	"strconv"
	"strings"
	"time"
)

// Labels applied to normalized upstream journeys
const (
	DefaultTrainType = "IC"
	DefaultCurrency  = "EUR"
	RouteCarrier     = "DB/NS"
)

// JourneysResponse represents the raw API response of the journeys endpoint
type JourneysResponse struct {
	Journeys []TransportJourney `json:"journeys"`
}

// TransportJourney is one itinerary as returned by the upstream API
type TransportJourney struct {
	ID    string          `json:"id,omitempty"`
	Legs  []TransportLeg  `json:"legs"`
	Price *TransportPrice `json:"price,omitempty"`
}

// TransportLeg is one uninterrupted ride of an itinerary
type TransportLeg struct {
	Departure         string         `json:"departure"`
	Arrival           string         `json:"arrival"`
	Origin            TransportPlace `json:"origin"`
	Destination       TransportPlace `json:"destination"`
	DeparturePlatform string         `json:"departurePlatform,omitempty"`
	ArrivalPlatform   string         `json:"arrivalPlatform,omitempty"`
	Line              *TransportLine `json:"line,omitempty"`
}

// TransportPlace is a stop or station reference
type TransportPlace struct {
	Name string `json:"name"`
}

// TransportLine describes the service operating a leg
type TransportLine struct {
	Product string `json:"product,omitempty"`
}

// TransportPrice is the fare of an itinerary
type TransportPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ToConnections converts the raw response into connections in upstream
// order. Times and dates are rendered in loc. estimatePrice supplies a fare
// for journeys without one. Journeys without legs or with unparsable
// timestamps are skipped.
func (r *JourneysResponse) ToConnections(loc *time.Location, estimatePrice func() float64) []TrainConnection {
	conns := make([]TrainConnection, 0, len(r.Journeys))
	for i := range r.Journeys {
		if c, ok := r.Journeys[i].toConnection(i, loc, estimatePrice); ok {
			conns = append(conns, c)
		}
	}
	return conns
}

func (j *TransportJourney) toConnection(index int, loc *time.Location, estimatePrice func() float64) (TrainConnection, bool) {
	if len(j.Legs) == 0 {
		return TrainConnection{}, false
	}
	first := j.Legs[0]
	last := j.Legs[len(j.Legs)-1]

	dep, err := parseTimestamp(first.Departure, loc)
	if err != nil {
		return TrainConnection{}, false
	}
	arr, err := parseTimestamp(last.Arrival, loc)
	if err != nil {
		return TrainConnection{}, false
	}

	depTime := dep.Format("15:04")
	arrTime := arr.Format("15:04")

	id := j.ID
	if id == "" {
		id = strconv.Itoa(index)
	}

	c := TrainConnection{
		ID: "transport-" + id,
		Departure: Endpoint{
			Time:     depTime,
			Date:     dep.Format(DateLayout),
			Station:  first.Origin.Name,
			Platform: first.DeparturePlatform,
		},
		Arrival: Endpoint{
			Time:     arrTime,
			Date:     arr.Format(DateLayout),
			Station:  last.Destination.Name,
			Platform: last.ArrivalPlatform,
		},
		Duration:  CalculateDuration(depTime, arrTime),
		Currency:  DefaultCurrency,
		Changes:   len(j.Legs) - 1,
		TrainType: DefaultTrainType,
		Carrier:   RouteCarrier,
		Available: true,
	}

	if j.Price != nil && j.Price.Amount != 0 {
		c.Price = j.Price.Amount
	} else {
		c.Price = estimatePrice()
		c.EstimatedPrice = true
	}
	if j.Price != nil && j.Price.Currency != "" {
		c.Currency = j.Price.Currency
	}
	if first.Line != nil && first.Line.Product != "" {
		c.TrainType = first.Line.Product
	}

	return c, true
}

// parseTimestamp parses an ISO 8601 timestamp and converts it to loc.
// Timestamps without an offset are taken to be in loc already.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	s = strings.TrimSuffix(s, "Z")
	return time.ParseInLocation("2006-01-02T15:04:05", s, loc)
}
