package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format for travel dates
const DateLayout = "2006-01-02"

// TripType selects a one-way or round-trip search
type TripType string

const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
)

// SearchParams is the input of a train search
type SearchParams struct {
	From           string   `json:"from" validate:"required"`
	To             string   `json:"to" validate:"required"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
	TripType       TripType `json:"tripType" validate:"required,oneof=oneway roundtrip"`
	ReturnDate     string   `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OvernightStays int      `json:"overnightStays,omitempty" validate:"gte=0"`
}

// SearchResult is the aggregate returned for a search
type SearchResult struct {
	Outbound     []TrainConnection `json:"outbound"`
	Return       []TrainConnection `json:"return,omitempty"`
	SearchParams SearchParams      `json:"searchParams"`

	// Fallback marks results generated from synthetic data
	Fallback bool `json:"fallback,omitempty"`
}

// Validate checks the parameters before any network activity.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Date) == "" {
		return NewValidationError("date", MsgMissingDepartureDate)
	}
	if p.TripType == TripRoundTrip && p.ReturnDate == "" && p.OvernightStays == 0 {
		return NewValidationError("returnDate", MsgMissingReturn)
	}
	return validateStruct(p)
}

// CanonicalJSON returns the serialization used to key cached results.
// Field order is fixed by the struct definition and unset optional fields
// are omitted, so logically identical params serialize identically.
func (p SearchParams) CanonicalJSON() string {
	data, err := json.Marshal(p)
	if err != nil {
		// Only plain strings and ints are marshaled; this cannot fail
		return p.From + "|" + p.To + "|" + p.Date + "|" + string(p.TripType) + "|" + p.ReturnDate
	}
	return string(data)
}

// ResolveReturnDate returns the explicit return date, or the departure
// date plus the number of overnight stays. It reports false when neither
// yields a date.
func (p SearchParams) ResolveReturnDate() (string, bool) {
	if p.ReturnDate != "" {
		return p.ReturnDate, true
	}
	if p.OvernightStays == 0 {
		return "", false
	}

	dep, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return "", false
	}
	return dep.AddDate(0, 0, p.OvernightStays).Format(DateLayout), true
}
