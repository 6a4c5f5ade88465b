package models

// Station is a route endpoint known to the upstream journeys API
type Station struct {
	EVA         string `json:"eva"`
	DisplayName string `json:"displayName"`
}

// Route endpoint names
const (
	CityHamburg   = "Hamburg"
	CityAmsterdam = "Amsterdam"
)

// Stations maps the supported city names to their main stations
var Stations = map[string]Station{
	CityHamburg:   {EVA: "8002549", DisplayName: "Hamburg Hbf"},
	CityAmsterdam: {EVA: "8400058", DisplayName: "Amsterdam Centraal"},
}
