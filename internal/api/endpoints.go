package api

const (
	// BaseURL is the base URL of the public DB journey-search API
	BaseURL = "https://v6.db.transport.rest"

	// EndpointJourneys returns itineraries between two stations
	// Required params: from, to, departure, results
	EndpointJourneys = "/journeys"
)

const (
	// DefaultResults is the number of itineraries requested per lookup
	DefaultResults = 5

	// DefaultDepartureTime is the earliest departure used when none is given
	DefaultDepartureTime = "06:00"
)
