package testutil

// Sample /journeys responses for transport API tests

// SampleJourneysResponse holds two itineraries, deliberately out of
// departure order. The first carries a fare; the second has none and a
// single change.
const SampleJourneysResponse = `{
	"journeys": [
		{
			"type": "journey",
			"refreshToken": "T$A=1@O=Hamburg Hbf@L=8002549@$A=1@O=Amsterdam Centraal@L=8400058@$202506100901",
			"legs": [
				{
					"origin": {"type": "stop", "id": "8002549", "name": "Hamburg Hbf"},
					"destination": {"type": "stop", "id": "8400058", "name": "Amsterdam Centraal"},
					"departure": "2025-06-10T09:01:00+02:00",
					"plannedDeparture": "2025-06-10T09:01:00+02:00",
					"arrival": "2025-06-10T14:20:00+02:00",
					"plannedArrival": "2025-06-10T14:20:00+02:00",
					"departurePlatform": "14",
					"arrivalPlatform": "11a",
					"line": {"type": "line", "name": "IC 145", "productName": "IC", "product": "national"}
				}
			],
			"price": {"amount": 59.9, "currency": "EUR"}
		},
		{
			"type": "journey",
			"refreshToken": "T$A=1@O=Hamburg Hbf@L=8002549@$A=1@O=Amsterdam Centraal@L=8400058@$202506100645",
			"legs": [
				{
					"origin": {"type": "stop", "id": "8002549", "name": "Hamburg Hbf"},
					"destination": {"type": "stop", "id": "8000036", "name": "Osnabrück Hbf"},
					"departure": "2025-06-10T06:45:00+02:00",
					"arrival": "2025-06-10T08:40:00+02:00",
					"departurePlatform": "12",
					"arrivalPlatform": "3",
					"line": {"type": "line", "name": "ICE 1011", "productName": "ICE", "product": "nationalExpress"}
				},
				{
					"origin": {"type": "stop", "id": "8000036", "name": "Osnabrück Hbf"},
					"destination": {"type": "stop", "id": "8400058", "name": "Amsterdam Centraal"},
					"departure": "2025-06-10T09:05:00+02:00",
					"arrival": "2025-06-10T12:55:00+02:00",
					"departurePlatform": "1",
					"arrivalPlatform": "5b",
					"line": {"type": "line", "name": "IC 147", "productName": "IC", "product": "national"}
				}
			]
		}
	]
}`

// SampleEmptyJourneysResponse is a valid response without itineraries
const SampleEmptyJourneysResponse = `{"journeys": []}`

// SampleEmptyResponse is an empty JSON response
const SampleEmptyResponse = `{}`

// SampleErrorResponse is a sample error response
const SampleErrorResponse = `{
	"isHafasError": true,
	"code": "NOT_FOUND",
	"msg": "location/stop not found"
}`
