// Package mock generates the synthetic connections shown when the upstream
// journeys API cannot be used.
package mock

import (
	"fmt"

	"github.com/mobil-koeln/railhop/internal/models"
)

// template is one fixed synthetic connection
type template struct {
	depTime, depPlatform string
	arrTime, arrPlatform string
	duration             string
	price                float64
	changes              int
	trainType            string
	carrier              string
}

var templates = []template{
	{"06:45", "7", "12:55", "4", "6h 10m", 39.90, 1, "IC + NS", "DB/NS"},
	{"08:15", "12", "13:25", "2", "5h 10m", 59.90, 0, "ICE", "DB"},
	{"10:45", "9", "16:05", "6", "5h 20m", 45.50, 1, "IC + Sprinter", "DB/NS"},
	{"14:15", "5", "20:35", "8", "6h 20m", 29.90, 2, "Regional + IC", "DB/NS"},
	{"16:45", "11", "21:55", "3", "5h 10m", 52.90, 0, "ICE", "DB"},
}

// TrainTypes returns the train types used by the generator
func TrainTypes() []string {
	types := make([]string, 0, len(templates))
	for _, t := range templates {
		types = append(types, t.trainType)
	}
	return types
}

// GenerateConnections returns the five synthetic Hamburg–Amsterdam
// connections for date. isReturn swaps the station labels; nothing else
// changes. The same inputs always produce the same output.
func GenerateConnections(date string, isReturn bool) []models.TrainConnection {
	from := models.Stations[models.CityHamburg].DisplayName
	to := models.Stations[models.CityAmsterdam].DisplayName
	if isReturn {
		from, to = to, from
	}

	conns := make([]models.TrainConnection, 0, len(templates))
	for i, t := range templates {
		conns = append(conns, models.TrainConnection{
			ID: connectionID(i+1, date),
			Departure: models.Endpoint{
				Time:     t.depTime,
				Station:  from,
				Platform: t.depPlatform,
			},
			Arrival: models.Endpoint{
				Time:     t.arrTime,
				Station:  to,
				Platform: t.arrPlatform,
			},
			Duration:  t.duration,
			Price:     t.price,
			Currency:  models.DefaultCurrency,
			Changes:   t.changes,
			TrainType: t.trainType,
			Carrier:   t.carrier,
			Available: true,
		})
	}
	return conns
}

func connectionID(n int, date string) string {
	return fmt.Sprintf("conn-%d-%s", n, date)
}
