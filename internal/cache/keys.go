package cache

import (
	"strings"

	"github.com/mobil-koeln/railhop/internal/models"
)

const keySep = ":"

// ConnectionsKey is the cache key of one direction's normalized connections
func ConnectionsKey(originID, destinationID, date, clockTime string) string {
	return strings.Join([]string{"connections", originID, destinationID, date, clockTime}, keySep)
}

// SearchKey is the cache key of a whole search result
func SearchKey(params models.SearchParams) string {
	return "search" + keySep + params.CanonicalJSON()
}
