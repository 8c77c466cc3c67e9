package places

import (
	"geosync-server/models"
)

// PlacesAPI defines the interface for the external place-search provider:
// keyword-to-coordinate resolution plus reverse geocoding. The provider is
// rate limited and billed per call, which is why callers go through the
// coordinate cache first.
type PlacesAPI interface {
	// SearchPlace resolves a keyword (organization name or free-text
	// location) to a coordinate. A (nil, nil) return means the provider had
	// no result, which is expected and non-fatal.
	SearchPlace(keyword string) (*models.Coordinate, error)
	// ReverseGeocode resolves a coordinate to a region name, used to decide
	// which region's listings to re-query after a pan.
	ReverseGeocode(lat, lng float64) (string, error)
	SetCredentials(apiKey string)
}
