package listings

import (
	"geosync-server/models"
)

// ListingsAPI is the upstream read API of the listing store. The engine only
// consumes it; it never writes listings back.
type ListingsAPI interface {
	QueryListings(regionName string, limit int) ([]models.Listing, error)
}
