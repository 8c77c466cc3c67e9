package listings

import (
	"fmt"

	"geosync-server/models"
	"geosync-server/util"
)

const LISTINGS_RESPONSE_PATH = "./resources/listings_response.json"

// ListingsApiClientMock serves listings from a JSON fixture, or from an
// in-memory table when one is set per region.
type ListingsApiClientMock struct {
	byRegion map[string][]models.Listing
}

// NewListingsApiClientMock creates a new instance of ListingsApiClientMock
func NewListingsApiClientMock() *ListingsApiClientMock {
	return &ListingsApiClientMock{
		byRegion: make(map[string][]models.Listing),
	}
}

// SetListings registers canned listings for a region.
func (c *ListingsApiClientMock) SetListings(regionName string, ls []models.Listing) {
	c.byRegion[regionName] = ls
}

func (c *ListingsApiClientMock) QueryListings(regionName string, limit int) ([]models.Listing, error) {
	ls, ok := c.byRegion[regionName]
	if !ok {
		var err error
		ls, err = util.ReadListingsFromJSON(LISTINGS_RESPONSE_PATH)
		if err != nil {
			fmt.Println("Could not read listings response from json")
			return nil, err
		}
	}
	if limit > 0 && len(ls) > limit {
		ls = ls[:limit]
	}
	return ls, nil
}
