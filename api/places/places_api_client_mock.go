package places

import (
	"fmt"
	"sync"

	"geosync-server/models"
)

// PlacesApiClientMock serves canned results from an in-memory table and
// counts calls, so pipeline tests can assert exactly how many paid lookups
// were issued.
type PlacesApiClientMock struct {
	mu      sync.Mutex
	results map[string]models.Coordinate
	region  string

	SearchCalls  int
	FailSearches bool
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock() *PlacesApiClientMock {
	return &PlacesApiClientMock{
		results: make(map[string]models.Coordinate),
		region:  "seoul",
	}
}

// AddResult registers a canned coordinate for a keyword.
func (c *PlacesApiClientMock) AddResult(keyword string, coord models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[keyword] = coord
}

// SetRegion sets the region name returned by ReverseGeocode.
func (c *PlacesApiClientMock) SetRegion(region string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.region = region
}

func (c *PlacesApiClientMock) SearchPlace(keyword string) (*models.Coordinate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SearchCalls++
	if c.FailSearches {
		return nil, fmt.Errorf("place search unavailable")
	}
	if coord, ok := c.results[keyword]; ok {
		return &coord, nil
	}
	return nil, nil
}

func (c *PlacesApiClientMock) ReverseGeocode(lat, lng float64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region, nil
}

func (c *PlacesApiClientMock) SetCredentials(apiKey string) {}
