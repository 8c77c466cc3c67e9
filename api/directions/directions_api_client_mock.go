package directions

import (
	"fmt"
	"sync"

	"geosync-server/models"
)

// DirectionsApiClientMock returns a canned route per transport mode. It can
// be switched into failure mode to exercise the straight-line fallback.
type DirectionsApiClientMock struct {
	mu     sync.Mutex
	routes map[models.TransportType]models.RouteResult

	Calls        int
	FailRequests bool
}

// NewDirectionsApiClientMock creates a new instance of DirectionsApiClientMock
func NewDirectionsApiClientMock() *DirectionsApiClientMock {
	return &DirectionsApiClientMock{
		routes: make(map[models.TransportType]models.RouteResult),
	}
}

// SetRoute registers the canned result for a transport mode.
func (c *DirectionsApiClientMock) SetRoute(t models.TransportType, r models.RouteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[t] = r
}

func (c *DirectionsApiClientMock) GetRoute(transportType models.TransportType, start, end models.Coordinate) (*models.RouteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.FailRequests {
		return nil, fmt.Errorf("directions provider unavailable")
	}
	if r, ok := c.routes[transportType]; ok {
		r.TransportType = transportType
		return &r, nil
	}
	// Unconfigured mode behaves like a summary-only transit answer.
	return &models.RouteResult{TransportType: transportType}, nil
}

func (c *DirectionsApiClientMock) SetCredentials(apiKey string) {}
