package directions

import (
	"geosync-server/models"
)

// DirectionsAPI defines the interface for the external directions provider.
// It may return a result with an empty path (some transit responses are
// point-to-point summaries without geometry), or it may fail outright; both
// cases feed the orchestrator's straight-line fallback.
type DirectionsAPI interface {
	GetRoute(transportType models.TransportType, start, end models.Coordinate) (*models.RouteResult, error)
	SetCredentials(apiKey string)
}
