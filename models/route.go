package models

// TransportType selects the travel mode for a directions request.
type TransportType string

const (
	TRANSPORT_CAR     TransportType = "car"
	TRANSPORT_TRANSIT TransportType = "transit"
	TRANSPORT_WALK    TransportType = "walk"
)

// Valid reports whether t is one of the supported transport modes.
func (t TransportType) Valid() bool {
	switch t {
	case TRANSPORT_CAR, TRANSPORT_TRANSIT, TRANSPORT_WALK:
		return true
	}
	return false
}

// RouteFare is the optional cost breakdown of a route.
type RouteFare struct {
	Taxi    int `json:"taxi,omitempty"`
	Fuel    int `json:"fuel,omitempty"`
	Toll    int `json:"toll,omitempty"`
	Transit int `json:"transit,omitempty"`
}

// RouteResult is the outcome of one directions request. Path may be empty:
// some transit responses are point-to-point summaries without geometry, and
// the consumer must then render a straight line between start and end rather
// than an empty plot.
type RouteResult struct {
	TransportType       TransportType `json:"transport_type"`
	TotalDistanceMeters int           `json:"total_distance_meters"`
	TotalTimeSeconds    int           `json:"total_time_seconds"`
	Path                []Coordinate  `json:"path"`
	Fare                *RouteFare    `json:"fare,omitempty"`
}
