package models

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordinateSource tags where a cached coordinate came from.
const (
	COORDINATE_SOURCE_DB       = "db"
	COORDINATE_SOURCE_EXTERNAL = "external-provider"
)

// CoordinateCacheEntry is one resolved coordinate in the durable geocode cache.
// At most one entry exists per key; once written it is treated as stable for
// the session.
type CoordinateCacheEntry struct {
	Key    string  `json:"key"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Source string  `json:"source"`
}

func (e CoordinateCacheEntry) Coordinate() Coordinate {
	return Coordinate{Lat: e.Lat, Lng: e.Lng}
}
