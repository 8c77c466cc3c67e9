package models

// BoundingBox is the lat/lng rectangle currently visible on the map,
// derived from the map instance after every pan/zoom settle.
type BoundingBox struct {
	LatMin  float64 `json:"lat_min"`
	LatMax  float64 `json:"lat_max"`
	LngMin  float64 `json:"lng_min"`
	LngMax  float64 `json:"lng_max"`
	MapZoom int     `json:"map_zoom"`
}

// NewBoundingBox builds a box from its south-west and north-east corners.
func NewBoundingBox(southWest, northEast Coordinate) BoundingBox {
	return BoundingBox{
		LatMin: southWest.Lat,
		LatMax: northEast.Lat,
		LngMin: southWest.Lng,
		LngMax: northEast.Lng,
	}
}

// Contains reports whether the point falls inside the box. Points on the
// boundary count as inside.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.LatMin && c.Lat <= b.LatMax &&
		c.Lng >= b.LngMin && c.Lng <= b.LngMax
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.LatMin + b.LatMax) / 2,
		Lng: (b.LngMin + b.LngMax) / 2,
	}
}

// Extend grows the box so it also covers the given point.
func (b BoundingBox) Extend(c Coordinate) BoundingBox {
	if c.Lat < b.LatMin {
		b.LatMin = c.Lat
	}
	if c.Lat > b.LatMax {
		b.LatMax = c.Lat
	}
	if c.Lng < b.LngMin {
		b.LngMin = c.Lng
	}
	if c.Lng > b.LngMax {
		b.LngMax = c.Lng
	}
	return b
}
