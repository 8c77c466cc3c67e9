package render

import (
	"geosync-server/models"
)

// Marker is one point the map should draw.
type Marker struct {
	ID        string
	ListingID string
	Coord     models.Coordinate
	Color     string
	Label     string
}

// Polyline is one path the map should draw.
type Polyline struct {
	Points []models.Coordinate
	Color  string
}

// Padding reserves screen space when fitting the viewport. Bottom is
// typically larger to leave room for an overlapping results sheet.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Renderer is the capability the mapping SDK provides. The engine decides
// what to draw and when; the SDK does the drawing.
type Renderer interface {
	AddMarker(m Marker)
	RemoveMarker(id string)
	DrawPolyline(p Polyline)
	ClearPolylines()
	FitBounds(b models.BoundingBox, padding Padding)
}
