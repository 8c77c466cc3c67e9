package models

// Listing is one job posting as consumed by the engine. Listings are created
// by the upstream query each time the visible region changes and are
// immutable here; the engine never writes back to the listing store.
type Listing struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	OrganizationName    string   `json:"organization_name"`
	LocationText        string   `json:"location_text"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lng                 *float64 `json:"lng,omitempty"`
	DaysLeft            *int     `json:"days_left,omitempty"`
	SchoolLevelCategory string   `json:"school_level_category,omitempty"`
}

// GeocodeKey returns the string used to look up and cache a coordinate for
// the listing: the organization name when present, the free-text location
// otherwise. An empty result means the listing cannot be placed on the map.
func (l Listing) GeocodeKey() string {
	if l.OrganizationName != "" {
		return l.OrganizationName
	}
	return l.LocationText
}

// HasCoordinate reports whether the source of truth already resolved a
// coordinate for this listing.
func (l Listing) HasCoordinate() bool {
	return l.Lat != nil && l.Lng != nil
}

// Coordinate returns the listing's own coordinate. Only valid when
// HasCoordinate is true.
func (l Listing) Coordinate() Coordinate {
	return Coordinate{Lat: *l.Lat, Lng: *l.Lng}
}
