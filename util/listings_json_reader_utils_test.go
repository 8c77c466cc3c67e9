package util

import (
	"os"
	"path/filepath"
	"testing"

	"geosync-server/models"

	"github.com/stretchr/testify/assert"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadListingsFromJSON(t *testing.T) {
	path := writeFixture(t, "listings.json", `{
		"listings": [
			{"id": "listing-001", "organization_name": "Hanbit Elementary", "lat": 37.51, "lng": 127.04},
			{"id": "listing-002", "organization_name": "Daechi Middle School"}
		]
	}`)

	listings, err := ReadListingsFromJSON(path)

	assert.NoError(t, err)
	if assert.Len(t, listings, 2) {
		assert.Equal(t, "listing-001", listings[0].ID)
		assert.Equal(t, "Hanbit Elementary", listings[0].OrganizationName)
		assert.True(t, listings[0].HasCoordinate())
		assert.False(t, listings[1].HasCoordinate())
	}
}

func TestReadRouteResultFromJSON(t *testing.T) {
	path := writeFixture(t, "route.json", `{
		"transport_type": "car",
		"total_distance_meters": 4200,
		"total_time_seconds": 780,
		"path": [{"lat": 37.49, "lng": 127.02}, {"lat": 37.51, "lng": 127.04}],
		"fare": {"taxi": 8400}
	}`)

	route, err := ReadRouteResultFromJSON(path)

	assert.NoError(t, err)
	assert.Equal(t, models.TRANSPORT_CAR, route.TransportType)
	assert.Equal(t, 4200, route.TotalDistanceMeters)
	assert.Len(t, route.Path, 2)
	if assert.NotNil(t, route.Fare) {
		assert.Equal(t, 8400, route.Fare.Taxi)
	}
}

func TestReadListingsFromJSON_MissingFile(t *testing.T) {
	_, err := ReadListingsFromJSON("./does-not-exist.json")
	assert.Error(t, err)
}

func TestReadListingsFromJSON_MalformedJSON(t *testing.T) {
	path := writeFixture(t, "bad.json", `{"invalid_json`)
	_, err := ReadListingsFromJSON(path)
	assert.Error(t, err)
}
