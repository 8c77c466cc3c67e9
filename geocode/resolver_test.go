package geocode

import (
	"context"
	"testing"

	"geosync-server/api/places"
	dao "geosync-server/dao/redis"
	"geosync-server/db"
	"geosync-server/models"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(t *testing.T, persist bool) (*Resolver, *SessionCache, *dao.RedisGeocacheDAO, *places.PlacesApiClientMock, *db.MockRedisClient) {
	t.Helper()
	mockRedis := db.NewMockRedisClient(context.Background())
	geocacheDAO := dao.NewRedisGeocacheDAO(mockRedis, 50, 0)
	placesMock := places.NewPlacesApiClientMock()
	session := NewSessionCache()
	r := NewResolver(session, geocacheDAO, placesMock, persist)
	return r, session, geocacheDAO, placesMock, mockRedis
}

func TestResolver_SessionHitSkipsProvider(t *testing.T) {
	r, session, _, placesMock, _ := newTestResolver(t, false)

	session.Set("Hanbit Elementary", models.Coordinate{Lat: 1, Lng: 2})

	coord, fromCache, err := r.Resolve("Hanbit Elementary")
	assert.NoError(t, err)
	assert.True(t, fromCache)
	if assert.NotNil(t, coord) {
		assert.Equal(t, models.Coordinate{Lat: 1, Lng: 2}, *coord)
	}
	assert.Equal(t, 0, placesMock.SearchCalls)
}

func TestResolver_WarmUpSeedsFromDurableStore(t *testing.T) {
	r, session, geocacheDAO, placesMock, _ := newTestResolver(t, false)

	assert.NoError(t, geocacheDAO.Put("Cold School", models.Coordinate{Lat: 3, Lng: 4}, models.COORDINATE_SOURCE_DB))

	// A cold session must get its hit from the durable layer, not a lookup.
	r.WarmUp([]string{"Cold School", "Unknown School"})
	assert.Equal(t, 1, session.Len())

	coord, fromCache, err := r.Resolve("Cold School")
	assert.NoError(t, err)
	assert.True(t, fromCache)
	assert.NotNil(t, coord)
	assert.Equal(t, 0, placesMock.SearchCalls)
}

func TestResolver_MissFallsThroughToProvider(t *testing.T) {
	r, session, _, placesMock, mockRedis := newTestResolver(t, false)

	placesMock.AddResult("New School", models.Coordinate{Lat: 5, Lng: 6})

	coord, fromCache, err := r.Resolve("New School")
	assert.NoError(t, err)
	assert.False(t, fromCache)
	assert.NotNil(t, coord)
	assert.Equal(t, 1, placesMock.SearchCalls)

	// Session cache now holds the result; durable write-through is off.
	_, ok := session.Get("New School")
	assert.True(t, ok)
	assert.Equal(t, 0, mockRedis.Len(), "pipeline resolver must not write the durable store")

	// Second resolve is a session hit with no extra provider call.
	_, fromCache, err = r.Resolve("New School")
	assert.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 1, placesMock.SearchCalls)
}

func TestResolver_PersistWritesThrough(t *testing.T) {
	r, _, geocacheDAO, placesMock, mockRedis := newTestResolver(t, true)

	placesMock.AddResult("Verified School", models.Coordinate{Lat: 7, Lng: 8})

	_, _, err := r.Resolve("Verified School")
	assert.NoError(t, err)
	assert.Equal(t, 1, mockRedis.Len())

	got := geocacheDAO.Get("Verified School")
	assert.NotNil(t, got)
}

func TestResolver_DurableWriteFailureIsDropped(t *testing.T) {
	r, _, _, placesMock, mockRedis := newTestResolver(t, true)

	placesMock.AddResult("Some School", models.Coordinate{Lat: 1, Lng: 1})
	mockRedis.FailWrites = true

	coord, _, err := r.Resolve("Some School")
	assert.NoError(t, err, "a lost cache write must not fail the resolve")
	assert.NotNil(t, coord)
}

func TestResolver_EmptyKeyIsAMiss(t *testing.T) {
	r, _, _, placesMock, _ := newTestResolver(t, false)

	coord, fromCache, err := r.Resolve("")
	assert.NoError(t, err)
	assert.Nil(t, coord)
	assert.False(t, fromCache)
	assert.Equal(t, 0, placesMock.SearchCalls)
}
