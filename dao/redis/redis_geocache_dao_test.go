package redis

import (
	"context"
	"fmt"
	"testing"

	"geosync-server/db"
	"geosync-server/models"

	"github.com/stretchr/testify/assert"
)

func TestRedisGeocacheDAO_PutIsIdempotent(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGeocacheDAO(mockClient, 50, 0)

	coord := models.Coordinate{Lat: 37.5665, Lng: 126.9780}

	err := dao.Put("Seoul High School", coord, models.COORDINATE_SOURCE_EXTERNAL)
	assert.NoError(t, err)
	err = dao.Put("Seoul High School", coord, models.COORDINATE_SOURCE_EXTERNAL)
	assert.NoError(t, err, "duplicate write must be treated as success")

	assert.Equal(t, 1, mockClient.Len(), "duplicate write must not create a second entry")

	got := dao.Get("Seoul High School")
	if assert.NotNil(t, got) {
		assert.Equal(t, coord, *got)
	}
}

func TestRedisGeocacheDAO_GetManyBatchCompleteness(t *testing.T) {
	// Chunk size 3 forces several round-trips for 10 keys.
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGeocacheDAO(mockClient, 3, 0)

	var keys []string
	for i := 0; i < 10; i++ {
		keys = append(keys, fmt.Sprintf("School %d", i))
	}

	// Store only the even-numbered keys.
	var stored []models.CoordinateCacheEntry
	for i := 0; i < 10; i += 2 {
		stored = append(stored, models.CoordinateCacheEntry{
			Key:    keys[i],
			Lat:    float64(i),
			Lng:    float64(i),
			Source: models.COORDINATE_SOURCE_DB,
		})
	}
	assert.NoError(t, dao.PutMany(stored))

	result := dao.GetMany(keys)

	assert.Len(t, result, 5, "exactly the stored keys must come back")
	for i := 0; i < 10; i++ {
		_, ok := result[keys[i]]
		assert.Equal(t, i%2 == 0, ok, "key %q presence mismatch", keys[i])
	}
}

func TestRedisGeocacheDAO_KeysAreCaseInsensitive(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGeocacheDAO(mockClient, 50, 0)

	coord := models.Coordinate{Lat: 1, Lng: 2}
	assert.NoError(t, dao.Put("Hanbit Elementary", coord, models.COORDINATE_SOURCE_DB))

	got := dao.Get("  hanbit elementary ")
	if assert.NotNil(t, got) {
		assert.Equal(t, coord, *got)
	}
}

func TestRedisGeocacheDAO_ReadFailureDegradesToMiss(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisGeocacheDAO(mockClient, 50, 0)

	assert.NoError(t, dao.Put("Some School", models.Coordinate{Lat: 1, Lng: 1}, models.COORDINATE_SOURCE_DB))

	mockClient.FailReads = true
	result := dao.GetMany([]string{"Some School"})
	assert.Empty(t, result, "a failed store read must look like a cache miss")
}

func TestRedisGeocacheDAO_WriteJitterStaysBounded(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	jitter := 0.0005
	dao := NewRedisGeocacheDAO(mockClient, 50, jitter)

	orig := models.Coordinate{Lat: 37.5665, Lng: 126.9780}
	assert.NoError(t, dao.Put("Jitter School", orig, models.COORDINATE_SOURCE_EXTERNAL))

	got := dao.Get("Jitter School")
	if assert.NotNil(t, got) {
		assert.InDelta(t, orig.Lat, got.Lat, jitter)
		assert.InDelta(t, orig.Lng, got.Lng, jitter)
	}
}
