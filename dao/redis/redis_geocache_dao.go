package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"geosync-server/db"
	"geosync-server/models"
)

const GEOCACHE_KEY_PREFIX_V1 = "geocache_v1:"
const GEOCACHE_MEMBER_FORMAT_V1 = GEOCACHE_KEY_PREFIX_V1 + "%s"

// RedisGeocacheDAO is the durable coordinate store: geocode key -> resolved
// coordinate, batched and idempotent on conflict. The durable layer is the
// source of truth; any in-memory map in front of it is a per-session
// optimization only.
type RedisGeocacheDAO struct {
	client db.RedisClient

	chunkSize     int
	jitterDegrees float64
}

// NewRedisGeocacheDAO initializes a RedisGeocacheDAO with the Redis client.
// chunkSize bounds the number of keys per MGET to respect request-size
// limits; jitterDegrees is the amplitude of the random offset applied to
// coordinates on write.
func NewRedisGeocacheDAO(client db.RedisClient, chunkSize int, jitterDegrees float64) *RedisGeocacheDAO {
	if chunkSize < 1 {
		chunkSize = 50
	}
	return &RedisGeocacheDAO{
		client:        client,
		chunkSize:     chunkSize,
		jitterDegrees: jitterDegrees,
	}
}

// GetMany looks up coordinates for the given geocode keys, reading the store
// in fixed-size chunks. Missing keys are simply absent from the result map.
// A failed chunk read degrades to a miss for that chunk rather than failing
// the whole lookup.
func (dao *RedisGeocacheDAO) GetMany(keys []string) map[string]models.Coordinate {
	result := make(map[string]models.Coordinate, len(keys))

	for start := 0; start < len(keys); start += dao.chunkSize {
		end := start + dao.chunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		redisKeys := make([]string, len(chunk))
		for i, k := range chunk {
			redisKeys[i] = memberKey(k)
		}

		vals, err := dao.client.MGet(redisKeys)
		if err != nil {
			log.Printf("[RedisGeocacheDAO] Chunk read failed (%d keys), treating as miss: %v", len(chunk), err)
			continue
		}

		for i, raw := range vals {
			if raw == nil {
				continue
			}
			str, ok := raw.(string)
			if !ok {
				continue
			}
			var entry models.CoordinateCacheEntry
			if err := json.Unmarshal([]byte(str), &entry); err != nil {
				log.Printf("[RedisGeocacheDAO] Skipping undecodable entry for %q: %v", chunk[i], err)
				continue
			}
			// Keyed by the caller's original string, not the normalized form.
			result[chunk[i]] = entry.Coordinate()
		}
	}

	return result
}

// Get is the single-key convenience form of GetMany. A nil result means the
// key is not cached (or the store read failed, which degrades to a miss).
func (dao *RedisGeocacheDAO) Get(key string) *models.Coordinate {
	many := dao.GetMany([]string{key})
	if coord, ok := many[key]; ok {
		return &coord
	}
	return nil
}

// Put upserts one entry. Writing the same key twice is a success, not a
// conflict.
func (dao *RedisGeocacheDAO) Put(key string, coord models.Coordinate, source string) error {
	return dao.PutMany([]models.CoordinateCacheEntry{{
		Key:    key,
		Lat:    coord.Lat,
		Lng:    coord.Lng,
		Source: source,
	}})
}

// PutMany upserts a batch of entries with the same idempotent-conflict
// semantics. Coordinates are jittered slightly before they are persisted so
// the stored point does not identify an exact address.
func (dao *RedisGeocacheDAO) PutMany(entries []models.CoordinateCacheEntry) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make(map[string]string, len(entries))
	for _, e := range entries {
		e.Lat += dao.jitter()
		e.Lng += dao.jitter()
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal geocache entry %q: %w", e.Key, err)
		}
		pairs[memberKey(e.Key)] = string(data)
	}
	if err := dao.client.MSet(pairs); err != nil {
		return fmt.Errorf("failed to write %d geocache entries: %w", len(entries), err)
	}
	return nil
}

// ListCachedKeys returns the normalized geocode keys present in the store.
func (dao *RedisGeocacheDAO) ListCachedKeys() ([]string, error) {
	keys, err := dao.client.Keys(GEOCACHE_KEY_PREFIX_V1 + "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list geocache keys: %w", err)
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, GEOCACHE_KEY_PREFIX_V1))
	}
	return out, nil
}

func (dao *RedisGeocacheDAO) jitter() float64 {
	if dao.jitterDegrees <= 0 {
		return 0
	}
	return (rand.Float64()*2 - 1) * dao.jitterDegrees
}

func memberKey(geocodeKey string) string {
	return fmt.Sprintf(GEOCACHE_MEMBER_FORMAT_V1, normalizeKey(geocodeKey))
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
