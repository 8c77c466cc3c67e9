package geocode

import (
	"strings"
	"sync"

	"geosync-server/models"
)

// SessionCache is the in-memory coordinate map scoped to one map-view
// lifetime. It only exists to avoid repeat round-trips within a session; the
// durable store stays authoritative and a cold session must still get its
// hits from there.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]models.Coordinate
}

// NewSessionCache creates an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		entries: make(map[string]models.Coordinate),
	}
}

// Get returns the cached coordinate for a geocode key, if present.
func (c *SessionCache) Get(key string) (models.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coord, ok := c.entries[normalizeKey(key)]
	return coord, ok
}

// Set stores a coordinate for a geocode key.
func (c *SessionCache) Set(key string, coord models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[normalizeKey(key)] = coord
}

// SetMany stores a batch of resolved coordinates.
func (c *SessionCache) SetMany(coords map[string]models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, coord := range coords {
		c.entries[normalizeKey(key)] = coord
	}
}

// Len reports the number of cached keys.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
