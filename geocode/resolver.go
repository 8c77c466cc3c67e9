package geocode

import (
	"log"

	"geosync-server/api/places"
	"geosync-server/models"
)

// GeocacheDAO is the durable coordinate store the resolver reads through.
type GeocacheDAO interface {
	GetMany(keys []string) map[string]models.Coordinate
	Put(key string, coord models.Coordinate, source string) error
}

// Resolver resolves geocode keys with a cache-aside chain: session cache,
// then the durable store, then the paid place-search provider.
type Resolver struct {
	session *SessionCache
	dao     GeocacheDAO
	places  places.PlacesAPI

	// persist enables write-through of external lookups into the durable
	// store. The geocode pipeline keeps it off: unverified provider results
	// stay session-local so a bad lookup cannot poison the shared cache.
	persist bool
}

// NewResolver wires a resolver over the given session cache, durable store
// and place-search provider.
func NewResolver(session *SessionCache, dao GeocacheDAO, placesAPI places.PlacesAPI, persist bool) *Resolver {
	return &Resolver{
		session: session,
		dao:     dao,
		places:  placesAPI,
		persist: persist,
	}
}

// WarmUp seeds the session cache from the durable store for the given keys
// in one batched read. A store failure degrades to "nothing warmed".
func (r *Resolver) WarmUp(keys []string) {
	if len(keys) == 0 {
		return
	}
	found := r.dao.GetMany(keys)
	if len(found) > 0 {
		r.session.SetMany(found)
	}
	log.Printf("[Resolver] Warmed session cache: %d/%d keys", len(found), len(keys))
}

// Resolve returns the coordinate for a geocode key. fromCache reports
// whether the answer came from the session cache rather than a live provider
// call; callers use that to pick the inter-listing delay. A (nil, _, nil)
// return is an expected lookup miss.
func (r *Resolver) Resolve(key string) (coord *models.Coordinate, fromCache bool, err error) {
	if key == "" {
		return nil, false, nil
	}

	if c, ok := r.session.Get(key); ok {
		return &c, true, nil
	}

	c, err := r.places.SearchPlace(key)
	if err != nil {
		return nil, false, err
	}
	if c == nil {
		return nil, false, nil
	}

	r.session.Set(key, *c)
	if r.persist {
		if err := r.dao.Put(key, *c, models.COORDINATE_SOURCE_EXTERNAL); err != nil {
			// Losing a cache write costs efficiency, not correctness.
			log.Printf("[Resolver] Durable write for %q failed, dropping: %v", key, err)
		}
	}
	return c, false, nil
}
