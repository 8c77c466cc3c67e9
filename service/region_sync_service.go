package services

import (
	"log"
	"sync"

	"geosync-server/api/listings"
	"geosync-server/api/places"
	"geosync-server/config"
	"geosync-server/models"
	"geosync-server/util"
)

const LISTING_QUERY_LIMIT = 300

// RegionSyncService keeps the working listing set in step with the map
// viewport: on a settled pan/zoom it reverse geocodes the viewport center to
// a region name, re-queries that region's listings, restarts the geocode
// pipeline and refreshes the viewport filter.
type RegionSyncService struct {
	placesAPI   places.PlacesAPI
	listingsAPI listings.ListingsAPI
	pipeline    *GeocodePipelineService
	filter      *ViewportFilterService

	debounce *util.Debouncer

	mu         sync.Mutex
	lastRegion string
}

// NewRegionSyncService constructs the sync service and hooks pipeline
// completion into the viewport filter.
func NewRegionSyncService(
	placesAPI places.PlacesAPI,
	listingsAPI listings.ListingsAPI,
	pipeline *GeocodePipelineService,
	filter *ViewportFilterService,
	cfg config.ViewportConfig,
) *RegionSyncService {
	s := &RegionSyncService{
		placesAPI:   placesAPI,
		listingsAPI: listingsAPI,
		pipeline:    pipeline,
		filter:      filter,
		debounce:    util.NewDebouncer(cfg.Debounce),
	}
	pipeline.SetOnRunComplete(func(runID string, rendered int) {
		log.Printf("[RegionSync] Pipeline run %s complete, %d markers rendered", runID, rendered)
		filter.OnMarkersRendered()
	})
	return s
}

// OnViewportChanged feeds a pan/zoom settle event into the engine: the
// filter sees the bounds right away, the region re-query is debounced.
func (s *RegionSyncService) OnViewportChanged(b models.BoundingBox) {
	s.filter.OnViewportChanged(b)
	s.debounce.Trigger(func() {
		if _, err := s.Sync(b); err != nil {
			log.Printf("[RegionSync] Sync failed: %v", err)
		}
	})
}

// Sync resolves the viewport's region and refreshes its listings
// immediately. Returns the region name that was synced.
func (s *RegionSyncService) Sync(b models.BoundingBox) (string, error) {
	// The filter works off these bounds whether or not the region changes.
	s.filter.OnViewportChanged(b)

	center := b.Center()
	region, err := s.placesAPI.ReverseGeocode(center.Lat, center.Lng)
	if err != nil {
		// Keep the current listing set; a failed reverse geocode only means
		// we cannot tell whether the region changed.
		return "", err
	}

	s.mu.Lock()
	unchanged := region == s.lastRegion
	s.mu.Unlock()
	if unchanged {
		log.Printf("[RegionSync] Region %q unchanged, skipping re-query", region)
		return region, nil
	}

	ls, err := s.listingsAPI.QueryListings(region, LISTING_QUERY_LIMIT)
	if err != nil {
		// The working set stays as-is; the next settle event retries.
		return region, err
	}
	s.mu.Lock()
	s.lastRegion = region
	s.mu.Unlock()
	log.Printf("[RegionSync] Region %q: %d listings", region, len(ls))

	s.filter.SetListings(ls)
	s.pipeline.Start(ls)
	return region, nil
}

// LastRegion returns the most recently synced region name.
func (s *RegionSyncService) LastRegion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRegion
}

// Stop cancels pending debounced syncs and tears the pipeline down.
func (s *RegionSyncService) Stop() {
	s.debounce.Stop()
	s.filter.Stop()
	s.pipeline.Teardown()
}
