package services

import (
	"log"
	"sync"

	"geosync-server/config"
	"geosync-server/geocode"
	"geosync-server/models"
	"geosync-server/util"
)

// ViewportFilterService computes which listings fall inside the current map
// bounds. Recomputation is debounced behind pan/zoom settle events and
// marker-batch completions so a fast drag never triggers dozens of passes.
type ViewportFilterService struct {
	session *geocode.SessionCache
	cfg     config.ViewportConfig

	panDebounce    *util.Debouncer
	markerDebounce *util.Debouncer

	mu       sync.RWMutex
	listings []models.Listing
	bounds   *models.BoundingBox
	visible  map[string]bool
	hasRun   bool
}

// NewViewportFilterService constructs the filter over the shared session
// cache.
func NewViewportFilterService(session *geocode.SessionCache, cfg config.ViewportConfig) *ViewportFilterService {
	return &ViewportFilterService{
		session:        session,
		cfg:            cfg,
		panDebounce:    util.NewDebouncer(cfg.Debounce),
		markerDebounce: util.NewDebouncer(cfg.MarkerSettleDelay),
		visible:        make(map[string]bool),
	}
}

// SetListings replaces the working set. Listings representing the same
// underlying posting are deduplicated first.
func (s *ViewportFilterService) SetListings(listings []models.Listing) {
	deduped := DedupeListings(listings)
	s.mu.Lock()
	s.listings = deduped
	s.mu.Unlock()
	s.Recompute()
}

// OnViewportChanged records fresh bounds from a pan/zoom settle event and
// schedules a debounced recomputation.
func (s *ViewportFilterService) OnViewportChanged(b models.BoundingBox) {
	s.mu.Lock()
	s.bounds = &b
	s.mu.Unlock()
	s.panDebounce.Trigger(s.Recompute)
}

// OnMarkersRendered schedules a recomputation after a short settle delay;
// markers populate asynchronously and the filter must eventually include
// them.
func (s *ViewportFilterService) OnMarkersRendered() {
	s.markerDebounce.Trigger(s.Recompute)
}

// Recompute runs the containment test synchronously against the current
// bounds and listing set.
func (s *ViewportFilterService) Recompute() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bounds == nil {
		return
	}

	visible := make(map[string]bool)
	for _, l := range s.listings {
		coord, ok := s.listingCoordinate(l)
		if !ok {
			continue
		}
		if s.bounds.Contains(coord) {
			visible[l.ID] = true
		}
	}
	s.visible = visible
	s.hasRun = true
	log.Printf("[ViewportFilter] %d/%d listings visible", len(visible), len(s.listings))
}

// VisibleListingIDs returns the viewport-filtered ID set. Until the filter
// has run once, and whenever it produces an empty set over a non-empty
// listing set, the unfiltered set is returned instead: an empty-looking list
// on first load or after a transient race would hide everything for no
// reason.
func (s *ViewportFilterService) VisibleListingIDs() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasRun || (len(s.visible) == 0 && len(s.listings) > 0) {
		all := make(map[string]bool, len(s.listings))
		for _, l := range s.listings {
			all[l.ID] = true
		}
		return all
	}

	out := make(map[string]bool, len(s.visible))
	for id := range s.visible {
		out[id] = true
	}
	return out
}

// Stop cancels pending debounced recomputations.
func (s *ViewportFilterService) Stop() {
	s.panDebounce.Stop()
	s.markerDebounce.Stop()
}

func (s *ViewportFilterService) listingCoordinate(l models.Listing) (models.Coordinate, bool) {
	if l.HasCoordinate() {
		return l.Coordinate(), true
	}
	if key := l.GeocodeKey(); key != "" {
		if coord, ok := s.session.Get(key); ok {
			return coord, true
		}
	}
	return models.Coordinate{}, false
}

// DedupeListings collapses listings that share (organization, title), which
// happens when the same posting arrives from multiple upstream feeds. When
// both copies carry a deadline the one expiring soonest wins; a copy with a
// deadline beats one without.
func DedupeListings(listings []models.Listing) []models.Listing {
	type dedupeKey struct {
		org   string
		title string
	}
	index := make(map[dedupeKey]int)
	out := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		k := dedupeKey{org: l.OrganizationName, title: l.Title}
		at, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, l)
			continue
		}
		kept := out[at]
		if preferListing(l, kept) {
			out[at] = l
		}
	}
	return out
}

func preferListing(candidate, kept models.Listing) bool {
	if candidate.DaysLeft == nil {
		return false
	}
	if kept.DaysLeft == nil {
		return true
	}
	return *candidate.DaysLeft < *kept.DaysLeft
}
