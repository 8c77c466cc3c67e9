package services

import (
	"context"
	"log"
	"sync"
	"time"

	"geosync-server/config"
	"geosync-server/geocode"
	"geosync-server/models"
	"geosync-server/render"

	"github.com/google/uuid"
)

// Marker colors by school level category; expiring listings are dimmed.
const (
	MARKER_COLOR_ELEMENTARY = "#2e7d32"
	MARKER_COLOR_MIDDLE     = "#1565c0"
	MARKER_COLOR_HIGH       = "#6a1b9a"
	MARKER_COLOR_DEFAULT    = "#c62828"
	MARKER_COLOR_EXPIRING   = "#9e9e9e"

	EXPIRING_DAYS_LEFT = 3
)

// GeocodePipelineService turns listings without coordinates into map markers
// by consulting the session cache, then the place-search provider, one
// listing at a time. The provider is a shared rate-limited resource, so
// sequential processing trades latency for cost control.
type GeocodePipelineService struct {
	resolver *geocode.Resolver
	renderer render.Renderer
	cfg      config.GeocodeConfig

	mu            sync.Mutex
	current       *PipelineRun
	onRunComplete func(runID string, rendered int)
}

// PipelineRun is one cancellable pass over a listing set.
type PipelineRun struct {
	ID string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	markerIDs []string
	rendered  int
}

// NewGeocodePipelineService constructs the pipeline with its resolver and
// render target.
func NewGeocodePipelineService(resolver *geocode.Resolver, renderer render.Renderer, cfg config.GeocodeConfig) *GeocodePipelineService {
	return &GeocodePipelineService{
		resolver: resolver,
		renderer: renderer,
		cfg:      cfg,
	}
}

// SetOnRunComplete registers a callback fired when a run finishes without
// being cancelled. The viewport filter uses it to pick up fresh markers.
func (s *GeocodePipelineService) SetOnRunComplete(fn func(runID string, rendered int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRunComplete = fn
}

// Start begins a new pipeline run over the given listings. Any prior run is
// cancelled and its markers removed, so a superseded query can never leave
// stale markers behind the new one.
func (s *GeocodePipelineService) Start(listings []models.Listing) *PipelineRun {
	ctx, cancel := context.WithCancel(context.Background())
	run := &PipelineRun{
		ID:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.current
	s.current = run
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
		s.removeRunMarkers(prev)
	}

	go s.process(run, listings)
	return run
}

// Cancel stops the given run: all pending steps become no-ops and no further
// provider calls are made. Markers already created stay on the map until the
// run is superseded or torn down.
func (s *GeocodePipelineService) Cancel(run *PipelineRun) {
	run.cancel()
}

// Teardown cancels the current run and removes its markers. Called when the
// map view unmounts.
func (s *GeocodePipelineService) Teardown() {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur == nil {
		return
	}
	cur.cancel()
	<-cur.done
	s.removeRunMarkers(cur)
}

// Wait blocks until the run has finished or been cancelled.
func (r *PipelineRun) Wait() {
	<-r.done
}

// Rendered reports how many markers the run has created so far.
func (r *PipelineRun) Rendered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rendered
}

func (s *GeocodePipelineService) process(run *PipelineRun, listings []models.Listing) {
	defer close(run.done)

	// Listings that already carry a coordinate render immediately.
	var pending []models.Listing
	for _, l := range listings {
		if l.HasCoordinate() {
			s.renderMarker(run, l, l.Coordinate())
		} else if l.GeocodeKey() != "" {
			pending = append(pending, l)
		}
		// No geocode key at all: invisible on the map, may still appear in
		// the list view driven by the same query.
	}

	// One batched durable read up front, instead of one read per listing.
	keys := make([]string, 0, len(pending))
	for _, l := range pending {
		keys = append(keys, l.GeocodeKey())
	}
	s.resolver.WarmUp(keys)

	for _, l := range pending {
		if run.ctx.Err() != nil {
			log.Printf("[GeocodePipeline] Run %s cancelled, %d listings unprocessed", run.ID, len(pending))
			return
		}

		coord, fromCache, err := s.resolver.Resolve(l.GeocodeKey())
		switch {
		case err != nil:
			// Provider failure on one listing never aborts the rest.
			log.Printf("[GeocodePipeline] Lookup failed for %q, skipping: %v", l.GeocodeKey(), err)
		case coord == nil:
			log.Printf("[GeocodePipeline] No result for %q, skipping", l.GeocodeKey())
		default:
			if run.ctx.Err() != nil {
				return
			}
			s.renderMarker(run, l, *coord)
		}

		// Space out the next step; longer after a live lookup to stay under
		// the provider's rate limit.
		delay := s.cfg.CacheHitDelay
		if !fromCache {
			delay = s.cfg.LookupDelay
		}
		if !sleepCtx(run.ctx, delay) {
			return
		}
	}

	s.mu.Lock()
	fn := s.onRunComplete
	s.mu.Unlock()
	if fn != nil && run.ctx.Err() == nil {
		fn(run.ID, run.Rendered())
	}
}

func (s *GeocodePipelineService) renderMarker(run *PipelineRun, l models.Listing, coord models.Coordinate) {
	m := render.Marker{
		ID:        uuid.NewString(),
		ListingID: l.ID,
		Coord:     coord,
		Color:     markerColor(l),
		Label:     l.OrganizationName,
	}
	s.renderer.AddMarker(m)

	run.mu.Lock()
	run.markerIDs = append(run.markerIDs, m.ID)
	run.rendered++
	run.mu.Unlock()
}

func (s *GeocodePipelineService) removeRunMarkers(run *PipelineRun) {
	run.mu.Lock()
	ids := append([]string(nil), run.markerIDs...)
	run.markerIDs = nil
	run.mu.Unlock()
	for _, id := range ids {
		s.renderer.RemoveMarker(id)
	}
}

func markerColor(l models.Listing) string {
	if l.DaysLeft != nil && *l.DaysLeft <= EXPIRING_DAYS_LEFT {
		return MARKER_COLOR_EXPIRING
	}
	switch l.SchoolLevelCategory {
	case "elementary":
		return MARKER_COLOR_ELEMENTARY
	case "middle":
		return MARKER_COLOR_MIDDLE
	case "high":
		return MARKER_COLOR_HIGH
	}
	return MARKER_COLOR_DEFAULT
}

// sleepCtx waits for d or until the context is cancelled; it reports whether
// the full delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
