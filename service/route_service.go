package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"geosync-server/api/directions"
	"geosync-server/api/location"
	"geosync-server/geocode"
	"geosync-server/models"
	"geosync-server/render"

	"github.com/google/uuid"
)

// Route orchestrator states.
type RouteState string

const (
	ROUTE_STATE_IDLE              RouteState = "idle"
	ROUTE_STATE_REQUESTING        RouteState = "requesting"
	ROUTE_STATE_RENDERED          RouteState = "rendered"
	ROUTE_STATE_RENDERED_FALLBACK RouteState = "rendered-fallback"
)

const (
	ROUTE_COLOR_CAR      = "#1565c0"
	ROUTE_COLOR_TRANSIT  = "#2e7d32"
	ROUTE_COLOR_WALK     = "#ef6c00"
	ROUTE_COLOR_FALLBACK = "#1565c0"

	ENDPOINT_COLOR_START = "#000000"
	ENDPOINT_COLOR_END   = "#c62828"

	// Extra bottom padding reserves room for the overlapping results sheet.
	FIT_PADDING        = 48
	FIT_PADDING_BOTTOM = 220
)

// RouteView is what the orchestrator currently has on screen.
type RouteView struct {
	RequestID     string
	TransportType models.TransportType
	Start         models.Coordinate
	End           models.Coordinate
	Result        *models.RouteResult
	Fallback      bool
	// ShowMetrics is false when distance/time/fare are unknown (provider
	// failure) and must be suppressed in the UI.
	ShowMetrics bool
}

// RouteOrchestratorService requests a route from the directions provider and
// renders it, substituting a straight line when the provider has no geometry
// or fails outright. Route display degrades, it never blocks the flow.
//
// The orchestrator owns its own marker set, disjoint from the geocode
// pipeline's.
type RouteOrchestratorService struct {
	directionsAPI directions.DirectionsAPI
	locator       location.Locator
	session       *geocode.SessionCache
	renderer      render.Renderer

	mu         sync.Mutex
	state      RouteState
	generation uint64
	view       *RouteView
	markerIDs  []string
}

// NewRouteOrchestratorService constructs the orchestrator.
func NewRouteOrchestratorService(
	directionsAPI directions.DirectionsAPI,
	locator location.Locator,
	session *geocode.SessionCache,
	renderer render.Renderer,
) *RouteOrchestratorService {
	return &RouteOrchestratorService{
		directionsAPI: directionsAPI,
		locator:       locator,
		session:       session,
		renderer:      renderer,
		state:         ROUTE_STATE_IDLE,
	}
}

// State returns the orchestrator's current state.
func (s *RouteOrchestratorService) State() RouteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns what is currently rendered, nil when idle.
func (s *RouteOrchestratorService) View() *RouteView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// RequestRouteToListing resolves the listing's coordinate and the user's
// position, then runs the full request/render cycle. Geolocation permission
// failures are returned as-is so the UI can prompt.
func (s *RouteOrchestratorService) RequestRouteToListing(ctx context.Context, l models.Listing, transportType models.TransportType) (*RouteView, error) {
	end, ok := s.listingCoordinate(l)
	if !ok {
		return nil, fmt.Errorf("listing %s has no resolved coordinate", l.ID)
	}
	start, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		return nil, err
	}
	return s.RequestRoute(ctx, start, end, transportType), nil
}

// RequestRoute runs one request/render cycle. A request that arrives while
// another is displayed replaces it outright; there is no queue, only the
// latest matters. Switching transport mode re-runs the cycle for the same
// endpoints without reusing any part of the previous result.
func (s *RouteOrchestratorService) RequestRoute(ctx context.Context, start, end models.Coordinate, transportType models.TransportType) *RouteView {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.clearArtifactsLocked()
	s.state = ROUTE_STATE_REQUESTING
	view := &RouteView{
		RequestID:     uuid.NewString(),
		TransportType: transportType,
		Start:         start,
		End:           end,
	}
	s.view = view
	// Endpoint markers go up before the provider answers, so the user gets
	// instant feedback whatever happens next.
	s.addMarkerLocked(render.Marker{ID: uuid.NewString(), Coord: start, Color: ENDPOINT_COLOR_START, Label: "start"})
	s.addMarkerLocked(render.Marker{ID: uuid.NewString(), Coord: end, Color: ENDPOINT_COLOR_END, Label: "end"})
	s.mu.Unlock()

	result, err := s.directionsAPI.GetRoute(transportType, start, end)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// Superseded while in flight; the newer request owns the screen.
		return s.view
	}

	switch {
	case err != nil:
		log.Printf("[RouteOrchestrator] Provider failed for mode=%s, falling back to straight line: %v", transportType, err)
		view.Fallback = true
		view.ShowMetrics = false
		view.Result = &models.RouteResult{
			TransportType: transportType,
			Path:          []models.Coordinate{start, end},
		}
		s.renderer.DrawPolyline(render.Polyline{Points: view.Result.Path, Color: ROUTE_COLOR_FALLBACK})
		s.state = ROUTE_STATE_RENDERED_FALLBACK

	case len(result.Path) == 0:
		// Summary-only answer: metrics are real, geometry is not. Draw the
		// two-point line so the UI never shows a route gap.
		view.Fallback = true
		view.ShowMetrics = true
		result.Path = []models.Coordinate{start, end}
		view.Result = result
		s.renderer.DrawPolyline(render.Polyline{Points: result.Path, Color: routeColor(transportType)})
		s.state = ROUTE_STATE_RENDERED

	default:
		view.ShowMetrics = true
		view.Result = result
		s.renderer.DrawPolyline(render.Polyline{Points: result.Path, Color: routeColor(transportType)})
		s.state = ROUTE_STATE_RENDERED
	}

	s.fitViewportLocked(view)
	return view
}

// ClearRoute tears down all route artifacts and returns to idle.
func (s *RouteOrchestratorService) ClearRoute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.clearArtifactsLocked()
	s.view = nil
	s.state = ROUTE_STATE_IDLE
}

func (s *RouteOrchestratorService) clearArtifactsLocked() {
	for _, id := range s.markerIDs {
		s.renderer.RemoveMarker(id)
	}
	s.markerIDs = nil
	s.renderer.ClearPolylines()
}

func (s *RouteOrchestratorService) addMarkerLocked(m render.Marker) {
	s.renderer.AddMarker(m)
	s.markerIDs = append(s.markerIDs, m.ID)
}

func (s *RouteOrchestratorService) fitViewportLocked(view *RouteView) {
	b := models.NewBoundingBox(view.Start, view.Start).Extend(view.End)
	if view.Result != nil {
		for _, p := range view.Result.Path {
			b = b.Extend(p)
		}
	}
	s.renderer.FitBounds(b, render.Padding{
		Top:    FIT_PADDING,
		Right:  FIT_PADDING,
		Bottom: FIT_PADDING_BOTTOM,
		Left:   FIT_PADDING,
	})
}

func (s *RouteOrchestratorService) listingCoordinate(l models.Listing) (models.Coordinate, bool) {
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

func routeColor(t models.TransportType) string {
	switch t {
	case models.TRANSPORT_CAR:
		return ROUTE_COLOR_CAR
	case models.TRANSPORT_TRANSIT:
		return ROUTE_COLOR_TRANSIT
	case models.TRANSPORT_WALK:
		return ROUTE_COLOR_WALK
	}
	return ROUTE_COLOR_FALLBACK
}
