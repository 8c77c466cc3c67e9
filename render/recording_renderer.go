package render

import (
	"sync"
	"time"

	"geosync-server/models"
)

// MarkerEvent is one AddMarker call with its creation time, so tests can
// assert processing order.
type MarkerEvent struct {
	Marker Marker
	At     time.Time
}

// FitEvent is one FitBounds call: the bounds and the padding requested with
// them.
type FitEvent struct {
	Bounds  models.BoundingBox
	Padding Padding
}

// RecordingRenderer records every draw call instead of drawing. It backs the
// tests and the plotter.
type RecordingRenderer struct {
	mu        sync.Mutex
	markers   map[string]Marker
	events    []MarkerEvent
	polylines []Polyline
	fitted    []FitEvent
}

// NewRecordingRenderer creates an empty RecordingRenderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{
		markers: make(map[string]Marker),
	}
}

func (r *RecordingRenderer) AddMarker(m Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[m.ID] = m
	r.events = append(r.events, MarkerEvent{Marker: m, At: time.Now()})
}

func (r *RecordingRenderer) RemoveMarker(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.markers, id)
}

func (r *RecordingRenderer) DrawPolyline(p Polyline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polylines = append(r.polylines, p)
}

func (r *RecordingRenderer) ClearPolylines() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polylines = nil
}

func (r *RecordingRenderer) FitBounds(b models.BoundingBox, padding Padding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fitted = append(r.fitted, FitEvent{Bounds: b, Padding: padding})
}

// Markers returns the currently drawn markers.
func (r *RecordingRenderer) Markers() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	return out
}

// Events returns the AddMarker calls in creation order.
func (r *RecordingRenderer) Events() []MarkerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MarkerEvent(nil), r.events...)
}

// Polylines returns the currently drawn polylines.
func (r *RecordingRenderer) Polylines() []Polyline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Polyline(nil), r.polylines...)
}

// FittedBounds returns every FitBounds call so far.
func (r *RecordingRenderer) FittedBounds() []FitEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FitEvent(nil), r.fitted...)
}
