package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"geosync-server/api/location"
	"geosync-server/models"
	services "geosync-server/service"
)

// RouteRequest is the POST /v1/route body. Either a listing (routed to from
// the user's position) or an explicit start/end pair.
type RouteRequest struct {
	Listing       *models.Listing    `json:"listing,omitempty"`
	Start         *models.Coordinate `json:"start,omitempty"`
	End           *models.Coordinate `json:"end,omitempty"`
	TransportType string             `json:"transport_type"`
}

// RouteResponse wraps the rendered view with its orchestrator state.
type RouteResponse struct {
	State string              `json:"state"`
	View  *services.RouteView `json:"view,omitempty"`
}

type RouteHandler struct {
	orchestrator *services.RouteOrchestratorService
}

func NewRouteHandler(orchestrator *services.RouteOrchestratorService) *RouteHandler {
	return &RouteHandler{orchestrator: orchestrator}
}

// RequestRoute handles POST /v1/route
func (h *RouteHandler) RequestRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	transport := models.TransportType(req.TransportType)
	if !transport.Valid() {
		http.Error(w, "Invalid transport_type", http.StatusBadRequest)
		return
	}

	var view *services.RouteView
	var err error
	switch {
	case req.Listing != nil:
		view, err = h.orchestrator.RequestRouteToListing(r.Context(), *req.Listing, transport)
	case req.Start != nil && req.End != nil:
		view = h.orchestrator.RequestRoute(r.Context(), *req.Start, *req.End, transport)
	default:
		http.Error(w, "Either listing or start+end is required", http.StatusBadRequest)
		return
	}

	if errors.Is(err, location.ErrPermissionDenied) {
		// Distinct state so the UI can prompt for permission.
		http.Error(w, "Location permission denied", http.StatusForbidden)
		return
	}
	if err != nil {
		log.Println("Error requesting route:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeState(w, view)
}

// ClearRoute handles DELETE /v1/route
func (h *RouteHandler) ClearRoute(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.ClearRoute()
	h.writeState(w, nil)
}

// GetRoute handles GET /v1/route
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.orchestrator.View())
}

func (h *RouteHandler) writeState(w http.ResponseWriter, view *services.RouteView) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := RouteResponse{State: string(h.orchestrator.State()), View: view}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("Error encoding response:", err)
	}
}
