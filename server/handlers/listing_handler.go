package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"geosync-server/models"
	services "geosync-server/service"
)

const (
	LAT_MIN_QUERY_ARG = "lat_min"
	LAT_MAX_QUERY_ARG = "lat_max"
	LNG_MIN_QUERY_ARG = "lng_min"
	LNG_MAX_QUERY_ARG = "lng_max"
)

// VisibleListingsResponse is the viewport-filtered ID set for the list/sheet
// UI.
type VisibleListingsResponse struct {
	ListingIDs []string `json:"listing_ids"`
}

// SyncRegionResponse reports which region a viewport change resolved to.
type SyncRegionResponse struct {
	Region string `json:"region"`
}

type ListingHandler struct {
	filter     *services.ViewportFilterService
	regionSync *services.RegionSyncService
}

func NewListingHandler(filter *services.ViewportFilterService, regionSync *services.RegionSyncService) *ListingHandler {
	return &ListingHandler{filter: filter, regionSync: regionSync}
}

// GetVisibleListings handles GET /v1/listings/visible
func (h *ListingHandler) GetVisibleListings(w http.ResponseWriter, r *http.Request) {
	visible := h.filter.VisibleListingIDs()
	ids := make([]string, 0, len(visible))
	for id := range visible {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(VisibleListingsResponse{ListingIDs: ids}); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// SyncRegion handles GET /v1/region/sync
// expects ?lat_min=&lat_max=&lng_min=&lng_max=
func (h *ListingHandler) SyncRegion(w http.ResponseWriter, r *http.Request) {
	bounds, ok := h.parseBounds(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	region, err := h.regionSync.Sync(bounds)
	if err != nil {
		log.Println("Error syncing region:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SyncRegionResponse{Region: region}); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Ping handles GET /ping
func (h *ListingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
}

func (h *ListingHandler) parseBounds(vals url.Values, w http.ResponseWriter) (models.BoundingBox, bool) {
	var b models.BoundingBox
	for _, arg := range []struct {
		name string
		dst  *float64
	}{
		{LAT_MIN_QUERY_ARG, &b.LatMin},
		{LAT_MAX_QUERY_ARG, &b.LatMax},
		{LNG_MIN_QUERY_ARG, &b.LngMin},
		{LNG_MAX_QUERY_ARG, &b.LngMax},
	} {
		f, err := strconv.ParseFloat(vals.Get(arg.name), 64)
		if err != nil {
			http.Error(w, "Invalid argument "+arg.name, http.StatusBadRequest)
			return b, false
		}
		*arg.dst = f
	}
	if b.LatMin > b.LatMax || b.LngMin > b.LngMax {
		http.Error(w, "Invalid bounds: min exceeds max", http.StatusBadRequest)
		return b, false
	}
	return b, true
}
