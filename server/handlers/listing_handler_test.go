package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geosync-server/api/listings"
	"geosync-server/api/places"
	"geosync-server/config"
	dao "geosync-server/dao/redis"
	"geosync-server/db"
	"geosync-server/geocode"
	"geosync-server/models"
	"geosync-server/render"
	services "geosync-server/service"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

type listingHandlerFixture struct {
	handler  *ListingHandler
	places   *places.PlacesApiClientMock
	listings *listings.ListingsApiClientMock
}

func newListingHandlerFixture(t *testing.T) *listingHandlerFixture {
	t.Helper()
	mockRedis := db.NewMockRedisClient(context.Background())
	geocacheDAO := dao.NewRedisGeocacheDAO(mockRedis, 50, 0)
	placesMock := places.NewPlacesApiClientMock()
	listingsMock := listings.NewListingsApiClientMock()
	session := geocode.NewSessionCache()
	resolver := geocode.NewResolver(session, geocacheDAO, placesMock, false)
	renderer := render.NewRecordingRenderer()

	geocodeCfg := config.GeocodeConfig{
		CacheHitDelay:  time.Millisecond,
		LookupDelay:    time.Millisecond,
		BatchChunkSize: 50,
	}
	viewportCfg := config.ViewportConfig{
		Debounce:          10 * time.Millisecond,
		MarkerSettleDelay: 5 * time.Millisecond,
	}

	pipeline := services.NewGeocodePipelineService(resolver, renderer, geocodeCfg)
	filter := services.NewViewportFilterService(session, viewportCfg)
	regionSync := services.NewRegionSyncService(placesMock, listingsMock, pipeline, filter, viewportCfg)
	t.Cleanup(regionSync.Stop)

	return &listingHandlerFixture{
		handler:  NewListingHandler(filter, regionSync),
		places:   placesMock,
		listings: listingsMock,
	}
}

func (f *listingHandlerFixture) visibleIDs() []string {
	rr := httptest.NewRecorder()
	f.handler.GetVisibleListings(rr, httptest.NewRequest("GET", "/v1/listings/visible", nil))
	if rr.Code != http.StatusOK {
		return nil
	}
	var resp VisibleListingsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		return nil
	}
	return resp.ListingIDs
}

func TestSyncRegion_FiltersVisibleListingsByViewport(t *testing.T) {
	f := newListingHandlerFixture(t)

	f.places.SetRegion("gangnam")
	f.listings.SetListings("gangnam", []models.Listing{
		{ID: "inside", OrganizationName: "A", Lat: floatPtr(5), Lng: floatPtr(5)},
		{ID: "outside", OrganizationName: "B", Lat: floatPtr(50), Lng: floatPtr(50)},
	})

	req := httptest.NewRequest("GET", "/v1/region/sync?lat_min=0&lat_max=10&lng_min=0&lng_max=10", nil)
	rr := httptest.NewRecorder()
	f.handler.SyncRegion(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Eventually(t, func() bool {
		ids := f.visibleIDs()
		return len(ids) == 1 && ids[0] == "inside"
	}, time.Second, 5*time.Millisecond, "the served set must exclude listings outside the synced viewport")
}

func TestSyncRegion_RejectsInvertedBounds(t *testing.T) {
	f := newListingHandlerFixture(t)

	req := httptest.NewRequest("GET", "/v1/region/sync?lat_min=10&lat_max=0&lng_min=0&lng_max=10", nil)
	rr := httptest.NewRecorder()
	f.handler.SyncRegion(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code, "min above max is a caller error, not an empty viewport")
}

func TestSyncRegion_RejectsMissingBounds(t *testing.T) {
	f := newListingHandlerFixture(t)

	req := httptest.NewRequest("GET", "/v1/region/sync?lat_min=0&lat_max=10", nil)
	rr := httptest.NewRecorder()
	f.handler.SyncRegion(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
