package di

import (
	"context"
	"log"

	"geosync-server/api"
	"geosync-server/api/directions"
	"geosync-server/api/listings"
	"geosync-server/api/location"
	"geosync-server/api/places"
	"geosync-server/config"
	dao "geosync-server/dao/redis"
	"geosync-server/db"
	"geosync-server/geocode"
	"geosync-server/models"
	"geosync-server/render"
	"geosync-server/server"
	"geosync-server/server/handlers"
	services "geosync-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

const PLACES_ENDPOINT_BASE_V1 = "https://places.example.com/api/v1"
const DIRECTIONS_ENDPOINT_BASE_V1 = "https://directions.example.com/api/v1"
const LISTINGS_ENDPOINT_BASE_V1 = "https://listings.example.com/api/v1"

// Container holds all application dependencies.
type Container struct {
	RedisClient       db.RedisClient
	GeocacheDao       *dao.RedisGeocacheDAO
	SessionCache      *geocode.SessionCache
	Resolver          *geocode.Resolver
	Renderer          *render.RecordingRenderer
	PlacesAPI         places.PlacesAPI
	DirectionsAPI     directions.DirectionsAPI
	ListingsAPI       listings.ListingsAPI
	Locator           location.Locator
	GeocodePipeline   *services.GeocodePipelineService
	ViewportFilter    *services.ViewportFilterService
	RouteOrchestrator *services.RouteOrchestratorService
	RegionSync        *services.RegionSyncService
	ListingHandler    *handlers.ListingHandler
	RouteHandler      *handlers.RouteHandler
	MuxRouter         *mux.Router
	Router            *server.Router
	GeoSyncHttpServer *server.GeoSyncHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string, cfg *config.Config) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	var redisClient db.RedisClient
	if env != "prod" {
		redisClient = db.NewMockRedisClient(ctx)
		log.Printf("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisClient = db.NewGeoRedisClient(ctx, redisInternalClient)
	}

	geocacheDao := dao.NewRedisGeocacheDAO(redisClient, cfg.Geocode.BatchChunkSize, cfg.Geocode.WriteJitterDegrees)

	var placesAPI places.PlacesAPI
	var directionsAPI directions.DirectionsAPI
	var listingsAPI listings.ListingsAPI
	if env != "prod" {
		placesAPI = places.NewPlacesApiClientMock()
		directionsAPI = directions.NewDirectionsApiClientMock()
		listingsAPI = listings.NewListingsApiClientMock()
		log.Printf("Using mock provider clients")
	} else {
		placesAPI = places.NewPlacesApiClient(api.NewHTTPClient(PLACES_ENDPOINT_BASE_V1))
		directionsAPI = directions.NewDirectionsApiClient(api.NewHTTPClient(DIRECTIONS_ENDPOINT_BASE_V1))
		listingsAPI = listings.NewListingsApiClient(api.NewHTTPClient(LISTINGS_ENDPOINT_BASE_V1))
	}

	sessionCache := geocode.NewSessionCache()
	// Durable write-through stays off in the pipeline path: unverified
	// provider results must not poison the shared cache.
	resolver := geocode.NewResolver(sessionCache, geocacheDao, placesAPI, false)

	// The engine records what to draw; a map SDK (or the plotter) consumes it.
	renderer := render.NewRecordingRenderer()

	// No platform geolocation on the server; a fixed position stands in.
	locator := &location.StaticLocator{Position: models.Coordinate{Lat: 37.5665, Lng: 126.9780}}

	geocodePipeline := services.NewGeocodePipelineService(resolver, renderer, cfg.Geocode)
	viewportFilter := services.NewViewportFilterService(sessionCache, cfg.Viewport)
	routeOrchestrator := services.NewRouteOrchestratorService(directionsAPI, locator, sessionCache, renderer)
	regionSync := services.NewRegionSyncService(placesAPI, listingsAPI, geocodePipeline, viewportFilter, cfg.Viewport)

	listingHandler := handlers.NewListingHandler(viewportFilter, regionSync)
	routeHandler := handlers.NewRouteHandler(routeOrchestrator)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(listingHandler, routeHandler, muxRouter)
	geoSyncHttpServer := server.NewGeoSyncHttpServer(router, muxRouter, cfg.Server.Port)

	return &Container{
		RedisClient:       redisClient,
		GeocacheDao:       geocacheDao,
		SessionCache:      sessionCache,
		Resolver:          resolver,
		Renderer:          renderer,
		PlacesAPI:         placesAPI,
		DirectionsAPI:     directionsAPI,
		ListingsAPI:       listingsAPI,
		Locator:           locator,
		GeocodePipeline:   geocodePipeline,
		ViewportFilter:    viewportFilter,
		RouteOrchestrator: routeOrchestrator,
		RegionSync:        regionSync,
		ListingHandler:    listingHandler,
		RouteHandler:      routeHandler,
		MuxRouter:         muxRouter,
		Router:            router,
		GeoSyncHttpServer: geoSyncHttpServer,
	}
}
