package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ListingRoutes is the handler surface for listing/viewport endpoints.
type ListingRoutes interface {
	GetVisibleListings(w http.ResponseWriter, r *http.Request)
	SyncRegion(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// RouteRoutes is the handler surface for directions endpoints.
type RouteRoutes interface {
	RequestRoute(w http.ResponseWriter, r *http.Request)
	ClearRoute(w http.ResponseWriter, r *http.Request)
	GetRoute(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	listingHandler ListingRoutes
	routeHandler   RouteRoutes
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	listingHandler ListingRoutes,
	routeHandler RouteRoutes,
	router *mux.Router) *Router {
	return &Router{
		listingHandler: listingHandler,
		routeHandler:   routeHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/v1/listings/visible", r.listingHandler.GetVisibleListings).Methods("GET")

	// expects ?lat_min=&lat_max=&lng_min=&lng_max=
	r.router.HandleFunc("/v1/region/sync", r.listingHandler.SyncRegion).Methods("GET")

	r.router.HandleFunc("/v1/route", r.routeHandler.RequestRoute).Methods("POST")
	r.router.HandleFunc("/v1/route", r.routeHandler.GetRoute).Methods("GET")
	r.router.HandleFunc("/v1/route", r.routeHandler.ClearRoute).Methods("DELETE")

	r.router.HandleFunc("/ping", r.listingHandler.Ping).Methods("GET")
}
