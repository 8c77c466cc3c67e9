package main

import (
	"fmt"
	"log"
	"os"

	"geosync-server/config"
	"geosync-server/di"
	"geosync-server/logging"
	"geosync-server/util"
)

const MAP_STATE_PLOT_PATH = "listing_map.html"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}
	container := di.NewContainer(env, cfg)

	fmt.Println("starting server!")
	container.GeoSyncHttpServer.Start()

	if env != "prod" {
		// Snapshot what the engine drew during this session, before teardown
		// removes it.
		util.PlotMapState(container.Renderer, MAP_STATE_PLOT_PATH)
	}

	container.RegionSync.Stop()
	container.RouteOrchestrator.ClearRoute()
}
