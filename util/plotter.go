package util

import (
	"fmt"
	"log"
	"os"

	"geosync-server/render"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotMapState generates an HTML file rendering the current marker set and
// route polylines. Debugging aid for inspecting what the engine decided to
// draw without a real map SDK attached.
func PlotMapState(renderer *render.RecordingRenderer, outPath string) {
	markers := renderer.Markers()
	points := make([]opts.GeoData, 0, len(markers))
	for _, m := range markers {
		points = append(points, opts.GeoData{
			Name:  m.Label,
			Value: []float64{m.Coord.Lng, m.Coord.Lat},
		})
	}

	// Create a new Geo chart.
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Listing Map",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Listings", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	for i, p := range renderer.Polylines() {
		linePoints := make([]opts.GeoData, 0, len(p.Points))
		for _, c := range p.Points {
			linePoints = append(linePoints, opts.GeoData{Value: []float64{c.Lng, c.Lat}})
		}
		geo.AddSeries(fmt.Sprintf("Route %d", i+1), types.ChartScatter, linePoints)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Listing map generated: " + outPath)
}
