package directions

import (
	"net/url"
	"strconv"

	"geosync-server/api"
	"geosync-server/models"
)

// DirectionsApiClient embeds the common HTTPClient
type DirectionsApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewDirectionsApiClient creates a new instance of DirectionsApiClient
func NewDirectionsApiClient(httpClient *api.HTTPClient) *DirectionsApiClient {
	return &DirectionsApiClient{
		HTTPClient: httpClient,
	}
}

func (c *DirectionsApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// GetRoute requests a route for the given transport mode between two points.
func (c *DirectionsApiClient) GetRoute(transportType models.TransportType, start, end models.Coordinate) (*models.RouteResult, error) {
	query := url.Values{}
	query.Set("mode", string(transportType))
	query.Set("start_lat", strconv.FormatFloat(start.Lat, 'f', -1, 64))
	query.Set("start_lng", strconv.FormatFloat(start.Lng, 'f', -1, 64))
	query.Set("end_lat", strconv.FormatFloat(end.Lat, 'f', -1, 64))
	query.Set("end_lng", strconv.FormatFloat(end.Lng, 'f', -1, 64))
	query.Set("api_key", c.apiKey)

	var response models.RouteResult
	err := c.Request("GET", "/routes", query, nil, &response)
	if err != nil {
		return nil, err
	}
	response.TransportType = transportType
	return &response, nil
}
