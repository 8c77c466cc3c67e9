package places

import (
	"net/url"
	"strconv"

	"geosync-server/api"
	"geosync-server/models"
)

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	apiKey          string
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
	}
}

func (c *PlacesApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

type placeSearchResponse struct {
	Places []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	} `json:"places"`
}

type reverseGeocodeResponse struct {
	RegionName string `json:"region_name"`
}

// SearchPlace resolves a keyword to the provider's best-match coordinate.
func (c *PlacesApiClient) SearchPlace(keyword string) (*models.Coordinate, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("limit", "1")
	query.Set("api_key", c.apiKey)

	var response placeSearchResponse
	err := c.Request("GET", "/places/search", query, nil, &response)
	if err != nil {
		return nil, err
	}
	if len(response.Places) == 0 {
		return nil, nil
	}
	return &models.Coordinate{
		Lat: response.Places[0].Lat,
		Lng: response.Places[0].Lng,
	}, nil
}

// ReverseGeocode resolves a coordinate to its administrative region name.
func (c *PlacesApiClient) ReverseGeocode(lat, lng float64) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("api_key", c.apiKey)

	var response reverseGeocodeResponse
	err := c.Request("GET", "/geocode/reverse", query, nil, &response)
	if err != nil {
		return "", err
	}
	return response.RegionName, nil
}
