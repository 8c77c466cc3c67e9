package listings

import (
	"net/url"
	"strconv"

	"geosync-server/api"
	"geosync-server/models"
)

// ListingsApiClient embeds the common HTTPClient
type ListingsApiClient struct {
	*api.HTTPClient
}

// NewListingsApiClient creates a new instance of ListingsApiClient
func NewListingsApiClient(httpClient *api.HTTPClient) *ListingsApiClient {
	return &ListingsApiClient{
		HTTPClient: httpClient,
	}
}

type queryListingsResponse struct {
	Listings []models.Listing `json:"listings"`
}

// QueryListings reads the postings for a region, capped at limit.
func (c *ListingsApiClient) QueryListings(regionName string, limit int) ([]models.Listing, error) {
	query := url.Values{}
	query.Set("region", regionName)
	query.Set("limit", strconv.Itoa(limit))

	var response queryListingsResponse
	err := c.Request("GET", "/listings", query, nil, &response)
	if err != nil {
		return nil, err
	}
	return response.Listings, nil
}
