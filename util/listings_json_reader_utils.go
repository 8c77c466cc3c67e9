package util

import (
	"encoding/json"
	"fmt"
	"os"

	"geosync-server/models"
)

// ReadListingsFromJSON loads a slice of Listings from JSON on disk.
func ReadListingsFromJSON(filePath string) ([]models.Listing, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var wrapper struct {
		Listings []models.Listing `json:"listings"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings: %w", err)
	}
	return wrapper.Listings, nil
}

// ReadRouteResultFromJSON loads a RouteResult from JSON on disk.
func ReadRouteResultFromJSON(filePath string) (*models.RouteResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var r models.RouteResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal RouteResult: %w", err)
	}
	return &r, nil
}
