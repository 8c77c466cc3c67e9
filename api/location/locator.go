package location

import (
	"context"
	"errors"

	"geosync-server/models"
)

// ErrPermissionDenied is surfaced as a distinct state so the calling UI can
// prompt the user; the engine does not retry on its own.
var ErrPermissionDenied = errors.New("location permission denied")

// Locator abstracts the device geolocation capability.
type Locator interface {
	CurrentPosition(ctx context.Context) (models.Coordinate, error)
}

// StaticLocator always reports a fixed position. Used in tests and as the
// fallback when no platform locator is wired.
type StaticLocator struct {
	Position models.Coordinate
	Denied   bool
}

func (l *StaticLocator) CurrentPosition(ctx context.Context) (models.Coordinate, error) {
	if l.Denied {
		return models.Coordinate{}, ErrPermissionDenied
	}
	return l.Position, nil
}
