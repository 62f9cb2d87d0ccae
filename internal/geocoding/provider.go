// Package geocoding resolves facility addresses to coordinates when a registry
// entry carries an address instead of a location.
package geocoding

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/nearby/internal/models"
)

// Provider resolves an address to coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// ErrGeocodingDisabled is returned by the provider used when no geocoder is configured.
var ErrGeocodingDisabled = errors.New("geocoding is disabled")

type disabledProvider struct{}

func (disabledProvider) Geocode(_ context.Context, address string) (*models.Coordinates, error) {
	return nil, fmt.Errorf("%w: cannot resolve %q", ErrGeocodingDisabled, address)
}
