// Package registry holds the immutable, ordered set of facilities that proximity
// queries are answered against, and the sources it can be loaded from at start.
package registry

import (
	"context"
	"slices"

	"github.com/UnknownOlympus/nearby/internal/models"
)

// Registry is an ordered, read-only list of facilities. It is safe for concurrent use.
type Registry struct {
	facilities []models.Facility
}

// Source produces the facility list a Registry is built from.
type Source interface {
	Facilities(ctx context.Context) ([]models.Facility, error)
}

// New builds a registry from facilities, keeping their order. The slice is copied.
func New(facilities []models.Facility) *Registry {
	return &Registry{facilities: slices.Clone(facilities)}
}

// Load reads the facility list from src once and freezes it into a Registry.
func Load(ctx context.Context, src Source) (*Registry, error) {
	facilities, err := src.Facilities(ctx)
	if err != nil {
		return nil, err
	}

	return New(facilities), nil
}

// Facilities returns the facilities in registry order. Callers may modify the returned slice.
func (r *Registry) Facilities() []models.Facility {
	return slices.Clone(r.facilities)
}

// Len returns the number of facilities.
func (r *Registry) Len() int {
	return len(r.facilities)
}
