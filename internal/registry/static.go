package registry

import (
	"context"
	"slices"

	"github.com/UnknownOlympus/nearby/internal/models"
)

// CampusFacilities is the built-in facility list for the MIT Manipal campus.
var CampusFacilities = []models.Facility{
	{Name: "Main Gate", Latitude: 13.3538, Longitude: 74.7921},
	{Name: "NLH", Latitude: 13.3546, Longitude: 74.7929},
	{Name: "Food Court", Latitude: 13.3553, Longitude: 74.7934},
	{Name: "Innovation Center", Latitude: 13.3560, Longitude: 74.7939},
	{Name: "Hostel Block", Latitude: 13.3565, Longitude: 74.7945},
}

// StaticSource serves a fixed, in-code facility list.
type StaticSource struct {
	facilities []models.Facility
}

// NewStaticSource returns a source serving facilities as given.
func NewStaticSource(facilities []models.Facility) *StaticSource {
	return &StaticSource{facilities: facilities}
}

func (s *StaticSource) Facilities(_ context.Context) ([]models.Facility, error) {
	return slices.Clone(s.facilities), nil
}

// Default returns a registry holding CampusFacilities.
func Default() *Registry {
	return New(CampusFacilities)
}
