package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedRequest is returned when a proximity query input is missing or not a finite number.
var ErrMalformedRequest = errors.New("malformed request")

// ProximityQuery asks for every facility within RadiusMeters of the point.
// Ranges are not checked: any finite latitude, longitude and radius is accepted.
type ProximityQuery struct {
	Point        Coordinates
	RadiusMeters float64
}

// ProximityResult is a facility matched by a query, annotated with its distance.
type ProximityResult struct {
	Name           string  `json:"name"`
	Latitude       float64 `json:"lat"`
	Longitude      float64 `json:"lon"`
	DistanceMeters float64 `json:"distance"`
}

// QueryResponse is the outcome of a proximity query.
type QueryResponse struct {
	Count              int               `json:"count"`
	Nearby             []ProximityResult `json:"nearby"`
	ServerProcessingMS float64           `json:"server_processing_ms"`
}

// NewProximityQuery builds a query, rejecting NaN and infinite inputs with ErrMalformedRequest.
func NewProximityQuery(lat, lon, radiusMeters float64) (ProximityQuery, error) {
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"lat", lat},
		{"lon", lon},
		{"radius_m", radiusMeters},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return ProximityQuery{}, fmt.Errorf("%w: %s must be a finite number", ErrMalformedRequest, field.name)
		}
	}

	return ProximityQuery{
		Point:        Coordinates{Latitude: lat, Longitude: lon},
		RadiusMeters: radiusMeters,
	}, nil
}
