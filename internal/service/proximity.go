package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/nearby/internal/geo"
	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/UnknownOlympus/nearby/internal/registry"
)

// ProximityService answers "which facilities lie within radius R of a point".
// It holds only the read-only registry and may be used from many goroutines.
type ProximityService struct {
	log      *slog.Logger
	registry *registry.Registry
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewProximityService creates a service over reg.
func NewProximityService(log *slog.Logger, reg *registry.Registry, metrics *metrics.Metrics) *ProximityService {
	return &ProximityService{
		log:      log,
		registry: reg,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Nearest returns every facility whose distance to the query point is at most the query radius,
// in registry order. Distances and the processing time are rounded to two decimals.
func (ps *ProximityService) Nearest(ctx context.Context, query models.ProximityQuery) models.QueryResponse {
	start := ps.now()

	nearby := make([]models.ProximityResult, 0)
	for _, facility := range ps.registry.Facilities() {
		distance := geo.Distance(query.Point, facility.Coordinates())
		if distance <= query.RadiusMeters {
			nearby = append(nearby, models.ProximityResult{
				Name:           facility.Name,
				Latitude:       facility.Latitude,
				Longitude:      facility.Longitude,
				DistanceMeters: geo.Round2(distance),
			})
		}
	}

	elapsed := ps.now().Sub(start)

	ps.metrics.QueriesTotal.WithLabelValues("ok").Inc()
	ps.metrics.QueryMatches.Observe(float64(len(nearby)))
	ps.metrics.QuerySeconds.Observe(elapsed.Seconds())

	ps.log.DebugContext(ctx, "Proximity query served",
		"lat", query.Point.Latitude,
		"lon", query.Point.Longitude,
		"radius_m", query.RadiusMeters,
		"matches", len(nearby),
		"elapsed", elapsed,
	)

	return models.QueryResponse{
		Count:              len(nearby),
		Nearby:             nearby,
		ServerProcessingMS: geo.Round2(float64(elapsed) / float64(time.Millisecond)),
	}
}

// RecordMalformed counts a query rejected before reaching the service.
func (ps *ProximityService) RecordMalformed() {
	ps.metrics.QueriesTotal.WithLabelValues("malformed").Inc()
}

// Facilities reports how many facilities the service searches.
func (ps *ProximityService) Facilities() int {
	return ps.registry.Len()
}
