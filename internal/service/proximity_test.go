package service_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/UnknownOlympus/nearby/internal/registry"
	"github.com/UnknownOlympus/nearby/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*service.ProximityService, *metrics.Metrics) {
	t.Helper()
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return service.NewProximityService(slog.Default(), registry.Default(), appMetrics), appMetrics
}

func mustQuery(t *testing.T, lat, lon, radius float64) models.ProximityQuery {
	t.Helper()
	query, err := models.NewProximityQuery(lat, lon, radius)
	require.NoError(t, err)

	return query
}

func names(results []models.ProximityResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}

	return out
}

func TestNearest_Scenarios(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	t.Run("exact facility point with radius 1", func(t *testing.T) {
		t.Parallel()
		resp := svc.Nearest(t.Context(), mustQuery(t, 13.3538, 74.7921, 1))

		require.Equal(t, 1, resp.Count)
		require.Len(t, resp.Nearby, 1)
		assert.Equal(t, "Main Gate", resp.Nearby[0].Name)
		assert.InDelta(t, 13.3538, resp.Nearby[0].Latitude, 0)
		assert.InDelta(t, 74.7921, resp.Nearby[0].Longitude, 0)
		assert.InDelta(t, 0.0, resp.Nearby[0].DistanceMeters, 0)
	})

	t.Run("zero radius still matches the facility at the query point", func(t *testing.T) {
		t.Parallel()
		resp := svc.Nearest(t.Context(), mustQuery(t, 13.3538, 74.7921, 0))

		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, []string{"Main Gate"}, names(resp.Nearby))
	})

	t.Run("negative radius never matches", func(t *testing.T) {
		t.Parallel()
		for _, point := range registry.CampusFacilities {
			resp := svc.Nearest(t.Context(), mustQuery(t, point.Latitude, point.Longitude, -5))

			assert.Equal(t, 0, resp.Count)
			assert.NotNil(t, resp.Nearby)
			assert.Empty(t, resp.Nearby)
		}
	})

	t.Run("large radius returns the registry in order", func(t *testing.T) {
		t.Parallel()
		resp := svc.Nearest(t.Context(), mustQuery(t, 13.3565, 74.7945, 10000))

		assert.Equal(t, 5, resp.Count)
		assert.Equal(t, []string{"Main Gate", "NLH", "Food Court", "Innovation Center", "Hostel Block"},
			names(resp.Nearby))
		// Hostel Block is nearest but stays last.
		assert.InDelta(t, 0.0, resp.Nearby[4].DistanceMeters, 0)
		assert.Greater(t, resp.Nearby[0].DistanceMeters, resp.Nearby[4].DistanceMeters)
	})

	t.Run("distances are rounded to two decimals", func(t *testing.T) {
		t.Parallel()
		resp := svc.Nearest(t.Context(), mustQuery(t, 13.3550, 74.7930, 1000))

		for _, r := range resp.Nearby {
			assert.InDelta(t, r.DistanceMeters, float64(int64(r.DistanceMeters*100+0.5))/100, 1e-9)
		}
	})

	t.Run("out of range coordinates are passed through", func(t *testing.T) {
		t.Parallel()
		resp := svc.Nearest(t.Context(), mustQuery(t, 95, 400, 1000))

		assert.Equal(t, len(resp.Nearby), resp.Count)
	})
}

func TestNearest_Properties(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	points := []models.Coordinates{
		{Latitude: 13.3538, Longitude: 74.7915},
		{Latitude: 13.3551, Longitude: 74.7926},
		{Latitude: 13.3562, Longitude: 74.7934},
		{Latitude: 13.3, Longitude: 74.7},
	}
	radii := []float64{-1, 0, 10, 50, 100, 150, 250, 500, 1000, 20000}

	for _, point := range points {
		var previous []string
		for _, radius := range radii {
			resp := svc.Nearest(t.Context(), mustQuery(t, point.Latitude, point.Longitude, radius))
			got := names(resp.Nearby)

			assert.Equal(t, len(resp.Nearby), resp.Count, "count consistency")
			assert.Subset(t, got, previous, "monotonic inclusion at radius %v", radius)
			assertRegistryOrder(t, got)
			for _, r := range resp.Nearby {
				assert.LessOrEqual(t, r.DistanceMeters, radius+0.005)
				assert.GreaterOrEqual(t, r.DistanceMeters, 0.0)
			}
			assert.GreaterOrEqual(t, resp.ServerProcessingMS, 0.0)

			previous = got
		}
	}
}

func assertRegistryOrder(t *testing.T, got []string) {
	t.Helper()
	position := make(map[string]int, len(registry.CampusFacilities))
	for i, f := range registry.CampusFacilities {
		position[f.Name] = i
	}
	for i := 1; i < len(got); i++ {
		assert.Less(t, position[got[i-1]], position[got[i]], "registry order of %v", got)
	}
}

func TestNearest_Metrics(t *testing.T) {
	t.Parallel()
	svc, appMetrics := newService(t)

	svc.Nearest(t.Context(), mustQuery(t, 13.3538, 74.7921, 1))
	svc.Nearest(t.Context(), mustQuery(t, 13.3538, 74.7921, -1))
	svc.RecordMalformed()

	assert.InDelta(t, 2.0, testutil.ToFloat64(appMetrics.QueriesTotal.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(appMetrics.QueriesTotal.WithLabelValues("malformed")), 0)
	assert.Equal(t, 5, svc.Facilities())
}
