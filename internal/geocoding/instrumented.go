package geocoding

import (
	"context"
	"time"

	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/UnknownOlympus/nearby/internal/models"
)

// InstrumentedProvider records request counts and latency of the wrapped provider.
type InstrumentedProvider struct {
	next    Provider
	name    string
	metrics *metrics.Metrics
}

// WithMetrics wraps provider so every Geocode call is observed under the given provider label.
func WithMetrics(provider Provider, name string, m *metrics.Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: provider, name: name, metrics: m}
}

func (ip *InstrumentedProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	start := time.Now()
	coords, err := ip.next.Geocode(ctx, address)
	ip.metrics.GeocodeSeconds.WithLabelValues(ip.name).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "failure"
	}
	ip.metrics.GeocodeRequests.WithLabelValues(ip.name, status).Inc()

	return coords, err
}
