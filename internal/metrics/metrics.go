package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QueriesTotal    *prometheus.CounterVec
	QueryMatches    prometheus.Histogram
	QuerySeconds    prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
	HTTPSeconds     *prometheus.HistogramVec
	RegistrySize    prometheus.Gauge
	GeocodeRequests *prometheus.CounterVec
	GeocodeSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		QueriesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nearby_queries_total",
			Help: "Total number of proximity queries by outcome.",
		}, []string{"status"}),
		QueryMatches: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "nearby_query_matches",
			Help:    "Number of facilities returned per proximity query.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		QuerySeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "nearby_query_duration_seconds",
			Help:    "Time spent filtering the registry for a proximity query.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nearby_http_requests_total",
			Help: "Total number of HTTP requests served by the API.",
		}, []string{"method", "route", "status"}),
		HTTPSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nearby_http_request_duration_seconds",
			Help:    "End-to-end duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		RegistrySize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "nearby_registry_facilities",
			Help: "Number of facilities loaded into the registry.",
		}),
		GeocodeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "nearby_geocoding_requests_total",
			Help: "Total number of geocoding requests made while loading the registry.",
		}, []string{"provider", "status"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nearby_geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
