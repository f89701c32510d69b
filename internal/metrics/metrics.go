// Package metrics exposes Prometheus instrumentation for connection tests,
// session activations and the view cache.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
)

var (
	ConnectionTests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafkalens_connection_tests_total",
			Help: "Total number of connection tests by result",
		},
		[]string{"result"},
	)

	Activations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafkalens_session_activations_total",
			Help: "Total number of session activation attempts by result",
		},
		[]string{"result"},
	)

	ActiveSession = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kafkalens_session_active",
			Help: "1 while a broker session is active, 0 otherwise",
		},
	)

	ViewCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafkalens_view_cache_lookups_total",
			Help: "View cache lookups by outcome (hit, miss)",
		},
		[]string{"outcome"},
	)

	ViewCacheClears = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kafkalens_view_cache_clears_total",
			Help: "Number of times the view cache was invalidated",
		},
	)

	ViewInitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafkalens_view_init_duration_seconds",
			Help:    "Duration of view initialization against the broker",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"slot", "result"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
