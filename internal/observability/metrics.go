package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	dashboardActions     *prometheus.CounterVec
	livenessTicks        *prometheus.CounterVec
	catalogRequestsTotal *prometheus.CounterVec
	sessionsActive       prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		dashboardActions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_actions_total",
			Help: "Dashboard actions by role, action and whether they changed state.",
		}, []string{"role", "action", "applied"})

		livenessTicks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liveness_ticks_total",
			Help: "Simulated liveness ticks by role and whether they changed state.",
		}, []string{"role", "changed"})

		catalogRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Catalog queries by role and cache outcome.",
		}, []string{"role", "cache"})

		sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of open dashboard sessions.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			dashboardActions,
			livenessTicks,
			catalogRequestsTotal,
			sessionsActive,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// DashboardActions exposes the counter of dashboard actions.
func DashboardActions() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardActions
}

// LivenessTicks exposes the counter of liveness ticks.
func LivenessTicks() *prometheus.CounterVec {
	RegisterMetrics()
	return livenessTicks
}

// CatalogRequests exposes the counter of catalog queries.
func CatalogRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return catalogRequestsTotal
}

// SessionsActive exposes the open session gauge.
func SessionsActive() prometheus.Gauge {
	RegisterMetrics()
	return sessionsActive
}
