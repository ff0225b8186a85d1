package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listings_upstream_requests_total",
			Help: "Total number of requests sent to the listings provider",
		},
		[]string{"source", "outcome"},
	)
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listings_upstream_request_duration_seconds",
			Help:    "Listings provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	SanitizedTokensTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listings_sanitized_tokens_total",
			Help: "Non-finite numeric tokens replaced with null in provider responses",
		},
	)
	ListingsNormalizedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listings_normalized_total",
			Help: "Total number of listings normalized for the dashboard",
		},
	)
	StaleSearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_stale_searches_total",
			Help: "Search results discarded because a newer search was issued",
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Number of dashboard sessions currently held in memory",
		},
	)
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(UpstreamRequestsTotal)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(SanitizedTokensTotal)
		prometheus.MustRegister(ListingsNormalizedTotal)
		prometheus.MustRegister(StaleSearchesTotal)
		prometheus.MustRegister(ActiveSessions)
		prometheus.MustRegister(CircuitBreakerState)
	})
}

// RecordUpstream observes one provider round trip.
func RecordUpstream(source, outcome string, start time.Time) {
	UpstreamRequestDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	UpstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
}
