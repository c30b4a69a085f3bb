// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	// Registry metrics
	TokensCreated     prometheus.Counter
	TransfersRecorded prometheus.Counter
	StorageErrors     *prometheus.CounterVec

	// Feed metrics
	FeedSubscribers prometheus.Gauge
	FeedEventsSent  *prometheus.CounterVec
	FeedDrops       prometheus.Counter
}

// NewMetrics creates a new Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_token_api"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,

		// HTTP metrics
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		// Registry metrics
		TokensCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "tokens_created_total",
			Help:      "Total number of tokens created",
		}),
		TransfersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "transfers_recorded_total",
			Help:      "Total number of token transfers recorded",
		}),
		StorageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "storage_errors_total",
			Help:      "Total number of unexpected storage errors by operation",
		}, []string{"operation"}),

		// Feed metrics
		FeedSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "subscribers",
			Help:      "Number of connected websocket feed subscribers",
		}),
		FeedEventsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "events_sent_total",
			Help:      "Total number of feed events delivered by type",
		}, []string{"type"}),
		FeedDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "subscriber_drops_total",
			Help:      "Total number of subscribers dropped for being slow or broken",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPInFlight,
		m.TokensCreated,
		m.TransfersRecorded,
		m.StorageErrors,
		m.FeedSubscribers,
		m.FeedEventsSent,
		m.FeedDrops,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordTokenCreated increments the tokens created counter.
func (m *Metrics) RecordTokenCreated() {
	m.TokensCreated.Inc()
}

// RecordTransferRecorded increments the transfers recorded counter.
func (m *Metrics) RecordTransferRecorded() {
	m.TransfersRecorded.Inc()
}

// RecordStorageError records an unexpected storage failure.
func (m *Metrics) RecordStorageError(operation string) {
	m.StorageErrors.WithLabelValues(operation).Inc()
}

// RecordFeedEvent records a feed event delivered to one subscriber.
func (m *Metrics) RecordFeedEvent(eventType string) {
	m.FeedEventsSent.WithLabelValues(eventType).Inc()
}

// RecordFeedDrop records a dropped feed subscriber.
func (m *Metrics) RecordFeedDrop() {
	m.FeedDrops.Inc()
}

// SetFeedSubscribers updates the subscriber gauge.
func (m *Metrics) SetFeedSubscribers(n int) {
	m.FeedSubscribers.Set(float64(n))
}
