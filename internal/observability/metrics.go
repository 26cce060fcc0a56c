// Package observability holds the Prometheus collectors and the OpenTelemetry
// tracer setup shared by the HTTP layer and the catalog service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "catalog"

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels: method, route (gin full path), status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures handler latency.
	// Labels: method, route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// MutationsTotal counts committed catalog writes.
	// Labels: entity (user, zone, tour, departure), action (created, updated, deleted)
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "mutations_total",
			Help:      "Committed catalog mutations, by entity and action.",
		},
		[]string{"entity", "action"},
	)

	StorageUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "storage",
		Name:      "up",
		Help:      "1 when the last storage ping succeeded, 0 otherwise.",
	})

	StoragePingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "storage",
		Name:      "ping_duration_seconds",
		Help:      "Storage ping latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// WebhookDeliveriesTotal counts change-feed webhook attempts.
	// Labels: outcome (delivered, failed, dropped)
	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "Webhook deliveries of catalog events, by outcome.",
		},
		[]string{"outcome"},
	)
)
