// Package metrics defines the prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ignisguard"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Business metrics
var (
	InspectionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inspections_recorded_total",
			Help:      "Total number of inspections recorded, by outcome",
		},
		[]string{"result"},
	)

	LockDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_denials_total",
			Help:      "Total number of inspection submissions denied by the re-inspection lock",
		},
	)

	AdminOverrides = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_admin_overrides_total",
			Help:      "Total number of inspections recorded under an admin lock override",
		},
	)

	AssetsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_registered_total",
			Help:      "Total number of assets registered",
		},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Total number of compliance reports generated, by format",
		},
		[]string{"format"},
	)

	EvidenceUploads = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evidence_uploads_total",
			Help:      "Total number of evidence photos uploaded",
		},
	)
)
