// Package metrics defines the Prometheus collectors the builder exposes
// for its own build-phase progress and exposes an HTTP handler for
// scraping, following the platform's metrics-registration convention.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for a single build run. Unlike
// the platform's service-level metrics, these describe one batch build,
// not a long-lived server, so they are created fresh per Builder rather
// than registered against the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	BatchesSubmitted  prometheus.Counter
	BatchesCompleted  prometheus.Counter
	DocumentsTotal    prometheus.Counter
	TermsCollected    prometheus.Gauge
	PhaseDuration     *prometheus.HistogramVec
	PhaseErrorsTotal  *prometheus.CounterVec
	InFlightBatches   prometheus.Gauge
}

// New creates and registers the build-phase metric collectors against a
// private registry, so that running multiple builds in one process (as
// the test suite does) never collides on metric names.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		BatchesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fwdidx_batches_submitted_total",
			Help: "Total number of batches submitted to the worker pool.",
		}),
		BatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fwdidx_batches_completed_total",
			Help: "Total number of batches whose postings and dictionary were written.",
		}),
		DocumentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fwdidx_documents_total",
			Help: "Total number of valid documents tokenized.",
		}),
		TermsCollected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fwdidx_terms_collected",
			Help: "Number of distinct terms in the merged global dictionary.",
		}),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fwdidx_phase_duration_seconds",
				Help:    "Wall-clock duration of each build phase.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		PhaseErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fwdidx_phase_errors_total",
				Help: "Total errors encountered per build phase.",
			},
			[]string{"phase"},
		),
		InFlightBatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fwdidx_in_flight_batches",
			Help: "Number of batches currently being tokenized by the worker pool.",
		}),
	}

	reg.MustRegister(
		m.BatchesSubmitted,
		m.BatchesCompleted,
		m.DocumentsTotal,
		m.TermsCollected,
		m.PhaseDuration,
		m.PhaseErrorsTotal,
		m.InFlightBatches,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler bound to this
// Metrics instance's private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
