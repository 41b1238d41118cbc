package forwardindex

import (
	"time"

	"github.com/irtools/forward-index-builder/pkg/metrics"
)

// MetricsRecorder adapts pkg/metrics.Metrics to the Recorder interface, so
// Builder.Build can report progress without importing the Prometheus
// client types directly.
type MetricsRecorder struct {
	Metrics *metrics.Metrics
}

func (r MetricsRecorder) BatchSubmitted() {
	r.Metrics.BatchesSubmitted.Inc()
	r.Metrics.InFlightBatches.Inc()
}

func (r MetricsRecorder) BatchCompleted() {
	r.Metrics.BatchesCompleted.Inc()
	r.Metrics.InFlightBatches.Dec()
}

func (r MetricsRecorder) PhaseDuration(phase string, d time.Duration) {
	r.Metrics.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (r MetricsRecorder) PhaseError(phase string) {
	r.Metrics.PhaseErrorsTotal.WithLabelValues(phase).Inc()
}

func (r MetricsRecorder) Finalize(documentCount int64, termCount int) {
	r.Metrics.DocumentsTotal.Add(float64(documentCount))
	r.Metrics.TermsCollected.Set(float64(termCount))
}
