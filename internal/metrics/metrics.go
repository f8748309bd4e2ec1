package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcomes used as the "outcome" label
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeExtraction = "extraction_error"
	OutcomeNoContent  = "no_content"
	OutcomeSynthesis  = "synthesis_error"
)

// Conversion sources used as the "source" label
const (
	SourceDocument = "document"
	SourceText     = "text"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	extraction  *prometheus.HistogramVec
	synthesis   *prometheus.HistogramVec
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suara",
			Name:      "conversions_total",
			Help:      "Conversion requests by source and outcome.",
		}, []string{"source", "outcome"}),
		extraction: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "suara",
			Name:      "extraction_seconds",
			Help:      "Time spent extracting text, by document format.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		synthesis: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "suara",
			Name:      "synthesis_seconds",
			Help:      "Time spent in the speech backend, by provider.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"provider"}),
	}

	m.registry.MustRegister(
		m.conversions,
		m.extraction,
		m.synthesis,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and custom collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveConversion counts one finished request
func (m *Metrics) ObserveConversion(source, outcome string) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(source, outcome).Inc()
}

// ObserveExtraction records how long extraction of one document took
func (m *Metrics) ObserveExtraction(format string, started time.Time) {
	if m == nil {
		return
	}
	m.extraction.WithLabelValues(format).Observe(time.Since(started).Seconds())
}

// ObserveSynthesis records how long one backend call took
func (m *Metrics) ObserveSynthesis(provider string, started time.Time) {
	if m == nil {
		return
	}
	m.synthesis.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}
