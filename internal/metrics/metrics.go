// Package metrics holds the Prometheus collectors for question generation.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a set of collectors registered on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	external    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qgen_generations_total",
			Help: "Question generation requests by kind and answer source.",
		}, []string{"kind", "source"}),
		external: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qgen_external_calls_total",
			Help: "Calls to external generation services by result.",
		}, []string{"result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qgen_external_call_duration_seconds",
			Help:    "Latency of external generation calls.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.generations,
		m.external,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Generation counts one finished generation request.
func (m *Metrics) Generation(kind, source string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, source).Inc()
}

// ExternalCall records the result and latency of one external call.
func (m *Metrics) ExternalCall(ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	m.external.WithLabelValues(result).Inc()
	m.latency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
