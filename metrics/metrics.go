// Package metrics provides Prometheus metrics for dispatcher turns and
// collaborator health.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "friday"

// Metrics holds the collectors for a running assistant.
type Metrics struct {
	reg *prometheus.Registry

	TurnsByIntent        *prometheus.CounterVec
	TurnDuration         prometheus.Histogram
	CollaboratorFailures *prometheus.CounterVec
	MemoryRecords        prometheus.Counter
	MemoryRecalls        prometheus.Counter
}

// New creates and registers the assistant's collectors on a private
// registry.
func New() *Metrics {
	m := &Metrics{reg: prometheus.NewRegistry()}

	m.TurnsByIntent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "turns_total",
		Help:      "Completed dispatcher turns by resolved intent",
	}, []string{"intent"})
	m.reg.MustRegister(m.TurnsByIntent)

	m.TurnDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "turn_duration_seconds",
		Help:      "Dispatcher turn duration in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 3.0, 5.0, 10.0},
	})
	m.reg.MustRegister(m.TurnDuration)

	m.CollaboratorFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "collaborator_failures_total",
		Help:      "Collaborator calls converted to apologies, by collaborator",
	}, []string{"collaborator"})
	m.reg.MustRegister(m.CollaboratorFailures)

	m.MemoryRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "memory_records_total",
		Help:      "Records written to semantic memory",
	})
	m.reg.MustRegister(m.MemoryRecords)

	m.MemoryRecalls = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "memory_recalls_total",
		Help:      "Semantic memory recall queries issued",
	})
	m.reg.MustRegister(m.MemoryRecalls)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
