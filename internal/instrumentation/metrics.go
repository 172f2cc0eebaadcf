// Package instrumentation records kubeconfig sync metrics and serves them
// for Prometheus.
package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "fluxtree"

// Metrics implements kubeconfig.Observer on a private registry
type Metrics struct {
	registry *prometheus.Registry

	syncs         *prometheus.CounterVec
	syncDuration  *prometheus.HistogramVec
	invalidations *prometheus.CounterVec
	actions       *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kubeconfig",
			Name:      "syncs_total",
			Help:      "Kubeconfig sync cycles by outcome (changed, unchanged, failed).",
		}, []string{"outcome"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kubeconfig",
			Name:      "sync_duration_seconds",
			Help:      "Duration of kubeconfig sync cycles.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidations_total",
			Help:      "Invalidation signals dispatched to the views.",
		}, []string{"signal"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Flux actions run from the UI by result.",
		}, []string{"action", "result"}),
	}

	m.registry.MustRegister(
		m.syncs,
		m.syncDuration,
		m.invalidations,
		m.actions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SyncCompleted records one sync cycle
func (m *Metrics) SyncCompleted(outcome string, duration time.Duration) {
	m.syncs.WithLabelValues(outcome).Inc()
	m.syncDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Invalidated records one dispatched signal
func (m *Metrics) Invalidated(signal string) {
	m.invalidations.WithLabelValues(signal).Inc()
}

// ActionCompleted records a reconcile, suspend or resume
func (m *Metrics) ActionCompleted(action string, ok bool) {
	result := "success"
	if !ok {
		result = "error"
	}
	m.actions.WithLabelValues(action, result).Inc()
}

// Registry exposes the registry for handlers and tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
