// Package metrics exposes Prometheus instrumentation for recommendation
// retrieval and catalog lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeCanceled = "canceled"
)

// Metrics groups the collectors registered by the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RecommendRequests *prometheus.CounterVec
	RecommendDuration *prometheus.HistogramVec
	BreakerState      *prometheus.GaugeVec
	CatalogLookups    *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecommendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailrec_recommend_requests_total",
				Help: "Recommendation retrievals by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		RecommendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retailrec_recommend_duration_seconds",
				Help:    "Latency of recommendation retrievals in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "retailrec_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
		CatalogLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailrec_catalog_lookups_total",
				Help: "Catalog lookups by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
	}
}

// ObserveRecommend records one retrieval.
func (m *Metrics) ObserveRecommend(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RecommendRequests.WithLabelValues(source, outcome).Inc()
	m.RecommendDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// SetBreakerState records the current breaker state.
func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(name).Set(state)
}

// ObserveLookup records one catalog lookup.
func (m *Metrics) ObserveLookup(entity, outcome string) {
	if m == nil {
		return
	}
	m.CatalogLookups.WithLabelValues(entity, outcome).Inc()
}
