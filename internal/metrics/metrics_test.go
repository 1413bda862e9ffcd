package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRecommend("remote", OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRecommend("remote", OutcomeSuccess, 10*time.Millisecond)
	m.ObserveLookup("product", OutcomeNotFound)
	m.SetBreakerState("remote", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecommendRequests.WithLabelValues("remote", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLookups.WithLabelValues("product", OutcomeNotFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("remote")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRecommend("static", OutcomeError, time.Second)
		m.ObserveLookup("user", OutcomeSuccess)
		m.SetBreakerState("x", 0)
	})
}
