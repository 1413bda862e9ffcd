package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"

	"github.com/vanshika/retailrec/internal/logging"
	"github.com/vanshika/retailrec/internal/metrics"
)

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	inner := &stubSource{name: "remote", err: newError(ErrTransport, "remote", 1, nil)}
	src := NewBreakerSource(inner, BreakerSettings{FailureThreshold: 2, Timeout: time.Minute}, logging.Discard(), m)

	for i := 0; i < 2; i++ {
		_, err := src.Recommend(context.Background(), Request{UserID: 1})
		assert.ErrorIs(t, err, ErrTransport)
	}
	assert.Equal(t, gobreaker.StateOpen, src.State())

	_, err := src.Recommend(context.Background(), Request{UserID: 1})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, inner.calls, "open breaker must not call the wrapped source")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("remote")))
}

func TestBreakerSource_EmptyResultsDoNotTrip(t *testing.T) {
	inner := &stubSource{name: "remote", err: newError(ErrEmpty, "remote", 1, nil)}
	src := NewBreakerSource(inner, BreakerSettings{FailureThreshold: 1}, logging.Discard(), nil)

	for i := 0; i < 3; i++ {
		_, err := src.Recommend(context.Background(), Request{UserID: 1})
		assert.ErrorIs(t, err, ErrEmpty)
	}
	assert.Equal(t, gobreaker.StateClosed, src.State())
	assert.Equal(t, "remote", src.Name())
}
