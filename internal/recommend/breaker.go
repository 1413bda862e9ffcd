package recommend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/metrics"
)

// BreakerSettings configures a BreakerSource.
type BreakerSettings struct {
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval clears failure counts while closed. Zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens it.
	FailureThreshold uint32
}

// BreakerSource guards another Source with a circuit breaker. While the
// breaker is open calls fail fast with ErrUnavailable. Empty results and
// caller cancellations do not count as failures.
type BreakerSource struct {
	next Source
	cb   *gobreaker.CircuitBreaker[[]domain.ItemID]
}

// NewBreakerSource wraps next.
func NewBreakerSource(next Source, settings BreakerSettings, logger *slog.Logger, m *metrics.Metrics) *BreakerSource {
	if settings.Name == "" {
		settings.Name = next.Name()
	}
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	threshold := settings.FailureThreshold

	m.SetBreakerState(settings.Name, stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[[]domain.ItemID](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrEmpty) ||
				errors.Is(err, ErrCanceled) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("recommendation breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
			}
			m.SetBreakerState(name, stateValue(to))
		},
	})

	return &BreakerSource{next: next, cb: cb}
}

func (b *BreakerSource) Name() string { return b.next.Name() }

func (b *BreakerSource) Recommend(ctx context.Context, req Request) ([]domain.ItemID, error) {
	items, err := b.cb.Execute(func() ([]domain.ItemID, error) {
		return b.next.Recommend(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, newError(ErrUnavailable, b.next.Name(), req.UserID, err)
	}
	return items, err
}

// State returns the current breaker state.
func (b *BreakerSource) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
