package metadata

import (
	"context"
	"errors"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/metrics"
)

// Instrumented counts lookups by entity and outcome before delegating.
type Instrumented struct {
	next    Catalog
	metrics *metrics.Metrics
}

// Instrument wraps next. A nil m disables counting.
func Instrument(next Catalog, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (c *Instrumented) User(ctx context.Context, id int64) (domain.UserProfile, error) {
	user, err := c.next.User(ctx, id)
	c.metrics.ObserveLookup("user", lookupOutcome(err))
	return user, err
}

func (c *Instrumented) Product(ctx context.Context, id int64) (domain.Product, error) {
	product, err := c.next.Product(ctx, id)
	c.metrics.ObserveLookup("product", lookupOutcome(err))
	return product, err
}

// Probe forwards to the wrapped catalog when it can be probed.
func (c *Instrumented) Probe(ctx context.Context) error {
	if p, ok := c.next.(interface{ Probe(context.Context) error }); ok {
		return p.Probe(ctx)
	}
	return nil
}

func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
