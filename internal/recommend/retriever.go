package recommend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/logging"
	"github.com/vanshika/retailrec/internal/metrics"
)

// DefaultMaxResults is the number of items kept from a source's answer.
const DefaultMaxResults = 1

const tracerName = "github.com/vanshika/retailrec/internal/recommend"

// Retriever dispatches a request to the source registered for its mode.
// Exactly one source is consulted per call.
type Retriever struct {
	sources    map[Mode]Source
	maxResults int
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option customises a Retriever.
type Option func(*Retriever)

// WithMaxResults overrides DefaultMaxResults. Values below 1 are ignored.
func WithMaxResults(n int) Option {
	return func(r *Retriever) {
		if n > 0 {
			r.maxResults = n
		}
	}
}

// WithMetrics records every retrieval on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Retriever) { r.metrics = m }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Retriever) { r.tracer = tp.Tracer(tracerName) }
}

// WithSource registers src for mode.
func WithSource(mode Mode, src Source) Option {
	return func(r *Retriever) { r.sources[mode] = src }
}

// NewRetriever builds a Retriever with no sources unless given WithSource.
func NewRetriever(logger *slog.Logger, opts ...Option) *Retriever {
	r := &Retriever{
		sources:    make(map[Mode]Source),
		maxResults: DefaultMaxResults,
		logger:     logger,
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces the source for mode. It must not be called
// concurrently with Retrieve.
func (r *Retriever) Register(mode Mode, src Source) {
	r.sources[mode] = src
}

// Retrieve returns at most the configured number of items, or a *Error whose
// kind tells the failures apart.
func (r *Retriever) Retrieve(ctx context.Context, req Request) (domain.Recommendation, error) {
	src, ok := r.sources[req.Mode]
	if !ok {
		return domain.Recommendation{}, newError(ErrUnknownMode, req.Mode.String(), req.UserID, nil)
	}

	ctx, span := r.tracer.Start(ctx, "recommend.retrieve", trace.WithAttributes(
		attribute.Int64("user.id", req.UserID),
		attribute.String("recommend.source", src.Name()),
	))
	defer span.End()

	if req.Limit <= 0 || req.Limit > r.maxResults {
		req.Limit = r.maxResults
	}

	start := time.Now()
	items, err := src.Recommend(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		var rerr *Error
		if !errors.As(err, &rerr) {
			kind := ErrTransport
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				kind = ErrCanceled
			}
			err = newError(kind, src.Name(), req.UserID, err)
		}
		outcome := metrics.OutcomeError
		switch {
		case errors.Is(err, ErrEmpty):
			outcome = metrics.OutcomeEmpty
		case errors.Is(err, ErrCanceled):
			outcome = metrics.OutcomeCanceled
		}
		r.metrics.ObserveRecommend(src.Name(), outcome, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Recommendation{}, err
	}

	if len(items) > r.maxResults {
		items = items[:r.maxResults]
	}
	r.metrics.ObserveRecommend(src.Name(), metrics.OutcomeSuccess, elapsed)
	span.SetAttributes(attribute.Int("recommend.items", len(items)))

	return domain.Recommendation{
		UserID: req.UserID,
		Source: src.Name(),
		Items:  items,
	}, nil
}

// Recommend is the degrade-to-absent form of Retrieve: any failure is logged
// and reported as a nil slice, meaning "no recommendation available".
func (r *Retriever) Recommend(ctx context.Context, req Request) []domain.ItemID {
	rec, err := r.Retrieve(ctx, req)
	if err != nil {
		if r.logger != nil {
			logging.WithTrace(ctx, r.logger).Warn("recommendation unavailable",
				"userId", req.UserID,
				"mode", req.Mode.String(),
				"kind", kindName(err),
				"error", err,
			)
		}
		return nil
	}
	return rec.Items
}

func kindName(err error) string {
	if kind := KindOf(err); kind != nil {
		return kind.Error()
	}
	return "unknown"
}
