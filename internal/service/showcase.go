package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/logging"
	"github.com/vanshika/retailrec/internal/markup"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/recommend"
)

// Recommender is the retrieval contract used by ShowcaseService.
type Recommender interface {
	Retrieve(ctx context.Context, req recommend.Request) (domain.Recommendation, error)
}

// Showcase is what a shopper is shown: their profile and the recommended
// products with plain-text descriptions.
type Showcase struct {
	User   domain.UserProfile
	Source string
	Items  []domain.Product
	// Reason explains an empty Items list when no recommendation was available.
	Reason string
}

// ShowcaseService composes recommendations with catalog metadata.
type ShowcaseService struct {
	recommender Recommender
	catalog     metadata.Catalog
	logger      *slog.Logger
	tracer      trace.Tracer
}

func NewShowcaseService(recommender Recommender, catalog metadata.Catalog, logger *slog.Logger) *ShowcaseService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ShowcaseService{
		recommender: recommender,
		catalog:     catalog,
		logger:      logger,
		tracer:      otel.Tracer("github.com/vanshika/retailrec/internal/service"),
	}
}

// Build resolves the user, retrieves recommendations and decorates every
// recommended item with its product metadata. A missing user is an error
// wrapping domain.ErrNotFound. A retrieval failure yields an empty showcase
// with Reason set, except for an unregistered mode which is returned.
// Recommended items absent from the catalog are skipped.
func (s *ShowcaseService) Build(ctx context.Context, req recommend.Request) (Showcase, error) {
	ctx, span := s.tracer.Start(ctx, "showcase.build", trace.WithAttributes(
		attribute.Int64("user.id", req.UserID),
		attribute.String("recommend.mode", req.Mode.String()),
	))
	defer span.End()

	user, err := s.catalog.User(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Showcase{}, err
	}
	show := Showcase{User: user, Source: req.Mode.String(), Items: []domain.Product{}}

	rec, err := s.recommender.Retrieve(ctx, req)
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownMode) {
			return Showcase{}, err
		}
		logging.WithTrace(ctx, s.logger).Warn("showcase without recommendations",
			"userId", req.UserID,
			"mode", req.Mode.String(),
			"error", err,
		)
		show.Reason = reason(err)
		return show, nil
	}
	show.Source = rec.Source

	for _, itemID := range rec.Items {
		product, err := s.catalog.Product(ctx, int64(itemID))
		if errors.Is(err, domain.ErrNotFound) {
			logging.WithTrace(ctx, s.logger).Info("recommended item missing from catalog",
				"userId", req.UserID,
				"itemId", int64(itemID),
			)
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Showcase{}, fmt.Errorf("showcase for user %d: %w", req.UserID, err)
		}
		product.Description = markup.StripTags(product.Description)
		show.Items = append(show.Items, product)
	}
	if len(show.Items) == 0 {
		show.Reason = "recommended items not in catalog"
	}
	span.SetAttributes(attribute.Int("showcase.items", len(show.Items)))
	return show, nil
}

func reason(err error) string {
	if kind := recommend.KindOf(err); kind != nil {
		return kind.Error()
	}
	return err.Error()
}
