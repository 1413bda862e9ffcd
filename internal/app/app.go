// Package app assembles catalogs and recommendation sources from
// configuration for the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vanshika/retailrec/internal/config"
	"github.com/vanshika/retailrec/internal/graph"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/metrics"
	"github.com/vanshika/retailrec/internal/recommend"
	"github.com/vanshika/retailrec/internal/repository"
	"github.com/vanshika/retailrec/internal/service"
	"github.com/vanshika/retailrec/internal/sqlstore"
)

// Catalog backends accepted in CatalogConfig.Backend.
const (
	BackendCSV   = "csv"
	BackendGraph = "graph"
	BackendSQL   = "sql"
)

// ErrReadOnlyBackend is returned by OpenStore for backends that cannot be
// written to.
var ErrReadOnlyBackend = errors.New("catalog backend is read-only")

// Catalog is a metadata.Catalog that can be health-checked.
type Catalog interface {
	metadata.Catalog
	Probe(ctx context.Context) error
}

// Store is a writable Catalog.
type Store interface {
	Catalog
	service.MetadataWriter
}

// Closer releases backend resources. It is never nil.
type Closer func()

// OpenCatalog connects the configured catalog backend.
func OpenCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (Catalog, Closer, error) {
	if cfg.Catalog.Backend == BackendCSV {
		catalog, err := metadata.LoadTableCatalog(cfg.Catalog.UsersPath, cfg.Catalog.ProductsPath)
		if err != nil {
			return nil, func() {}, err
		}
		logger.Info("loaded csv catalog",
			"users", catalog.Users.Len(),
			"products", catalog.Products.Len(),
		)
		return catalog, func() {}, nil
	}
	return OpenStore(ctx, cfg, logger)
}

// OpenStore connects a writable backend: graph or sql.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, Closer, error) {
	switch cfg.Catalog.Backend {
	case BackendGraph:
		client, err := buildGraphClient(ctx, logger, cfg.Graph)
		if err != nil {
			return nil, func() {}, err
		}
		closer := func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
		return repository.New(client), closer, nil
	case BackendSQL:
		store, err := sqlstore.Open(cfg.Catalog.SQLDriver, cfg.Catalog.SQLDSN)
		if err != nil {
			return nil, func() {}, err
		}
		logger.Info("connected to sql catalog", "driver", cfg.Catalog.SQLDriver)
		closer := func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing sql catalog failed", "error", err)
			}
		}
		return store, closer, nil
	case BackendCSV:
		return nil, func() {}, fmt.Errorf("%w: %s", ErrReadOnlyBackend, cfg.Catalog.Backend)
	default:
		return nil, func() {}, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, graph.ErrMissingURI
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}

// NewRetriever registers the static source and, when an endpoint is
// configured, the remote source behind an optional circuit breaker.
func NewRetriever(cfg config.RecommendConfig, logger *slog.Logger, m *metrics.Metrics) *recommend.Retriever {
	r := recommend.NewRetriever(logger,
		recommend.WithMaxResults(cfg.MaxResults),
		recommend.WithMetrics(m),
		recommend.WithSource(recommend.ModeStatic, recommend.NewStaticSource(cfg.StaticDatasetPath)),
	)
	if cfg.Endpoint == "" {
		return r
	}

	var remote recommend.Source = recommend.NewRemoteSource(recommend.RemoteOptions{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
	})
	if cfg.Breaker.Enabled {
		remote = recommend.NewBreakerSource(remote, recommend.BreakerSettings{
			Name:             "remote-recommendations",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}, logger, m)
	}
	r.Register(recommend.ModeRemote, remote)
	return r
}

// ParseAllowedOrigins splits a comma separated origin list.
func ParseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
