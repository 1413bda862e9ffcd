package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vanshika/retailrec/internal/app"
	"github.com/vanshika/retailrec/internal/config"
	"github.com/vanshika/retailrec/internal/logging"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/metrics"
	"github.com/vanshika/retailrec/internal/recommend"
	"github.com/vanshika/retailrec/internal/server"
	"github.com/vanshika/retailrec/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	catalog, closeCatalog, err := app.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalog", "backend", cfg.Catalog.Backend, "error", err)
		os.Exit(1)
	}
	defer closeCatalog()
	instrumented := metadata.Instrument(catalog, m)

	defaultMode, err := recommend.ParseMode(cfg.Recommend.DefaultSource)
	if err != nil {
		logger.Error("invalid default recommendation source", "error", err)
		os.Exit(1)
	}
	retriever := app.NewRetriever(cfg.Recommend, logger, m)
	showcase := service.NewShowcaseService(retriever, instrumented, logger)
	apiHandlers := server.NewAPIHandlers(logger, instrumented, retriever, showcase, defaultMode)

	deps := server.RouterDependencies{
		Health:           instrumented,
		API:              apiHandlers,
		AllowedOrigins:   app.ParseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	}
	if cfg.HTTP.MetricsEnabled {
		deps.Metrics = reg
	}

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
}
