package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanshika/retailrec/internal/app"
	"github.com/vanshika/retailrec/internal/config"
	"github.com/vanshika/retailrec/internal/dataset"
	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/logging"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/service"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir   = flag.String("dataset-dir", "./data", "Directory containing users.csv and products.csv")
		usersPath    = flag.String("users", "", "Path to users.csv (overrides dataset-dir)")
		productsPath = flag.String("products", "", "Path to products.csv (overrides dataset-dir)")
		workers      = flag.Int("workers", service.DefaultWorkers, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	userFile, productFile, err := resolveDatasetPaths(*datasetDir, *usersPath, *productsPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	users, err := loadUsers(userFile)
	if err != nil {
		logger.Error("failed to load users", "error", err, "path", userFile)
		os.Exit(1)
	}
	products, err := loadProducts(productFile)
	if err != nil {
		logger.Error("failed to load products", "error", err, "path", productFile)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalog store", "backend", cfg.Catalog.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ingestor := service.NewBulkIngestor(store, *workers)

	start := time.Now()
	logger.Info("ingesting users", "count", len(users), "workers", *workers)
	if err := ingestor.IngestUsers(ctx, users); err != nil {
		logger.Error("user ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingesting products", "count", len(products))
	if err := ingestor.IngestProducts(ctx, products); err != nil {
		logger.Error("product ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "users", len(users), "products", len(products))
}

func resolveDatasetPaths(baseDir, usersPath, productsPath string) (string, string, error) {
	resolve := func(explicitPath, fallbackFile string) (string, error) {
		if explicitPath != "" {
			if _, err := os.Stat(explicitPath); err != nil {
				return "", fmt.Errorf("stat %s: %w", explicitPath, err)
			}
			return explicitPath, nil
		}
		path := filepath.Join(baseDir, fallbackFile)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return path, nil
	}

	usersFile, err := resolve(usersPath, "users.csv")
	if err != nil {
		return "", "", err
	}
	productsFile, err := resolve(productsPath, "products.csv")
	if err != nil {
		return "", "", err
	}
	return usersFile, productsFile, nil
}

func loadUsers(path string) ([]domain.UserProfile, error) {
	table, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return metadata.ReadUsers(table)
}

func loadProducts(path string) ([]domain.Product, error) {
	table, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return metadata.ReadProducts(table)
}
