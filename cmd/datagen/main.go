package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/retailrec/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users         = flag.Int("users", cfg.NumUsers, "number of users to generate")
		products      = flag.Int("products", cfg.NumProducts, "number of products to generate")
		perUser       = flag.Int("per-user", cfg.RecommendationsPerUser, "recommendations per covered user")
		coverage      = flag.Float64("coverage", cfg.CoverageChance, "probability that a user has offline recommendations")
		unknownGender = flag.Float64("unknown-gender-chance", cfg.UnknownGenderChance, "probability of a gender code other than M or F")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write the CSV files")
		writeStdout   = flag.Bool("stdout", false, "write the dataset as JSON to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumUsers:               *users,
		NumProducts:            *products,
		RecommendationsPerUser: *perUser,
		CoverageChance:         clampProbability(*coverage),
		UnknownGenderChance:    clampProbability(*unknownGender),
		Seed:                   *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := generator.WriteJSON(os.Stdout, dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users, %d products and %d recommendations into %s\n",
		len(dataset.Users), len(dataset.Products), len(dataset.Recommendations), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
