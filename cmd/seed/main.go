package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"devlink-platform/internal/config"
	pg "devlink-platform/internal/infra/db/postgres"
	"devlink-platform/internal/infra/logging"
	"devlink-platform/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "relax config validation")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	featureRepo := pg.NewFeatureRepo(pool)
	featureUC := usecase.NewFeatureUseCase(featureRepo, logger)

	// Insert-only: rows already present keep their current prices.
	if err := featureUC.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed features: %v", err)
	}

	features, err := featureUC.List(ctx)
	if err != nil {
		log.Fatalf("list features: %v", err)
	}
	fmt.Printf("catalog now holds %d features:\n", len(features))
	for _, f := range features {
		fmt.Printf("  - %s (%s, %d %s)\n", f.Name, f.DisplayName, f.Price, f.Currency)
	}
}
