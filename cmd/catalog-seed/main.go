package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	catalogpostgres "github.com/xtremepizzaria/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	platformpostgres "github.com/xtremepizzaria/storefront/internal/platform/postgres"
)

// catalog-seed applies the schema and upserts the static menu, for deployments that
// manage the catalog table ahead of the API rollout.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(logger, os.Getenv("POSTGRES_DSN")); err != nil {
		logger.Error("catalog seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run owns every deferred cleanup so that main can exit non-zero afterwards.
func run(logger *slog.Logger, dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, cleanup := platformpostgres.Open(ctx, dsn, logger)
	defer cleanup()
	if db == nil {
		return errors.New("POSTGRES_DSN not set or connection failed")
	}

	menu := catalogdomain.Menu()
	if err := catalogpostgres.NewRepository(db).Seed(ctx, menu); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("catalog seeded", slog.Int("items", len(menu)))
	return nil
}
