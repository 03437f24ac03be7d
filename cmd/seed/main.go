package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/tendant/simple-tourism/pkg/tourism"
	"github.com/tendant/simple-tourism/pkg/tourism/config"
	pgstore "github.com/tendant/simple-tourism/pkg/tourism/store/postgres"
)

// seed copies the static catalog into the configured remote store: the
// featured set becomes "attractions" and the popular set "destinations".
func main() {
	ensureSchema := flag.Bool("ensure-schema", true, "create the Postgres documents table if missing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it, using environment only", "err", err)
	}

	if err := run(context.Background(), *ensureSchema); err != nil {
		slog.Error("Seeding failed", "err", err)
		os.Exit(1)
	}
}

type seedSet struct {
	name  tourism.CollectionName
	items []tourism.ContentItem
}

func run(ctx context.Context, ensureSchema bool) error {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	if cfg.StoreType == config.StoreMemory {
		return errors.New("refusing to seed the in-memory store; set STORE_URL to postgres:// or s3://")
	}

	store, closeStore, err := cfg.BuildStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to build document store: %w", err)
	}
	defer closeStore()

	if pg, ok := store.(*pgstore.Store); ok && ensureSchema {
		if err := pg.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	writer, ok := store.(tourism.DocumentWriter)
	if !ok {
		return fmt.Errorf("configured store %s cannot be written", cfg.StoreType)
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	return seed(ctx, writer, catalog)
}

// seed writes attractions before destinations.
func seed(ctx context.Context, writer tourism.DocumentWriter, catalog *tourism.Catalog) error {
	for _, set := range []seedSet{
		{name: tourism.CollectionAttractions, items: catalog.Featured()},
		{name: tourism.CollectionDestinations, items: catalog.Popular()},
	} {
		records, err := tourism.ItemsToRecords(set.items)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", set.name, err)
		}
		if err := writer.WriteCollection(ctx, set.name, records); err != nil {
			return fmt.Errorf("failed to write %s: %w", set.name, err)
		}
		slog.Info("Seeded collection", "collection", set.name, "documents", len(records), "catalog_version", catalog.Version())
	}
	return nil
}
