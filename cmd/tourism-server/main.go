package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-tourism/pkg/tourism"
	"github.com/tendant/simple-tourism/pkg/tourism/api"
	"github.com/tendant/simple-tourism/pkg/tourism/config"
	"github.com/tendant/simple-tourism/pkg/tourism/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it, using environment only", "err", err)
	}

	if err := run(context.Background()); err != nil {
		slog.Error("Server failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Info("Supported environment variables", "usage", config.EnvUsage())
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	logger := slog.Default().With("env", cfg.Environment)
	recorder := metrics.New()

	store, closeStore, err := cfg.BuildStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to build %s document store: %w", cfg.StoreType, err)
	}
	defer closeStore()

	gateway, err := cfg.BuildGateway(store, recorder, logger)
	if err != nil {
		return fmt.Errorf("failed to build gateway: %w", err)
	}

	var (
		source tourism.ContentSource
		reader api.CollectionReader
	)
	if cfg.Mode == tourism.ModeRemoteFirst {
		source = gateway
		reader = gateway
	}

	resolver, err := cfg.BuildResolver(source, recorder, logger)
	if err != nil {
		return fmt.Errorf("failed to build resolver: %w", err)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)
	server.R.Handle("/metrics", recorder.Handler())

	contentHandler := api.NewContentHandler(resolver, reader)
	server.R.Mount("/api/v1", contentHandler.Routes())

	slog.Info("Starting tourism content server", "mode", cfg.Mode, "store", cfg.StoreType, "fetch_timeout", cfg.FetchTimeout)
	server.Run()
	return nil
}
