// Package main runs the token registry HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solana-token-api/internal/api"
	"solana-token-api/internal/config"
	"solana-token-api/internal/feed"
	"solana-token-api/internal/logging"
	"solana-token-api/internal/observability"
	"solana-token-api/internal/storage"
	"solana-token-api/internal/storage/memory"
	"solana-token-api/internal/storage/migrations"
	pgstore "solana-token-api/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	metrics := observability.NewMetrics("")
	hub := feed.NewHub(logger.Named("feed"), metrics)

	server := api.NewServer(api.Options{
		Addr:        cfg.HTTPAddr,
		Stores:      stores,
		Network:     api.StaticNetworkStatus(cfg.NetworkStatus()),
		Feed:        hub,
		FeedHandler: hub,
		Metrics:     metrics,
		Logger:      logger,
	})

	logger.Info("starting server",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("storage", cfg.Backend),
		zap.String("network", cfg.Network),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// createStores builds the configured storage backend.
func createStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Stores, func(), error) {
	if cfg.Backend == config.BackendMemory {
		logger.Info("using in-memory storage")
		return memory.NewStores(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return storage.Stores{}, nil, err
	}

	if cfg.RunMigrations {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			pool.Close()
			return storage.Stores{}, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("postgres migrations applied", zap.Strings("files", applied))
	}

	return pgstore.NewStores(pool), pool.Close, nil
}
