package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/can-bmu/restaurant-monitor/internal/api"
	"github.com/can-bmu/restaurant-monitor/internal/classify"
	"github.com/can-bmu/restaurant-monitor/internal/config"
	"github.com/can-bmu/restaurant-monitor/internal/fetch"
	"github.com/can-bmu/restaurant-monitor/internal/probe"
	"github.com/can-bmu/restaurant-monitor/internal/registry"
	"github.com/can-bmu/restaurant-monitor/internal/resolve"
	"github.com/can-bmu/restaurant-monitor/internal/storage"
	"github.com/can-bmu/restaurant-monitor/internal/storage/postgres"
	"github.com/can-bmu/restaurant-monitor/internal/storage/sqlite"
	"github.com/can-bmu/restaurant-monitor/internal/sweep"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application failed: %v", err)
	}
	log.Println("application shut down gracefully")
}

func run() error {
	cfg := config.Load()

	// Canceled on SIGINT/SIGTERM; the foundation for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	locations, err := registry.Load()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	fetcher, err := fetch.New(cfg.HTTPTimeout)
	if err != nil {
		return err
	}

	resolver := resolve.New(
		fetcher,
		classify.New(cfg.AssumeClosedBolt),
		probe.NewBolt(fetcher),
		probe.NewWolt(fetcher, cfg.WoltLat, cfg.WoltLon),
	)

	sweeper := sweep.New(resolver, locations, cfg.CheckInterval, cfg.MaxConcurrency, cfg.RequestRate, store)

	// Serve the last persisted sweep until the first live one completes.
	if store != nil {
		if snap, err := store.LoadSnapshot(ctx); err == nil {
			log.Printf("restored snapshot from %s (%d records)", snap.CompletedAt, len(snap.Records))
			sweeper.Seed(snap)
		} else if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("could not restore snapshot: %v", err)
		}
	}

	server := api.NewServer(cfg.HTTPPort, sweeper, locations)

	sweeper.Start(ctx)
	server.Start()

	log.Printf("monitoring %d locations (%s)", len(locations), api.Version)

	<-ctx.Done()

	log.Println("shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shutdownCancel()

	// Stop the sweeper first so no sweep publishes mid-shutdown.
	sweeper.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}

	return nil
}

// openStore selects the snapshot store from config. "none" disables
// persistence entirely; the process then starts with an empty state.
func openStore(ctx context.Context, cfg *config.Config) (storage.Storer, error) {
	switch cfg.DatabaseDriver {
	case "none", "":
		return nil, nil
	case "sqlite":
		log.Println("initializing SQLite snapshot store...")
		store, err := sqlite.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		return store, nil
	case "postgres":
		log.Println("initializing PostgreSQL snapshot store...")
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}
