package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/openguessr/api/internal/config"
	"github.com/openguessr/api/internal/database"
	"github.com/openguessr/api/internal/game"
	"github.com/openguessr/api/internal/migrations"
	"github.com/openguessr/api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Store and location pool ---
	store := server.NewSQLiteStore(db)

	if err := server.SeedLocations(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding locations: %w", err)
	}

	locations, err := store.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("loading locations: %w", err)
	}
	pool := game.NewPool(locations)
	if pool.Size() < cfg.RoundsPerGame {
		return fmt.Errorf("location pool has %d entries, need %d per game", pool.Size(), cfg.RoundsPerGame)
	}
	logger.Info("location pool loaded", "size", pool.Size())

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Config{
		DB:            db,
		Store:         store,
		Pool:          pool,
		JWTSecret:     []byte(cfg.JWTSecret),
		JWTTTL:        cfg.JWTTTL,
		RoundsPerGame: cfg.RoundsPerGame,
		SPADir:        cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
