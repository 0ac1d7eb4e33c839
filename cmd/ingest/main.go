package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/fredgido/triathlon-dashboard/internal/config"
	"github.com/fredgido/triathlon-dashboard/internal/logging"
	"github.com/fredgido/triathlon-dashboard/internal/normalize"
	"github.com/fredgido/triathlon-dashboard/internal/pipeline"
	"github.com/fredgido/triathlon-dashboard/internal/raceresult"
	"github.com/fredgido/triathlon-dashboard/internal/store"
	"github.com/fredgido/triathlon-dashboard/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	dsn, err := cfg.Database.DSN()
	if err != nil {
		slog.Error("failed to resolve database connection", "error", err)
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		slog.Error("failed to parse database DSN", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	runner := pipeline.NewRunner(
		raceresult.NewClient(cfg.RaceResult),
		st,
		normalize.New(normalize.NewCountryResolver()),
		cfg.RaceResult,
	)

	if cfg.Server.Mode == "serve" {
		serve(runner, cfg)
		return
	}

	// Single run: the scheduler invokes the process once per ingestion.
	if _, err := runner.Run(ctx); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// serve runs the HTTP trigger server until SIGINT/SIGTERM.
func serve(runner *pipeline.Runner, cfg *config.Config) {
	server := web.NewServer(runner, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("trigger server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
