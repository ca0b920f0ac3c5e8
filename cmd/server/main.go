package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/court-reservation/internal/app"
	"github.com/nekogravitycat/court-reservation/internal/config"
	"github.com/nekogravitycat/court-reservation/internal/db"
	"github.com/nekogravitycat/court-reservation/internal/logging"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "console")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	deps := app.Deps{Config: cfg, Logger: logger}

	// Connect DB
	var pool *pgxpool.Pool
	if cfg.StoreBackend == config.BackendPostgres {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to db")
		}
		defer pool.Close()
		deps.DBPool = pool
	}

	// Connect Redis
	var rdb *redis.Client
	if cfg.SessionBackend == config.BackendRedis {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		deps.Redis = rdb
	}

	container, err := app.NewContainer(deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build container")
	}
	if err := container.Bootstrap(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin account")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.SessionBackend).
			Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}
