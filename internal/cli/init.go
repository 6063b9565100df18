// Package cli provides common initialization shared by cmd/fintrack
// and cmd/fintrack-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/kv"
	"fintrack/internal/log"
)

// Bootstrap loads the .env file, sets up logging, and loads and
// validates configuration. It exits the process on invalid config.
func Bootstrap() (*slog.Logger, *config.Config) {
	_ = godotenv.Load()
	logger := log.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}
	return logger, cfg
}

// OpenStore opens the persistence backend named by cfg.DataBackend.
// The returned closer is a no-op for the memory backend.
func OpenStore(logger *slog.Logger, cfg *config.Config) (kv.Store, func() error) {
	switch cfg.DataBackend {
	case "sqlite":
		db, err := kv.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("using sqlite store", "path", cfg.SQLiteDBPath)
		return db, db.Close
	default:
		logger.Info("using in-memory store")
		return kv.NewMemory(), func() error { return nil }
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()
	return ctx, cancel
}

// ShutdownTimeout bounds how long graceful shutdown may take.
const ShutdownTimeout = 10 * time.Second
