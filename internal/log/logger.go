// Package log wraps log/slog with the application's conventions:
// every line carries a component field, and field names are shared
// constants so queries stay consistent across binaries.
package log

import (
	"log/slog"
	"os"
)

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldRecordID  = "id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldPort      = "port"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentKV      = "kv"
	ComponentEvents  = "events"
	ComponentWorker  = "worker"
	ComponentSchemes = "schemes"
	ComponentReport  = "report"
)

// Setup initializes the default structured logger and returns it.
func Setup() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// For returns a logger scoped to the given component.
func For(component string) *slog.Logger {
	return slog.Default().With(FieldComponent, component)
}
