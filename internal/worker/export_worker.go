// Package worker consumes ledger change events and exports them.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"

	"fintrack/internal/core"
	"fintrack/internal/events"
)

// ChangeAppender receives exported change rows. *sheets.Exporter is
// the production implementation.
type ChangeAppender interface {
	AppendChange(ctx context.Context, op string, rec core.ExpenseRecord) error
}

// ExportWorker drains the change queue into an appender.
type ExportWorker struct {
	appender ChangeAppender
	logger   *slog.Logger
}

func NewExportWorker(appender ChangeAppender, logger *slog.Logger) *ExportWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportWorker{
		appender: appender,
		logger:   logger.With("component", "worker"),
	}
}

// HandleMessage exports one change event.
func (w *ExportWorker) HandleMessage(ctx context.Context, msg *events.ExpenseChangeMessage) error {
	w.logger.Info("processing change event",
		"op", msg.Op,
		"id", msg.Record.ID)

	if w.appender == nil {
		w.logger.Warn("no appender configured, dropping event", "id", msg.Record.ID)
		return nil
	}

	if err := w.appender.AppendChange(ctx, msg.Op, msg.Record); err != nil {
		return fmt.Errorf("append change: %w", err)
	}
	return nil
}

// Run consumes deliveries until the context is cancelled or the
// channel closes. Malformed messages are acked and dropped; transient
// export failures are nacked for redelivery.
func (w *ExportWorker) Run(ctx context.Context, deliveries <-chan amqp091.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			msg, err := events.ExpenseChangeMessageFromJSON(d.Body)
			if err != nil {
				w.logger.Error("malformed change event, dropping", "error", err)
				_ = d.Ack(false)
				continue
			}

			if err := w.HandleMessage(ctx, msg); err != nil {
				w.logger.Error("export failed, requeueing",
					"op", msg.Op, "id", msg.Record.ID, "error", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
