package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	"fintrack/internal/events"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/worker"
)

func main() {
	logger, cfg := cli.Bootstrap()
	logger.Info("starting fintrack-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	// The sheet exporter is optional; without it the worker drains the
	// queue and drops messages.
	var appender worker.ChangeAppender
	exporter, err := sheets.NewFromEnv(context.Background())
	switch {
	case err == nil:
		appender = exporter
		logger.Info("google sheets export enabled")
	case errors.Is(err, sheets.ErrNotConfigured):
		logger.Info("google sheets export disabled", "reason", err)
	default:
		logger.Error("failed to initialize google sheets exporter", "error", err)
		os.Exit(1)
	}

	deliveries, err := amqpClient.Consume()
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	exportWorker := worker.NewExportWorker(appender, log.For(log.ComponentWorker))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return exportWorker.Run(ctx, deliveries)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("worker shutdown complete")
}
