package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/cli"
	"fintrack/internal/events"
	"fintrack/internal/httpapi"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/schemes"
)

func main() {
	logger, cfg := cli.Bootstrap()

	store, closeStore := cli.OpenStore(logger, cfg)
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	// Change events are optional; without AMQP the ledger runs standalone.
	var publisher ledger.ChangePublisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("publishing change events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	ledgerStore := ledger.NewStore(store, publisher, log.For(log.ComponentLedger))
	ledgerStore.Initialize(context.Background())

	schemesClient := schemes.NewClient(cfg.SchemeServiceURL, cfg.ServiceTimeout)
	reportClient := report.NewClient(cfg.ReportServiceURL, cfg.ServiceTimeout)

	srv := httpapi.NewServer(":"+cfg.Port, ledgerStore, schemesClient, reportClient, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
