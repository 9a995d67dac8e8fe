package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/coastal-data-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/coastal-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/coastal-data-etl/internal/config"
	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/couchcryptid/coastal-data-etl/internal/observability"
	"github.com/couchcryptid/coastal-data-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := domain.ValidateCatalog(); err != nil {
		if cfg.StrictCatalog {
			logger.Error("site-year catalog is invalid", "error", err)
			os.Exit(1)
		}
		logger.Warn("site-year catalog is invalid, continuing", "error", err)
	}
	metrics.CatalogSiteYears.Set(float64(len(domain.IDs())))
	logger.Info("site-year catalog loaded", "site_years", len(domain.IDs()), "regions", domain.Regions())

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
