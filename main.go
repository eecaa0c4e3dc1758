package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/telemetry"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	telem, err := newTelemetry(ctx, cfg, level)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer(telemetry.InstrumentationName)
	meter := telem.MeterProvider.Meter(telemetry.InstrumentationName)
	logger := telem.Logger

	logger.Info("Starting Saree Catalog API", slog.String("store", cfg.Store.Driver))

	store, err := repository.Open(ctx, &cfg.Store, tracer, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	categoryService := service.NewCategoryService(store.Categories, tracer, meter, logger)
	productService := service.NewProductService(store.Products, tracer, meter, logger)

	server := http.NewServer(
		&cfg.Server,
		handler.NewCategoryHandler(categoryService, logger),
		handler.NewProductHandler(productService, logger),
		logger,
		telem,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func newTelemetry(ctx context.Context, cfg *config.Config, level slog.Level) (*telemetry.Telemetry, error) {
	if cfg.OTLP.Enabled {
		return telemetry.NewTelemetry(ctx, &cfg.OTLP, level)
	}
	return telemetry.NewNoOpTelemetry(&cfg.OTLP, level)
}
