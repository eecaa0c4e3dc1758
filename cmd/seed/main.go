// Command seed loads a YAML catalog of categories and products into the
// configured store.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/telemetry"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	catalogPath := pflag.StringP("file", "f", "seed/catalog.yaml", "catalog file to load")
	force := pflag.Bool("force", false, "insert products even when the catalog already has some")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *catalogPath, *force); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, catalogPath string, force bool) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	telem, err := telemetry.NewNoOpTelemetry(&cfg.OTLP, level)
	if err != nil {
		return err
	}
	defer func() { _ = telem.Shutdown(context.Background()) }()

	tracer := telem.TracerProvider.Tracer(telemetry.InstrumentationName)
	meter := telem.MeterProvider.Meter(telemetry.InstrumentationName)
	logger := telem.Logger.With(slog.String("component", "seed"))

	f, err := os.Open(catalogPath)
	if err != nil {
		return err
	}
	defer f.Close()

	catalog, err := loadCatalog(f)
	if err != nil {
		return err
	}

	store, err := repository.Open(ctx, &cfg.Store, tracer, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	s := &seeder{
		categories: service.NewCategoryService(store.Categories, tracer, meter, logger),
		products:   service.NewProductService(store.Products, tracer, meter, logger),
		logger:     logger,
	}

	rep, err := s.seed(ctx, catalog, force)
	if err != nil {
		return err
	}

	logger.Info("Seed complete",
		slog.String("file", catalogPath),
		slog.Int("categories_created", rep.CategoriesCreated),
		slog.Int("categories_skipped", rep.CategoriesSkipped),
		slog.Int("products_created", rep.ProductsCreated),
		slog.Bool("products_skipped", rep.ProductsSkipped),
	)
	return nil
}
