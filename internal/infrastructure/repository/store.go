package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"
)

const disconnectTimeout = 10 * time.Second

// Store bundles the repositories of the configured driver
type Store struct {
	Categories domain.CategoryRepository
	Products   domain.ProductRepository

	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Open builds the repositories for cfg.Store.Driver. For mongo it connects
// once and every repository shares the client until Close.
func Open(ctx context.Context, cfg *config.StoreConfig, tracer trace.Tracer, logger *slog.Logger) (*Store, error) {
	if cfg.Driver == config.StoreMemory {
		logger.Warn("Using in-memory store; data is lost on exit")
		return &Store{
			Categories: memory.NewCategoryRepository(tracer, logger),
			Products:   memory.NewProductRepository(tracer, logger),
			logger:     logger,
		}, nil
	}

	client, err := mongodb.Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Mongo.Database)
	return &Store{
		Categories: mongodb.NewCategoryRepository(db, tracer, logger),
		Products:   mongodb.NewProductRepository(db, tracer, logger),
		client:     client,
		db:         db,
		logger:     logger,
	}, nil
}

// EnsureIndexes creates the store's indexes; a no-op for the memory driver
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return mongodb.EnsureIndexes(ctx, s.db)
}

// Close disconnects the shared client, if any
func (s *Store) Close() {
	if s.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Error("Failed to disconnect from MongoDB", slog.String("error", err.Error()))
	}
}
