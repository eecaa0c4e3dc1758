package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	categoryCollectionName = "categories"
	productCollectionName  = "products"
)

// Connect opens a client against cfg.URI and pings the primary. The
// returned client is meant to live for the whole process and be shared by
// every repository; the caller disconnects it on shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*mongo.Client, error) {
	const op = "mongodb.Connect"
	log := logger.With("op", op)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxIdleTime).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	log.Info("connecting to database",
		slog.String("uri", cfg.Redacted()),
		slog.String("database", cfg.Database),
	)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("database is available", slog.String("database", cfg.Database))
	return client, nil
}

// EnsureIndexes creates the unique slug index and the secondary indexes
// used by the catalog reads.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	const op = "mongodb.EnsureIndexes"

	_, err := db.Collection(categoryCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: categories: %w", op, err)
	}

	_, err = db.Collection(productCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "collectionType", Value: 1}}},
		{Keys: bson.D{{Key: "material", Value: 1}, {Key: "price", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: products: %w", op, err)
	}

	return nil
}
