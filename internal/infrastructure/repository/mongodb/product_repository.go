package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ domain.ProductRepository = (*ProductRepository)(nil)

// ProductRepository stores products in the "products" collection
type ProductRepository struct {
	collection *mongo.Collection
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewProductRepository(db *mongo.Database, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(productCollectionName),
		tracer:     tracer,
		logger:     logger,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	const op = "ProductRepository.Create"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, newProductDocument(product))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return fmt.Errorf("%s: %w", op, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	r.logger.InfoContext(ctx, "product inserted",
		slog.String("op", op),
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)
	return nil
}

// FindByID looks up a product by its hex ObjectID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductRepository.FindByID"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid product id")
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidID, err)
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			span.SetStatus(codes.Error, "Product not found")
			return nil, fmt.Errorf("%s: product %q: %w", op, id, domain.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "FindOne failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toDomain(), nil
}

func (r *ProductRepository) Find(ctx context.Context, query domain.ProductQuery, limit int64) ([]*domain.Product, error) {
	const op = "ProductRepository.Find"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(
		attribute.Int("query.conditions", len(query.Conditions)),
		attribute.Int64("query.limit", limit),
	)

	filter, err := productFilter(query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid query")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Find failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Decode failed")
		return nil, fmt.Errorf("%s: failed to decode: %w", op, err)
	}

	products := make([]*domain.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toDomain()
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	r.logger.DebugContext(ctx, "products found",
		slog.String("op", op),
		slog.Int("count", len(products)),
	)
	return products, nil
}
