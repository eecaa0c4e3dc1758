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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ domain.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository stores categories in the "categories" collection
type CategoryRepository struct {
	collection *mongo.Collection
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewCategoryRepository(db *mongo.Database, tracer trace.Tracer, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection(categoryCollectionName),
		tracer:     tracer,
		logger:     logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const op = "CategoryRepository.Create"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, newCategoryDocument(category))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return fmt.Errorf("%s: %w", op, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid.Hex()
	}

	span.SetAttributes(attribute.String("category.id", category.ID))
	r.logger.InfoContext(ctx, "category inserted",
		slog.String("op", op),
		slog.String("category_id", category.ID),
		slog.String("category_slug", category.Slug),
	)
	return nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	const op = "CategoryRepository.FindAll"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Find failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Decode failed")
		return nil, fmt.Errorf("%s: failed to decode: %w", op, err)
	}

	categories := make([]*domain.Category, len(docs))
	for i, d := range docs {
		categories[i] = d.toDomain()
	}

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	return categories, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const op = "CategoryRepository.FindBySlug"
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(attribute.String("category.slug", slug))

	var doc categoryDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			span.SetStatus(codes.Error, "Category not found")
			return nil, fmt.Errorf("%s: category %q: %w", op, slug, domain.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "FindOne failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toDomain(), nil
}
