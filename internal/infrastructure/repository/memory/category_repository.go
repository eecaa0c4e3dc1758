package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ domain.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository is an in-memory implementation of domain.CategoryRepository
type CategoryRepository struct {
	mu         sync.RWMutex
	categories []*domain.Category
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewCategoryRepository(tracer trace.Tracer, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		tracer: tracer,
		logger: logger,
	}
}

// Create stores a new category. Slug uniqueness is not enforced.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.Create")
	defer span.End()

	now := time.Now().UTC()
	category.ID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now

	span.SetAttributes(
		attribute.String("category.id", category.ID),
		attribute.String("category.slug", category.Slug),
	)

	stored := *category

	r.mu.Lock()
	r.categories = append(r.categories, &stored)
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Category created in repository",
		slog.String("category_id", category.ID),
		slog.String("category_slug", category.Slug),
	)

	span.SetStatus(codes.Ok, "Category created successfully")
	return nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	_, span := r.tracer.Start(ctx, "CategoryRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	categories := make([]*domain.Category, len(r.categories))
	for i, c := range r.categories {
		found := *c
		categories[i] = &found
	}
	r.mu.RUnlock()

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	span.SetStatus(codes.Ok, "Categories retrieved successfully")
	return categories, nil
}

// FindBySlug returns the first category stored under slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.FindBySlug")
	defer span.End()

	span.SetAttributes(attribute.String("category.slug", slug))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			span.SetStatus(codes.Ok, "Category found")
			found := *c
			return &found, nil
		}
	}

	span.SetStatus(codes.Error, "Category not found")
	r.logger.WarnContext(ctx, "Category not found",
		slog.String("category_slug", slug),
	)
	return nil, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
}
