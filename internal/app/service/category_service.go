package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mrops-br/saree-catalog-api/internal/app/dto"
	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CategoryService handles category use cases
type CategoryService struct {
	repo       domain.CategoryRepository
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func NewCategoryService(
	repo domain.CategoryRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CategoryService {
	operations, _ := meter.Int64Counter(
		"categories.operations",
		metric.WithDescription("Total number of category operations"),
	)

	return &CategoryService{
		repo:       repo,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

// ListCategories returns every category in store order
func (s *CategoryService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.ListCategories")
	defer span.End()

	categories, err := s.repo.FindAll(ctx)
	recordOperation(ctx, s.operations, "list", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve categories")
		s.logger.ErrorContext(ctx, "Failed to list categories",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	s.logger.InfoContext(ctx, "Categories listed successfully",
		slog.Int("count", len(categories)),
	)

	span.SetStatus(codes.Ok, "Categories listed successfully")
	return dto.ToCategoryResponseList(categories), nil
}

// GetCategoryBySlug returns the first category with the given slug
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.GetCategoryBySlug")
	defer span.End()

	slug = strings.TrimSpace(slug)
	span.SetAttributes(attribute.String("category.slug", slug))

	if slug == "" {
		err := &domain.ValidationError{Field: "slug", Reason: "is required"}
		recordOperation(ctx, s.operations, "read", err)
		span.SetStatus(codes.Error, "Missing slug")
		return nil, err
	}

	category, err := s.repo.FindBySlug(ctx, slug)
	recordOperation(ctx, s.operations, "read", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Category lookup failed")
		s.logger.WarnContext(ctx, "Category lookup failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Category retrieved successfully",
		slog.String("category_id", category.ID),
		slog.String("slug", slug),
	)

	span.SetStatus(codes.Ok, "Category retrieved successfully")
	return dto.ToCategoryResponse(category), nil
}

// CreateCategory validates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CategoryService.CreateCategory")
	defer span.End()

	span.SetAttributes(attribute.String("category.slug", req.Slug))

	category, err := domain.NewCategory(req.Name, req.Slug, req.Image)
	if err == nil {
		err = s.repo.Create(ctx, category)
	}
	recordOperation(ctx, s.operations, "create", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create category")
		s.logger.ErrorContext(ctx, "Failed to create category",
			slog.String("slug", req.Slug),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Category created successfully",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	span.SetStatus(codes.Ok, "Category created successfully")
	return dto.ToCategoryResponse(category), nil
}
