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

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.Name),
		attribute.Float64("product.price", req.Price),
	)

	product, err := req.ToDomain()
	if err == nil {
		err = s.repo.Create(ctx, product)
	}
	recordOperation(ctx, s.productOperations, "create", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create product")
		s.logger.ErrorContext(ctx, "Failed to create product",
			slog.String("name", req.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	span.SetAttributes(attribute.String("product.id", product.ID))
	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	recordOperation(ctx, s.productOperations, "read", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product lookup failed")
		s.logger.WarnContext(ctx, "Product lookup failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Product retrieved successfully",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts returns the products matching every criterion in search.
// A nil search lists the whole catalog.
func (s *ProductService) ListProducts(ctx context.Context, search *domain.ProductSearch) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	if search != nil {
		span.SetAttributes(
			attribute.String("search.term", search.Search),
			attribute.String("search.category", search.Category),
			attribute.String("search.material", search.Material),
			attribute.String("search.collection_type", string(search.CollectionType)),
		)
	}

	return s.find(ctx, span, "list", domain.BuildProductQuery(search), 0)
}

// ListProductsByCategory returns every product whose category slug equals category
func (s *ProductService) ListProductsByCategory(ctx context.Context, category string) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProductsByCategory")
	defer span.End()

	category = strings.TrimSpace(category)
	span.SetAttributes(attribute.String("product.category", category))

	if category == "" {
		return nil, s.invalid(ctx, span, "list_by_category", &domain.ValidationError{Field: "category", Reason: "is required"})
	}

	return s.find(ctx, span, "list_by_category", domain.CategoryQuery(category), 0)
}

// ListProductsByCollection returns at most limit products of the named
// collection. The limit is expected to come from dto.ParseCollectionLimit.
func (s *ProductService) ListProductsByCollection(ctx context.Context, collectionType string, limit int64) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProductsByCollection")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.collection_type", collectionType),
		attribute.Int64("query.limit", limit),
	)

	ct, err := domain.ParseCollectionType(collectionType)
	if err != nil {
		return nil, s.invalid(ctx, span, "list_by_collection", err)
	}

	return s.find(ctx, span, "list_by_collection", domain.CollectionQuery(ct), limit)
}

// SearchProducts matches q against name, description and material
func (s *ProductService) SearchProducts(ctx context.Context, q string) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SearchProducts")
	defer span.End()

	q = strings.TrimSpace(q)
	span.SetAttributes(attribute.String("search.term", q))

	if q == "" {
		return nil, s.invalid(ctx, span, "search", &domain.ValidationError{Field: "q", Reason: "is required"})
	}

	return s.find(ctx, span, "search", domain.SearchQuery(q), 0)
}

func (s *ProductService) find(ctx context.Context, span trace.Span, operation string, query domain.ProductQuery, limit int64) ([]*dto.ProductResponse, error) {
	products, err := s.repo.Find(ctx, query, limit)
	recordOperation(ctx, s.productOperations, operation, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.String("operation", operation),
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

func (s *ProductService) invalid(ctx context.Context, span trace.Span, operation string, err error) error {
	recordOperation(ctx, s.productOperations, operation, err)
	span.SetStatus(codes.Error, "Invalid request")
	s.logger.WarnContext(ctx, "Rejected product request",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return err
}
