package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/saree-catalog-api/internal/app/dto"
	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testTracer = noop.NewTracerProvider().Tracer("test")
	testMeter  = metricnoop.NewMeterProvider().Meter("test")
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func ptr[T any](v T) *T { return &v }

type catalogFixture struct {
	products   *service.ProductService
	categories *service.CategoryService
	ids        map[string]string
}

// newCatalog seeds six products across two categories and three collections
func newCatalog(t *testing.T) *catalogFixture {
	t.Helper()

	productRepo := memory.NewProductRepository(testTracer, testLogger)
	categoryRepo := memory.NewCategoryRepository(testTracer, testLogger)
	f := &catalogFixture{
		products:   service.NewProductService(productRepo, testTracer, testMeter, testLogger),
		categories: service.NewCategoryService(categoryRepo, testTracer, testMeter, testLogger),
		ids:        map[string]string{},
	}

	for _, req := range []dto.CreateCategoryRequest{
		{Name: "Banarasi", Slug: "banarasi", Image: "/img/banarasi.jpg"},
		{Name: "Kanjivaram", Slug: "kanjivaram", Image: "/img/kanjivaram.jpg"},
	} {
		_, err := f.categories.CreateCategory(t.Context(), &req)
		require.NoError(t, err)
	}

	for _, req := range []dto.CreateProductRequest{
		{Name: "Ruby Silk", Description: "Handwoven zari border", Price: 1000, Material: "silk", CollectionType: "trending", Category: "banarasi"},
		{Name: "Ivory Cotton", Description: "Everyday drape", Price: 450, Material: "cotton", CollectionType: "new-arrival", Category: "kanjivaram"},
		{Name: "Emerald Silk", Description: "Temple border", Price: 2000, Material: "silk", CollectionType: "trending", Category: "kanjivaram"},
		{Name: "Saffron Georgette", Description: "Light SILK blend", Price: 2500, Material: "georgette", CollectionType: "exclusive", Category: "banarasi"},
		{Name: "Midnight Silk", Description: "Zari pallu", Price: 1500, Material: "silk", CollectionType: "trending", Category: "banarasi"},
		{Name: "Rose Chiffon", Description: "Floral print", Price: 900, Material: "chiffon", CollectionType: "trending", Category: "kanjivaram"},
	} {
		p, err := f.products.CreateProduct(t.Context(), &req)
		require.NoError(t, err)
		f.ids[req.Name] = p.ID
	}

	return f
}

func names(ps []*dto.ProductResponse) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestCategoryService(t *testing.T) {
	f := newCatalog(t)

	t.Run("List", func(t *testing.T) {
		cs, err := f.categories.ListCategories(t.Context())
		require.NoError(t, err)
		require.Len(t, cs, 2)
		assert.Equal(t, "banarasi", cs[0].Slug)
	})

	t.Run("BySlug", func(t *testing.T) {
		c, err := f.categories.GetCategoryBySlug(t.Context(), "kanjivaram")
		require.NoError(t, err)
		assert.Equal(t, "Kanjivaram", c.Name)
	})

	t.Run("BySlugMissing", func(t *testing.T) {
		_, err := f.categories.GetCategoryBySlug(t.Context(), "does-not-exist")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BySlugEmpty", func(t *testing.T) {
		_, err := f.categories.GetCategoryBySlug(t.Context(), "  ")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("CreateInvalidSlug", func(t *testing.T) {
		_, err := f.categories.CreateCategory(t.Context(), &dto.CreateCategoryRequest{Name: "Bad", Slug: "Bad Slug"})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestProductService(t *testing.T) {
	f := newCatalog(t)

	t.Run("ListAll", func(t *testing.T) {
		ps, err := f.products.ListProducts(t.Context(), nil)
		require.NoError(t, err)
		assert.Len(t, ps, 6)
	})

	t.Run("ListSilkInPriceRange", func(t *testing.T) {
		ps, err := f.products.ListProducts(t.Context(), &domain.ProductSearch{
			Material: "silk",
			PriceMin: ptr(1000.0),
			PriceMax: ptr(2000.0),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ruby Silk", "Emerald Silk", "Midnight Silk"}, names(ps))
	})

	t.Run("ListCategoryAllIsUnfiltered", func(t *testing.T) {
		ps, err := f.products.ListProducts(t.Context(), &domain.ProductSearch{Category: domain.AllCategories})
		require.NoError(t, err)
		assert.Len(t, ps, 6)
	})

	t.Run("ListNoMatchIsEmpty", func(t *testing.T) {
		ps, err := f.products.ListProducts(t.Context(), &domain.ProductSearch{Material: "linen"})
		require.NoError(t, err)
		assert.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("GetByID", func(t *testing.T) {
		p, err := f.products.GetProductByID(t.Context(), f.ids["Rose Chiffon"])
		require.NoError(t, err)
		assert.Equal(t, "Rose Chiffon", p.Name)
	})

	t.Run("GetByIDErrors", func(t *testing.T) {
		_, err := f.products.GetProductByID(t.Context(), "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		_, err = f.products.GetProductByID(t.Context(), "00000000-0000-4000-8000-000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ByCategory", func(t *testing.T) {
		ps, err := f.products.ListProductsByCategory(t.Context(), "kanjivaram")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ivory Cotton", "Emerald Silk", "Rose Chiffon"}, names(ps))

		_, err = f.products.ListProductsByCategory(t.Context(), "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("ByCollectionLimit", func(t *testing.T) {
		ps, err := f.products.ListProductsByCollection(t.Context(), "trending", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ruby Silk", "Emerald Silk", "Midnight Silk"}, names(ps))

		ps, err = f.products.ListProductsByCollection(t.Context(), "trending", dto.DefaultCollectionLimit)
		require.NoError(t, err)
		assert.Len(t, ps, 4)
	})

	t.Run("ByCollectionUnknown", func(t *testing.T) {
		_, err := f.products.ListProductsByCollection(t.Context(), "clearance", 6)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("SearchCaseInsensitive", func(t *testing.T) {
		ps, err := f.products.SearchProducts(t.Context(), "SiLk")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ruby Silk", "Emerald Silk", "Saffron Georgette", "Midnight Silk"}, names(ps))
	})

	t.Run("SearchMatchesMaterial", func(t *testing.T) {
		ps, err := f.products.SearchProducts(t.Context(), "chiff")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rose Chiffon"}, names(ps))
	})

	t.Run("SearchRequiresTerm", func(t *testing.T) {
		_, err := f.products.SearchProducts(t.Context(), " ")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		_, err := f.products.CreateProduct(t.Context(), &dto.CreateProductRequest{Name: "Neg", Price: -1})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductRepository) Find(ctx context.Context, q domain.ProductQuery, limit int64) ([]*domain.Product, error) {
	args := m.Called(ctx, q, limit)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func TestProductServiceRecordsOperations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	repo := new(mockProductRepository)
	repo.On("Find", mock.Anything, domain.SearchQuery("silk"), int64(0)).Return(nil, errors.New("connection reset"))
	repo.On("Find", mock.Anything, domain.CollectionQuery(domain.CollectionExclusive), int64(6)).Return([]*domain.Product{}, nil)

	svc := service.NewProductService(repo, testTracer, meter, testLogger)

	_, err := svc.SearchProducts(t.Context(), "silk")
	require.Error(t, err)

	ps, err := svc.ListProductsByCollection(t.Context(), "exclusive", 6)
	require.NoError(t, err)
	assert.Empty(t, ps)

	repo.AssertExpectations(t)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	results := map[string]string{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "products.operations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(attribute.Key("operation"))
				res, _ := dp.Attributes.Value(attribute.Key("result"))
				results[op.AsString()] = res.AsString()
			}
		}
	}

	assert.Equal(t, map[string]string{
		"search":             "failure",
		"list_by_collection": "success",
	}, results)
}
