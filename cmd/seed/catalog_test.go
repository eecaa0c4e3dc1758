package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

func newSeeder() *seeder {
	tracer := noop.NewTracerProvider().Tracer("test")
	meter := metricnoop.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &seeder{
		categories: service.NewCategoryService(memory.NewCategoryRepository(tracer, logger), tracer, meter, logger),
		products:   service.NewProductService(memory.NewProductRepository(tracer, logger), tracer, meter, logger),
		logger:     logger,
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("BundledFile", func(t *testing.T) {
		f, err := os.Open("../../seed/catalog.yaml")
		require.NoError(t, err)
		defer f.Close()

		c, err := loadCatalog(f)
		require.NoError(t, err)
		assert.Len(t, c.Categories, 4)
		require.Len(t, c.Products, 8)

		first := c.Products[0]
		assert.Equal(t, "banarasi", first.Category)
		assert.Equal(t, "trending", first.CollectionType)
		require.NotNil(t, first.OriginalPrice)
		assert.Equal(t, 2200.0, *first.OriginalPrice)
		require.NotNil(t, first.ReviewCount)
		assert.Equal(t, 48, *first.ReviewCount)
		assert.Equal(t, []string{"red", "gold"}, first.Colors)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := loadCatalog(strings.NewReader("categories:\n  - name: A\n    slug: a\n    colour: red\n"))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := loadCatalog(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestSeed(t *testing.T) {
	c, err := loadCatalog(strings.NewReader(`
categories:
  - {name: Banarasi, slug: banarasi}
  - {name: Chanderi, slug: chanderi}
products:
  - {name: Ruby Silk, price: 1000, material: silk, category: banarasi, collectionType: trending}
  - {name: Ivory Chanderi, price: 899, material: chanderi, category: chanderi}
`))
	require.NoError(t, err)

	s := newSeeder()

	rep, err := s.seed(t.Context(), c, false)
	require.NoError(t, err)
	assert.Equal(t, report{CategoriesCreated: 2, ProductsCreated: 2}, rep)

	rep, err = s.seed(t.Context(), c, false)
	require.NoError(t, err)
	assert.Equal(t, report{CategoriesSkipped: 2, ProductsSkipped: true}, rep)

	rep, err = s.seed(t.Context(), c, true)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.ProductsCreated)

	all, err := s.products.ListProducts(t.Context(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSeedRejectsInvalidProduct(t *testing.T) {
	c, err := loadCatalog(strings.NewReader("products:\n  - {name: Bad, price: 10, collectionType: clearance}\n"))
	require.NoError(t, err)

	_, err = newSeeder().seed(t.Context(), c, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Bad"`)
}
