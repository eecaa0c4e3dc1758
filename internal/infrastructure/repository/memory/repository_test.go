package memory_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestDeps() (trace.Tracer, *slog.Logger) {
	return noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCategoryRepository(t *testing.T) {
	repo := memory.NewCategoryRepository(newTestDeps())
	ctx := t.Context()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, slug := range []string{"banarasi", "kanjivaram"} {
		c, err := domain.NewCategory(slug, slug, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))
		assert.NotEmpty(t, c.ID)
	}

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "banarasi", all[0].Slug)

	found, err := repo.FindBySlug(ctx, "kanjivaram")
	require.NoError(t, err)
	assert.Equal(t, all[1].ID, found.ID)

	_, err = repo.FindBySlug(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository(t *testing.T) {
	repo := memory.NewProductRepository(newTestDeps())
	ctx := t.Context()

	var ids []string
	for i, name := range []string{"A", "B", "C", "D"} {
		p := &domain.Product{Name: name, Price: float64(i * 100), CollectionType: domain.CollectionTrending}
		require.NoError(t, repo.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	t.Run("FindByID", func(t *testing.T) {
		p, err := repo.FindByID(ctx, ids[2])
		require.NoError(t, err)
		assert.Equal(t, "C", p.Name)
	})

	t.Run("FindByIDInvalid", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "7f0c6d1e-8c33-4f0e-9a52-1f3c1d8a7b11")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("FindKeepsInsertionOrder", func(t *testing.T) {
		ps, err := repo.Find(ctx, domain.ProductQuery{}, 0)
		require.NoError(t, err)
		require.Len(t, ps, 4)
		for i, p := range ps {
			assert.Equal(t, ids[i], p.ID)
		}
	})

	t.Run("FindLimit", func(t *testing.T) {
		ps, err := repo.Find(ctx, domain.CollectionQuery(domain.CollectionTrending), 3)
		require.NoError(t, err)
		assert.Len(t, ps, 3)
	})

	t.Run("ReturnedCopiesAreIsolated", func(t *testing.T) {
		p, err := repo.FindByID(ctx, ids[0])
		require.NoError(t, err)
		p.Name = "changed"

		again, err := repo.FindByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "A", again.Name)
	})
}
