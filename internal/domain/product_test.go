package domain_test

import (
	"testing"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := domain.NewProduct(domain.Product{
			ID:             "ignored",
			Name:           "Silk Saree",
			Price:          1200,
			OriginalPrice:  ptr(1500.0),
			Discount:       ptr(20.0),
			CollectionType: domain.CollectionTrending,
		})
		require.NoError(t, err)
		assert.Empty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	})

	cases := map[string]struct {
		product domain.Product
		field   string
	}{
		"MissingName":       {domain.Product{Price: 10}, "name"},
		"NegativePrice":     {domain.Product{Name: "x", Price: -1}, "price"},
		"NegativeOriginal":  {domain.Product{Name: "x", OriginalPrice: ptr(-1.0)}, "originalPrice"},
		"DiscountTooLarge":  {domain.Product{Name: "x", Discount: ptr(101.0)}, "discount"},
		"UnknownCollection": {domain.Product{Name: "x", CollectionType: "clearance"}, "collectionType"},
		"NegativeReviews":   {domain.Product{Name: "x", ReviewCount: ptr(-3)}, "reviewCount"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.NewProduct(tc.product)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestParseCollectionType(t *testing.T) {
	for _, c := range domain.CollectionTypes {
		got, err := domain.ParseCollectionType(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := domain.ParseCollectionType("sale")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNewCategory(t *testing.T) {
	c, err := domain.NewCategory("Banarasi", "banarasi-silk", "/img/banarasi.jpg")
	require.NoError(t, err)
	assert.Equal(t, "banarasi-silk", c.Slug)

	for _, slug := range []string{"", "Banarasi", "with space", "-lead", "trail-"} {
		_, err := domain.NewCategory("Name", slug, "")
		assert.Error(t, err, slug)
	}

	_, err = domain.NewCategory("", "ok", "")
	assert.Error(t, err)
}
