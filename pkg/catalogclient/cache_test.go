package catalogclient_test

import (
	"testing"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := catalogclient.NewCache()
	c.Set("/products?category=banarasi", []byte("a"))
	c.Set("/products/p1", []byte("b"))
	c.Set("/categories", []byte("c"))

	body, ok := c.Get("/products/p1")
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), body)

	assert.Equal(t, 2, c.InvalidatePrefix("/products"))
	assert.Equal(t, 1, c.Len())

	c.Invalidate("/categories")
	_, ok = c.Get("/categories")
	assert.False(t, ok)
}
