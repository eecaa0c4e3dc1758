package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mrops-br/saree-catalog-api/internal/app/dto"
	"github.com/mrops-br/saree-catalog-api/internal/app/service"
	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a seed file
type catalogFile struct {
	Categories []dto.CreateCategoryRequest `yaml:"categories"`
	Products   []dto.CreateProductRequest  `yaml:"products"`
}

type report struct {
	CategoriesCreated int
	CategoriesSkipped int
	ProductsCreated   int
	ProductsSkipped   bool
}

func loadCatalog(r io.Reader) (*catalogFile, error) {
	const op = "seed.loadCatalog"

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c catalogFile
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty catalog", op)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

type seeder struct {
	categories *service.CategoryService
	products   *service.ProductService
	logger     *slog.Logger
}

// seed creates missing categories by slug. Products have no natural key,
// so they are inserted only into an empty catalog unless force is set.
func (s *seeder) seed(ctx context.Context, c *catalogFile, force bool) (report, error) {
	const op = "seed.seed"
	var rep report

	for i := range c.Categories {
		req := &c.Categories[i]

		_, err := s.categories.GetCategoryBySlug(ctx, req.Slug)
		switch {
		case err == nil:
			rep.CategoriesSkipped++
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return rep, fmt.Errorf("%s: category %q: %w", op, req.Slug, err)
		}

		if _, err := s.categories.CreateCategory(ctx, req); err != nil {
			return rep, fmt.Errorf("%s: category %q: %w", op, req.Slug, err)
		}
		rep.CategoriesCreated++
	}

	if !force {
		existing, err := s.products.ListProducts(ctx, nil)
		if err != nil {
			return rep, fmt.Errorf("%s: %w", op, err)
		}
		if len(existing) > 0 {
			s.logger.InfoContext(ctx, "products already present, skipping",
				slog.Int("existing", len(existing)),
			)
			rep.ProductsSkipped = true
			return rep, nil
		}
	}

	for i := range c.Products {
		req := &c.Products[i]
		if _, err := s.products.CreateProduct(ctx, req); err != nil {
			return rep, fmt.Errorf("%s: product %d (%q): %w", op, i, req.Name, err)
		}
		rep.ProductsCreated++
	}

	return rep, nil
}
