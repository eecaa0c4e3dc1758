package domain

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Category groups products under a URL slug
type Category struct {
	ID        string
	Name      string
	Slug      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new category with validation
func NewCategory(name, slug, image string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		Name:      name,
		Slug:      slug,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate performs business validation on the category
func (c *Category) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !slugPattern.MatchString(c.Slug) {
		return &ValidationError{Field: "slug", Reason: "must be lowercase words joined by hyphens"}
	}
	return nil
}
