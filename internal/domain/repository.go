package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid identifier")
)

// ValidationError reports bad or missing input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CategoryRepository defines the contract for category storage
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindAll(ctx context.Context) ([]*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
}

// ProductRepository defines the contract for product storage.
// Find returns products matching query in storage order; a limit of 0
// means no limit.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	Find(ctx context.Context, query ProductQuery, limit int64) ([]*Product, error)
}
