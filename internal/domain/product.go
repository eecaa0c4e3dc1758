package domain

import (
	"fmt"
	"time"
)

// CollectionType is a marketing grouping a product belongs to
type CollectionType string

const (
	CollectionNewArrival CollectionType = "new-arrival"
	CollectionTrending   CollectionType = "trending"
	CollectionExclusive  CollectionType = "exclusive"
)

// CollectionTypes lists every known collection in display order
var CollectionTypes = []CollectionType{
	CollectionNewArrival,
	CollectionTrending,
	CollectionExclusive,
}

// Valid reports whether c is one of the known collections
func (c CollectionType) Valid() bool {
	switch c {
	case CollectionNewArrival, CollectionTrending, CollectionExclusive:
		return true
	}
	return false
}

// ParseCollectionType converts a raw value into a CollectionType
func ParseCollectionType(raw string) (CollectionType, error) {
	c := CollectionType(raw)
	if !c.Valid() {
		return "", &ValidationError{Field: "collectionType", Reason: fmt.Sprintf("unknown collection %q", raw)}
	}
	return c, nil
}

// Product represents a saree listed in the catalog
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          float64
	OriginalPrice  *float64
	Discount       *float64
	Material       string
	CollectionType CollectionType
	// Category holds a category slug; it is not checked against the
	// categories collection.
	Category    string
	Images      []string
	Colors      []string
	ReviewCount *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a new product with validation
func NewProduct(p Product) (*Product, error) {
	now := time.Now().UTC()
	product := p
	product.ID = ""
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return &product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if p.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < 0 {
		return &ValidationError{Field: "originalPrice", Reason: "must not be negative"}
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		return &ValidationError{Field: "discount", Reason: "must be between 0 and 100"}
	}
	if p.CollectionType != "" && !p.CollectionType.Valid() {
		return &ValidationError{Field: "collectionType", Reason: fmt.Sprintf("unknown collection %q", p.CollectionType)}
	}
	if p.ReviewCount != nil && *p.ReviewCount < 0 {
		return &ValidationError{Field: "reviewCount", Reason: "must not be negative"}
	}
	return nil
}
