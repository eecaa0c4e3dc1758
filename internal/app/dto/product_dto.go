package dto

import (
	"time"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Price          float64  `json:"price" yaml:"price"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty" yaml:"originalPrice"`
	Discount       *float64 `json:"discount,omitempty" yaml:"discount"`
	Material       string   `json:"material" yaml:"material"`
	CollectionType string   `json:"collectionType" yaml:"collectionType"`
	Category       string   `json:"category" yaml:"category"`
	Images         []string `json:"images" yaml:"images"`
	Colors         []string `json:"colors" yaml:"colors"`
	ReviewCount    *int     `json:"reviewCount,omitempty" yaml:"reviewCount"`
}

// ToDomain builds a validated domain product from the request
func (r *CreateProductRequest) ToDomain() (*domain.Product, error) {
	return domain.NewProduct(domain.Product{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Discount:       r.Discount,
		Material:       r.Material,
		CollectionType: domain.CollectionType(r.CollectionType),
		Category:       r.Category,
		Images:         r.Images,
		Colors:         r.Colors,
		ReviewCount:    r.ReviewCount,
	})
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	OriginalPrice  *float64  `json:"originalPrice,omitempty"`
	Discount       *float64  `json:"discount,omitempty"`
	Material       string    `json:"material"`
	CollectionType string    `json:"collectionType,omitempty"`
	Category       string    `json:"category"`
	Images         []string  `json:"images"`
	Colors         []string  `json:"colors"`
	ReviewCount    *int      `json:"reviewCount,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Discount:       p.Discount,
		Material:       p.Material,
		CollectionType: string(p.CollectionType),
		Category:       p.Category,
		Images:         nonNil(p.Images),
		Colors:         nonNil(p.Colors),
		ReviewCount:    p.ReviewCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
