package mongodb

import (
	"time"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type categoryDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Slug      string             `bson:"slug"`
	Image     string             `bson:"image"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newCategoryDocument(c *domain.Category) categoryDocument {
	return categoryDocument{
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d categoryDocument) toDomain() *domain.Category {
	return &domain.Category{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Slug:      d.Slug,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type productDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	OriginalPrice  *float64           `bson:"originalPrice,omitempty"`
	Discount       *float64           `bson:"discount,omitempty"`
	Material       string             `bson:"material"`
	CollectionType string             `bson:"collectionType,omitempty"`
	Category       string             `bson:"category"`
	Images         []string           `bson:"images"`
	Colors         []string           `bson:"colors"`
	ReviewCount    *int               `bson:"reviewCount,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func newProductDocument(p *domain.Product) productDocument {
	return productDocument{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Discount:       p.Discount,
		Material:       p.Material,
		CollectionType: string(p.CollectionType),
		Category:       p.Category,
		Images:         p.Images,
		Colors:         p.Colors,
		ReviewCount:    p.ReviewCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		OriginalPrice:  d.OriginalPrice,
		Discount:       d.Discount,
		Material:       d.Material,
		CollectionType: domain.CollectionType(d.CollectionType),
		Category:       d.Category,
		Images:         d.Images,
		Colors:         d.Colors,
		ReviewCount:    d.ReviewCount,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
