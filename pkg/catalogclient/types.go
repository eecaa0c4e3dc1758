package catalogclient

import (
	"net/url"
	"strconv"
	"time"
)

// Collection slugs served by /collections/{type}
const (
	CollectionNewArrival = "new-arrival"
	CollectionTrending   = "trending"
	CollectionExclusive  = "exclusive"
)

// IsCollection reports whether slug names a collection rather than a category
func IsCollection(slug string) bool {
	switch slug {
	case CollectionNewArrival, CollectionTrending, CollectionExclusive:
		return true
	}
	return false
}

type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
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

// ProductSearch mirrors the query parameters of GET /products. Zero values
// are omitted.
type ProductSearch struct {
	Search         string
	Category       string
	Material       string
	CollectionType string
	PriceMin       *float64
	PriceMax       *float64
}

func (s ProductSearch) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", s.Search)
	set("category", s.Category)
	set("material", s.Material)
	set("collectionType", s.CollectionType)
	if s.PriceMin != nil {
		v.Set("priceMin", strconv.FormatFloat(*s.PriceMin, 'f', -1, 64))
	}
	if s.PriceMax != nil {
		v.Set("priceMax", strconv.FormatFloat(*s.PriceMax, 'f', -1, 64))
	}
	return v
}
