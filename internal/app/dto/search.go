package dto

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
)

const (
	DefaultCollectionLimit = 6
	MaxCollectionLimit     = 100
)

// ParseProductSearch builds a ProductSearch from the /products query string
func ParseProductSearch(values url.Values) (*domain.ProductSearch, error) {
	search := &domain.ProductSearch{
		Search:   strings.TrimSpace(values.Get("search")),
		Category: strings.TrimSpace(values.Get("category")),
		Material: strings.TrimSpace(values.Get("material")),
	}

	if raw := strings.TrimSpace(values.Get("collectionType")); raw != "" {
		c, err := domain.ParseCollectionType(raw)
		if err != nil {
			return nil, err
		}
		search.CollectionType = c
	}

	var err error
	if search.PriceMin, err = parsePrice("priceMin", values.Get("priceMin")); err != nil {
		return nil, err
	}
	if search.PriceMax, err = parsePrice("priceMax", values.Get("priceMax")); err != nil {
		return nil, err
	}
	if search.PriceMin != nil && search.PriceMax != nil && *search.PriceMin > *search.PriceMax {
		return nil, &domain.ValidationError{Field: "priceMin", Reason: "must not exceed priceMax"}
	}

	return search, nil
}

// ParseCollectionLimit reads the optional limit parameter of /collections
func ParseCollectionLimit(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultCollectionLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return 0, &domain.ValidationError{Field: "limit", Reason: "must be a positive integer"}
	}
	return min(limit, MaxCollectionLimit), nil
}

func parsePrice(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &domain.ValidationError{Field: field, Reason: "must be a number"}
	}
	if v < 0 {
		return nil, &domain.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return &v, nil
}
