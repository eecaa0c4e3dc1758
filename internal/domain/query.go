package domain

import "strings"

// AllCategories is the category value meaning "no category filter"
const AllCategories = "all"

// ProductSearch is the set of optional criteria narrowing a product listing
type ProductSearch struct {
	Search         string
	Category       string
	Material       string
	CollectionType CollectionType
	PriceMin       *float64
	PriceMax       *float64
}

// ProductField names a product attribute a condition can address
type ProductField string

const (
	FieldName           ProductField = "name"
	FieldDescription    ProductField = "description"
	FieldMaterial       ProductField = "material"
	FieldCategory       ProductField = "category"
	FieldCollectionType ProductField = "collectionType"
)

// Value returns the string value of field on p
func (f ProductField) Value(p *Product) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldDescription:
		return p.Description
	case FieldMaterial:
		return p.Material
	case FieldCategory:
		return p.Category
	case FieldCollectionType:
		return string(p.CollectionType)
	}
	return ""
}

// Condition is a single predicate of a ProductQuery. The concrete types
// are TextMatch, FieldEquals and PriceRange.
type Condition interface {
	Matches(p *Product) bool
	condition()
}

// TextMatch matches when Term is a case-insensitive substring of any of Fields
type TextMatch struct {
	Term   string
	Fields []ProductField
}

func (c TextMatch) Matches(p *Product) bool {
	term := strings.ToLower(c.Term)
	for _, f := range c.Fields {
		if strings.Contains(strings.ToLower(f.Value(p)), term) {
			return true
		}
	}
	return false
}

// FieldEquals matches when Field equals Value exactly
type FieldEquals struct {
	Field ProductField
	Value string
}

func (c FieldEquals) Matches(p *Product) bool {
	return c.Field.Value(p) == c.Value
}

// PriceRange matches prices within the inclusive bounds; nil bounds are open
type PriceRange struct {
	Min *float64
	Max *float64
}

func (c PriceRange) Matches(p *Product) bool {
	if c.Min != nil && p.Price < *c.Min {
		return false
	}
	if c.Max != nil && p.Price > *c.Max {
		return false
	}
	return true
}

func (TextMatch) condition()   {}
func (FieldEquals) condition() {}
func (PriceRange) condition()  {}

// ProductQuery is the conjunction of its conditions. The zero value
// matches every product.
type ProductQuery struct {
	Conditions []Condition
}

// Matches reports whether p satisfies every condition
func (q ProductQuery) Matches(p *Product) bool {
	for _, c := range q.Conditions {
		if !c.Matches(p) {
			return false
		}
	}
	return true
}

// BuildProductQuery translates a search request into a ProductQuery.
// A nil search yields a query matching everything.
func BuildProductQuery(search *ProductSearch) ProductQuery {
	var q ProductQuery
	if search == nil {
		return q
	}

	if search.Search != "" {
		q.Conditions = append(q.Conditions, TextMatch{
			Term:   search.Search,
			Fields: []ProductField{FieldName, FieldDescription},
		})
	}
	if search.Category != "" && search.Category != AllCategories {
		q.Conditions = append(q.Conditions, FieldEquals{Field: FieldCategory, Value: search.Category})
	}
	if search.Material != "" {
		q.Conditions = append(q.Conditions, FieldEquals{Field: FieldMaterial, Value: search.Material})
	}
	if search.CollectionType != "" {
		q.Conditions = append(q.Conditions, FieldEquals{Field: FieldCollectionType, Value: string(search.CollectionType)})
	}
	if search.PriceMin != nil || search.PriceMax != nil {
		q.Conditions = append(q.Conditions, PriceRange{Min: search.PriceMin, Max: search.PriceMax})
	}

	return q
}

// CategoryQuery matches products filed under the category slug
func CategoryQuery(slug string) ProductQuery {
	return ProductQuery{Conditions: []Condition{FieldEquals{Field: FieldCategory, Value: slug}}}
}

// CollectionQuery matches products in the collection
func CollectionQuery(c CollectionType) ProductQuery {
	return ProductQuery{Conditions: []Condition{FieldEquals{Field: FieldCollectionType, Value: string(c)}}}
}

// SearchQuery matches term against name, description and material
func SearchQuery(term string) ProductQuery {
	return ProductQuery{Conditions: []Condition{TextMatch{
		Term:   term,
		Fields: []ProductField{FieldName, FieldDescription, FieldMaterial},
	}}}
}
