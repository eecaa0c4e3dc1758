// Package listing filters and sorts an already fetched product set the way
// the storefront listing page does, and models its filter and sort panels.
package listing

import (
	"slices"
	"strings"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"golang.org/x/text/cases"
)

// Criteria narrows a listing. All conditions must hold; empty Materials or
// Colors accept any product.
type Criteria struct {
	Search    string
	Price     PriceRange
	Materials []string
	Colors    []string
}

type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies in the closed range
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

type matcher struct {
	fold   cases.Caser
	search string
	c      Criteria
}

func newMatcher(c Criteria) *matcher {
	fold := cases.Fold()
	return &matcher{fold: fold, search: fold.String(c.Search), c: c}
}

func (m *matcher) matches(p *catalogclient.Product) bool {
	if m.search != "" &&
		!strings.Contains(m.fold.String(p.Name), m.search) &&
		!strings.Contains(m.fold.String(p.Description), m.search) {
		return false
	}
	if !m.c.Price.Contains(p.Price) {
		return false
	}
	if len(m.c.Materials) > 0 && !slices.Contains(m.c.Materials, p.Material) {
		return false
	}
	if len(m.c.Colors) > 0 && !slices.ContainsFunc(p.Colors, func(color string) bool {
		return slices.Contains(m.c.Colors, color)
	}) {
		return false
	}
	return true
}

// Matches reports whether p satisfies every criterion
func (c Criteria) Matches(p *catalogclient.Product) bool {
	return newMatcher(c).matches(p)
}

// Filter returns the products matching c, in their original order
func Filter(products []catalogclient.Product, c Criteria) []catalogclient.Product {
	m := newMatcher(c)
	out := make([]catalogclient.Product, 0, len(products))
	for i := range products {
		if m.matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}
