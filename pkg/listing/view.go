package listing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
)

var collectionTitles = map[string]string{
	catalogclient.CollectionNewArrival: "New Arrival",
	catalogclient.CollectionTrending:   "Trending Collection",
	catalogclient.CollectionExclusive:  "Exclusive Collection",
}

// Title renders a listing heading for slug: fixed titles for collections,
// otherwise each hyphen-separated word with its first letter upper-cased.
func Title(slug string) string {
	if t, ok := collectionTitles[slug]; ok {
		return t
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// View is one listing page: the fetched products, the search box and the
// two panels.
type View struct {
	Slug     string
	Search   string
	Filters  *FilterPanel
	Sorter   *SortPanel
	products []catalogclient.Product
}

func NewView(slug string, products []catalogclient.Product) *View {
	return &View{
		Slug:     slug,
		Filters:  NewFilterPanel(products),
		Sorter:   NewSortPanel(),
		products: products,
	}
}

func (v *View) Title() string {
	return Title(v.Slug)
}

// Criteria combines the search text with the applied filter selection
func (v *View) Criteria() Criteria {
	applied := v.Filters.Applied()
	return Criteria{
		Search:    v.Search,
		Price:     applied.Price,
		Materials: applied.Materials,
		Colors:    applied.Colors,
	}
}

// Results filters then sorts the products. It is recomputed on every call.
func (v *View) Results() []catalogclient.Product {
	return Sort(Filter(v.products, v.Criteria()), v.Sorter.Selected())
}
