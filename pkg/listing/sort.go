package listing

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOption string

const (
	SortFeatured       SortOption = "featured"
	SortBestSelling    SortOption = "best-selling"
	SortAlphabeticalAZ SortOption = "alphabetically-az"
	SortAlphabeticalZA SortOption = "alphabetically-za"
	SortPriceLowHigh   SortOption = "price-low-high"
	SortPriceHighLow   SortOption = "price-high-low"
	SortDateOldNew     SortOption = "date-old-new"
	SortDateNewOld     SortOption = "date-new-old"
)

const DefaultSortOption = SortFeatured

// SortOptions lists the options in menu order
var SortOptions = []SortOption{
	SortFeatured,
	SortBestSelling,
	SortAlphabeticalAZ,
	SortAlphabeticalZA,
	SortPriceLowHigh,
	SortPriceHighLow,
	SortDateOldNew,
	SortDateNewOld,
}

var sortLabels = map[SortOption]string{
	SortFeatured:       "Featured",
	SortBestSelling:    "Best selling",
	SortAlphabeticalAZ: "Alphabetically, A-Z",
	SortAlphabeticalZA: "Alphabetically, Z-A",
	SortPriceLowHigh:   "Price, low to high",
	SortPriceHighLow:   "Price, high to low",
	SortDateOldNew:     "Date, old to new",
	SortDateNewOld:     "Date, new to old",
}

func (o SortOption) Label() string {
	return sortLabels[o]
}

func ParseSortOption(raw string) (SortOption, error) {
	o := SortOption(raw)
	if _, ok := sortLabels[o]; !ok {
		return "", fmt.Errorf("unknown sort option %q", raw)
	}
	return o, nil
}

// sortTag is the collation locale used for name ordering
var sortTag = language.English

// Sort returns a stably sorted copy of products. Featured keeps the
// incoming order.
func Sort(products []catalogclient.Product, opt SortOption) []catalogclient.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []catalogclient.Product{}
	}

	var compare func(a, b catalogclient.Product) int
	switch opt {
	case SortBestSelling:
		compare = func(a, b catalogclient.Product) int {
			return cmp.Compare(reviewCount(b), reviewCount(a))
		}
	case SortAlphabeticalAZ, SortAlphabeticalZA:
		// a Collator keeps internal buffers, so each call gets its own
		col := collate.New(sortTag)
		compare = func(a, b catalogclient.Product) int {
			return col.CompareString(a.Name, b.Name)
		}
		if opt == SortAlphabeticalZA {
			compare = reversed(compare)
		}
	case SortPriceLowHigh:
		compare = func(a, b catalogclient.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case SortPriceHighLow:
		compare = func(a, b catalogclient.Product) int {
			return cmp.Compare(b.Price, a.Price)
		}
	case SortDateOldNew:
		compare = func(a, b catalogclient.Product) int {
			return cmp.Compare(createdMillis(a), createdMillis(b))
		}
	case SortDateNewOld:
		compare = func(a, b catalogclient.Product) int {
			return cmp.Compare(createdMillis(b), createdMillis(a))
		}
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

func reversed(f func(a, b catalogclient.Product) int) func(a, b catalogclient.Product) int {
	return func(a, b catalogclient.Product) int { return f(b, a) }
}

func reviewCount(p catalogclient.Product) int {
	if p.ReviewCount == nil {
		return 0
	}
	return *p.ReviewCount
}

// createdMillis treats a missing timestamp as the Unix epoch
func createdMillis(p catalogclient.Product) int64 {
	if p.CreatedAt.IsZero() {
		return 0
	}
	return p.CreatedAt.UnixMilli()
}
