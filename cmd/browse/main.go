// Command browse is a terminal storefront for the catalog API. It fetches
// a listing, a search or a single product and applies the same filters
// and sort orders as the web listing page.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"github.com/mrops-br/saree-catalog-api/pkg/listing"
	"github.com/spf13/pflag"
)

type options struct {
	apiURL     string
	home       bool
	categories bool
	slug       string
	query      string
	productID  string
	search     string
	minPrice   float64
	maxPrice   float64
	materials  []string
	colors     []string
	sort       string
}

const unset = -1

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("browse", pflag.ContinueOnError)

	var o options
	fs.StringVar(&o.apiURL, "api", "http://localhost:8080/api", "catalog API base URL")
	fs.BoolVar(&o.home, "home", false, "show categories and the first products of each collection")
	fs.BoolVar(&o.categories, "categories", false, "list categories")
	fs.StringVarP(&o.slug, "slug", "s", "", "category or collection slug to list (new-arrival, trending, exclusive)")
	fs.StringVarP(&o.query, "query", "q", "", "search the whole catalog by name, description or material")
	fs.StringVarP(&o.productID, "product", "p", "", "show one product and similar products")
	fs.StringVar(&o.search, "search", "", "narrow the listing by name or description")
	fs.Float64Var(&o.minPrice, "min", unset, "minimum price")
	fs.Float64Var(&o.maxPrice, "max", unset, "maximum price")
	fs.StringSliceVar(&o.materials, "material", nil, "materials to include (repeatable)")
	fs.StringSliceVar(&o.colors, "color", nil, "colors to include (repeatable)")
	fs.StringVar(&o.sort, "sort", string(listing.DefaultSortOption), "sort order")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if _, err := listing.ParseSortOption(o.sort); err != nil {
		return nil, err
	}
	if !o.home && !o.categories && o.slug == "" && o.query == "" && o.productID == "" {
		return nil, errors.New("one of --home, --categories, --slug, --query or --product is required")
	}
	return &o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := newRenderer(os.Stdout)
	if err := run(ctx, opts, r); err != nil {
		r.err(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options, r *renderer) error {
	client, err := catalogclient.New(o.apiURL)
	if err != nil {
		return err
	}

	switch {
	case o.home:
		return home(ctx, client, r)

	case o.categories:
		cs, err := client.Categories(ctx)
		if err != nil {
			return err
		}
		r.categories(cs)
		return nil

	case o.productID != "":
		p, err := client.Product(ctx, o.productID)
		if err != nil {
			return err
		}
		similar, err := client.SimilarProducts(ctx, p)
		if err != nil {
			return err
		}
		r.detail(p, similar)
		return nil
	}

	var (
		products []catalogclient.Product
		title    string
	)
	if o.query != "" {
		products, err = client.Search(ctx, o.query)
		title = fmt.Sprintf("Search results for %q", o.query)
	} else {
		products, err = client.ListingProducts(ctx, o.slug)
		title = listing.Title(o.slug)
	}
	if err != nil {
		return err
	}

	view := newView(o, products)
	results := view.Results()
	r.title(title, fmt.Sprintf("%d of %d products, %s", len(results), len(products), view.Sorter.Selected().Label()))
	r.products(results)
	return nil
}

// homeCollections are the sections of the landing page, in page order
var homeCollections = []string{
	catalogclient.CollectionNewArrival,
	catalogclient.CollectionTrending,
	catalogclient.CollectionExclusive,
}

// home prints the category navigation followed by each collection at the
// server's default size. Empty collections are left out.
func home(ctx context.Context, client *catalogclient.Client, r *renderer) error {
	cs, err := client.Categories(ctx)
	if err != nil {
		return err
	}
	r.categories(cs)

	for _, ct := range homeCollections {
		products, err := client.Collection(ctx, ct, 0)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			continue
		}
		fmt.Fprintln(r.w)
		r.title(listing.Title(ct), "view all: --slug "+ct)
		r.products(products)
	}
	return nil
}

// newView drives the listing panels the way a shopper would: open the
// filter panel, pick values, apply, then choose a sort order.
func newView(o *options, products []catalogclient.Product) *listing.View {
	view := listing.NewView(o.slug, products)
	view.Search = o.search

	f := view.Filters
	f.Open()
	if o.minPrice != unset || o.maxPrice != unset {
		current := f.Pending().Price
		lo, hi := current.Min, current.Max
		if o.minPrice != unset {
			lo = o.minPrice
		}
		if o.maxPrice != unset {
			hi = o.maxPrice
		}
		f.SetPriceRange(lo, hi)
	}
	for _, m := range o.materials {
		f.ToggleMaterial(m)
	}
	for _, c := range o.colors {
		f.ToggleColor(c)
	}
	f.Apply()

	sortOpt, _ := listing.ParseSortOption(o.sort)
	view.Sorter.Open()
	view.Sorter.Select(sortOpt)
	return view
}
