package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mrops-br/saree-catalog-api/pkg/catalogclient"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// priceLocale groups rupee amounts the Indian way (1,00,000)
var priceLocale = language.MustParse("en-IN")

type renderer struct {
	w        io.Writer
	printer  *message.Printer
	heading  *color.Color
	name     *color.Color
	price    *color.Color
	muted    *color.Color
	discount *color.Color
	failure  *color.Color
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w:        w,
		printer:  message.NewPrinter(priceLocale),
		heading:  color.New(color.FgHiMagenta, color.Bold),
		name:     color.New(color.Bold),
		price:    color.New(color.FgGreen),
		muted:    color.New(color.Faint),
		discount: color.New(color.FgRed),
		failure:  color.New(color.FgRed, color.Bold),
	}
}

func (r *renderer) rupees(v float64) string {
	return r.printer.Sprintf("₹ %v", number.Decimal(v, number.MaxFractionDigits(2)))
}

func (r *renderer) title(text, detail string) {
	r.heading.Fprint(r.w, text)
	if detail != "" {
		r.muted.Fprintf(r.w, "  %s", detail)
	}
	fmt.Fprintln(r.w)
}

func (r *renderer) categories(cs []catalogclient.Category) {
	r.title("Categories", fmt.Sprintf("%d total", len(cs)))
	for _, c := range cs {
		fmt.Fprint(r.w, "  ")
		r.name.Fprint(r.w, c.Name)
		r.muted.Fprintf(r.w, "  /category/%s\n", c.Slug)
	}
}

func (r *renderer) products(ps []catalogclient.Product) {
	if len(ps) == 0 {
		r.muted.Fprintln(r.w, "  No products found")
		return
	}
	for i := range ps {
		r.productLine(&ps[i])
	}
}

func (r *renderer) productLine(p *catalogclient.Product) {
	fmt.Fprint(r.w, "  ")
	r.name.Fprint(r.w, p.Name)
	fmt.Fprint(r.w, "  ")
	r.price.Fprint(r.w, r.rupees(p.Price))

	if p.Discount != nil && *p.Discount > 0 {
		original := p.Price
		if p.OriginalPrice != nil {
			original = *p.OriginalPrice
		}
		r.muted.Fprintf(r.w, "  %s", r.rupees(original))
		r.discount.Fprintf(r.w, "  %g%% off", *p.Discount)
	}

	var meta []string
	if p.Material != "" {
		meta = append(meta, p.Material)
	}
	if len(p.Colors) > 0 {
		meta = append(meta, strings.Join(p.Colors, "/"))
	}
	if p.ReviewCount != nil {
		meta = append(meta, fmt.Sprintf("%d reviews", *p.ReviewCount))
	}
	if len(meta) > 0 {
		r.muted.Fprintf(r.w, "  [%s]", strings.Join(meta, ", "))
	}
	r.muted.Fprintf(r.w, "  #%s\n", p.ID)
}

func (r *renderer) detail(p *catalogclient.Product, similar []catalogclient.Product) {
	r.title(p.Name, p.Category)
	r.productLine(p)
	if p.Description != "" {
		fmt.Fprintf(r.w, "  %s\n", p.Description)
	}
	if len(p.Images) > 0 {
		r.muted.Fprintf(r.w, "  images: %s\n", strings.Join(p.Images, ", "))
	}

	if len(similar) > 0 {
		fmt.Fprintln(r.w)
		r.title("Similar Products", "")
		r.products(similar)
	}
}

func (r *renderer) err(err error) {
	r.failure.Fprint(r.w, "error: ")
	fmt.Fprintln(r.w, err)
}
