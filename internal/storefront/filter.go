package storefront

import (
	"strings"

	"storefront/pkg/models"
)

// AllOption matches every brand or every product type.
const AllOption = "all"

// DefaultBrand is what a product without a brand is shown as.
const DefaultBrand = "Falcofix"

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Title restricts a type option to one product line. Empty matches all.
	Title string `json:"-"`
}

type Options struct {
	Brands []Option            `json:"brands"`
	Types  map[string][]Option `json:"types"`
}

// DefaultOptions is the brand and product-type menu of the storefront.
// Falco Bond and the Bluecoat types have no title mapping and match everything
// under their brand.
func DefaultOptions() Options {
	return Options{
		Brands: []Option{
			{ID: AllOption, Label: "All Brands"},
			{ID: "Falcofix", Label: "Falcofix"},
			{ID: "Bluecoat", Label: "Bluecoat"},
		},
		Types: map[string][]Option{
			"Falcofix": {
				{ID: AllOption, Label: "All Products"},
				{ID: "wr", Label: "Falcofix WR", Title: "Falcofix WR"},
				{ID: "um", Label: "Ultra Marine", Title: "Falcofix Ultra Marine"},
				{ID: "ebs", Label: "Falcofix EBS", Title: "Falcofix EBS"},
				{ID: "fb", Label: "Falco Bond"},
				{ID: "wrgold", Label: "WR Gold", Title: "Falcofix WR Gold"},
			},
			"Bluecoat": {
				{ID: AllOption, Label: "All Products"},
				{ID: "d3", Label: "Bluecoat D3"},
				{ID: "marine", Label: "Bluecoat Marine"},
			},
		},
	}
}

// Filter is the listing's brand and type selection. Zero values mean "all".
type Filter struct {
	Brand string
	Type  string
}

func (f Filter) normalized() Filter {
	brand := strings.TrimSpace(f.Brand)
	if brand == "" {
		brand = AllOption
	}
	typ := strings.TrimSpace(f.Type)
	if typ == "" || brand == AllOption {
		// changing brand resets the type selection
		typ = AllOption
	}
	return Filter{Brand: brand, Type: typ}
}

// Apply keeps the products matching f, in catalog order.
//
// Brand matching is exact on the stored brand, so an unbranded product is not
// matched by the Falcofix filter even though it is displayed as Falcofix.
func (o Options) Apply(products []models.Product, f Filter) []models.Product {
	f = f.normalized()
	title := o.typeTitle(f)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Brand != AllOption && p.Brand != f.Brand {
			continue
		}
		if title != "" && p.Title != title {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (o Options) typeTitle(f Filter) string {
	if f.Type == AllOption {
		return ""
	}
	for _, opt := range o.Types[f.Brand] {
		if opt.ID == f.Type {
			return opt.Title
		}
	}
	return ""
}

// DisplayBrand is the brand label shown for p.
func DisplayBrand(p models.Product) string {
	if p.Brand == "" {
		return DefaultBrand
	}
	return p.Brand
}
