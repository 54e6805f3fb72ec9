package storefront

import (
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"storefront/internal/catalog"
	"storefront/pkg/models"
)

const listingPath = "/products"

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders an amount in rupees with Indian digit grouping and at
// most three fraction digits.
func FormatPrice(v float64) string {
	return "₹" + inr.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// SizeLabel is "500g - 1 KG" for a multi-size line, or the single pack size.
func SizeLabel(g catalog.Group) string {
	lo, hi := g.SizeRange()
	if len(g.Variants) > 1 {
		return catalog.FormatWeight(lo) + " - " + catalog.FormatWeight(hi)
	}
	return catalog.FormatWeight(lo)
}

// PriceLabel is "₹80 - ₹150" for a multi-size line, or the single sale price.
func PriceLabel(g catalog.Group) string {
	lo, hi := g.PriceRange()
	if len(g.Variants) > 1 {
		return FormatPrice(lo) + " - " + FormatPrice(hi)
	}
	return FormatPrice(lo)
}

func detailURL(productID string) string {
	return "/product-details?id=" + url.QueryEscape(productID)
}

// Tile is one product line on the listing page.
type Tile struct {
	Product      models.Product `json:"product"`
	Brand        string         `json:"brand"`
	VariantCount int            `json:"variant_count"`
	SizeLabel    string         `json:"size_label"`
	PriceLabel   string         `json:"price_label"`
	Discount     int            `json:"discount_percent,omitempty"`
	DetailURL    string         `json:"detail_url"`
}

// Tiles builds the listing for f: one tile per product line in first-appearance
// order, represented by its lightest pack. Sizes, prices and the variant count
// always describe the whole line, even when the filter hides some of it.
func Tiles(all []models.Product, opts Options, f Filter) []Tile {
	lines := catalog.GroupByTitle(all)
	visible := catalog.OrderedGroups(opts.Apply(all, f))

	tiles := make([]Tile, 0, len(visible))
	for _, g := range visible {
		rep, ok := g.Representative()
		if !ok {
			continue
		}
		line := lines[g.Title]
		t := Tile{
			Product:      rep,
			Brand:        DisplayBrand(rep),
			VariantCount: len(line.Variants),
			SizeLabel:    SizeLabel(line),
			PriceLabel:   PriceLabel(line),
			DetailURL:    detailURL(rep.ProductID),
		}
		if t.VariantCount == 1 {
			if d := catalog.DiscountPercent(rep); d > 0 {
				t.Discount = d
			}
		}
		tiles = append(tiles, t)
	}
	return tiles
}

// VariantOption is one entry of the pack-size selector.
type VariantOption struct {
	ProductID string  `json:"product_id"`
	Label     string  `json:"label"`
	Weight    string  `json:"weight"`
	SalePrice float64 `json:"sale_price"`
	Selected  bool    `json:"selected"`
}

// Contact carries what an enquiry message needs about the selected pack.
type Contact struct {
	Title     string  `json:"title"`
	Weight    string  `json:"weight"`
	ProductID string  `json:"product_id"`
	SalePrice float64 `json:"sale_price"`
}

// DetailPage is the product page view model. Only State and Back are set when
// the product does not exist.
type DetailPage struct {
	State          string          `json:"state"`
	Back           string          `json:"back"`
	Product        *models.Product `json:"product,omitempty"`
	Brand          string          `json:"brand,omitempty"`
	Weight         string          `json:"weight,omitempty"`
	PriceLabel     string          `json:"price_label,omitempty"`
	ListPriceLabel string          `json:"list_price_label,omitempty"`
	Discount       int             `json:"discount_percent,omitempty"`
	Variants       []VariantOption `json:"variants,omitempty"`
	Contact        *Contact        `json:"contact,omitempty"`
}

func (p DetailPage) Found() bool {
	return p.State == catalog.StateLoaded.String()
}

// BuildDetailPage resolves id against the catalog and selects variantID.
func BuildDetailPage(all []models.Product, id, variantID string) DetailPage {
	return NewDetailPage(catalog.Resolve(all, id, variantID))
}

// NewDetailPage renders an already resolved detail.
func NewDetailPage(d catalog.Detail) DetailPage {
	page := DetailPage{State: d.State.String(), Back: listingPath}
	if !d.Found() {
		return page
	}

	sel := d.Selected
	page.Product = &sel
	page.Brand = DisplayBrand(sel)
	page.Weight = catalog.FormatWeight(sel.Weight)
	page.PriceLabel = FormatPrice(sel.SalePrice)
	if sel.Price > sel.SalePrice {
		page.ListPriceLabel = FormatPrice(sel.Price)
	}
	if d.Discount > 0 {
		page.Discount = d.Discount
	}

	if len(d.Variants) > 1 {
		page.Variants = make([]VariantOption, 0, len(d.Variants))
		for _, v := range d.Variants {
			w := catalog.FormatWeight(v.Weight)
			page.Variants = append(page.Variants, VariantOption{
				ProductID: v.ProductID,
				Label:     w + " — " + FormatPrice(v.SalePrice),
				Weight:    w,
				SalePrice: v.SalePrice,
				Selected:  v.ProductID == sel.ProductID,
			})
		}
	}

	page.Contact = &Contact{
		Title:     sel.Title,
		Weight:    page.Weight,
		ProductID: sel.ProductID,
		SalePrice: sel.SalePrice,
	}
	return page
}

// GroupView is a product line with its computed ranges.
type GroupView struct {
	Title          string           `json:"title"`
	Variants       []models.Product `json:"variants"`
	Representative string           `json:"representative"`
	MinWeight      float64          `json:"min_weight"`
	MaxWeight      float64          `json:"max_weight"`
	MinPrice       float64          `json:"min_price"`
	MaxPrice       float64          `json:"max_price"`
	SizeLabel      string           `json:"size_label"`
	PriceLabel     string           `json:"price_label"`
}

// LookupGroup returns the product line for an exact title.
func LookupGroup(all []models.Product, title string) (GroupView, bool) {
	g, ok := catalog.GroupByTitle(all)[title]
	if !ok {
		return GroupView{}, false
	}
	rep, _ := g.Representative()
	v := GroupView{
		Title:          g.Title,
		Variants:       g.Variants,
		Representative: rep.ProductID,
		SizeLabel:      SizeLabel(g),
		PriceLabel:     PriceLabel(g),
	}
	v.MinWeight, v.MaxWeight = g.SizeRange()
	v.MinPrice, v.MaxPrice = g.PriceRange()
	return v, true
}
