package models

// RawRow is one CSV record keyed by header name. Values are untouched strings;
// the catalog package turns them into Products.
type RawRow map[string]string

// Product is the normalized catalog entry served by the storefront.
//
// Numeric fields are always finite and non-negative once normalized. Brand may
// be empty; the display default lives in the presentation layer.
type Product struct {
	ProductID   string  `json:"product_id"`   // SKU, never numeric-coerced
	Title       string  `json:"title"`        // display name, variant grouping key
	Brand       string  `json:"brand"`        // may be empty
	ProductType string  `json:"product_type"` // free-form category label
	Price       float64 `json:"price"`        // list price
	SalePrice   float64 `json:"sale_price"`   // current selling price
	Weight      float64 `json:"weight"`       // pack size in kg
	Inventory   int     `json:"inventory"`    // stock count
	Image       string  `json:"image"`        // opaque URL
}

// Catalog columns, in the order the import/export tools write them.
const (
	ColProductID   = "product_id"
	ColTitle       = "title"
	ColBrand       = "brand"
	ColProductType = "product_type"
	ColPrice       = "price"
	ColSalePrice   = "sale_price"
	ColWeight      = "weight"
	ColInventory   = "inventory"
	ColImage       = "image"
)

var Columns = []string{
	ColProductID, ColTitle, ColBrand, ColProductType,
	ColPrice, ColSalePrice, ColWeight, ColInventory, ColImage,
}
