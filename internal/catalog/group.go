package catalog

import (
	"math"
	"sort"
	"strconv"

	"storefront/pkg/models"
)

// Group is one product line: every catalog entry sharing an exact title,
// ordered by ascending weight with catalog order kept for equal weights.
type Group struct {
	Title    string           `json:"title"`
	Variants []models.Product `json:"variants"`
}

// GroupByTitle buckets products by exact title. Titles that differ only in case
// or surrounding whitespace form distinct groups.
func GroupByTitle(products []models.Product) map[string]Group {
	groups := OrderedGroups(products)
	out := make(map[string]Group, len(groups))
	for _, g := range groups {
		out[g.Title] = g
	}
	return out
}

// OrderedGroups is GroupByTitle in order of each title's first appearance in
// the catalog, which is the order the listing shows product lines in.
func OrderedGroups(products []models.Product) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, p := range products {
		i, ok := index[p.Title]
		if !ok {
			i = len(groups)
			index[p.Title] = i
			groups = append(groups, Group{Title: p.Title})
		}
		groups[i].Variants = append(groups[i].Variants, p)
	}
	for i := range groups {
		sortByWeight(groups[i].Variants)
	}
	return groups
}

func sortByWeight(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Weight < products[j].Weight
	})
}

// Representative is the lightest variant; ties go to the first catalog entry.
func (g Group) Representative() (models.Product, bool) {
	if len(g.Variants) == 0 {
		return models.Product{}, false
	}
	return g.Variants[0], true
}

// SizeRange returns the lightest and heaviest pack weight in kg.
func (g Group) SizeRange() (min, max float64) {
	return g.span(func(p models.Product) float64 { return p.Weight })
}

// PriceRange returns the lowest and highest sale price.
func (g Group) PriceRange() (min, max float64) {
	return g.span(func(p models.Product) float64 { return p.SalePrice })
}

func (g Group) span(field func(models.Product) float64) (lo, hi float64) {
	for i, p := range g.Variants {
		v := field(p)
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}

// DiscountPercent is the whole-number drop from list price to sale price.
// A zero list price has no discount rather than a division fault.
func DiscountPercent(p models.Product) int {
	if p.Price == 0 {
		return 0
	}
	return roundHalfUp(100 * (p.Price - p.SalePrice) / p.Price)
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// FormatWeight renders a pack size: under a kilogram in grams ("500g"),
// otherwise in kilograms ("1 KG").
func FormatWeight(kg float64) string {
	if kg < 1 {
		grams := math.Round(kg*1e6) / 1e3
		return strconv.FormatFloat(grams, 'f', -1, 64) + "g"
	}
	return strconv.FormatFloat(kg, 'f', -1, 64) + " KG"
}
