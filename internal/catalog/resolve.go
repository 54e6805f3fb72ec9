package catalog

import (
	"errors"
	"sync"

	"storefront/pkg/models"
)

var (
	ErrAlreadyLoaded = errors.New("detail view already loaded")
	ErrNotLoaded     = errors.New("detail view not loaded")
)

// State of a product detail view.
type State int

const (
	StateLoading State = iota
	StateNotFound
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNotFound:
		return "not_found"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Detail is the outcome of resolving a product id against a catalog.
type Detail struct {
	State    State            `json:"state"`
	Product  models.Product   `json:"product"`
	Variants []models.Product `json:"variants"`
	Selected models.Product   `json:"selected"`
	Discount int              `json:"discount_percent"`
}

// Found reports whether the requested product exists.
func (d Detail) Found() bool { return d.State == StateLoaded }

// Resolve finds targetID in the catalog together with its same-title variants
// and the variant named by selectedID. An empty or unknown selectedID selects
// the requested product itself. Duplicate ids resolve to the first match.
//
// Resolve keeps no state between calls.
func Resolve(products []models.Product, targetID, selectedID string) Detail {
	idx := findByID(products, targetID)
	if idx < 0 {
		return Detail{State: StateNotFound, Variants: []models.Product{}}
	}
	product := products[idx]

	variants := make([]models.Product, 0, 4)
	for _, p := range products {
		if p.Title == product.Title {
			variants = append(variants, p)
		}
	}
	sortByWeight(variants)

	selected := product
	if selectedID != "" {
		if i := findByID(variants, selectedID); i >= 0 {
			selected = variants[i]
		}
	}

	return Detail{
		State:    StateLoaded,
		Product:  product,
		Variants: variants,
		Selected: selected,
		Discount: DiscountPercent(selected),
	}
}

func findByID(products []models.Product, id string) int {
	for i, p := range products {
		if p.ProductID == id {
			return i
		}
	}
	return -1
}

// DetailView tracks one page view of a product: it starts Loading, leaves that
// state exactly once when the catalog arrives, and then follows selections.
type DetailView struct {
	mu       sync.Mutex
	targetID string
	products []models.Product
	detail   Detail
}

// NewDetailView starts a view for targetID in the Loading state.
func NewDetailView(targetID string) *DetailView {
	return &DetailView{targetID: targetID, detail: Detail{State: StateLoading}}
}

// Load resolves the view against the catalog. It may only be called once per view.
func (v *DetailView) Load(products []models.Product) (Detail, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.detail.State != StateLoading {
		return v.detail, ErrAlreadyLoaded
	}
	v.products = products
	v.detail = Resolve(products, v.targetID, "")
	return v.detail, nil
}

// LoadFailed exits Loading after a failed retrieval. The view resolves against
// an empty catalog and ends up NotFound.
func (v *DetailView) LoadFailed() (Detail, error) {
	return v.Load([]models.Product{})
}

// Select re-resolves the loaded view with a new selected variant.
func (v *DetailView) Select(selectedID string) (Detail, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.detail.State != StateLoaded {
		return v.detail, ErrNotLoaded
	}
	v.detail = Resolve(v.products, v.targetID, selectedID)
	return v.detail, nil
}

// Current returns the latest resolved detail.
func (v *DetailView) Current() Detail {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detail
}
