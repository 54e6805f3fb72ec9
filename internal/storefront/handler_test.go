package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/models"
)

func newTestRouter(t *testing.T, products []models.Product, load bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := NewCatalog(&stubLoader{sets: [][]models.Product{products}})
	if load {
		c.Reload(context.Background())
	}
	r := gin.New()
	NewHandler(c, DefaultOptions()).RegisterRoutes(r.Group(""))
	return r
}

func get(t *testing.T, r http.Handler, target string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestHandler_Ready(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, get(t, newTestRouter(t, nil, false), "/ready", nil))

	var body map[string]any
	assert.Equal(t, http.StatusOK, get(t, newTestRouter(t, nil, true), "/ready", &body))
	assert.Equal(t, "ready", body["status"])
	assert.EqualValues(t, 0, body["products"])
}

func TestHandler_Health(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(t, newTestRouter(t, nil, false), "/health", nil))
}

func TestHandler_Filters(t *testing.T) {
	var opts Options
	require.Equal(t, http.StatusOK, get(t, newTestRouter(t, nil, true), "/filters", &opts))
	assert.Len(t, opts.Brands, 3)
	assert.Len(t, opts.Types["Falcofix"], 6)
	assert.Empty(t, opts.Types["Falcofix"][1].Title)
}

func TestHandler_List(t *testing.T) {
	r := newTestRouter(t, fixture(), true)

	var body struct {
		Version uint64 `json:"version"`
		Brand   string `json:"brand"`
		Type    string `json:"type"`
		Total   int    `json:"total"`
		Items   []Tile `json:"items"`
	}
	require.Equal(t, http.StatusOK, get(t, r, "/products", &body))
	assert.Equal(t, uint64(1), body.Version)
	assert.Equal(t, "all", body.Brand)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, "₹80 - ₹700", body.Items[0].PriceLabel)

	require.Equal(t, http.StatusOK, get(t, r, "/products?brand=Bluecoat&type=d3", &body))
	assert.Equal(t, "d3", body.Type)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "BC-D3-1", body.Items[0].Product.ProductID)
}

func TestHandler_Detail(t *testing.T) {
	r := newTestRouter(t, fixture(), true)

	for _, target := range []string{
		"/products/FWR-1KG?variant=FWR-500",
		"/product-details?id=FWR-1KG&variant=FWR-500",
	} {
		var page DetailPage
		require.Equal(t, http.StatusOK, get(t, r, target, &page), target)
		assert.Equal(t, "loaded", page.State)
		assert.Equal(t, "FWR-500", page.Product.ProductID)
		assert.Len(t, page.Variants, 3)
	}
}

func TestHandler_DetailNotFound(t *testing.T) {
	r := newTestRouter(t, fixture(), true)

	for _, target := range []string{"/products/nope", "/product-details", "/product-details?id=nope"} {
		var page DetailPage
		require.Equal(t, http.StatusNotFound, get(t, r, target, &page), target)
		assert.Equal(t, DetailPage{State: "not_found", Back: "/products"}, page)
	}
}

func TestHandler_Group(t *testing.T) {
	r := newTestRouter(t, fixture(), true)

	var g GroupView
	require.Equal(t, http.StatusOK, get(t, r, "/groups/"+url.PathEscape("Falcofix WR"), &g))
	assert.Equal(t, "500g - 5 KG", g.SizeLabel)
	assert.Len(t, g.Variants, 3)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/groups/Unknown", nil))
}

func TestHandler_AdminReload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCatalog(&stubLoader{sets: [][]models.Product{fixture()}})
	r := gin.New()
	NewHandler(c, DefaultOptions()).RegisterAdminRoutes(r.Group("/admin"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Version  uint64 `json:"version"`
		Products int    `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body.Version)
	assert.Equal(t, 5, body.Products)
	assert.Equal(t, uint64(1), c.Snapshot().Version)
}
