package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/products"
	"storefront/pkg/database"
	"storefront/pkg/models"
	"storefront/pkg/utils"
)

const sampleCSV = "product_id,title,brand,price,sale_price,weight,inventory\n" +
	"A1,Foo,Falcofix,100,80,0.5,3\n" +
	"A2,Foo,Falcofix,200,150,1,x\n"

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) FetchRows(context.Context) ([]models.RawRow, error) {
	return nil, errors.New("boom")
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoader_FileSource(t *testing.T) {
	l := NewLoader(NewFileSource(writeCatalog(t, sampleCSV)))
	got := l.Load(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].ProductID)
	assert.Equal(t, 0.5, got[0].Weight)
	assert.Equal(t, 0, got[1].Inventory)
}

func TestLoader_FailureDegradesToEmpty(t *testing.T) {
	tests := map[string]Source{
		"missing file":   NewFileSource(filepath.Join(t.TempDir(), "nope.csv")),
		"bad header":     NewFileSource(writeCatalog(t, "sku,name\n1,x\n")),
		"source error":   failingSource{},
		"empty document": NewFileSource(writeCatalog(t, "")),
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			got := NewLoader(src).Load(context.Background())
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLoader_TryLoadReportsError(t *testing.T) {
	_, err := NewLoader(failingSource{}).TryLoad(context.Background())
	assert.EqualError(t, err, "boom")

	_, err = NewLoader(nil).TryLoad(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/products.csv", 5*time.Second)
	defer src.Close()

	got := NewLoader(src).Load(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, 150.0, got[1].SalePrice)

	missing := NewHTTPSource(srv.URL+"/other.csv", 5*time.Second)
	defer missing.Close()
	_, err := NewLoader(missing).TryLoad(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDBSource(t *testing.T) {
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	repo := products.NewRepo(db)
	_, err = repo.ReplaceAll(context.Background(), []models.RawRow{
		{"product_id": "00123", "title": "Foo", "price": "10", "weight": "abc"},
	}, "test")
	require.NoError(t, err)

	got := NewLoader(NewDBSource(repo)).Load(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "00123", got[0].ProductID)
	assert.Equal(t, 10.0, got[0].Price)
	assert.Zero(t, got[0].Weight)
}

func TestFromConfig(t *testing.T) {
	src, err := FromConfig(utils.CatalogConfig{Source: utils.SourceFile, Path: "x.csv"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:x.csv", src.Name())

	_, err = FromConfig(utils.CatalogConfig{Source: utils.SourceDB}, nil)
	assert.Error(t, err)

	_, err = FromConfig(utils.CatalogConfig{Source: "ftp"}, nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	cfg := &utils.Config{
		Catalog:  utils.CatalogConfig{Source: utils.SourceDB},
		Database: utils.DatabaseConfig{Path: filepath.Join(t.TempDir(), "catalog.db")},
	}
	src, closeFn, err := Open(cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "sqlite", src.Name())

	// an empty import is an empty catalog, not an error
	got, err := NewLoader(src).TryLoad(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, _, err = Open(&utils.Config{Catalog: utils.CatalogConfig{Source: "ftp"}})
	assert.Error(t, err)
}

func TestCSVHandler_FeedsHTTPSource(t *testing.T) {
	gin.SetMode(gin.TestMode)
	good := writeCatalog(t, sampleCSV)
	bad := writeCatalog(t, "sku\n1\n")

	r := gin.New()
	r.GET("/products.csv", CSVHandler(good))
	r.GET("/broken.csv", CSVHandler(bad))
	r.GET("/missing.csv", CSVHandler(filepath.Join(t.TempDir(), "nope.csv")))
	srv := httptest.NewServer(r)
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/products.csv", 5*time.Second)
	defer src.Close()
	got, err := NewLoader(src).TryLoad(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	for _, p := range []string{"/broken.csv", "/missing.csv"} {
		resp, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, p)
	}
}
