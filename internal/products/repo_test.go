package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/database"
	"storefront/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepo(db)
}

func TestRepo_ReplaceAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rows := []models.RawRow{
		{"product_id": "00123", "title": "Foo", "price": "100", "sale_price": "80", "weight": "0.5", "brand": ""},
		{"product_id": "A2", "title": "Foo", "price": "oops"},
	}
	imp, err := repo.ReplaceAll(ctx, rows, "testdata/products.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, imp.ID)
	assert.Equal(t, 2, imp.RowCount)

	got, err := repo.RawRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRepo_ReplaceAllIsWholesale(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.ReplaceAll(ctx, []models.RawRow{{"product_id": "OLD", "title": "Old"}}, "first")
	require.NoError(t, err)
	_, err = repo.ReplaceAll(ctx, []models.RawRow{{"product_id": "NEW", "title": "New"}}, "second")
	require.NoError(t, err)

	got, err := repo.RawRows(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NEW", got[0]["product_id"])

	last, err := repo.LastImport(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "second", last.Source)
}

func TestRepo_LastImportEmpty(t *testing.T) {
	last, err := newTestRepo(t).LastImport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRepo_KeepsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var rows []models.RawRow
	for _, id := range []string{"c", "a", "b"} {
		rows = append(rows, models.RawRow{"product_id": id, "title": "T"})
	}
	_, err := repo.ReplaceAll(ctx, rows, "order")
	require.NoError(t, err)

	got, err := repo.RawRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
