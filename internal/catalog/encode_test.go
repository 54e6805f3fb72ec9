package catalog

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/models"
)

func TestEncodeCSV(t *testing.T) {
	rows := []models.RawRow{
		{"product_id": "00123", "title": "Falcofix WR", "brand": "Falcofix", "price": "100", "weight": "0.5"},
		{"product_id": "B, 2", "title": `Say "hi"`, "inventory": "n/a"},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, rows))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("product_id,title,brand,product_type,price,sale_price,weight,inventory,image\n")))

	back, err := DecodeCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)

	// missing cells come back as empty strings
	want := models.RawRow{
		"product_id": "B, 2", "title": `Say "hi"`, "brand": "", "product_type": "",
		"price": "", "sale_price": "", "weight": "", "inventory": "n/a", "image": "",
	}
	if diff := cmp.Diff(want, back[1]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Normalize(rows), Normalize(back))
}
