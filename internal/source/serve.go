package source

import (
	"bytes"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

// CSVHandler serves the catalog file at path as the static resource an
// HTTPSource reads. A file that does not decode is refused with 500 rather
// than handed to clients.
func CSVHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := os.ReadFile(path)
		if err != nil {
			c.String(http.StatusInternalServerError, "cannot read catalog: %v", err)
			return
		}
		if _, err := catalog.DecodeCSV(bytes.NewReader(b)); err != nil {
			c.String(http.StatusInternalServerError, "catalog is not valid CSV: %v", err)
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", b)
	}
}
