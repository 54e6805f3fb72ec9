package catalog

import (
	"encoding/csv"
	"fmt"
	"io"

	"storefront/pkg/models"
)

// EncodeCSV writes rows under the standard column header. Cells are written
// exactly as stored, so DecodeCSV reads back the same rows.
func EncodeCSV(w io.Writer, rows []models.RawRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(models.Columns))
	for i, row := range rows {
		for j, col := range models.Columns {
			record[j] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
