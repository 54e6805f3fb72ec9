package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"storefront/pkg/models"
)

// ErrMissingColumn is returned by DecodeCSV when the header lacks an identifying column.
var ErrMissingColumn = errors.New("missing required column")

// RequiredColumns must be present in a catalog header. Every other column is
// optional and defaults during normalization.
var RequiredColumns = []string{models.ColProductID, models.ColTitle}

var (
	reFloatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	reIntPrefix   = regexp.MustCompile(`^[+-]?(?:0[xX][0-9a-fA-F]+|\d+)`)
)

// Normalize converts raw rows into products. It never fails: malformed numeric
// fields become 0 and no row is dropped.
func Normalize(rows []models.RawRow) []models.Product {
	out := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, NormalizeRow(row))
	}
	return out
}

// NormalizeRow converts a single raw row. String fields are copied verbatim.
func NormalizeRow(row models.RawRow) models.Product {
	return models.Product{
		ProductID:   row[models.ColProductID],
		Title:       row[models.ColTitle],
		Brand:       row[models.ColBrand],
		ProductType: row[models.ColProductType],
		Price:       parseAmount(row[models.ColPrice]),
		SalePrice:   parseAmount(row[models.ColSalePrice]),
		Weight:      parseAmount(row[models.ColWeight]),
		Inventory:   parseCount(row[models.ColInventory]),
		Image:       row[models.ColImage],
	}
}

// parseAmount reads the longest numeric prefix after leading whitespace
// ("12.5kg" -> 12.5). Anything unparsable, negative, negative zero or
// non-finite is 0.
func parseAmount(raw string) float64 {
	m := reFloatPrefix.FindString(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

// parseCount is parseAmount for integers; a fractional part is ignored ("3.9" -> 3).
// A 0x prefix reads hexadecimal and counts too large for an int clamp to MaxInt.
func parseCount(raw string) int {
	m := reIntPrefix.FindString(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if m == "" || m[0] == '-' {
		return 0
	}
	m = strings.TrimPrefix(m, "+")

	base := 10
	if len(m) > 2 && (m[:2] == "0x" || m[:2] == "0X") {
		m, base = m[2:], 16
	}
	n, err := strconv.ParseUint(m, base, 64)
	if errors.Is(err, strconv.ErrRange) || n > math.MaxInt {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return int(n)
}

// DecodeCSV reads a catalog document with a header row into raw rows.
//
// Header names are trimmed and lower-cased. Blank lines are skipped, short rows
// are padded with empty values, and a header without product_id or title is
// rejected with ErrMissingColumn.
func DecodeCSV(r io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	for _, col := range RequiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	rows := make([]models.RawRow, 0, 64)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		row := make(models.RawRow, len(header))
		for name, idx := range header {
			if idx < len(record) {
				row[name] = record[idx]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCatalog decodes and normalizes a catalog document in one step.
func ParseCatalog(r io.Reader) ([]models.Product, error) {
	rows, err := DecodeCSV(r)
	if err != nil {
		return nil, err
	}
	return Normalize(rows), nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	record, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv header: empty document")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header := make(map[string]int, len(record))
	for idx, name := range record {
		if idx == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		// first occurrence wins for duplicated headers
		if _, dup := header[name]; !dup {
			header[name] = idx
		}
	}
	return header, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
