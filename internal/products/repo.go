package products

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/models"
)

// Repo stores the imported catalog. Rows are kept as raw text in catalog
// order and are replaced wholesale on every import.
type Repo struct {
	DB *sql.DB
}

type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ReplaceAll swaps the stored catalog for rows in a single transaction.
func (r *Repo) ReplaceAll(ctx context.Context, rows []models.RawRow, source string) (*Import, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return nil, fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (position, product_id, title, brand, product_type, price, sale_price, weight, inventory, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(
			ctx,
			i,
			row[models.ColProductID],
			row[models.ColTitle],
			nullString(row, models.ColBrand),
			nullString(row, models.ColProductType),
			nullString(row, models.ColPrice),
			nullString(row, models.ColSalePrice),
			nullString(row, models.ColWeight),
			nullString(row, models.ColInventory),
			nullString(row, models.ColImage),
		); err != nil {
			return nil, fmt.Errorf("insert row %d (%s): %w", i, row[models.ColProductID], err)
		}
	}

	imp := &Import{
		ID:         uuid.NewString(),
		Source:     source,
		RowCount:   len(rows),
		ImportedAt: time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_imports (id, source, row_count, imported_at)
		VALUES (?, ?, ?, ?)
	`, imp.ID, imp.Source, imp.RowCount, imp.ImportedAt); err != nil {
		return nil, fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return imp, nil
}

// RawRows returns the stored catalog in import order. NULL columns are left
// out of the row so they default the same way a missing CSV column would.
func (r *Repo) RawRows(ctx context.Context) ([]models.RawRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT product_id, title, brand, product_type, price, sale_price, weight, inventory, image
		FROM products
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.RawRow, 0, 64)
	for rows.Next() {
		var (
			id, title string
			optional  [7]sql.NullString
		)
		if err := rows.Scan(
			&id, &title,
			&optional[0], &optional[1], &optional[2], &optional[3], &optional[4], &optional[5], &optional[6],
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}

		row := models.RawRow{models.ColProductID: id, models.ColTitle: title}
		for i, col := range models.Columns[2:] {
			if optional[i].Valid {
				row[col] = optional[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

// LastImport returns the most recent import, or nil when nothing was imported yet.
func (r *Repo) LastImport(ctx context.Context) (*Import, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, source, row_count, imported_at
		FROM catalog_imports
		ORDER BY imported_at DESC, rowid DESC
		LIMIT 1
	`)
	var imp Import
	if err := row.Scan(&imp.ID, &imp.Source, &imp.RowCount, &imp.ImportedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan last import: %w", err)
	}
	return &imp, nil
}

func nullString(row models.RawRow, col string) sql.NullString {
	v, ok := row[col]
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
