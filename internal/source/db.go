package source

import (
	"context"
	"fmt"

	"storefront/internal/products"
	"storefront/pkg/models"
)

// DBSource serves the catalog most recently imported into SQLite.
type DBSource struct {
	Repo *products.Repo
}

func NewDBSource(repo *products.Repo) *DBSource {
	return &DBSource{Repo: repo}
}

func (s *DBSource) Name() string {
	return "sqlite"
}

func (s *DBSource) FetchRows(ctx context.Context) ([]models.RawRow, error) {
	rows, err := s.Repo.RawRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read imported catalog: %w", err)
	}
	return rows, nil
}
