package source

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/catalog"
	"storefront/pkg/models"
)

// FileSource reads the catalog from a CSV file on disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) FetchRows(ctx context.Context) ([]models.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := catalog.DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.Path, err)
	}
	return rows, nil
}
