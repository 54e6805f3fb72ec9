package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"storefront/internal/catalog"
	"storefront/pkg/models"
)

// HTTPSource fetches the catalog CSV from a static URL, e.g. /products.csv on
// the site that hosts the storefront.
type HTTPSource struct {
	URL    string
	Client *resty.Client
}

// NewHTTPSource creates a source with its own client. Requests are not retried.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.5")
	return &HTTPSource{URL: url, Client: client}
}

func (s *HTTPSource) Name() string {
	return "http:" + s.URL
}

func (s *HTTPSource) FetchRows(ctx context.Context) ([]models.RawRow, error) {
	resp, err := s.Client.R().
		SetContext(ctx).
		Get(s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog: HTTP %d %s", resp.StatusCode(), resp.Status())
	}

	rows, err := catalog.DecodeCSV(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("decode catalog from %s: %w", s.URL, err)
	}
	return rows, nil
}

// Close releases the underlying client's idle connections.
func (s *HTTPSource) Close() error {
	return s.Client.Close()
}
