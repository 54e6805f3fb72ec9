package source

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/products"
	"storefront/pkg/models"
	"storefront/pkg/utils"
)

// Source is implemented by each place the catalog CSV can come from (a local
// file, a static URL, the SQLite import). Each source is responsible for
// retrieval and header decoding; normalization happens in the Loader.
type Source interface {
	Name() string
	FetchRows(ctx context.Context) ([]models.RawRow, error)
}

// Loader turns a Source into a product list. Retrieval problems never reach the
// caller: they are logged and the catalog degrades to empty.
type Loader struct {
	Source Source
}

func NewLoader(src Source) *Loader {
	return &Loader{Source: src}
}

// Load fetches and normalizes the catalog once. The result is never nil.
// There is no retry; a failed load needs a fresh call.
func (l *Loader) Load(ctx context.Context) []models.Product {
	products, err := l.TryLoad(ctx)
	if err != nil {
		log.Warnf("⚠️ catalog load from %s failed, serving empty catalog: %v", l.name(), err)
		return []models.Product{}
	}
	log.Debugf("[loader] %d products from %s", len(products), l.name())
	return products
}

func (l *Loader) name() string {
	if l.Source == nil {
		return "<none>"
	}
	return l.Source.Name()
}

// TryLoad is Load without the fallback, for tools that want to report errors.
func (l *Loader) TryLoad(ctx context.Context) ([]models.Product, error) {
	if l.Source == nil {
		return nil, fmt.Errorf("no catalog source configured")
	}
	rows, err := l.Source.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Normalize(rows), nil
}

// FromConfig builds the source selected by the catalog config section. repo is
// only needed for the "db" source.
func FromConfig(cfg utils.CatalogConfig, repo *products.Repo) (Source, error) {
	switch cfg.Source {
	case utils.SourceFile:
		return NewFileSource(cfg.Path), nil
	case utils.SourceHTTP:
		return NewHTTPSource(cfg.URL, cfg.Timeout()), nil
	case utils.SourceDB:
		if repo == nil {
			return nil, fmt.Errorf("catalog source %q needs a database", cfg.Source)
		}
		return NewDBSource(repo), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
