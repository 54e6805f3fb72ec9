package source

import (
	"fmt"

	"storefront/internal/products"
	"storefront/pkg/database"
	"storefront/pkg/utils"
)

// Open builds the source selected by cfg, opening and migrating the SQLite
// database when the source needs it. The returned func releases whatever Open
// acquired and is safe to call when err is nil.
func Open(cfg *utils.Config) (Source, func(), error) {
	var repo *products.Repo
	cleanup := func() {}

	if cfg.Catalog.Source == utils.SourceDB {
		db, err := database.Open(database.Config{Path: cfg.Database.Path})
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		repo = products.NewRepo(db)
		cleanup = func() { _ = db.Close() }
	}

	src, err := FromConfig(cfg.Catalog, repo)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if hs, ok := src.(*HTTPSource); ok {
		dbCleanup := cleanup
		cleanup = func() {
			_ = hs.Close()
			dbCleanup()
		}
	}
	return src, cleanup, nil
}
