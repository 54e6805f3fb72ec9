package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/products"
	"storefront/pkg/database"
	"storefront/pkg/models"
	"storefront/pkg/utils"
)

func main() {
	out := flag.String("out", "data/products.csv", "output CSV path")
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	utils.SetupLogging(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.Config{Path: cfg.Database.Path})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := products.NewRepo(db)
	rows, err := repo.RawRows(ctx)
	if err != nil {
		log.Fatalf("read catalog failed: %v", err)
	}
	if last, err := repo.LastImport(ctx); err == nil && last != nil {
		log.Infof("last import %s from %s at %s", last.ID, last.Source, last.ImportedAt.Format(time.RFC3339))
	}

	if err := writeFile(*out, rows); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Infof("✅ exported %d rows to %s", len(rows), *out)
}

// writeFile replaces path atomically so a watching api-server never reads a
// half-written catalog.
func writeFile(path string, rows []models.RawRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".products-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := catalog.EncodeCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
