package main

import (
	"context"
	"flag"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/products"
	"storefront/internal/source"
	"storefront/pkg/database"
	"storefront/pkg/utils"
)

func main() {
	in := flag.String("in", "data/products.csv", "catalog CSV path or http(s) URL")
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	utils.SetupLogging(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var src source.Source
	if strings.HasPrefix(*in, "http://") || strings.HasPrefix(*in, "https://") {
		hs := source.NewHTTPSource(*in, cfg.Catalog.Timeout())
		defer hs.Close()
		src = hs
	} else {
		src = source.NewFileSource(*in)
	}

	rows, err := src.FetchRows(ctx)
	if err != nil {
		log.Fatalf("read catalog failed: %v", err)
	}

	db := database.MustOpen(database.Config{Path: cfg.Database.Path})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	imp, err := products.NewRepo(db).ReplaceAll(ctx, rows, src.Name())
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Infof("✅ imported %d rows from %s (import %s)", imp.RowCount, src.Name(), imp.ID)
}
