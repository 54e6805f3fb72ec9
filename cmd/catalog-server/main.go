package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront/internal/source"
	"storefront/pkg/utils"
)

// catalog-server publishes a catalog CSV at GET /products.csv for
// deployments that use the http catalog source.
func main() {
	addr := flag.String("addr", ":9000", "listen address")
	path := flag.String("file", "", "catalog CSV to serve (default: catalog.path)")
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	utils.SetupLogging(cfg.Log)

	file := *path
	if file == "" {
		file = cfg.Catalog.Path
	}

	router := gin.Default()
	router.GET("/products.csv", source.CSVHandler(file))

	log.Infof("catalog-server serving %s on http://localhost%s/products.csv", file, *addr)
	log.Fatal(router.Run(*addr))
}
