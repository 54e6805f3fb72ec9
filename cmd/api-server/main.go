package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront/internal/auth"
	"storefront/internal/feed"
	"storefront/internal/source"
	"storefront/internal/storefront"
	"storefront/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	utils.SetupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := source.Open(cfg)
	if err != nil {
		log.Fatalf("catalog source: %v", err)
	}
	defer closeSource()

	cat := storefront.NewCatalog(source.NewLoader(src))
	hub := feed.NewHub()
	defer hub.Attach(cat)()

	// first load before serving; a failure here still leaves an empty catalog
	cat.Reload(ctx)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	opts := storefront.DefaultOptions()
	catalogHandler := storefront.NewHandler(cat, opts)
	catalogHandler.RegisterRoutes(router.Group(""))

	router.GET("/ws", feed.WSHandler(hub))
	router.GET("/feed/stats", feed.StatsHandler(hub))

	tokens := auth.NewTokenService(cfg.Auth)
	admin := auth.CredentialsFromConfig(cfg.Auth)
	if !admin.Enabled() {
		log.Warn("⚠️ auth.admin_password_hash not set, admin login and /admin routes disabled")
	}
	auth.NewHandler(admin, tokens).RegisterRoutes(router.Group("/auth"))

	if admin.Enabled() {
		protected := router.Group("/admin")
		protected.Use(auth.AdminOnly(admin, tokens))
		catalogHandler.RegisterAdminRoutes(protected)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return feed.NewServer(cfg.Server.TCPAddr, hub).Run(gctx)
	})

	if cfg.Server.UDPAddr != "" {
		udp := feed.NewUDPServer(cfg.Server.UDPAddr)
		defer udp.Attach(cat)()
		g.Go(func() error { return udp.Run(gctx) })
	}

	g.Go(func() error {
		log.Infof("🚀 HTTP API listening on %s (catalog: %s)", cfg.Server.HTTPAddr, src.Name())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if cfg.Catalog.Watch {
		if cfg.Catalog.Source != utils.SourceFile {
			log.Warnf("catalog.watch only applies to the file source, ignoring for %q", cfg.Catalog.Source)
		} else {
			w := source.NewWatcher(cfg.Catalog.Path, func(ctx context.Context) { cat.Reload(ctx) })
			g.Go(func() error { return w.Run(gctx) })
		}
	}

	if err := g.Wait(); err != nil {
		log.Errorf("server error: %v", err)
		closeSource()
		os.Exit(1)
	}
	log.Info("servers stopped")
}
