package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"storefront/internal/grpcserver"
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
	cat.Reload(ctx)

	listener, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("grpc listen failed: %v", err)
	}

	grpcServer := grpcserver.NewGRPCServer(grpcserver.NewServer(cat, storefront.DefaultOptions()))

	go func() {
		<-ctx.Done()
		log.Info("stopping gRPC server")
		grpcServer.GracefulStop()
	}()

	log.Infof("gRPC server listening on %s (%s)", cfg.Server.GRPCAddr, grpcserver.ServiceName)
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatalf("grpc server stopped: %v", err)
	}
}
