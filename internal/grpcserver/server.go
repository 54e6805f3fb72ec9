package grpcserver

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront/internal/storefront"
)

type Server struct {
	Catalog *storefront.Catalog
	Options storefront.Options
}

func NewServer(c *storefront.Catalog, opts storefront.Options) *Server {
	return &Server{Catalog: c, Options: opts}
}

func (s *Server) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	snap := s.Catalog.Snapshot()
	f := storefront.Filter{Brand: req.Brand, Type: req.Type}
	items := storefront.Tiles(snap.Products, s.Options, f)

	return &ListProductsResponse{
		Version: snap.Version,
		Total:   len(items),
		Items:   items,
	}, nil
}

func (s *Server) ResolveProduct(ctx context.Context, req *ResolveProductRequest) (*ResolveProductResponse, error) {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	snap := s.Catalog.Snapshot()
	page := storefront.BuildDetailPage(snap.Products, req.ID, req.Variant)
	if !page.Found() {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &ResolveProductResponse{Version: snap.Version, Page: page}, nil
}

// LoggingInterceptor logs each unary call with its status code and latency.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.WithFields(log.Fields{
		"method":  info.FullMethod,
		"code":    status.Code(err).String(),
		"elapsed": time.Since(start).String(),
	}).Debug("grpc call")
	return resp, err
}

// NewGRPCServer builds a grpc.Server with the catalog service registered.
func NewGRPCServer(svc CatalogServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(LoggingInterceptor)}, opts...)
	gs := grpc.NewServer(opts...)
	RegisterCatalogServer(gs, svc)
	return gs
}
