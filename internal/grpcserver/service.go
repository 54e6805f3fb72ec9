package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"storefront/internal/storefront"
)

const (
	ServiceName          = "storefront.v1.Catalog"
	ListProductsMethod   = "/" + ServiceName + "/ListProducts"
	ResolveProductMethod = "/" + ServiceName + "/ResolveProduct"
)

type ListProductsRequest struct {
	Brand string `json:"brand,omitempty"`
	Type  string `json:"type,omitempty"`
}

type ListProductsResponse struct {
	Version uint64            `json:"version"`
	Total   int               `json:"total"`
	Items   []storefront.Tile `json:"items"`
}

type ResolveProductRequest struct {
	ID      string `json:"id"`
	Variant string `json:"variant,omitempty"`
}

type ResolveProductResponse struct {
	Version uint64                `json:"version"`
	Page    storefront.DetailPage `json:"page"`
}

// CatalogServer is the server API for storefront.v1.Catalog.
type CatalogServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	ResolveProduct(context.Context, *ResolveProductRequest) (*ResolveProductResponse, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "ResolveProduct", Handler: resolveProductHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListProductsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListProductsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListProducts(ctx, req.(*ListProductsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func resolveProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResolveProductRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ResolveProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ResolveProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ResolveProduct(ctx, req.(*ResolveProductRequest))
	}
	return interceptor(ctx, in, info, handler)
}
