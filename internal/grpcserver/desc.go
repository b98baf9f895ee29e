package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "matchahire.v1.Catalog"

// CatalogServer is the server API of matchahire.v1.Catalog. Requests and
// responses are google.protobuf.Struct so callers need no generated stubs.
type CatalogServer interface {
	ListRoles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MoveApplication(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type call func(CatalogServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc describes matchahire.v1.Catalog for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListRoles", Handler: unary("ListRoles", CatalogServer.ListRoles)},
		{MethodName: "GetRole", Handler: unary("GetRole", CatalogServer.GetRole)},
		{MethodName: "MoveApplication", Handler: unary("MoveApplication", CatalogServer.MoveApplication)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matchahire/v1/catalog.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary(method string, fn call) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	full := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(CatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(CatalogServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client is a thin caller for matchahire.v1.Catalog.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client calling through cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ListRoles calls matchahire.v1.Catalog/ListRoles.
func (c *Client) ListRoles(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListRoles", req, opts...)
}

// GetRole calls matchahire.v1.Catalog/GetRole.
func (c *Client) GetRole(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetRole", req, opts...)
}

// MoveApplication calls matchahire.v1.Catalog/MoveApplication.
func (c *Client) MoveApplication(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "MoveApplication", req, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
