// Package binderrpc carries binder transactions between processes over gRPC.
package binderrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "dexopt.binder.v1.Binder"

	transactMethod = "/" + ServiceName + "/Transact"
	pingMethod     = "/" + ServiceName + "/Ping"

	// TransactionIDKey is the metadata key carrying the transaction id.
	TransactionIDKey = "x-dexopt-txid"
)

// BinderServer is the server API for the binder service.
type BinderServer interface {
	// Transact delivers one envelope and returns the encoded reply.
	Transact(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	// Ping reports whether a service is published under the requested name.
	Ping(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// RegisterBinderServer registers srv with s.
func RegisterBinderServer(s grpc.ServiceRegistrar, srv BinderServer) {
	s.RegisterService(&binderServiceDesc, srv)
}

var binderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BinderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Transact", Handler: transactHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dexopt/binder/v1/binder.proto",
}

func transactHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	server, _ := srv.(BinderServer)
	if interceptor == nil {
		return server.Transact(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: transactMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return server.Transact(ctx, req.(*wrapperspb.BytesValue)) //nolint:forcetypeassert // decoded above
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	server, _ := srv.(BinderServer)
	if interceptor == nil {
		return server.Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return server.Ping(ctx, req.(*wrapperspb.StringValue)) //nolint:forcetypeassert // decoded above
	}
	return interceptor(ctx, in, info, handler)
}
