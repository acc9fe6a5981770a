// Package daemon implements the background package service daemon.
// It hosts the package service over gRPC on a Unix domain socket, together with a
// small admin service used to ping, inspect and stop it.
package daemon

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// AdminServiceName is the fully qualified gRPC name of the admin service.
const AdminServiceName = "dexopt.daemon.v1.Daemon"

const (
	pingMethod     = "/" + AdminServiceName + "/Ping"
	statusMethod   = "/" + AdminServiceName + "/Status"
	shutdownMethod = "/" + AdminServiceName + "/Shutdown"
)

// Status fields.
const (
	fieldPID           = "pid"
	fieldUptime        = "uptime_seconds"
	fieldLastActivity  = "last_activity_unix"
	fieldIdleRemaining = "idle_remaining_seconds"
	fieldTransactions  = "transactions"
	fieldModules       = "modules"
)

// AdminServer is the server API for the admin service.
type AdminServer interface {
	Ping(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
	Status(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Shutdown(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

// RegisterAdminServer registers srv with s.
func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&adminServiceDesc, srv)
}

var adminServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler: unary(pingMethod, func(s AdminServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Ping(ctx, in)
			}),
		},
		{
			MethodName: "Status",
			Handler: unary(statusMethod, func(s AdminServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Status(ctx, in)
			}),
		},
		{
			MethodName: "Shutdown",
			Handler: unary(shutdownMethod, func(s AdminServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Shutdown(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dexopt/daemon/v1/daemon.proto",
}

func unary[Req any](
	method string,
	call func(AdminServer, context.Context, *Req) (any, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		server, _ := srv.(AdminServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req)) //nolint:forcetypeassert // decoded above
		}
		return interceptor(ctx, in, info, handler)
	}
}
