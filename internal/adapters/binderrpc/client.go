package binderrpc

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	_ ports.ServiceManager = (*ServiceManager)(nil)
	_ ports.Binder         = (*RemoteBinder)(nil)
)

// ServiceManager looks up services published by a remote Router.
type ServiceManager struct {
	conn grpc.ClientConnInterface
}

// NewServiceManager creates a ServiceManager over conn.
func NewServiceManager(conn grpc.ClientConnInterface) *ServiceManager {
	return &ServiceManager{conn: conn}
}

// GetService returns a handle to the service published under name.
func (m *ServiceManager) GetService(ctx context.Context, name string) (ports.Binder, error) {
	out := new(wrapperspb.BoolValue)
	if err := m.conn.Invoke(ctx, pingMethod, wrapperspb.String(name), out); err != nil {
		return nil, zerr.With(mapStatus(err), "service", name)
	}
	if !out.GetValue() {
		return nil, zerr.With(domain.ErrServiceNotFound, "service", name)
	}
	return &RemoteBinder{conn: m.conn, service: name}, nil
}

// RemoteBinder is a handle to one remote service.
type RemoteBinder struct {
	conn    grpc.ClientConnInterface
	service string
}

// Transact sends data to the remote service and fills reply with its answer.
// One-way transactions return as soon as the remote has accepted them, with an empty reply.
func (b *RemoteBinder) Transact(ctx context.Context, code uint32, data, reply *parcel.Parcel, flags uint32) error {
	txid := uuid.NewString()
	ctx = metadata.AppendToOutgoingContext(ctx, TransactionIDKey, txid)

	in := wrapperspb.Bytes(envelope{
		Service: b.service,
		Code:    code,
		Flags:   flags,
		Data:    data.Bytes(),
	}.encode())
	out := new(wrapperspb.BytesValue)

	if err := b.conn.Invoke(ctx, transactMethod, in, out); err != nil {
		return zerr.With(zerr.With(zerr.With(mapStatus(err), "service", b.service), "code", code), "txid", txid)
	}

	reply.SetBytes(out.GetValue())
	return nil
}

// IsAlive reports whether the remote still publishes the service.
func (b *RemoteBinder) IsAlive(ctx context.Context) bool {
	out := new(wrapperspb.BoolValue)
	if err := b.conn.Invoke(ctx, pingMethod, wrapperspb.String(b.service), out); err != nil {
		return false
	}
	return out.GetValue()
}

// mapStatus converts a gRPC status into the matching domain error.
func mapStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.Canceled, codes.DeadlineExceeded:
		return zerr.Wrap(err, domain.ErrBinderDead.Error())
	case codes.NotFound:
		return zerr.Wrap(err, domain.ErrServiceNotFound.Error())
	case codes.Unimplemented:
		return zerr.Wrap(err, domain.ErrUnknownTransaction.Error())
	default:
		return zerr.Wrap(err, domain.ErrServiceCallFailure.Error())
	}
}
