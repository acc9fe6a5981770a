package binderrpc

import (
	"context"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ BinderServer = (*Router)(nil)

// Service is a local service published through a Router.
type Service interface {
	// OnTransact handles one transaction. It returns false for codes it does not implement.
	OnTransact(ctx context.Context, code uint32, data, reply *parcel.Parcel) (bool, error)
}

// Observer is notified after every transaction has been handled.
type Observer func(service string, code uint32, oneway bool, err error)

// Router dispatches incoming transactions to the services published under their names.
type Router struct {
	logger ports.Logger

	mu       sync.RWMutex
	services map[string]Service
	observer Observer

	detached sync.WaitGroup
}

// NewRouter creates a Router with no services.
func NewRouter(logger ports.Logger) *Router {
	return &Router{
		logger:   logger,
		services: make(map[string]Service),
	}
}

// AddService publishes svc under name, replacing any previous service.
func (r *Router) AddService(name string, svc Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[name] = svc
}

// SetObserver installs fn as the transaction observer.
func (r *Router) SetObserver(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = fn
}

// Wait blocks until all detached one-way transactions have finished.
func (r *Router) Wait() {
	r.detached.Wait()
}

// Ping implements BinderServer.
func (r *Router) Ping(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_, ok := r.lookup(req.GetValue())
	return wrapperspb.Bool(ok), nil
}

// Transact implements BinderServer.
func (r *Router) Transact(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	env, err := decodeEnvelope(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	svc, ok := r.lookup(env.Service)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "%s: %s", domain.ErrServiceNotFound.Error(), env.Service)
	}

	txid := transactionID(ctx)

	if env.Flags&domain.FlagOneway != 0 {
		// The caller does not wait: run detached from its cancellation and reply empty.
		r.detached.Add(1)
		go func() {
			defer r.detached.Done()

			reply := parcel.Obtain()
			defer reply.Recycle()

			err := r.handle(context.WithoutCancel(ctx), svc, env, reply)
			r.notify(env, true, err)
			if err != nil {
				r.logger.Error(zerr.With(zerr.With(err, "txid", txid), "service", env.Service))
			}
		}()
		return &wrapperspb.BytesValue{}, nil
	}

	reply := parcel.Obtain()
	defer reply.Recycle()

	if err := r.dispatchInto(ctx, svc, env, txid, reply); err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(reply.Bytes()), nil
}

func (r *Router) dispatchInto(ctx context.Context, svc Service, env envelope, txid string, reply *parcel.Parcel) error {
	err := r.handle(ctx, svc, env, reply)
	r.notify(env, false, err)
	if err == nil {
		return nil
	}

	r.logger.Error(zerr.With(zerr.With(err, "txid", txid), "service", env.Service))
	if isUnknown(err) {
		return status.Errorf(codes.Unimplemented, "%s: %d", domain.ErrUnknownTransaction.Error(), env.Code)
	}
	return status.Error(codes.Internal, err.Error())
}

func (r *Router) handle(ctx context.Context, svc Service, env envelope, reply *parcel.Parcel) error {
	data := parcel.FromBytes(env.Data)
	defer data.Recycle()

	handled, err := svc.OnTransact(ctx, env.Code, data, reply)
	if err != nil {
		return zerr.With(err, "code", env.Code)
	}
	if !handled {
		return unknownTransaction{code: env.Code}
	}
	return nil
}

func (r *Router) notify(env envelope, oneway bool, err error) {
	r.mu.RLock()
	fn := r.observer
	r.mu.RUnlock()

	if fn != nil {
		fn(env.Service, env.Code, oneway, err)
	}
}

func (r *Router) lookup(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[name]
	return svc, ok
}

func transactionID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(TransactionIDKey); len(v) > 0 {
		return v[0]
	}
	return ""
}

// unknownTransaction reports a code the target service does not implement.
type unknownTransaction struct {
	code uint32
}

func (u unknownTransaction) Error() string {
	return domain.ErrUnknownTransaction.Error()
}

func isUnknown(err error) bool {
	_, ok := err.(unknownTransaction) //nolint:errorlint // never wrapped
	return ok
}
