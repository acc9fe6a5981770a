package ports

import (
	"context"

	"go.trai.ch/dexopt/internal/core/parcel"
)

//go:generate mockgen -source=binder.go -destination=mocks/mock_binder.go -package=mocks

// Binder is a handle to a remote service.
type Binder interface {
	// Transact sends data under code and fills reply. Flags carry domain.FlagOneway
	// for one-way calls, in which case reply is left empty.
	Transact(ctx context.Context, code uint32, data, reply *parcel.Parcel, flags uint32) error
	// IsAlive reports whether the remote service still answers.
	IsAlive(ctx context.Context) bool
}

// ServiceManager looks up remote services by name.
type ServiceManager interface {
	GetService(ctx context.Context, name string) (Binder, error)
}
