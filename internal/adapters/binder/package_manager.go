package binder

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

// PackageManager is the client stub of the package manager interface.
// Its remote is always a SyncBinder, so one-way methods complete before they return.
type PackageManager struct {
	remote ports.Binder
}

// NewPackageManager builds a stub over the raw package service handle.
func NewPackageManager(raw ports.Binder) *PackageManager {
	return &PackageManager{remote: NewSyncBinder(raw)}
}

// RegisterDexModule registers path as a secondary module of packageName.
// The interface declares the call one-way; the sync proxy turns it into a round trip
// whose reply carries any failure.
func (pm *PackageManager) RegisterDexModule(ctx context.Context, packageName, path string, isShared bool) error {
	data := parcel.Obtain()
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	data.WriteInterfaceToken(domain.PackageManagerDescriptor)
	data.WriteString16(packageName)
	data.WriteString16(path)
	data.WriteBool(isShared)
	// No completion callback; the synchronous reply replaces it.
	data.WriteNullBinder()

	if err := pm.remote.Transact(ctx, domain.TransactionRegisterDexModule, data, reply, domain.FlagOneway); err != nil {
		return zerr.With(zerr.Wrap(err, "registerDexModule transaction failed"), "path", path)
	}

	if err := reply.ReadException(); err != nil {
		return zerr.With(err, "path", path)
	}
	return nil
}

// IsAlive reports whether the remote package service still answers.
func (pm *PackageManager) IsAlive(ctx context.Context) bool {
	return pm.remote.IsAlive(ctx)
}
