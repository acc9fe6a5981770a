// Package binder provides client-side decorators and stubs for remote services.
package binder

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
)

var _ ports.Binder = (*SyncBinder)(nil)

// SyncBinder forces every transaction through it to be synchronous.
// It clears domain.FlagOneway from the flags and passes everything else through unchanged.
type SyncBinder struct {
	inner ports.Binder
}

// NewSyncBinder wraps inner.
func NewSyncBinder(inner ports.Binder) *SyncBinder {
	return &SyncBinder{inner: inner}
}

// Transact delegates with the one-way flag cleared.
func (b *SyncBinder) Transact(ctx context.Context, code uint32, data, reply *parcel.Parcel, flags uint32) error {
	return b.inner.Transact(ctx, code, data, reply, flags&^domain.FlagOneway)
}

// IsAlive delegates.
func (b *SyncBinder) IsAlive(ctx context.Context) bool {
	return b.inner.IsAlive(ctx)
}
