package capability

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.PlatformCapabilityProvider = (*LegacyProvider)(nil)
	_ ports.PlatformCapabilityProvider = (*UnsupportedProvider)(nil)
)

// LegacyProvider serves platforms that compile through a child process.
// Only the instruction set is available.
type LegacyProvider struct {
	isa ports.InstructionSetProvider
}

// NewLegacyProvider creates a LegacyProvider.
func NewLegacyProvider(isa ports.InstructionSetProvider) *LegacyProvider {
	return &LegacyProvider{isa: isa}
}

// Name identifies the provider.
func (p *LegacyProvider) Name() string {
	return NameLegacy
}

// Supports reports whether the provider serves the named capability.
func (p *LegacyProvider) Supports(capability string) bool {
	return capability == CapInstructionSet
}

// CurrentInstructionSet returns the host instruction set.
func (p *LegacyProvider) CurrentInstructionSet(ctx context.Context) (string, error) {
	return p.isa.CurrentInstructionSet(ctx)
}

// RegisterModule is not available on legacy platforms.
func (p *LegacyProvider) RegisterModule(context.Context, string) error {
	return unsupported(NameLegacy, CapModuleRegistration)
}

// ExecutePrivilegedCommand is not available on legacy platforms.
func (p *LegacyProvider) ExecutePrivilegedCommand(context.Context, []string) (string, error) {
	return "", unsupported(NameLegacy, CapPrivilegedCommand)
}

// IsAlive always reports false; there are no remote handles.
func (p *LegacyProvider) IsAlive(context.Context) bool {
	return false
}

// Refresh is a no-op.
func (p *LegacyProvider) Refresh(context.Context) error {
	return nil
}

// UnsupportedProvider is the fallback for platforms below the minimum release.
type UnsupportedProvider struct{}

// NewUnsupportedProvider creates an UnsupportedProvider.
func NewUnsupportedProvider() *UnsupportedProvider {
	return &UnsupportedProvider{}
}

// Name identifies the provider.
func (p *UnsupportedProvider) Name() string {
	return NameUnsupported
}

// Supports always reports false.
func (p *UnsupportedProvider) Supports(string) bool {
	return false
}

// CurrentInstructionSet returns the default instruction set.
func (p *UnsupportedProvider) CurrentInstructionSet(context.Context) (string, error) {
	return domain.DefaultInstructionSet, nil
}

// RegisterModule is not available.
func (p *UnsupportedProvider) RegisterModule(context.Context, string) error {
	return unsupported(NameUnsupported, CapModuleRegistration)
}

// ExecutePrivilegedCommand is not available.
func (p *UnsupportedProvider) ExecutePrivilegedCommand(context.Context, []string) (string, error) {
	return "", unsupported(NameUnsupported, CapPrivilegedCommand)
}

// IsAlive always reports false.
func (p *UnsupportedProvider) IsAlive(context.Context) bool {
	return false
}

// Refresh is a no-op.
func (p *UnsupportedProvider) Refresh(context.Context) error {
	return nil
}

func unsupported(provider, capability string) error {
	return zerr.With(zerr.With(domain.ErrCapabilityUnsupported, "provider", provider), "capability", capability)
}
