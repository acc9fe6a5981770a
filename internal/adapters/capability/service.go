package capability

import (
	"context"

	"go.trai.ch/dexopt/internal/adapters/binder"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

var _ ports.PlatformCapabilityProvider = (*ServiceProvider)(nil)

// ServiceProvider serves every capability through the package service.
type ServiceProvider struct {
	handles     *binder.HandleCache
	packageName string
	isa         ports.InstructionSetProvider
}

// NewServiceProvider creates a provider that registers modules for packageName.
func NewServiceProvider(handles *binder.HandleCache, packageName string, isa ports.InstructionSetProvider) *ServiceProvider {
	return &ServiceProvider{
		handles:     handles,
		packageName: packageName,
		isa:         isa,
	}
}

// Name identifies the provider.
func (p *ServiceProvider) Name() string {
	return NameService
}

// Supports reports whether the provider serves the named capability.
func (p *ServiceProvider) Supports(capability string) bool {
	switch capability {
	case CapInstructionSet, CapModuleRegistration, CapPrivilegedCommand:
		return true
	default:
		return false
	}
}

// CurrentInstructionSet returns the host instruction set.
func (p *ServiceProvider) CurrentInstructionSet(ctx context.Context) (string, error) {
	return p.isa.CurrentInstructionSet(ctx)
}

// RegisterModule registers path as a private secondary module of the configured package.
func (p *ServiceProvider) RegisterModule(ctx context.Context, path string) error {
	if p.packageName == "" {
		return domain.ErrMissingPackageName
	}

	pm, err := p.handles.PackageManager(ctx)
	if err != nil {
		return err
	}
	return pm.RegisterDexModule(ctx, p.packageName, path, false)
}

// ExecutePrivilegedCommand runs args as a shell command inside the package service.
func (p *ServiceProvider) ExecutePrivilegedCommand(ctx context.Context, args []string) (string, error) {
	raw, err := p.handles.Raw(ctx)
	if err != nil {
		return "", err
	}
	return ShellCommand(ctx, raw, args)
}

// IsAlive reports whether the cached package service handle still answers.
func (p *ServiceProvider) IsAlive(ctx context.Context) bool {
	return p.handles.IsAlive(ctx)
}

// Refresh re-acquires the package service handles.
func (p *ServiceProvider) Refresh(ctx context.Context) error {
	return p.handles.Refresh(ctx)
}
