package ports

import "context"

//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks

// VersionProbe reports the host platform release level.
type VersionProbe interface {
	SDKVersion(ctx context.Context) (int, error)
}

// InstructionSetProvider reports the instruction set compiled artifacts target.
type InstructionSetProvider interface {
	CurrentInstructionSet(ctx context.Context) (string, error)
}

// ModuleRegistrar registers package files as secondary modules with the package service.
type ModuleRegistrar interface {
	RegisterModule(ctx context.Context, path string) error
}

// PrivilegedCommandExecutor runs shell commands inside the package service.
type PrivilegedCommandExecutor interface {
	// ExecutePrivilegedCommand runs args and returns the captured command output.
	ExecutePrivilegedCommand(ctx context.Context, args []string) (string, error)
}

// PlatformCapabilityProvider bundles the platform capabilities available on one release level.
type PlatformCapabilityProvider interface {
	InstructionSetProvider
	ModuleRegistrar
	PrivilegedCommandExecutor

	// Name identifies the provider implementation.
	Name() string
	// IsAlive reports whether the provider's remote handles are usable.
	IsAlive(ctx context.Context) bool
	// Refresh drops cached remote handles and acquires fresh ones.
	Refresh(ctx context.Context) error
}
