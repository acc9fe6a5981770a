package capability

import (
	"reflect"

	"go.trai.ch/dexopt/internal/adapters/binder"
	"go.trai.ch/dexopt/internal/adapters/reflective"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider names.
const (
	NameService     = "service"
	NameLegacy      = "legacy"
	NameUnsupported = "unsupported"
)

// Capability names.
const (
	CapInstructionSet     = "instruction-set"
	CapModuleRegistration = "module-registration"
	CapPrivilegedCommand  = "privileged-command"
)

// Deps carries what providers are built from.
type Deps struct {
	Services    ports.ServiceManager
	PackageName string
	ISA         ports.InstructionSetProvider
}

// Capability is one entry of a Report.
type Capability struct {
	Name      string
	Supported bool
}

// Report describes a provider and the capabilities it implements.
type Report struct {
	Provider     string
	Capabilities []Capability
}

// Register makes the providers, their version table and the capability
// interfaces resolvable by name.
func Register(reg *reflective.Registry) {
	reg.RegisterType(NameService, (*ServiceProvider)(nil))
	reg.RegisterConstructor(NameService, NewServiceProvider)
	reg.RegisterType(NameLegacy, (*LegacyProvider)(nil))
	reg.RegisterConstructor(NameLegacy, NewLegacyProvider)
	reg.RegisterType(NameUnsupported, (*UnsupportedProvider)(nil))
	reg.RegisterConstructor(NameUnsupported, NewUnsupportedProvider)
	reg.RegisterStatic(staticOwner, "ProviderName", ProviderName)

	reg.RegisterInterface(CapInstructionSet, (*ports.InstructionSetProvider)(nil))
	reg.RegisterInterface(CapModuleRegistration, (*ports.ModuleRegistrar)(nil))
	reg.RegisterInterface(CapPrivilegedCommand, (*ports.PrivilegedCommandExecutor)(nil))
}

const staticOwner = "capability"

// ProviderName returns the provider serving a platform release level.
func ProviderName(version domain.PlatformVersion) string {
	switch {
	case version.UsesPrivilegedService():
		return NameService
	case version.Supported():
		return NameLegacy
	default:
		return NameUnsupported
	}
}

// Selector builds providers for the compile path and inspects them by name
// through the reflective cache.
type Selector struct {
	cache *reflective.Cache
}

// NewSelector registers the providers in reg and returns a Selector over cache.
func NewSelector(reg *reflective.Registry, cache *reflective.Cache) *Selector {
	Register(reg)
	return &Selector{cache: cache}
}

// Select constructs the provider for version.
func (s *Selector) Select(version domain.PlatformVersion, deps Deps) ports.PlatformCapabilityProvider {
	switch ProviderName(version) {
	case NameService:
		return NewServiceProvider(binder.NewHandleCache(deps.Services), deps.PackageName, deps.ISA)
	case NameLegacy:
		return NewLegacyProvider(deps.ISA)
	default:
		return NewUnsupportedProvider()
	}
}

// Probe builds the provider registered for version by name and reports which
// capability interfaces it implements and which of them it serves.
func (s *Selector) Probe(version domain.PlatformVersion, deps Deps) (Report, error) {
	out, err := s.cache.InvokeStatic(staticOwner, "ProviderName", version)
	if err != nil {
		return Report{}, err
	}
	name, _ := out[0].(string)

	typ, err := s.cache.ResolveType(name)
	if err != nil {
		return Report{}, zerr.With(err, "sdk", int(version))
	}

	var args []any
	switch name {
	case NameService:
		args = []any{binder.NewHandleCache(deps.Services), deps.PackageName, deps.ISA}
	case NameLegacy:
		args = []any{deps.ISA}
	}
	provider, err := s.cache.Construct(name, args...)
	if err != nil {
		return Report{}, zerr.With(err, "sdk", int(version))
	}
	if reflect.TypeOf(provider) != typ {
		return Report{}, zerr.With(zerr.With(domain.ErrProviderMismatch, "provider", name), "sdk", int(version))
	}

	out, err = s.cache.Invoke(provider, "Name")
	if err != nil {
		return Report{}, err
	}
	reported, _ := out[0].(string)

	report := Report{Provider: reported}
	for _, capability := range s.cache.Interfaces(typ) {
		supported := false
		if out, err := s.cache.Invoke(provider, "Supports", capability); err == nil {
			supported, _ = out[0].(bool)
		}
		report.Capabilities = append(report.Capabilities, Capability{Name: capability, Supported: supported})
	}
	return report, nil
}
