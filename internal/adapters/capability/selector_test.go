package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/capability"
	"go.trai.ch/dexopt/internal/adapters/reflective"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newSelector() *capability.Selector {
	reg := reflective.NewRegistry()
	return capability.NewSelector(reg, reflective.NewCache(reg))
}

func TestProviderName(t *testing.T) {
	tests := []struct {
		sdk  domain.PlatformVersion
		want string
	}{
		{sdk: 24, want: capability.NameUnsupported},
		{sdk: 25, want: capability.NameUnsupported},
		{sdk: 26, want: capability.NameLegacy},
		{sdk: 28, want: capability.NameLegacy},
		{sdk: 29, want: capability.NameService},
		{sdk: 34, want: capability.NameService},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, capability.ProviderName(tt.sdk), "sdk %d", tt.sdk)
	}
}

func TestSelector_Select(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := mocks.NewMockServiceManager(ctrl)
	isa := mocks.NewMockInstructionSetProvider(ctrl)
	deps := capability.Deps{Services: sm, PackageName: "com.example.host", ISA: isa}
	s := newSelector()

	assert.IsType(t, &capability.ServiceProvider{}, s.Select(30, deps))
	assert.IsType(t, &capability.LegacyProvider{}, s.Select(27, deps))
	assert.IsType(t, &capability.UnsupportedProvider{}, s.Select(23, deps))
}

func TestSelector_SelectWithoutDependencies(t *testing.T) {
	s := newSelector()

	assert.Equal(t, capability.NameService, s.Select(29, capability.Deps{}).Name())
}

func TestSelector_Probe(t *testing.T) {
	s := newSelector()
	all := []string{capability.CapInstructionSet, capability.CapModuleRegistration, capability.CapPrivilegedCommand}
	deps := capability.Deps{PackageName: "com.example.host"}

	tests := []struct {
		name      string
		sdk       domain.PlatformVersion
		supported map[string]bool
	}{
		{
			name:      capability.NameService,
			sdk:       31,
			supported: map[string]bool{capability.CapInstructionSet: true, capability.CapModuleRegistration: true, capability.CapPrivilegedCommand: true},
		},
		{
			name:      capability.NameLegacy,
			sdk:       27,
			supported: map[string]bool{capability.CapInstructionSet: true},
		},
		{
			name:      capability.NameUnsupported,
			sdk:       21,
			supported: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := s.Probe(tt.sdk, deps)
			require.NoError(t, err)
			assert.Equal(t, tt.name, report.Provider)

			names := make([]string, 0, len(report.Capabilities))
			for _, c := range report.Capabilities {
				names = append(names, c.Name)
				assert.Equal(t, tt.supported[c.Name], c.Supported, c.Name)
			}
			assert.ElementsMatch(t, all, names)
		})
	}
}

func TestSelector_ProbeRejectsTypeRegisteredUnderAnotherName(t *testing.T) {
	reg := reflective.NewRegistry()
	s := capability.NewSelector(reg, reflective.NewCache(reg))
	reg.RegisterType(capability.NameLegacy, (*capability.UnsupportedProvider)(nil))

	_, err := s.Probe(27, capability.Deps{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrProviderMismatch.Error())

	_, err = s.Probe(21, capability.Deps{})
	require.NoError(t, err)
}
