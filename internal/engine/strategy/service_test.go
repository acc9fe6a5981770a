package strategy_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/artifact"
	"go.trai.ch/dexopt/internal/adapters/telemetry"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.trai.ch/dexopt/internal/engine/strategy"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const hostPackage = "com.example.host"

type serviceFixture struct {
	provider *mocks.MockPlatformCapabilityProvider
	logger   *mocks.MockLogger
	warnings []string
	strategy *strategy.Service
}

func newServiceFixture(t *testing.T, version domain.PlatformVersion) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		provider: mocks.NewMockPlatformCapabilityProvider(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		f.warnings = append(f.warnings, msg)
	}).AnyTimes()
	f.provider.EXPECT().Name().Return("service").AnyTimes()
	f.provider.EXPECT().CurrentInstructionSet(gomock.Any()).Return("arm64", nil).MaxTimes(1)

	f.strategy = strategy.NewService(
		version,
		artifact.NewResolver(f.logger),
		f.provider,
		hostPackage,
		telemetry.NewNoOpTracer(),
		f.logger,
	)
	return f
}

func compileArgs(filter string) []string {
	return domain.CompileSecondaryDexArgs(filter, hostPackage)
}

func reconcileArgs() []string {
	return domain.ReconcileSecondaryDexArgs(hostPackage)
}

func TestService_RegisterCompileReconcileInOrder(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := newSource(t)
	want := filepath.Join(filepath.Dir(src), "oat", "arm64", "plugin.odex")

	gomock.InOrder(
		f.provider.EXPECT().RegisterModule(gomock.Any(), src).Return(nil),
		f.provider.EXPECT().
			ExecutePrivilegedCommand(gomock.Any(), compileArgs(domain.FilterVerify)).
			DoAndReturn(func(_ context.Context, _ []string) (string, error) {
				writeFile(t, want, []byte("oat"))
				return "Success", nil
			}),
		f.provider.EXPECT().ExecutePrivilegedCommand(gomock.Any(), reconcileArgs()).Return("", nil),
	)

	outcome := f.strategy.Compile(t.Context(), src)
	require.True(t, outcome.Success)
	assert.Equal(t, domain.OutcomeCompiled, outcome.Kind)
	assert.Equal(t, want, outcome.ArtifactPath)
	assert.Empty(t, f.warnings)

	again := f.strategy.Compile(t.Context(), src)
	assert.Equal(t, domain.OutcomeAlreadyCompiled, again.Kind)
	assert.Equal(t, want, again.ArtifactPath)
}

func TestService_CompilerFilterByVersion(t *testing.T) {
	tests := []struct {
		version domain.PlatformVersion
		filter  string
	}{
		{version: 29, filter: domain.FilterSpeedProfile},
		{version: 30, filter: domain.FilterSpeedProfile},
		{version: 31, filter: domain.FilterVerify},
		{version: 34, filter: domain.FilterVerify},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			f := newServiceFixture(t, tt.version)
			src := newSource(t)

			f.provider.EXPECT().RegisterModule(gomock.Any(), src).Return(nil)
			f.provider.EXPECT().ExecutePrivilegedCommand(gomock.Any(), compileArgs(tt.filter)).Return("", nil)
			f.provider.EXPECT().ExecutePrivilegedCommand(gomock.Any(), reconcileArgs()).Return("", nil)

			outcome := f.strategy.Compile(t.Context(), src)
			assert.True(t, outcome.Success)
		})
	}
}

func TestService_RegistrationFailureIssuesNoCommands(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := newSource(t)

	f.provider.EXPECT().
		RegisterModule(gomock.Any(), src).
		Return(zerr.Wrap(domain.ErrRemoteException, "registerDexModule rejected"))

	outcome := f.strategy.Compile(t.Context(), src)
	assert.False(t, outcome.Success)
	assert.Equal(t, domain.OutcomeRegistrationFailed, outcome.Kind)
	assert.Contains(t, outcome.Diagnostic, "registerDexModule rejected")
	assert.Empty(t, outcome.ArtifactPath)
}

func TestService_NonUTF8PathIsNotRegistered(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := filepath.Join(t.TempDir(), "mod\xff.apk")
	writeFile(t, src, []byte("dex"))

	outcome := f.strategy.Compile(t.Context(), src)
	assert.False(t, outcome.Success)
	assert.Equal(t, domain.OutcomeNotFound, outcome.Kind)
	assert.Contains(t, outcome.Diagnostic, "not valid UTF-8")
	assert.Contains(t, outcome.Diagnostic, `mod\xff.apk`)
}

func TestService_CompileFailureStillReconciles(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := newSource(t)

	gomock.InOrder(
		f.provider.EXPECT().RegisterModule(gomock.Any(), src).Return(nil),
		f.provider.EXPECT().
			ExecutePrivilegedCommand(gomock.Any(), compileArgs(domain.FilterVerify)).
			Return("", zerr.Wrap(domain.ErrRemoteException, "Failure: 1 of 1 modules failed")),
		f.provider.EXPECT().ExecutePrivilegedCommand(gomock.Any(), reconcileArgs()).Return("", nil),
	)

	outcome := f.strategy.Compile(t.Context(), src)
	assert.False(t, outcome.Success)
	assert.Equal(t, domain.OutcomeServiceCallFailure, outcome.Kind)
	assert.Contains(t, outcome.Diagnostic, "1 of 1 modules failed")
}

func TestService_ReconcileFailureOnlyWarns(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := newSource(t)
	want := filepath.Join(filepath.Dir(src), "oat", "arm64", "plugin.odex")

	f.provider.EXPECT().RegisterModule(gomock.Any(), src).Return(nil)
	f.provider.EXPECT().
		ExecutePrivilegedCommand(gomock.Any(), compileArgs(domain.FilterVerify)).
		DoAndReturn(func(_ context.Context, _ []string) (string, error) {
			writeFile(t, want, []byte("oat"))
			return "", nil
		})
	f.provider.EXPECT().
		ExecutePrivilegedCommand(gomock.Any(), reconcileArgs()).
		Return("", domain.ErrBinderDead)

	outcome := f.strategy.Compile(t.Context(), src)
	assert.True(t, outcome.Success)
	assert.Equal(t, want, outcome.ArtifactPath)
	require.Len(t, f.warnings, 1)
	assert.Contains(t, f.warnings[0], domain.ErrCleanupFailed.Error())
}

func TestService_ExistingArtifactSkipsService(t *testing.T) {
	f := newServiceFixture(t, 31)
	src := newSource(t)
	existing := filepath.Join(filepath.Dir(src), "oat", "arm64", "plugin.odex")
	writeFile(t, existing, []byte("oat"))

	outcome := f.strategy.Compile(t.Context(), src)
	assert.True(t, outcome.Success)
	assert.Equal(t, domain.OutcomeAlreadyCompiled, outcome.Kind)
	assert.Equal(t, existing, outcome.ArtifactPath)
}
