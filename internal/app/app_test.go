package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/artifact"
	"go.trai.ch/dexopt/internal/adapters/capability"
	"go.trai.ch/dexopt/internal/adapters/daemon"
	"go.trai.ch/dexopt/internal/adapters/dex2oat"
	"go.trai.ch/dexopt/internal/adapters/reflective"
	"go.trai.ch/dexopt/internal/adapters/telemetry"
	"go.trai.ch/dexopt/internal/app"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	cfg       *domain.Config
	compiler  *mocks.MockArtifactCompiler
	connector *mocks.MockDaemonConnector
	source    string
}

func newFixture(t *testing.T, sdk int) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "plugin.apk")
	require.NoError(t, os.WriteFile(source, []byte("PK"), 0o600))

	cfg := domain.DefaultConfig()
	cfg.PackageName = "com.example.host"
	cfg.SDKInt = sdk
	cfg.InstructionSet = "arm64"
	cfg.Daemon.Autostart = false

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("dexopt.yaml").Return(cfg, nil).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		cfg:       cfg,
		compiler:  mocks.NewMockArtifactCompiler(ctrl),
		connector: mocks.NewMockDaemonConnector(ctrl),
		source:    source,
	}

	reg := reflective.NewRegistry()
	selector := capability.NewSelector(reg, reflective.NewCache(reg))
	compilers := dex2oat.Factory(func(string, map[string]string) ports.ArtifactCompiler {
		return f.compiler
	})
	connectors := daemon.ConnectorFactory(func(string, domain.DaemonConfig) (ports.DaemonConnector, error) {
		return f.connector, nil
	})

	f.app = app.New(
		loader,
		mocks.NewMockProcessRunner(ctrl),
		artifact.NewResolver(log),
		telemetry.NewNoOpTracer(),
		selector,
		compilers,
		connectors,
		log,
	)
	return f
}

func TestApp_CompileWithProcess(t *testing.T) {
	f := newFixture(t, 27)

	f.compiler.EXPECT().
		CompileArtifact(gomock.Any(), f.source, gomock.Any(), domain.FilterQuicken).
		DoAndReturn(func(_ context.Context, _ string, loc domain.ArtifactLocation, _ string) error {
			return os.WriteFile(loc.Path, []byte("odex"), 0o600)
		})

	outcome, err := f.app.Compile(t.Context(), "dexopt.yaml", f.source)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompiled, outcome.Kind)

	outcome, err = f.app.Compile(t.Context(), "dexopt.yaml", f.source)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyCompiled, outcome.Kind)

	status, err := f.app.Status(t.Context(), "dexopt.yaml", f.source)
	require.NoError(t, err)
	assert.True(t, status.Valid)
	assert.Equal(t, filepath.Join(filepath.Dir(f.source), "oat", "arm64", "plugin.odex"), status.Location.Path)
}

func TestApp_CompileUnsupportedPlatform(t *testing.T) {
	f := newFixture(t, 25)

	outcome, err := f.app.Compile(t.Context(), "dexopt.yaml", f.source)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnsupportedPlatform, outcome.Kind)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(f.source), "oat"))
}

func TestApp_CompileWithoutDaemon(t *testing.T) {
	f := newFixture(t, 30)

	f.connector.EXPECT().Connect(gomock.Any()).Return(nil, domain.ErrDaemonUnavailable).MinTimes(1)

	outcome, err := f.app.Compile(t.Context(), "dexopt.yaml", f.source)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRegistrationFailed, outcome.Kind)
}

func TestApp_StatusMissingSource(t *testing.T) {
	f := newFixture(t, 27)

	_, err := f.app.Status(t.Context(), "dexopt.yaml", filepath.Join(t.TempDir(), "missing.apk"))
	assert.ErrorContains(t, err, domain.ErrSourceNotFound.Error())
}

func TestApp_Capabilities(t *testing.T) {
	tests := []struct {
		sdk       int
		provider  string
		supported []string
	}{
		{sdk: 30, provider: capability.NameService, supported: []string{
			capability.CapInstructionSet, capability.CapModuleRegistration, capability.CapPrivilegedCommand,
		}},
		{sdk: 27, provider: capability.NameLegacy, supported: []string{capability.CapInstructionSet}},
		{sdk: 21, provider: capability.NameUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			f := newFixture(t, tt.sdk)

			report, err := f.app.Capabilities(t.Context(), "dexopt.yaml")
			require.NoError(t, err)
			assert.Equal(t, domain.PlatformVersion(tt.sdk), report.Version)
			assert.Equal(t, tt.provider, report.Provider)

			var supported []string
			for _, c := range report.Capabilities {
				if c.Supported {
					supported = append(supported, c.Name)
				}
			}
			assert.ElementsMatch(t, tt.supported, supported)
		})
	}
}

func TestApp_DaemonStatusNotRunning(t *testing.T) {
	f := newFixture(t, 30)

	f.connector.EXPECT().Dial(gomock.Any()).Return(nil, domain.ErrDaemonUnavailable)

	status, err := f.app.DaemonStatus(t.Context(), "dexopt.yaml")
	require.NoError(t, err)
	assert.False(t, status.Running)
}

func TestApp_StopDaemon(t *testing.T) {
	f := newFixture(t, 30)
	client := mocks.NewMockDaemonClient(gomock.NewController(t))

	gomock.InOrder(
		f.connector.EXPECT().Dial(gomock.Any()).Return(client, nil),
		client.EXPECT().Shutdown(gomock.Any()).Return(nil),
		client.EXPECT().Close().Return(nil),
	)

	require.NoError(t, f.app.StopDaemon(t.Context(), "dexopt.yaml"))
}

func TestApp_StopDaemonNotRunning(t *testing.T) {
	f := newFixture(t, 30)

	f.connector.EXPECT().Dial(gomock.Any()).Return(nil, domain.ErrDaemonUnavailable)

	require.NoError(t, f.app.StopDaemon(t.Context(), "dexopt.yaml"))
}
