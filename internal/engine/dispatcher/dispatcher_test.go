package dispatcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/telemetry"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.trai.ch/dexopt/internal/engine/dispatcher"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	probe     *mocks.MockVersionProbe
	process   *mocks.MockStrategy
	service   *mocks.MockStrategy
	built     map[string]int
	versions  []domain.PlatformVersion
	d         *dispatcher.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		probe:   mocks.NewMockVersionProbe(ctrl),
		process: mocks.NewMockStrategy(ctrl),
		service: mocks.NewMockStrategy(ctrl),
		built:   map[string]int{},
	}
	f.d = dispatcher.New(
		f.probe,
		func(v domain.PlatformVersion) ports.Strategy {
			f.built["process"]++
			f.versions = append(f.versions, v)
			return f.process
		},
		func(v domain.PlatformVersion) ports.Strategy {
			f.built["service"]++
			f.versions = append(f.versions, v)
			return f.service
		},
		telemetry.NewNoOpTracer(),
	)
	return f
}

func newSource(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "plugin.apk")
	require.NoError(t, os.WriteFile(src, []byte("dex"), 0o600))
	return src
}

func TestDispatcher_RoutesByVersion(t *testing.T) {
	tests := []struct {
		name    string
		sdk     int
		service bool
	}{
		{name: "oreo uses process", sdk: 26, service: false},
		{name: "pie uses process", sdk: 28, service: false},
		{name: "q uses service", sdk: 29, service: true},
		{name: "u uses service", sdk: 34, service: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			src := newSource(t)
			want := domain.Compiled("/x/oat/arm64/plugin.odex")

			f.probe.EXPECT().SDKVersion(gomock.Any()).Return(tt.sdk, nil)
			if tt.service {
				f.service.EXPECT().Compile(gomock.Any(), src).Return(want)
			} else {
				f.process.EXPECT().Compile(gomock.Any(), src).Return(want)
			}

			got := f.d.Compile(t.Context(), src)
			assert.Equal(t, want, got)
			assert.Equal(t, []domain.PlatformVersion{domain.PlatformVersion(tt.sdk)}, f.versions)
		})
	}
}

func TestDispatcher_UnsupportedPlatformTouchesNothing(t *testing.T) {
	f := newFixture(t)
	f.probe.EXPECT().SDKVersion(gomock.Any()).Return(25, nil)

	got := f.d.Compile(t.Context(), filepath.Join(t.TempDir(), "missing.apk"))
	assert.False(t, got.Success)
	assert.Equal(t, domain.OutcomeUnsupportedPlatform, got.Kind)
	assert.Contains(t, got.Diagnostic, "25")
	assert.Empty(t, f.built)
}

func TestDispatcher_ProbeFailureIsUnsupported(t *testing.T) {
	f := newFixture(t)
	f.probe.EXPECT().SDKVersion(gomock.Any()).Return(0, domain.ErrVersionProbeFailed)

	got := f.d.Compile(t.Context(), newSource(t))
	assert.Equal(t, domain.OutcomeUnsupportedPlatform, got.Kind)
	assert.Contains(t, got.Diagnostic, domain.ErrVersionProbeFailed.Error())
	assert.Empty(t, f.built)
}

func TestDispatcher_NotFound(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.apk")},
		{name: "directory", path: dir},
		{name: "empty path", path: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.probe.EXPECT().SDKVersion(gomock.Any()).Return(30, nil)

			got := f.d.Compile(t.Context(), tt.path)
			assert.False(t, got.Success)
			assert.Equal(t, domain.OutcomeNotFound, got.Kind)
			assert.Contains(t, got.Diagnostic, tt.path)
			assert.Empty(t, f.built)
		})
	}
}

func TestDispatcher_RelativePathIsMadeAbsolute(t *testing.T) {
	f := newFixture(t)
	src := newSource(t)
	t.Chdir(filepath.Dir(src))

	f.probe.EXPECT().SDKVersion(gomock.Any()).Return(27, nil)
	f.process.EXPECT().Compile(gomock.Any(), src).Return(domain.Compiled("a"))

	got := f.d.Compile(t.Context(), "plugin.apk")
	assert.True(t, got.Success)
}

func TestDispatcher_ReusesStrategy(t *testing.T) {
	f := newFixture(t)
	src := newSource(t)

	f.probe.EXPECT().SDKVersion(gomock.Any()).Return(31, nil).Times(3)
	f.service.EXPECT().Compile(gomock.Any(), src).Return(domain.AlreadyCompiled("a")).Times(3)

	for range 3 {
		f.d.Compile(t.Context(), src)
	}
	assert.Equal(t, 1, f.built["service"])
}

func TestDispatcher_ReturnsStrategyFailureUnchanged(t *testing.T) {
	f := newFixture(t)
	src := newSource(t)
	want := domain.Failed(domain.OutcomeRegistrationFailed, "remote exception: denied")

	f.probe.EXPECT().SDKVersion(gomock.Any()).Return(33, nil)
	f.service.EXPECT().Compile(gomock.Any(), src).Return(want)

	assert.Equal(t, want, f.d.Compile(t.Context(), src))
}
