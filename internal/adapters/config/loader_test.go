package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/config"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	cfg, err := loader.Load(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_FullFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	path := writeConfig(t, `
package_name: com.example.host
dex2oat: /system/bin/dex2oat
compiler_env:
  ANDROID_DATA: /data
instruction_set: x86_64
sdk_int: 27
daemon:
  socket: /tmp/dexopt.sock
  idle_timeout: 90s
  autostart: false
  registry: /tmp/modules.json
  metrics_addr: 127.0.0.1:9464
log:
  json: true
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "com.example.host", cfg.PackageName)
	assert.Equal(t, "/system/bin/dex2oat", cfg.Dex2oat)
	assert.Equal(t, map[string]string{"ANDROID_DATA": "/data"}, cfg.CompilerEnv)
	assert.Equal(t, "x86_64", cfg.InstructionSet)
	assert.Equal(t, 27, cfg.SDKInt)
	assert.Equal(t, "/tmp/dexopt.sock", cfg.Daemon.SocketPath)
	assert.Equal(t, 90*time.Second, cfg.Daemon.IdleTimeout)
	assert.False(t, cfg.Daemon.Autostart)
	assert.Equal(t, "/tmp/modules.json", cfg.Daemon.RegistryPath)
	assert.Equal(t, "127.0.0.1:9464", cfg.Daemon.MetricsAddr)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, domain.DefaultDaemonPIDPath(), cfg.Daemon.PIDPath)
}

func TestLoad_WarnsWithoutPackageName(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoader(mockLogger)
	cfg, err := loader.Load(writeConfig(t, "sdk_int: 29\n"))
	require.NoError(t, err)
	assert.Equal(t, 29, cfg.SDKInt)
	assert.True(t, cfg.Daemon.Autostart)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "package_name: [unterminated",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "bad package name",
			content: "package_name: not-a-package\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "unknown instruction set",
			content: "package_name: com.example.host\ninstruction_set: mips\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "bad duration",
			content: "package_name: com.example.host\ndaemon:\n  idle_timeout: soon\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "negative sdk",
			content: "package_name: com.example.host\nsdk_int: -1\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "env key with equals sign",
			content: "package_name: com.example.host\ncompiler_env:\n  \"A=B\": c\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "bad metrics address",
			content: "package_name: com.example.host\ndaemon:\n  metrics_addr: nope\n",
			wantErr: domain.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			_, err := loader.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			// Check the message rather than identity, zerr wraps the cause.
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoad_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	// A directory cannot be read as a file.
	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
