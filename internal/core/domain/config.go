package domain

import (
	"path/filepath"
	"time"
)

// Config is the resolved runtime configuration.
type Config struct {
	// PackageName identifies the caller to the package service.
	PackageName string
	// Dex2oat is the compiler executable.
	Dex2oat string
	// CompilerEnv is merged over the allow-listed process environment of the compiler.
	CompilerEnv map[string]string
	// InstructionSet overrides instruction set detection when set.
	InstructionSet string
	// SDKInt overrides platform version detection when non-zero.
	SDKInt int
	Daemon DaemonConfig
	Log    LogConfig
}

// DaemonConfig configures the package service daemon.
type DaemonConfig struct {
	SocketPath   string
	PIDPath      string
	LogPath      string
	RegistryPath string
	IdleTimeout  time.Duration
	Autostart    bool
	MetricsAddr  string
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Dex2oat:     DefaultDex2oat,
		CompilerEnv: map[string]string{},
		Daemon: DaemonConfig{
			SocketPath:   DefaultDaemonSocketPath(),
			PIDPath:      DefaultDaemonPIDPath(),
			LogPath:      DefaultDaemonLogPath(),
			RegistryPath: DefaultRegistryPath(),
			IdleTimeout:  DefaultIdleTimeout,
			Autostart:    true,
		},
	}
}

// Absolutize rewrites relative daemon paths against base.
func (c *Config) Absolutize(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Daemon.SocketPath = abs(c.Daemon.SocketPath)
	c.Daemon.PIDPath = abs(c.Daemon.PIDPath)
	c.Daemon.LogPath = abs(c.Daemon.LogPath)
	c.Daemon.RegistryPath = abs(c.Daemon.RegistryPath)
}
