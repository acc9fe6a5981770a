package domain

import (
	"path/filepath"
	"time"
)

const (
	// DexoptDirName is the name of the internal state directory.
	DexoptDirName = ".dexopt"

	// DaemonDirName is the name of the daemon directory within .dexopt.
	DaemonDirName = "daemon"

	// DaemonSocketName is the name of the Unix domain socket file.
	DaemonSocketName = "daemon.sock"

	// DaemonPIDName is the name of the PID file.
	DaemonPIDName = "daemon.pid"

	// DaemonLogName is the name of the daemon log file.
	DaemonLogName = "daemon.log"

	// RegistryFileName is the name of the module registry file.
	RegistryFileName = "modules.json"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dexopt.yaml"

	// DefaultIdleTimeout is how long the daemon stays up without activity.
	DefaultIdleTimeout = 10 * time.Minute

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// SocketPerm is the permission of the daemon socket (rw-------).
	SocketPerm = 0o600
)

// DefaultDaemonSocketPath returns .dexopt/daemon/daemon.sock.
func DefaultDaemonSocketPath() string {
	return filepath.Join(DexoptDirName, DaemonDirName, DaemonSocketName)
}

// DefaultDaemonPIDPath returns .dexopt/daemon/daemon.pid.
func DefaultDaemonPIDPath() string {
	return filepath.Join(DexoptDirName, DaemonDirName, DaemonPIDName)
}

// DefaultDaemonLogPath returns .dexopt/daemon/daemon.log.
func DefaultDaemonLogPath() string {
	return filepath.Join(DexoptDirName, DaemonDirName, DaemonLogName)
}

// DefaultRegistryPath returns .dexopt/modules.json.
func DefaultRegistryPath() string {
	return filepath.Join(DexoptDirName, RegistryFileName)
}
