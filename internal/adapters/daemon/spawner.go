package daemon

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pollInterval    = 100 * time.Millisecond
	maxPollDuration = 5 * time.Second
)

var _ ports.DaemonConnector = (*Connector)(nil)

// Connector implements ports.DaemonConnector.
type Connector struct {
	executablePath string
	configPath     string
	cfg            domain.DaemonConfig
}

// NewConnector creates a connector for the daemon described by cfg. A spawned
// daemon is started from the running executable and reads configPath.
func NewConnector(configPath string, cfg domain.DaemonConfig) (*Connector, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return NewConnectorWithExecutable(exe, configPath, cfg), nil
}

// NewConnectorWithExecutable creates a connector that spawns exe.
func NewConnectorWithExecutable(exe, configPath string, cfg domain.DaemonConfig) *Connector {
	return &Connector{
		executablePath: exe,
		configPath:     configPath,
		cfg:            cfg,
	}
}

// Connect returns a client, spawning the daemon if necessary and allowed.
func (c *Connector) Connect(ctx context.Context) (ports.DaemonClient, error) {
	client, err := c.Dial(ctx)
	if err == nil {
		return client, nil
	}
	if !c.cfg.Autostart {
		return nil, err
	}

	if spawnErr := c.Spawn(ctx); spawnErr != nil {
		return nil, spawnErr
	}

	client, err = c.Dial(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon started but is not responsive")
	}
	return client, nil
}

// Dial returns a client to a running daemon.
func (c *Connector) Dial(ctx context.Context) (ports.DaemonClient, error) {
	client, err := Dial(c.cfg.SocketPath)
	if err != nil {
		return nil, err
	}
	if pingErr := client.Ping(ctx); pingErr != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(pingErr, domain.ErrDaemonUnavailable.Error()), "socket", c.cfg.SocketPath)
	}
	return client, nil
}

// IsRunning checks if the daemon is running and responsive.
func (c *Connector) IsRunning(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	client, err := c.Dial(ctx)
	if err != nil {
		return false
	}
	_ = client.Close()
	return true
}

// Spawn starts the daemon process in the background and waits until it answers.
func (c *Connector) Spawn(ctx context.Context) error {
	if mkdirErr := os.MkdirAll(filepath.Dir(c.cfg.SocketPath), domain.DirPerm); mkdirErr != nil {
		return zerr.Wrap(mkdirErr, "failed to create daemon directory")
	}

	logPath := c.cfg.LogPath
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(c.cfg.SocketPath), domain.DaemonLogName)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(logPath), domain.DirPerm); mkdirErr != nil {
		return zerr.Wrap(mkdirErr, "failed to create daemon log directory")
	}
	//nolint:gosec // G304: logPath comes from the configuration
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open daemon log")
	}

	args := []string{"daemon", "serve"}
	if c.configPath != "" {
		args = append(args, "--config", c.configPath)
	}

	//nolint:gosec // G204: executablePath is the running binary, args are fixed
	cmd := exec.Command(c.executablePath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return zerr.Wrap(err, domain.ErrDaemonSpawnFailed.Error())
	}

	go func() {
		_ = cmd.Wait()
		_ = logFile.Close()
	}()

	return c.waitForDaemonStartup(ctx)
}

// waitForDaemonStartup waits for the daemon to become responsive.
func (c *Connector) waitForDaemonStartup(ctx context.Context) error {
	start := time.Now()
	for time.Since(start) < maxPollDuration {
		if c.IsRunning(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrDaemonSpawnFailed, "daemon did not answer in time"), "log", c.cfg.LogPath)
}
