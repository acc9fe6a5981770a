package ports

import (
	"context"
	"time"
)

//go:generate mockgen -source=daemon.go -destination=mocks/mock_daemon.go -package=mocks

// DaemonStatus represents the current state of the daemon.
type DaemonStatus struct {
	Running       bool
	PID           int
	Uptime        time.Duration
	LastActivity  time.Time
	IdleRemaining time.Duration
	Transactions  int64
	Modules       int
}

// DaemonClient defines the interface for communicating with the daemon.
type DaemonClient interface {
	// Ping checks if the daemon is alive and resets the inactivity timer.
	Ping(ctx context.Context) error
	// Status returns the current daemon status.
	Status(ctx context.Context) (*DaemonStatus, error)
	// Shutdown requests a graceful daemon shutdown.
	Shutdown(ctx context.Context) error
	// ServiceManager returns the lookup for services hosted by the daemon.
	ServiceManager() ServiceManager
	// Close releases client resources.
	Close() error
}

// DaemonConnector manages the daemon lifecycle from the CLI perspective.
type DaemonConnector interface {
	// Connect returns a client to the daemon, spawning it if necessary.
	Connect(ctx context.Context) (DaemonClient, error)
	// Dial returns a client to a running daemon without spawning it.
	Dial(ctx context.Context) (DaemonClient, error)
	// IsRunning checks if the daemon process is currently running.
	IsRunning(ctx context.Context) bool
}
