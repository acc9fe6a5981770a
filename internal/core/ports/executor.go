package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

// ProcessRunner starts external processes.
type ProcessRunner interface {
	// Start launches argv with env merged over the allow-listed host environment.
	// Standard output and standard error of the child are merged into Process.Output.
	Start(ctx context.Context, argv []string, env map[string]string) (Process, error)
}

// Process is a started child process.
type Process interface {
	// Output is the merged output stream of the child.
	Output() io.ReadCloser
	// ErrorOutput is the separate error stream. It is empty when streams are merged.
	ErrorOutput() io.ReadCloser
	// Wait blocks until the child exits and returns its exit code.
	// A non-nil error means the wait was interrupted and the exit code is meaningless.
	Wait() (int, error)
}
