// Package dex2oat runs the external ahead-of-time compiler on one package file.
package dex2oat

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/dexopt/internal/adapters/shell"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactCompiler = (*Compiler)(nil)

const logPrefix = "dex2oat: "

// Compiler implements ports.ArtifactCompiler by spawning dex2oat.
type Compiler struct {
	runner     ports.ProcessRunner
	logger     ports.Logger
	executable string
	env        map[string]string
}

// NewCompiler creates a Compiler for the given executable. An empty executable
// falls back to dex2oat on PATH.
func NewCompiler(runner ports.ProcessRunner, logger ports.Logger, executable string, env map[string]string) *Compiler {
	if executable == "" {
		executable = domain.DefaultDex2oat
	}
	return &Compiler{
		runner:     runner,
		logger:     logger,
		executable: executable,
		env:        env,
	}
}

// CompileArtifact runs dex2oat with its output merged and logged line by line.
func (c *Compiler) CompileArtifact(ctx context.Context, sourceFile string, location domain.ArtifactLocation, filter string) error {
	argv := domain.Dex2oatArgs(c.executable, sourceFile, location.Path, location.InstructionSet, filter)

	proc, err := c.runner.Start(ctx, argv, c.env)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExternalToolFailure.Error()), "source", sourceFile)
	}

	output := proc.Output()
	errOutput := proc.ErrorOutput()
	var closeOnce sync.Once
	closeStreams := func() {
		closeOnce.Do(func() {
			_ = output.Close()
			_ = errOutput.Close()
		})
	}
	defer closeStreams()

	c.drain(output)
	c.drain(errOutput)

	code, err := proc.Wait()
	closeStreams()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExternalToolFailure.Error()), "source", sourceFile)
	}
	if code != 0 {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrExternalToolFailure, fmt.Sprintf("dex2oat exited with code %d", code)), "exit_code", code),
			"source", sourceFile,
		)
	}
	return nil
}

func (c *Compiler) drain(r io.Reader) {
	w := shell.NewLogWriter(c.logger, logPrefix)
	if _, err := io.Copy(w, r); err != nil {
		c.logger.Warn(logPrefix + "output read failed: " + err.Error())
	}
	_ = w.Close()
}
