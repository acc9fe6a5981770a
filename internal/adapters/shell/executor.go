// Package shell starts external processes for the compiler paths.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Start launches argv with standard output and standard error merged into one pipe.
func (r *Runner) Start(ctx context.Context, argv []string, env map[string]string) (ports.Process, error) {
	if len(argv) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	name := argv[0]
	cmdEnv := resolveEnvironment(os.Environ(), env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, os.PathSeparator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrProcessStartFailed.Error())
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // compiler path comes from configuration
	cmd.Args[0] = name
	cmd.Env = cmdEnv
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProcessStartFailed.Error()), "command", name)
	}

	// The child holds its own copy of the write end.
	_ = pw.Close()

	return &process{ctx: ctx, cmd: cmd, output: pr}, nil
}

type process struct {
	ctx    context.Context
	cmd    *exec.Cmd
	output *os.File
}

func (p *process) Output() io.ReadCloser {
	return p.output
}

func (p *process) ErrorOutput() io.ReadCloser {
	return io.NopCloser(strings.NewReader(""))
}

func (p *process) Wait() (int, error) {
	err := p.cmd.Wait()
	if ctxErr := p.ctx.Err(); ctxErr != nil {
		return -1, zerr.Wrap(ctxErr, "wait interrupted")
	}
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.Wrap(err, "wait interrupted")
}

// allowListedEnvVars are the host environment variables passed through to children.
var allowListedEnvVars = map[string]struct{}{
	"HOME":             {},
	"TERM":             {},
	"USER":             {},
	"PATH":             {},
	"TMPDIR":           {},
	"ANDROID_ROOT":     {},
	"ANDROID_DATA":     {},
	"ANDROID_ART_ROOT": {},
	"BOOTCLASSPATH":    {},
	"LD_LIBRARY_PATH":  {},
}

// resolveEnvironment filters the host environment and applies overrides.
// A PATH override is prepended to the host PATH.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the PATH found in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
