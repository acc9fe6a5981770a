package pkgservice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Result is the outcome of one shell command.
type Result struct {
	Code   int32
	Output string
}

func succeed(lines ...string) Result {
	return Result{Code: 0, Output: strings.Join(lines, "\n")}
}

func fail(format string, args ...any) Result {
	return Result{Code: 1, Output: fmt.Sprintf(format, args...)}
}

// Exec runs one shell command.
func (s *Service) Exec(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return fail("No shell command implementation.")
	}

	switch args[0] {
	case domain.CommandCompile:
		return s.compile(ctx, args[1:])
	case domain.CommandReconcile:
		return s.reconcile(ctx, args[1:])
	default:
		return fail("Unknown command: %s", args[0])
	}
}

type compileOptions struct {
	force        bool
	secondaryDex bool
	filter       string
	packageName  string
}

func parseCompileArgs(args []string) (compileOptions, error) {
	var opts compileOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case domain.CompileFlagForce:
			opts.force = true
		case domain.CompileFlagSecondaryDex:
			opts.secondaryDex = true
		case domain.CompileFlagFilter:
			if i+1 >= len(args) {
				return opts, usageError("missing compiler filter after "+arg, "option", arg)
			}
			i++
			opts.filter = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, usageError("unknown option: "+arg, "option", arg)
			}
			if opts.packageName != "" {
				return opts, usageError("unexpected argument: "+arg, "argument", arg)
			}
			opts.packageName = arg
		}
	}

	switch {
	case opts.packageName == "":
		return opts, usageError("package name required", "argument", "package")
	case opts.filter == "":
		return opts, usageError("compiler filter required", "option", domain.CompileFlagFilter)
	case !opts.secondaryDex:
		return opts, usageError("only "+domain.CompileFlagSecondaryDex+" compilation is supported", "option", domain.CompileFlagSecondaryDex)
	}
	return opts, nil
}

func usageError(message, key, value string) error {
	return zerr.With(zerr.Wrap(domain.ErrShellCommandUsage, message), key, value)
}

func (s *Service) compile(ctx context.Context, args []string) Result {
	opts, err := parseCompileArgs(args)
	if err != nil {
		return fail("Error: %v", err)
	}

	modules, err := s.registry.List(opts.packageName)
	if err != nil {
		return fail("Failure: %v", err)
	}
	if len(modules) == 0 {
		return succeed("No secondary modules registered for "+opts.packageName, "Success")
	}

	isa, err := s.isa.CurrentInstructionSet(ctx)
	if err != nil {
		return fail("Failure: %v", err)
	}

	lines := make([]string, 0, len(modules)+1)
	failed := 0
	for _, m := range modules {
		line, compiled := s.compileModule(ctx, m, isa, opts)
		lines = append(lines, line)
		if !compiled {
			failed++
		}
	}

	if failed > 0 {
		lines = append(lines, fmt.Sprintf("Failure: %d of %d modules failed", failed, len(modules)))
		return Result{Code: 1, Output: strings.Join(lines, "\n")}
	}
	lines = append(lines, "Success")
	return succeed(lines...)
}

func (s *Service) compileModule(ctx context.Context, m domain.SecondaryModule, isa string, opts compileOptions) (string, bool) {
	info, err := os.Stat(m.Path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("%s: %s", m.Path, domain.ErrSourceNotFound.Error()), false
	}

	loc, err := s.resolver.Resolve(m.Path, isa)
	if err != nil {
		return fmt.Sprintf("%s: %v", m.Path, err), false
	}

	if !opts.force && s.resolver.IsValid(loc) {
		return fmt.Sprintf("%s: %s", m.Path, domain.AlreadyExistsDiagnostic), true
	}

	if err := s.compiler.CompileArtifact(ctx, m.Path, loc, opts.filter); err != nil {
		s.logger.Error(err)
		return fmt.Sprintf("%s: %v", m.Path, err), false
	}
	return fmt.Sprintf("%s -> %s", m.Path, loc.Path), true
}

func (s *Service) reconcile(ctx context.Context, args []string) Result {
	if len(args) != 1 {
		return fail("Error: package name required")
	}
	packageName := args[0]

	modules, err := s.registry.List(packageName)
	if err != nil {
		return fail("Failure: %v", err)
	}

	removed := 0
	for _, m := range modules {
		if _, err := os.Stat(m.Path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := s.registry.Remove(m.PackageName, m.Path); err != nil {
			return fail("Failure: %v", err)
		}
		s.dropArtifact(ctx, m.Path)
		removed++
	}

	return succeed(fmt.Sprintf("Reconciled %d stale module(s) of %s", removed, packageName))
}

// Forget drops every registration of a module file that disappeared, together
// with its artifact.
func (s *Service) Forget(ctx context.Context, path string) error {
	removed, err := s.registry.RemovePath(path)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return nil
	}

	s.dropArtifact(ctx, path)
	s.logger.Info("unregistered removed module " + path)
	return nil
}

func (s *Service) dropArtifact(ctx context.Context, path string) {
	isa, err := s.isa.CurrentInstructionSet(ctx)
	if err != nil {
		isa = domain.DefaultInstructionSet
	}

	loc := s.resolver.Locate(path, isa)
	if err := os.RemoveAll(loc.Path); err != nil {
		s.logger.Warn("cannot remove artifact " + loc.Path + ": " + err.Error())
	}
}
