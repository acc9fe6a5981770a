// Package pkgservice implements the package service published by the daemon.
package pkgservice

import (
	"context"
	"os"
	"time"

	"go.trai.ch/dexopt/internal/adapters/binderrpc"
	"go.trai.ch/dexopt/internal/adapters/registry"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ binderrpc.Service = (*Service)(nil)

// Service registers secondary modules and runs the compile and reconcile shell commands.
type Service struct {
	registry ports.ModuleRegistry
	compiler ports.ArtifactCompiler
	resolver ports.ArtifactResolver
	isa      ports.InstructionSetProvider
	watcher  ports.ModuleWatcher
	tracer   ports.Tracer
	logger   ports.Logger
	now      func() time.Time
	observe  CommandObserver
}

// CommandObserver is notified with the verb and result code of every shell command.
type CommandObserver func(command string, code int32)

// Option configures a Service.
type Option func(*Service)

// WithWatcher makes the service watch every registered module.
func WithWatcher(w ports.ModuleWatcher) Option {
	return func(s *Service) {
		s.watcher = w
	}
}

// WithClock replaces the registration timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCommandObserver installs fn as the shell command observer.
func WithCommandObserver(fn CommandObserver) Option {
	return func(s *Service) {
		s.observe = fn
	}
}

// New creates a Service.
func New(
	reg ports.ModuleRegistry,
	compiler ports.ArtifactCompiler,
	resolver ports.ArtifactResolver,
	isa ports.InstructionSetProvider,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		registry: reg,
		compiler: compiler,
		resolver: resolver,
		isa:      isa,
		tracer:   tracer,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnTransact implements binderrpc.Service.
func (s *Service) OnTransact(ctx context.Context, code uint32, data, reply *parcel.Parcel) (bool, error) {
	switch code {
	case domain.TransactionRegisterDexModule:
		return true, s.onRegisterDexModule(ctx, data, reply)
	case domain.ShellCommandTransaction:
		return true, s.onShellCommand(ctx, data, reply)
	case domain.PingTransaction:
		reply.WriteNoException()
		return true, nil
	default:
		return false, nil
	}
}

func (s *Service) onRegisterDexModule(ctx context.Context, data, reply *parcel.Parcel) error {
	if err := data.EnforceInterface(domain.PackageManagerDescriptor); err != nil {
		return err
	}
	packageName, err := data.ReadString16()
	if err != nil {
		return err
	}
	path, err := data.ReadString16()
	if err != nil {
		return err
	}
	isShared, err := data.ReadBool()
	if err != nil {
		return err
	}
	// Completion callback, unused: the caller observes the reply.
	if _, _, err := data.ReadObject(); err != nil {
		return err
	}

	_, span := s.tracer.Start(ctx, "service.register")
	defer span.End()
	span.SetAttribute("package", packageName)
	span.SetAttribute("path", path)

	if err := s.RegisterDexModule(packageName, path, isShared); err != nil {
		span.RecordError(err)
		s.logger.Warn("registerDexModule rejected " + path + ": " + err.Error())
		reply.WriteException(parcel.ExceptionIllegalArgument, err.Error())
		return nil
	}

	reply.WriteNoException()
	return nil
}

// RegisterDexModule records path as a secondary module of packageName.
func (s *Service) RegisterDexModule(packageName, path string, isShared bool) error {
	if packageName == "" {
		return domain.ErrMissingPackageName
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return zerr.With(domain.ErrSourceNotFound, "path", path)
	}

	fingerprint, err := registry.Fingerprint(path)
	if err != nil {
		return err
	}

	module := domain.SecondaryModule{
		PackageName:  packageName,
		Path:         path,
		IsShared:     isShared,
		Fingerprint:  fingerprint,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.registry.Put(module); err != nil {
		return err
	}

	if s.watcher != nil {
		if err := s.watcher.Watch(path); err != nil {
			s.logger.Warn("cannot watch module " + path + ": " + err.Error())
		}
	}

	s.logger.Info("registered " + path + " for " + packageName)
	return nil
}

func (s *Service) onShellCommand(ctx context.Context, data, reply *parcel.Parcel) error {
	for range 3 {
		if _, err := data.ExpectObject(parcel.ObjectFileDescriptor); err != nil {
			return err
		}
	}
	args, err := data.ReadStringArray()
	if err != nil {
		return err
	}
	// Shell callback and result receiver.
	if _, _, err := data.ReadObject(); err != nil {
		return err
	}
	if present, err := data.ReadInt32(); err != nil {
		return err
	} else if present != 0 {
		if _, _, err := data.ReadObject(); err != nil {
			return err
		}
	}

	ctx, span := s.tracer.Start(ctx, "service.command")
	defer span.End()
	if len(args) > 0 {
		span.SetAttribute("command", args[0])
	}

	result := s.Exec(ctx, args)
	if result.Code != 0 {
		span.SetAttribute("result_code", result.Code)
	}
	if s.observe != nil {
		verb := ""
		if len(args) > 0 {
			verb = args[0]
		}
		s.observe(verb, result.Code)
	}

	reply.WriteNoException()
	reply.WriteInt32(result.Code)
	reply.WriteString16(result.Output)
	return nil
}
