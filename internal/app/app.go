// Package app implements the application layer for dexopt.
package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/dexopt/internal/adapters/binderrpc"
	"go.trai.ch/dexopt/internal/adapters/capability"
	"go.trai.ch/dexopt/internal/adapters/daemon"
	"go.trai.ch/dexopt/internal/adapters/dex2oat"
	"go.trai.ch/dexopt/internal/adapters/pkgservice"
	"go.trai.ch/dexopt/internal/adapters/platform"
	"go.trai.ch/dexopt/internal/adapters/registry"
	"go.trai.ch/dexopt/internal/adapters/telemetry"
	"go.trai.ch/dexopt/internal/adapters/watcher"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/dexopt/internal/engine/dispatcher"
	"go.trai.ch/dexopt/internal/engine/strategy"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.ProcessRunner
	resolver     ports.ArtifactResolver
	tracer       ports.Tracer
	selector     *capability.Selector
	compilers    dex2oat.Factory
	connectors   daemon.ConnectorFactory
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.ProcessRunner,
	resolver ports.ArtifactResolver,
	tracer ports.Tracer,
	selector *capability.Selector,
	compilers dex2oat.Factory,
	connectors daemon.ConnectorFactory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		resolver:     resolver,
		tracer:       tracer,
		selector:     selector,
		compilers:    compilers,
		connectors:   connectors,
		logger:       log,
	}
}

// ArtifactStatus describes the artifact of one package file.
type ArtifactStatus struct {
	Location domain.ArtifactLocation
	Valid    bool
}

// CapabilityReport describes the provider selected for the host platform.
type CapabilityReport struct {
	Version domain.PlatformVersion
	capability.Report
}

// Compile compiles the package file at sourcePath. The error is non-nil only
// when the request could not be attempted; compilation failures are reported
// through the outcome.
func (a *App) Compile(ctx context.Context, configPath, sourcePath string) (domain.CompilationOutcome, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return domain.CompilationOutcome{}, err
	}

	shutdown := telemetry.Setup(telemetry.NewLogBridge(a.logger))
	defer func() {
		_ = shutdown(ctx)
	}()

	probe := platform.NewProbe(a.runner, cfg.SDKInt, cfg.InstructionSet)
	services := a.services(configPath, cfg)
	defer func() {
		_ = services.Close()
	}()

	deps := capability.Deps{
		Services:    services,
		PackageName: cfg.PackageName,
		ISA:         probe,
	}
	compiler := a.compilers(cfg.Dex2oat, cfg.CompilerEnv)

	d := dispatcher.New(
		probe,
		func(v domain.PlatformVersion) ports.Strategy {
			return strategy.NewProcess(v, a.resolver, a.selector.Select(v, deps), compiler, a.tracer, a.logger)
		},
		func(v domain.PlatformVersion) ports.Strategy {
			return strategy.NewService(v, a.resolver, a.selector.Select(v, deps), cfg.PackageName, a.tracer, a.logger)
		},
		a.tracer,
	)

	return d.Compile(ctx, sourcePath), nil
}

// Status reports where the artifact of sourcePath lives and whether it is usable.
// An unusable artifact is removed as a side effect.
func (a *App) Status(ctx context.Context, configPath, sourcePath string) (ArtifactStatus, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return ArtifactStatus{}, err
	}

	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return ArtifactStatus{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidSourcePath.Error()), "path", sourcePath)
	}
	if info, statErr := os.Stat(abs); statErr != nil || !info.Mode().IsRegular() {
		return ArtifactStatus{}, zerr.With(domain.ErrSourceNotFound, "path", abs)
	}

	probe := platform.NewProbe(a.runner, cfg.SDKInt, cfg.InstructionSet)
	isa, err := probe.CurrentInstructionSet(ctx)
	if err != nil {
		return ArtifactStatus{}, zerr.Wrap(err, domain.ErrInstructionSetProbeFailed.Error())
	}

	loc := a.resolver.Locate(abs, isa)
	return ArtifactStatus{Location: loc, Valid: a.resolver.IsValid(loc)}, nil
}

// Capabilities reports the provider selected for the host platform and what it implements.
func (a *App) Capabilities(ctx context.Context, configPath string) (CapabilityReport, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return CapabilityReport{}, err
	}

	probe := platform.NewProbe(a.runner, cfg.SDKInt, cfg.InstructionSet)
	sdk, err := probe.SDKVersion(ctx)
	if err != nil {
		return CapabilityReport{}, err
	}
	version := domain.PlatformVersion(sdk)

	report, err := a.selector.Probe(version, capability.Deps{PackageName: cfg.PackageName, ISA: probe})
	if err != nil {
		return CapabilityReport{}, err
	}
	return CapabilityReport{Version: version, Report: report}, nil
}

// ServeDaemon runs the package service daemon until ctx is done, it is asked to
// stop, or it has been idle for the configured timeout.
func (a *App) ServeDaemon(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	shutdown := telemetry.Setup(telemetry.NewLogBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	store, err := registry.NewStore(cfg.Daemon.RegistryPath)
	if err != nil {
		return err
	}
	w, err := watcher.NewWatcher(a.logger)
	if err != nil {
		return err
	}

	lifecycle := daemon.NewLifecycle(cfg.Daemon.IdleTimeout)
	metrics := daemon.NewMetrics(store, func() float64 {
		return lifecycle.IdleRemaining().Seconds()
	})

	probe := platform.NewProbe(a.runner, cfg.SDKInt, cfg.InstructionSet)
	svc := pkgservice.New(
		store,
		a.compilers(cfg.Dex2oat, cfg.CompilerEnv),
		a.resolver,
		probe,
		a.tracer,
		a.logger,
		pkgservice.WithWatcher(w),
		pkgservice.WithCommandObserver(metrics.ObserveCommand),
	)

	router := binderrpc.NewRouter(a.logger)
	router.AddService(domain.PackageServiceName, svc)

	server := daemon.NewServer(cfg.Daemon, lifecycle, router, store, w, svc, metrics, a.logger)
	return server.Serve(ctx)
}

// DaemonStatus reports the state of the daemon. A daemon that does not answer
// is reported as not running.
func (a *App) DaemonStatus(ctx context.Context, configPath string) (*ports.DaemonStatus, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	connector, err := a.connectors(configPath, cfg.Daemon)
	if err != nil {
		return nil, err
	}
	client, err := connector.Dial(ctx)
	if err != nil {
		return &ports.DaemonStatus{Running: false}, nil //nolint:nilerr // a missing daemon is a status, not a failure
	}
	defer func() {
		_ = client.Close()
	}()

	return client.Status(ctx)
}

// StopDaemon asks a running daemon to shut down.
func (a *App) StopDaemon(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	connector, err := a.connectors(configPath, cfg.Daemon)
	if err != nil {
		return err
	}
	client, err := connector.Dial(ctx)
	if err != nil {
		a.logger.Info("daemon is not running")
		return nil
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Shutdown(ctx); err != nil {
		return zerr.Wrap(err, "failed to stop daemon")
	}
	a.logger.Info("daemon stopped")
	return nil
}

// loadConfig reads the configuration and resolves its paths against the working directory.
func (a *App) loadConfig(configPath string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}
	cfg.Absolutize(cwd)

	if cfg.Log.JSON {
		if l, ok := a.logger.(interface{ SetJSON(enable bool) }); ok {
			l.SetJSON(true)
		}
	}
	return cfg, nil
}

func (a *App) services(configPath string, cfg *domain.Config) *lazyServices {
	return &lazyServices{
		connect: func(ctx context.Context) (ports.DaemonClient, error) {
			abs := configPath
			if abs != "" {
				if p, err := filepath.Abs(configPath); err == nil {
					abs = p
				}
			}
			connector, err := a.connectors(abs, cfg.Daemon)
			if err != nil {
				return nil, err
			}
			return connector.Connect(ctx)
		},
	}
}
