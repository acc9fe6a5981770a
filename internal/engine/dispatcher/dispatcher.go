// Package dispatcher routes compilation requests to a strategy by platform version.
package dispatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

// StrategyFactory builds the strategy used for a platform version.
type StrategyFactory func(version domain.PlatformVersion) ports.Strategy

// Dispatcher is the single entry point for compilation requests.
type Dispatcher struct {
	probe   ports.VersionProbe
	process StrategyFactory
	service StrategyFactory
	tracer  ports.Tracer

	mu         sync.Mutex
	strategies map[domain.PlatformVersion]ports.Strategy
}

// New creates a Dispatcher. Strategies are built on first use and reused afterwards.
func New(probe ports.VersionProbe, process, service StrategyFactory, tracer ports.Tracer) *Dispatcher {
	return &Dispatcher{
		probe:      probe,
		process:    process,
		service:    service,
		tracer:     tracer,
		strategies: make(map[domain.PlatformVersion]ports.Strategy),
	}
}

// Compile compiles the package file at sourcePath and returns the outcome of the selected strategy unchanged.
// Unsupported platforms are rejected before the filesystem is touched.
func (d *Dispatcher) Compile(ctx context.Context, sourcePath string) domain.CompilationOutcome {
	ctx, span := d.tracer.Start(ctx, "dexopt.compile")
	defer span.End()
	span.SetAttribute("source", sourcePath)

	outcome := d.compile(ctx, sourcePath)
	span.SetAttribute("outcome", string(outcome.Kind))
	if err := outcome.Err(); err != nil {
		span.RecordError(err)
	}
	return outcome
}

func (d *Dispatcher) compile(ctx context.Context, sourcePath string) domain.CompilationOutcome {
	sdk, err := d.probe.SDKVersion(ctx)
	if err != nil {
		return domain.Failed(domain.OutcomeUnsupportedPlatform, err.Error())
	}

	version := domain.PlatformVersion(sdk)
	if !version.Supported() {
		return domain.Failed(
			domain.OutcomeUnsupportedPlatform,
			fmt.Sprintf("platform version %d is older than the minimum supported version %d", sdk, domain.MinSupportedSDK),
		)
	}

	if sourcePath == "" {
		return domain.Failed(domain.OutcomeNotFound, domain.ErrInvalidSourcePath.Error())
	}
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return domain.Failed(domain.OutcomeNotFound, domain.ErrInvalidSourcePath.Error()+": "+sourcePath)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return domain.Failed(domain.OutcomeNotFound, "no regular file at "+abs)
	}

	return d.strategy(version).Compile(ctx, abs)
}

func (d *Dispatcher) strategy(version domain.PlatformVersion) ports.Strategy {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.strategies[version]; ok {
		return s
	}

	var s ports.Strategy
	if version.UsesPrivilegedService() {
		s = d.service(version)
	} else {
		s = d.process(version)
	}
	d.strategies[version] = s
	return s
}
