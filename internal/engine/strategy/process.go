package strategy

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

var _ ports.Strategy = (*Process)(nil)

// Process compiles by running the compiler as a child process.
type Process struct {
	resolver ports.ArtifactResolver
	compiler ports.ArtifactCompiler
	filter   string
	isa      *instructionSet
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewProcess creates a Process strategy for the given platform version.
func NewProcess(
	version domain.PlatformVersion,
	resolver ports.ArtifactResolver,
	isa ports.InstructionSetProvider,
	compiler ports.ArtifactCompiler,
	tracer ports.Tracer,
	logger ports.Logger,
) *Process {
	return &Process{
		resolver: resolver,
		compiler: compiler,
		filter:   version.ProcessCompilerFilter(),
		isa:      &instructionSet{provider: isa, logger: logger},
		tracer:   tracer,
		logger:   logger,
	}
}

// Compile implements ports.Strategy.
func (p *Process) Compile(ctx context.Context, sourcePath string) domain.CompilationOutcome {
	ctx, span := p.tracer.Start(ctx, "strategy.process")
	defer span.End()
	span.SetAttribute("source", sourcePath)

	isa := p.isa.get(ctx)
	span.SetAttribute("instruction_set", isa)

	loc, valid, err := precheck(p.resolver, sourcePath, isa)
	if err != nil {
		span.RecordError(err)
		return domain.Failed(domain.OutcomeExternalToolFailure, err.Error())
	}
	if valid {
		return domain.AlreadyCompiled(loc.Path)
	}

	span.SetAttribute("filter", p.filter)
	if err := p.compiler.CompileArtifact(ctx, sourcePath, loc, p.filter); err != nil {
		span.RecordError(err)
		return domain.Failed(domain.OutcomeExternalToolFailure, err.Error())
	}

	postcheck(p.resolver, p.logger, loc)
	return domain.Compiled(loc.Path)
}
