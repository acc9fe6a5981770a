package strategy

import (
	"context"
	"strconv"
	"unicode/utf8"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Strategy = (*Service)(nil)

// Service compiles by registering the package file as a secondary module and
// asking the package service to compile the secondary modules of the package.
type Service struct {
	resolver    ports.ArtifactResolver
	provider    ports.PlatformCapabilityProvider
	packageName string
	filter      string
	isa         *instructionSet
	tracer      ports.Tracer
	logger      ports.Logger
}

// NewService creates a Service strategy for the given platform version.
func NewService(
	version domain.PlatformVersion,
	resolver ports.ArtifactResolver,
	provider ports.PlatformCapabilityProvider,
	packageName string,
	tracer ports.Tracer,
	logger ports.Logger,
) *Service {
	return &Service{
		resolver:    resolver,
		provider:    provider,
		packageName: packageName,
		filter:      version.ServiceCompilerFilter(),
		isa:         &instructionSet{provider: provider, logger: logger},
		tracer:      tracer,
		logger:      logger,
	}
}

// Compile implements ports.Strategy.
// Registration failure stops the request before any command is issued. The
// reconcile command runs after every compile attempt and never changes the outcome.
func (s *Service) Compile(ctx context.Context, sourcePath string) domain.CompilationOutcome {
	ctx, span := s.tracer.Start(ctx, "strategy.service")
	defer span.End()
	span.SetAttribute("source", sourcePath)
	span.SetAttribute("provider", s.provider.Name())

	isa := s.isa.get(ctx)
	span.SetAttribute("instruction_set", isa)

	loc, valid, err := precheck(s.resolver, sourcePath, isa)
	if err != nil {
		span.RecordError(err)
		return domain.Failed(domain.OutcomeExternalToolFailure, err.Error())
	}
	if valid {
		return domain.AlreadyCompiled(loc.Path)
	}

	// Binder strings are UTF-16; a path that does not survive the conversion
	// would register a different file.
	if !utf8.ValidString(sourcePath) {
		return domain.Failed(domain.OutcomeNotFound,
			domain.ErrInvalidSourcePath.Error()+": not valid UTF-8: "+strconv.Quote(sourcePath))
	}

	if err := s.provider.RegisterModule(ctx, sourcePath); err != nil {
		span.RecordError(err)
		return domain.Failed(domain.OutcomeRegistrationFailed, err.Error())
	}

	span.SetAttribute("filter", s.filter)
	output, compileErr := s.provider.ExecutePrivilegedCommand(ctx, domain.CompileSecondaryDexArgs(s.filter, s.packageName))
	s.reconcile(ctx)

	if compileErr != nil {
		span.RecordError(compileErr)
		return domain.Failed(domain.OutcomeServiceCallFailure, compileErr.Error())
	}
	if output != "" {
		s.logger.Info(output)
	}

	postcheck(s.resolver, s.logger, loc)
	return domain.Compiled(loc.Path)
}

func (s *Service) reconcile(ctx context.Context) {
	if _, err := s.provider.ExecutePrivilegedCommand(ctx, domain.ReconcileSecondaryDexArgs(s.packageName)); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCleanupFailed.Error()), "package", s.packageName)
		s.logger.Warn(err.Error())
	}
}
