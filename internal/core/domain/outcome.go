package domain

import "go.trai.ch/zerr"

// OutcomeKind classifies a CompilationOutcome.
type OutcomeKind string

const (
	// OutcomeCompiled indicates that a fresh artifact was produced.
	OutcomeCompiled OutcomeKind = "compiled"
	// OutcomeAlreadyCompiled indicates that a valid artifact was already present.
	OutcomeAlreadyCompiled OutcomeKind = "already-compiled"
	// OutcomeUnsupportedPlatform indicates that the host platform version is too old.
	OutcomeUnsupportedPlatform OutcomeKind = "unsupported-platform"
	// OutcomeNotFound indicates that the package file is missing.
	OutcomeNotFound OutcomeKind = "not-found"
	// OutcomeRegistrationFailed indicates that module registration with the service failed.
	OutcomeRegistrationFailed OutcomeKind = "registration-failed"
	// OutcomeExternalToolFailure indicates that the external compiler failed or was interrupted.
	OutcomeExternalToolFailure OutcomeKind = "external-tool-failure"
	// OutcomeServiceCallFailure indicates that a privileged service transaction failed.
	OutcomeServiceCallFailure OutcomeKind = "service-call-failure"
)

// AlreadyExistsDiagnostic is the diagnostic attached to outcomes that reuse an existing artifact.
const AlreadyExistsDiagnostic = "artifact already exists"

// CompilationOutcome is the terminal result of one compilation request.
// ArtifactPath is set iff Success is true.
type CompilationOutcome struct {
	Success      bool
	Kind         OutcomeKind
	Diagnostic   string
	ArtifactPath string
}

// Compiled returns a success outcome for a freshly produced artifact.
func Compiled(artifactPath string) CompilationOutcome {
	return CompilationOutcome{
		Success:      true,
		Kind:         OutcomeCompiled,
		ArtifactPath: artifactPath,
	}
}

// AlreadyCompiled returns a success outcome for an artifact that was already valid.
func AlreadyCompiled(artifactPath string) CompilationOutcome {
	return CompilationOutcome{
		Success:      true,
		Kind:         OutcomeAlreadyCompiled,
		Diagnostic:   AlreadyExistsDiagnostic,
		ArtifactPath: artifactPath,
	}
}

// Failed returns a failure outcome of the given kind.
func Failed(kind OutcomeKind, diagnostic string) CompilationOutcome {
	return CompilationOutcome{
		Kind:       kind,
		Diagnostic: diagnostic,
	}
}

// Err converts a failure outcome into an error carrying the matching sentinel.
// It returns nil for successful outcomes.
func (o CompilationOutcome) Err() error {
	if o.Success {
		return nil
	}

	var sentinel error
	switch o.Kind {
	case OutcomeUnsupportedPlatform:
		sentinel = ErrUnsupportedPlatform
	case OutcomeNotFound:
		sentinel = ErrSourceNotFound
	case OutcomeRegistrationFailed:
		sentinel = ErrRegistrationFailed
	case OutcomeServiceCallFailure:
		sentinel = ErrServiceCallFailure
	default:
		sentinel = ErrExternalToolFailure
	}

	if o.Diagnostic == "" {
		return sentinel
	}
	return zerr.With(zerr.Wrap(sentinel, o.Diagnostic), "outcome", string(o.Kind))
}
