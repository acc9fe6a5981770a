package ports

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
)

// ArtifactCompiler produces a compiled artifact from a package file.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type ArtifactCompiler interface {
	// CompileArtifact compiles sourceFile into location with the given compiler filter.
	// The error carries the exit code or the interruption that ended the compiler.
	CompileArtifact(ctx context.Context, sourceFile string, location domain.ArtifactLocation, filter string) error
}
