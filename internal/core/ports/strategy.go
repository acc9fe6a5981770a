package ports

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
)

// Strategy compiles one package file.
//
//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks
type Strategy interface {
	Compile(ctx context.Context, sourcePath string) domain.CompilationOutcome
}
