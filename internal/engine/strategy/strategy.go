// Package strategy implements the two ways a package file gets compiled: by
// running the compiler directly, or by asking the package service to do it.
package strategy

import (
	"context"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

// instructionSet resolves the target instruction set once and remembers it.
type instructionSet struct {
	provider ports.InstructionSetProvider
	logger   ports.Logger

	once  sync.Once
	value string
}

func (i *instructionSet) get(ctx context.Context) string {
	i.once.Do(func() {
		isa, err := i.provider.CurrentInstructionSet(ctx)
		if err != nil || isa == "" {
			if err != nil {
				i.logger.Warn("instruction set unavailable, using " + domain.DefaultInstructionSet + ": " + err.Error())
			}
			isa = domain.DefaultInstructionSet
		}
		i.value = isa
	})
	return i.value
}

// precheck resolves the artifact location and reports whether a valid artifact is already there.
func precheck(resolver ports.ArtifactResolver, sourcePath, isa string) (domain.ArtifactLocation, bool, error) {
	loc, err := resolver.Resolve(sourcePath, isa)
	if err != nil {
		return domain.ArtifactLocation{}, false, err
	}
	return loc, resolver.IsValid(loc), nil
}

// postcheck warns when a run that reported success left no usable artifact behind.
func postcheck(resolver ports.ArtifactResolver, logger ports.Logger, loc domain.ArtifactLocation) {
	if !resolver.IsValid(loc) {
		logger.Warn("compilation reported success but no valid artifact exists at " + loc.Path)
	}
}
