package ports

import "go.trai.ch/dexopt/internal/core/domain"

// ArtifactResolver maps package files to their compiled artifacts.
//
//go:generate mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactResolver interface {
	// Locate computes the artifact location without touching the filesystem.
	Locate(sourceFile, isa string) domain.ArtifactLocation
	// Resolve computes the artifact location and creates its parent directory.
	Resolve(sourceFile, isa string) (domain.ArtifactLocation, error)
	// IsValid reports whether a usable artifact exists at the location.
	// Anything unusable found there is removed.
	IsValid(location domain.ArtifactLocation) bool
}
