// Package artifact maps package files to their compiled artifacts on disk.
package artifact

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactResolver = (*Resolver)(nil)

// Resolver implements ports.ArtifactResolver.
type Resolver struct {
	logger ports.Logger
}

// NewResolver creates a new Resolver. Removal of unusable artifacts is reported to logger.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Locate returns <dir(sourceFile)>/oat/<isa>/<base>.odex, where base is the file name
// with its last extension removed. A leading dot is part of the name, not an extension.
func (r *Resolver) Locate(sourceFile, isa string) domain.ArtifactLocation {
	name := filepath.Base(sourceFile)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	return domain.ArtifactLocation{
		SourceFile:     sourceFile,
		InstructionSet: isa,
		Path:           filepath.Join(filepath.Dir(sourceFile), domain.ArtifactDirName, isa, name+domain.ArtifactExt),
	}
}

// Resolve locates the artifact and creates its parent directory if needed.
func (r *Resolver) Resolve(sourceFile, isa string) (domain.ArtifactLocation, error) {
	loc := r.Locate(sourceFile, isa)

	dir := filepath.Dir(loc.Path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return loc, zerr.With(zerr.Wrap(err, domain.ErrArtifactDirCreateFailed.Error()), "path", dir)
	}

	return loc, nil
}

// IsValid reports whether a readable, non-empty regular file exists at the location.
// Symlinks are followed. Anything else found at the path, including a dangling link
// or a directory tree, is removed.
func (r *Resolver) IsValid(loc domain.ArtifactLocation) bool {
	info, err := os.Stat(loc.Path)
	if err == nil && info.Mode().IsRegular() && info.Size() > 0 && readable(loc.Path) {
		return true
	}

	if _, err := os.Lstat(loc.Path); err != nil {
		return false
	}
	if err := os.RemoveAll(loc.Path); err != nil && r.logger != nil {
		r.logger.Error(zerr.With(zerr.Wrap(err, "failed to remove unusable artifact"), "path", loc.Path))
	}
	return false
}

func readable(path string) bool {
	f, err := os.Open(path) //nolint:gosec // path is derived from a caller-supplied package file
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
