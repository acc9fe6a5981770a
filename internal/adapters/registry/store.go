// Package registry persists the secondary modules registered with the package service.
package registry

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleRegistry = (*Store)(nil)

// Store implements ports.ModuleRegistry using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.SecondaryModule
}

// NewStore creates a registry backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.SecondaryModule),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	var modules []domain.SecondaryModule
	if err := json.Unmarshal(data, &modules); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", s.path)
	}
	for _, m := range modules {
		s.cache[m.Key()] = m
	}

	return nil
}

// save writes the registry. The caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.sorted(func(domain.SecondaryModule) bool { return true }), "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "path", s.path)
	}

	// Write then rename so a crash never leaves a truncated registry behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "path", s.path)
	}

	return nil
}

// Put stores or replaces a module.
func (s *Store) Put(module domain.SecondaryModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[module.Key()] = module
	return s.save()
}

// List returns the modules of a package ordered by path.
func (s *Store) List(packageName string) ([]domain.SecondaryModule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(func(m domain.SecondaryModule) bool { return m.PackageName == packageName }), nil
}

// All returns every module ordered by package and path.
func (s *Store) All() ([]domain.SecondaryModule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(func(domain.SecondaryModule) bool { return true }), nil
}

// Remove drops a module.
func (s *Store) Remove(packageName, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.SecondaryModule{PackageName: packageName, Path: path}.Key()
	if _, ok := s.cache[key]; !ok {
		return nil
	}
	delete(s.cache, key)
	return s.save()
}

// RemovePath drops every registration of path.
func (s *Store) RemovePath(path string) ([]domain.SecondaryModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.sorted(func(m domain.SecondaryModule) bool { return m.Path == path })
	if len(removed) == 0 {
		return nil, nil
	}
	for _, m := range removed {
		delete(s.cache, m.Key())
	}
	return removed, s.save()
}

func (s *Store) sorted(keep func(domain.SecondaryModule) bool) []domain.SecondaryModule {
	out := make([]domain.SecondaryModule, 0, len(s.cache))
	for _, m := range s.cache {
		if keep(m) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b domain.SecondaryModule) int {
		if c := strings.Compare(a.PackageName, b.PackageName); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return out
}
