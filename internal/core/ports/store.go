package ports

import "go.trai.ch/dexopt/internal/core/domain"

// ModuleRegistry persists the secondary modules registered with the package service.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ModuleRegistry interface {
	// Put stores or replaces a module.
	Put(module domain.SecondaryModule) error
	// List returns the modules registered for a package, ordered by path.
	List(packageName string) ([]domain.SecondaryModule, error)
	// Remove drops a module. Removing an unknown module is not an error.
	Remove(packageName, path string) error
	// RemovePath drops every registration of path and returns the removed modules.
	RemovePath(path string) ([]domain.SecondaryModule, error)
	// All returns every registered module.
	All() ([]domain.SecondaryModule, error)
}
