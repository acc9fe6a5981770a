package domain

import "time"

// SecondaryModule is a package file registered with the package service on behalf of a package.
type SecondaryModule struct {
	PackageName  string    `json:"package_name"`
	Path         string    `json:"path"`
	IsShared     bool      `json:"is_shared"`
	Fingerprint  string    `json:"fingerprint"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Key returns the registry key of the module.
func (m SecondaryModule) Key() string {
	return m.PackageName + "\x00" + m.Path
}
