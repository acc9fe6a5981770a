package domain

// Platform release levels the dispatcher and strategies branch on.
const (
	// SDKNougatMR1 is the last release that only understands the legacy compiler filters.
	SDKNougatMR1 = 25

	// MinSupportedSDK is the first release that can be compiled for ("O").
	MinSupportedSDK = 26

	// PrivilegedServiceSDK is the first release that routes compilation through the package service ("Q").
	PrivilegedServiceSDK = 29

	// SDKS is the release from which secondary modules are compiled with the verify filter ("S").
	SDKS = 31
)

// Compiler filters passed to the compiler or to the package service.
const (
	FilterQuicken       = "quicken"
	FilterInterpretOnly = "interpret-only"
	FilterVerify        = "verify"
	FilterSpeedProfile  = "speed-profile"
)

// PlatformVersion is the integer release level of the host platform.
type PlatformVersion int

// Supported reports whether compilation can be attempted on this release.
func (v PlatformVersion) Supported() bool {
	return v >= MinSupportedSDK
}

// UsesPrivilegedService reports whether this release compiles through the package service.
func (v PlatformVersion) UsesPrivilegedService() bool {
	return v >= PrivilegedServiceSDK
}

// ProcessCompilerFilter returns the filter for direct compiler invocation.
func (v PlatformVersion) ProcessCompilerFilter() string {
	if v > SDKNougatMR1 {
		return FilterQuicken
	}
	return FilterInterpretOnly
}

// ServiceCompilerFilter returns the filter for the package service compile command.
func (v PlatformVersion) ServiceCompilerFilter() string {
	if v >= SDKS {
		return FilterVerify
	}
	return FilterSpeedProfile
}
