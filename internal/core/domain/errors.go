// Package domain contains the core types of ahead-of-time package compilation.
package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedPlatform is returned when the host platform version predates the minimum supported release.
	ErrUnsupportedPlatform = zerr.New("unsupported platform version")

	// ErrSourceNotFound is returned when the package file does not exist or is not a regular file.
	ErrSourceNotFound = zerr.New("package file not found")

	// ErrRegistrationFailed is returned when the package file could not be registered as a secondary module.
	ErrRegistrationFailed = zerr.New("module registration failed")

	// ErrExternalToolFailure is returned when the external compiler exits non-zero or its wait is interrupted.
	ErrExternalToolFailure = zerr.New("external compiler failed")

	// ErrServiceCallFailure is returned when a privileged service transaction fails or replies with an exception.
	ErrServiceCallFailure = zerr.New("privileged service call failed")

	// ErrCleanupFailed is logged when the best-effort reconciliation step fails.
	ErrCleanupFailed = zerr.New("secondary module reconciliation failed")

	// ErrCapabilityUnsupported is returned by providers that cannot serve a capability on this platform version.
	ErrCapabilityUnsupported = zerr.New("capability not supported on this platform version")

	// ErrVersionProbeFailed is returned when the host platform version cannot be determined.
	ErrVersionProbeFailed = zerr.New("failed to determine platform version")

	// ErrInstructionSetProbeFailed is returned when the host instruction set cannot be determined.
	ErrInstructionSetProbeFailed = zerr.New("failed to determine instruction set")

	// ErrArtifactDirCreateFailed is returned when the artifact directory cannot be created.
	ErrArtifactDirCreateFailed = zerr.New("failed to create artifact directory")

	// ErrInvalidSourcePath is returned when a compilation request is built from an empty or unresolvable path.
	ErrInvalidSourcePath = zerr.New("invalid package path")

	// ErrProcessStartFailed is returned when a child process cannot be started.
	ErrProcessStartFailed = zerr.New("failed to start process")

	// ErrEmptyCommand is returned when a process is started without an argument vector.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrServiceNotFound is returned when the service manager has no service under the requested name.
	ErrServiceNotFound = zerr.New("service not found")

	// ErrBinderDead is returned when a transaction is attempted on a handle whose peer is gone.
	ErrBinderDead = zerr.New("binder handle is dead")

	// ErrRemoteException is returned when a transaction reply carries an exception.
	ErrRemoteException = zerr.New("remote exception")

	// ErrCommandResult is returned when a shell command transaction reports a non-zero result code.
	ErrCommandResult = zerr.New("shell command returned non-zero result")

	// ErrParcelUnderflow is returned when a parcel read runs past the end of the payload.
	ErrParcelUnderflow = zerr.New("parcel underflow")

	// ErrParcelMalformed is returned when a parcel contains an unexpected object or length.
	ErrParcelMalformed = zerr.New("malformed parcel")

	// ErrUnknownTransaction is returned by services for transaction codes they do not implement.
	ErrUnknownTransaction = zerr.New("unknown transaction code")

	// ErrShellCommandUsage is returned when a shell command has unknown options or missing arguments.
	ErrShellCommandUsage = zerr.New("invalid shell command usage")

	// ErrInterfaceMismatch is returned when a transaction carries a foreign interface token.
	ErrInterfaceMismatch = zerr.New("interface token mismatch")

	// ErrMissingPackageName is returned when the service path is used without a configured package name.
	ErrMissingPackageName = zerr.New("package name is not configured")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrRegistryReadFailed is returned when the module registry cannot be read.
	ErrRegistryReadFailed = zerr.New("failed to read module registry")

	// ErrRegistryWriteFailed is returned when the module registry cannot be written.
	ErrRegistryWriteFailed = zerr.New("failed to write module registry")

	// ErrModuleFingerprintFailed is returned when a module's content fingerprint cannot be computed.
	ErrModuleFingerprintFailed = zerr.New("failed to fingerprint module")

	// ErrDaemonSpawnFailed is returned when the privileged daemon process cannot be started.
	ErrDaemonSpawnFailed = zerr.New("failed to spawn daemon")

	// ErrDaemonUnavailable is returned when the privileged daemon does not respond.
	ErrDaemonUnavailable = zerr.New("daemon is not running")

	// ErrTypeNotFound is returned by the reflective cache when no type is registered under a name.
	ErrTypeNotFound = zerr.New("type not found")

	// ErrMemberNotFound is returned by the reflective cache when no matching member exists.
	ErrMemberNotFound = zerr.New("member not found")

	// ErrInvocationFailed is returned when a reflective invocation receives unusable arguments.
	ErrInvocationFailed = zerr.New("reflective invocation failed")

	// ErrProviderMismatch is returned when a capability provider is not the one registered for a platform version.
	ErrProviderMismatch = zerr.New("provider does not serve this platform version")
)
