package domain

// Transaction codes and flags understood by the package service.
const (
	// FlagOneway marks a transaction whose caller does not wait for a reply.
	FlagOneway uint32 = 0x01

	// FirstCallTransaction is the first code available to interface methods.
	FirstCallTransaction uint32 = 0x00000001

	// TransactionRegisterDexModule is the package manager method that registers a secondary module.
	TransactionRegisterDexModule = FirstCallTransaction + 1

	// ShellCommandTransaction runs a shell command inside the remote service.
	ShellCommandTransaction = uint32('_')<<24 | uint32('C')<<16 | uint32('M')<<8 | uint32('D')

	// PingTransaction checks that the remote service is alive.
	PingTransaction = uint32('_')<<24 | uint32('P')<<16 | uint32('N')<<8 | uint32('G')
)

const (
	// PackageServiceName is the name the package service is published under.
	PackageServiceName = "package"

	// PackageManagerDescriptor is the interface token of the package manager.
	PackageManagerDescriptor = "android.content.pm.IPackageManager"

	// DefaultDex2oat is the compiler executable looked up on PATH when none is configured.
	DefaultDex2oat = "dex2oat"
)

// Shell command verbs and flags.
const (
	CommandCompile          = "compile"
	CommandReconcile        = "reconcile-secondary-dex-files"
	CompileFlagForce        = "-f"
	CompileFlagSecondaryDex = "--secondary-dex"
	CompileFlagFilter       = "-m"
)

// Dex2oatArgs returns the argument vector of a direct compiler invocation.
func Dex2oatArgs(dex2oat, sourceFile, artifactPath, isa, filter string) []string {
	return []string{
		dex2oat,
		"--runtime-arg",
		"-classpath",
		"--runtime-arg",
		"&",
		"--dex-file=" + sourceFile,
		"--oat-file=" + artifactPath,
		"--instruction-set=" + isa,
		"--compiler-filter=" + filter,
	}
}

// CompileSecondaryDexArgs returns the shell command that force-compiles the secondary modules of a package.
func CompileSecondaryDexArgs(filter, packageName string) []string {
	return []string{
		CommandCompile,
		CompileFlagForce,
		CompileFlagSecondaryDex,
		CompileFlagFilter,
		filter,
		packageName,
	}
}

// ReconcileSecondaryDexArgs returns the shell command that drops stale secondary modules of a package.
func ReconcileSecondaryDexArgs(packageName string) []string {
	return []string{CommandReconcile, packageName}
}
