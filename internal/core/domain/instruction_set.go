package domain

// DefaultInstructionSet is used when the host instruction set cannot be determined.
const DefaultInstructionSet = "arm64"

var abiInstructionSets = map[string]string{
	"arm64-v8a":   "arm64",
	"armeabi-v7a": "arm",
	"armeabi":     "arm",
	"x86_64":      "x86_64",
	"x86":         "x86",
	"riscv64":     "riscv64",
}

// InstructionSetForABI maps a platform ABI name to the compiler instruction set name.
func InstructionSetForABI(abi string) (string, bool) {
	isa, ok := abiInstructionSets[abi]
	return isa, ok
}
