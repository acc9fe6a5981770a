package domain

const (
	// ArtifactDirName is the directory next to the source file that holds compiled artifacts.
	ArtifactDirName = "oat"

	// ArtifactExt is the extension of a compiled artifact.
	ArtifactExt = ".odex"
)

// ArtifactLocation is the resolved on-disk location of a compiled artifact.
// Path is always <dir(SourceFile)>/oat/<InstructionSet>/<base>.odex.
type ArtifactLocation struct {
	SourceFile     string
	InstructionSet string
	Path           string
}
