package scpath

const (
	// SourceDir is the name of the repository metadata directory
	SourceDir = ".beargit"

	// IndexFile is the staging index, both at the top of SourceDir and
	// inside every commit directory
	IndexFile = ".index"

	// HeadFile holds the current head identifier at the top of SourceDir and
	// the parent identifier inside every commit directory
	HeadFile = ".prev"

	// MessageFile holds the commit message inside a commit directory
	MessageFile = ".msg"

	// ConfigFile is the optional repository-level configuration
	ConfigFile = "config.json"

	// MaxNameLength bounds the byte length of a tracked filename
	MaxNameLength = 512
)

// reservedNames cannot be tracked: they would overwrite commit metadata.
var reservedNames = map[string]bool{
	IndexFile:   true,
	HeadFile:    true,
	MessageFile: true,
	SourceDir:   true,
}
