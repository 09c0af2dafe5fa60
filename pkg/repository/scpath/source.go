package scpath

import "path/filepath"

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// IsValid checks if this is a valid source path
func (sp SourcePath) IsValid() bool {
	return len(sp) > 0
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	parts := append([]string{string(sp)}, elem...)
	return SourcePath(filepath.Join(parts...))
}

// ToAbsolutePath converts to an absolute path
func (sp SourcePath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(sp)
}

// HeadPath returns the path to the head pointer (.prev)
func (sp SourcePath) HeadPath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(sp), HeadFile))
}

// IndexPath returns the path to the staging index (.index)
func (sp SourcePath) IndexPath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(sp), IndexFile))
}

// ConfigPath returns the path to the repository config file
func (sp SourcePath) ConfigPath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(sp), ConfigFile))
}

// CommitPath returns the directory of the commit with the given identifier.
// The identifier is not validated here; callers pass commitid.ID values.
func (sp SourcePath) CommitPath(id string) CommitPath {
	return CommitPath(filepath.Join(string(sp), id))
}
