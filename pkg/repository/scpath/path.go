package scpath

import (
	"path/filepath"
)

// RepositoryPath represents an absolute path to a repository root directory,
// the directory that holds the working set and the .beargit directory.
// Example: "/home/user/myproject"
type RepositoryPath string

// SourcePath represents a path inside the .beargit directory.
// Example: "/home/user/myproject/.beargit/.index"
type SourcePath string

// AbsolutePath is any absolute filesystem path handed to the storage layer.
type AbsolutePath string

// CommitPath is the directory of a single commit inside .beargit.
// Example: "/home/user/myproject/.beargit/0000…0001"
type CommitPath string

// TrackedName is a validated filename as stored in the staging index,
// relative to the repository root, using forward slashes.
type TrackedName string

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// Dir returns all but the last element of the path
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// Base returns the last element of the path
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

// IsValid checks if this is an absolute path
func (ap AbsolutePath) IsValid() bool {
	return filepath.IsAbs(string(ap))
}

// String returns the commit directory as a string
func (cp CommitPath) String() string {
	return string(cp)
}

// ToAbsolutePath converts to an absolute path
func (cp CommitPath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(cp)
}

// IndexPath returns the frozen index of the commit
func (cp CommitPath) IndexPath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(cp), IndexFile))
}

// ParentPath returns the parent pointer of the commit
func (cp CommitPath) ParentPath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(cp), HeadFile))
}

// MessagePath returns the message file of the commit
func (cp CommitPath) MessagePath() AbsolutePath {
	return AbsolutePath(filepath.Join(string(cp), MessageFile))
}

// SnapshotPath returns where the commit stores its copy of a tracked file
func (cp CommitPath) SnapshotPath(name TrackedName) AbsolutePath {
	return AbsolutePath(filepath.Join(string(cp), filepath.FromSlash(string(name))))
}
