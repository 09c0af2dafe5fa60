package scpath

import (
	"fmt"
	"path/filepath"
)

// String returns the path as a string
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid checks if this is a valid absolute path
func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

// Join joins path elements to the repository path
func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// WorkingFile returns the working-set location of a tracked file.
// TrackedName is validated on construction, so the result never leaves rp.
func (rp RepositoryPath) WorkingFile(name TrackedName) AbsolutePath {
	return AbsolutePath(filepath.Join(string(rp), filepath.FromSlash(string(name))))
}

// SourcePath returns the path to the .beargit directory
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), SourceDir))
}

// NewRepositoryPath creates a new RepositoryPath from a string
func NewRepositoryPath(path string) (RepositoryPath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryPath(absPath), nil
}
