package fileops

import (
	"fmt"
	"os"

	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

// Exists checks if a file or directory exists at the given path.
// Returns an error only if there's a filesystem error other than non-existence.
func Exists(p scpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// EnsureDir creates a directory and any missing parents.
func EnsureDir(path scpath.AbsolutePath) error {
	if err := os.MkdirAll(path.String(), 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path.String(), err)
	}
	return nil
}

// EnsureParentDir ensures that the parent directory of a file exists.
func EnsureParentDir(p scpath.AbsolutePath) error {
	if err := os.MkdirAll(p.Dir().String(), 0755); err != nil {
		return fmt.Errorf("ensure parent directory: %w", err)
	}
	return nil
}

// ReadBytes reads a file and returns its raw bytes.
// A missing file is reported as an error wrapping fs.ErrNotExist.
func ReadBytes(p scpath.AbsolutePath) ([]byte, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// RemoveAll removes a path and everything below it.
// A path that does not exist is not an error.
func RemoveAll(p scpath.AbsolutePath) error {
	if err := os.RemoveAll(p.String()); err != nil {
		return fmt.Errorf("remove %s: %w", p.String(), err)
	}
	return nil
}

// IsDirectory checks if the path exists and is a directory.
func IsDirectory(p scpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.IsDir(), nil
}

// IsFile checks if the path exists and is a regular file (not a directory).
func IsFile(p scpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return !info.IsDir(), nil
}
