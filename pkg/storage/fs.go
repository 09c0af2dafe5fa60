// Package storage is the storage I/O capability the commit store runs on.
//
// Every call either fully succeeds or reports a failure. Writes are atomic
// (temp file + rename) so a reader never observes a half-written index, head
// or snapshot file.
package storage

import (
	"errors"
	"io/fs"
	"os"

	"github.com/utkarsh5026/beargit/pkg/common/fileops"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

// FileMode is applied to every file the store writes.
const FileMode os.FileMode = 0644

// FS abstracts the filesystem operations used by the repository packages.
type FS interface {
	ReadFile(p scpath.AbsolutePath) ([]byte, error)
	WriteFile(p scpath.AbsolutePath, data []byte) error
	CopyFile(src, dst scpath.AbsolutePath) error
	Mkdir(p scpath.AbsolutePath) error
	MkdirAll(p scpath.AbsolutePath) error
	RemoveAll(p scpath.AbsolutePath) error
	Exists(p scpath.AbsolutePath) (bool, error)
	IsDir(p scpath.AbsolutePath) (bool, error)
}

// IsNotExist reports whether err says a path is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// OSFS is the FS backed by the host filesystem.
type OSFS struct{}

// NewOSFS returns the host filesystem implementation.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (OSFS) ReadFile(p scpath.AbsolutePath) ([]byte, error) {
	return fileops.ReadBytes(p)
}

func (OSFS) WriteFile(p scpath.AbsolutePath, data []byte) error {
	return fileops.AtomicWrite(p, data, FileMode)
}

// CopyFile copies src to dst, creating dst's parent directories first.
func (OSFS) CopyFile(src, dst scpath.AbsolutePath) error {
	if err := fileops.EnsureParentDir(dst); err != nil {
		return err
	}
	return fileops.AtomicCopy(src, dst, FileMode)
}

// Mkdir creates a single directory and fails if it already exists.
func (OSFS) Mkdir(p scpath.AbsolutePath) error {
	return os.Mkdir(p.String(), 0755)
}

func (OSFS) MkdirAll(p scpath.AbsolutePath) error {
	return fileops.EnsureDir(p)
}

func (OSFS) RemoveAll(p scpath.AbsolutePath) error {
	return fileops.RemoveAll(p)
}

func (OSFS) Exists(p scpath.AbsolutePath) (bool, error) {
	return fileops.Exists(p)
}

func (OSFS) IsDir(p scpath.AbsolutePath) (bool, error) {
	return fileops.IsDirectory(p)
}
