package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

// AtomicWrite writes data to a file atomically by using a temporary file and rename.
// This ensures that the file is never in a partial state.
func AtomicWrite(targetPath scpath.AbsolutePath, data []byte, mode os.FileMode) error {
	tmpFile, err := os.CreateTemp(targetPath.Dir().String(), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := syncAndClose(tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	return renameTempFile(tmpFile.Name(), targetPath.String(), mode)
}

// AtomicCopy streams src into a temporary file next to dst and renames it
// into place, so dst either keeps its old content or holds a full copy.
func AtomicCopy(src, dst scpath.AbsolutePath, mode os.FileMode) error {
	in, err := os.Open(src.String())
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	tmpFile, err := os.CreateTemp(dst.Dir().String(), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := io.Copy(tmpFile, in); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src.String()), err)
	}

	if err := syncAndClose(tmpFile); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src.String()), err)
	}

	return renameTempFile(tmpFile.Name(), dst.String(), mode)
}

// syncAndClose flushes the temp file to stable storage before it is renamed.
func syncAndClose(tmpFile *os.File) error {
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// renameTempFile applies the final mode and swaps the temp file into place.
func renameTempFile(tmpPath string, targetPath string, mode os.FileMode) error {
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
