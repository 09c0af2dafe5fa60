package fileops

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

func noTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "temporary file left behind: %s", e.Name())
	}
}

func TestAtomicWrite_Success(t *testing.T) {
	tmpDir := t.TempDir()
	target := scpath.AbsolutePath(filepath.Join(tmpDir, "test-file.txt"))

	require.NoError(t, AtomicWrite(target, []byte("Hello, atomic write!"), 0644))

	content, err := os.ReadFile(target.String())
	require.NoError(t, err)
	assert.Equal(t, "Hello, atomic write!", string(content))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(target.String())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
	noTempFiles(t, tmpDir)
}

func TestAtomicWrite_OverwriteExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, ".prev")
	require.NoError(t, os.WriteFile(target, []byte(strings.Repeat("0", 40)), 0644))

	next := strings.Repeat("0", 39) + "1"
	require.NoError(t, AtomicWrite(scpath.AbsolutePath(target), []byte(next), 0644))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, next, string(content))
}

func TestAtomicWrite_EmptyData(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".index")
	require.NoError(t, AtomicWrite(scpath.AbsolutePath(target), nil, 0644))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestAtomicWrite_InvalidDirectory(t *testing.T) {
	target := scpath.AbsolutePath(filepath.Join(t.TempDir(), "missing", "file.txt"))
	assert.Error(t, AtomicWrite(target, []byte("x"), 0644))
}

func TestAtomicWrite_ConcurrentWrites(t *testing.T) {
	tmpDir := t.TempDir()
	target := scpath.AbsolutePath(filepath.Join(tmpDir, "shared.txt"))

	payloads := []string{"alpha", "bravo", "charlie", "delta"}
	var wg sync.WaitGroup
	for _, p := range payloads {
		wg.Add(1)
		go func(data string) {
			defer wg.Done()
			assert.NoError(t, AtomicWrite(target, []byte(data), 0644))
		}(p)
	}
	wg.Wait()

	content, err := os.ReadFile(target.String())
	require.NoError(t, err)
	assert.Contains(t, payloads, string(content), "file must hold exactly one complete payload")
	noTempFiles(t, tmpDir)
}

func TestAtomicCopy(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("snapshot me"), 0644))

	dstDir := filepath.Join(tmpDir, "commit")
	require.NoError(t, os.Mkdir(dstDir, 0755))
	dst := scpath.AbsolutePath(filepath.Join(dstDir, "a.txt"))

	require.NoError(t, AtomicCopy(scpath.AbsolutePath(src), dst, 0644))

	content, err := os.ReadFile(dst.String())
	require.NoError(t, err)
	assert.Equal(t, "snapshot me", string(content))
	noTempFiles(t, dstDir)
}

func TestAtomicCopy_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	src := scpath.AbsolutePath(filepath.Join(tmpDir, "gone.txt"))
	dst := scpath.AbsolutePath(filepath.Join(tmpDir, "copy.txt"))

	err := AtomicCopy(src, dst, 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dst.String())
	assert.True(t, os.IsNotExist(statErr))
}
