package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

func TestOSFS_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFS()

	file := scpath.AbsolutePath(filepath.Join(dir, ".index"))
	require.NoError(t, fsys.WriteFile(file, []byte("a.txt\n")))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", string(data))

	ok, err := fsys.Exists(file)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOSFS_ReadMissing(t *testing.T) {
	_, err := NewOSFS().ReadFile(scpath.AbsolutePath(filepath.Join(t.TempDir(), "nope")))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestOSFS_CopyFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFS()

	src := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(src, []byte("int main;"), 0644))

	dst := scpath.AbsolutePath(filepath.Join(dir, "commit", "src", "main.c"))
	require.NoError(t, fsys.CopyFile(scpath.AbsolutePath(src), dst))

	data, err := os.ReadFile(dst.String())
	require.NoError(t, err)
	assert.Equal(t, "int main;", string(data))
}

func TestOSFS_MkdirFailsWhenPresent(t *testing.T) {
	dir := scpath.AbsolutePath(filepath.Join(t.TempDir(), "c1"))
	fsys := NewOSFS()

	require.NoError(t, fsys.Mkdir(dir))
	err := fsys.Mkdir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)

	isDir, err := fsys.IsDir(dir)
	require.NoError(t, err)
	assert.True(t, isDir)

	require.NoError(t, fsys.RemoveAll(dir))
	ok, err := fsys.Exists(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFaultFS(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("disk full")
	target := scpath.AbsolutePath(filepath.Join(dir, ".prev"))

	fsys := NewFaultFS(NewOSFS(), func(op Op, p scpath.AbsolutePath) error {
		if op == OpWrite && p == target {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, fsys.WriteFile(target, []byte("x")), boom)
	require.NoError(t, fsys.WriteFile(scpath.AbsolutePath(filepath.Join(dir, "other")), []byte("y")))

	ok, err := fsys.Exists(target)
	require.NoError(t, err)
	assert.False(t, ok, "failed write must not reach the wrapped FS")

	fsys.SetFault(nil)
	require.NoError(t, fsys.WriteFile(target, []byte("x")))

	assert.Equal(t, []Op{OpWrite, OpWrite, OpStat, OpWrite}, fsys.Calls())
}
