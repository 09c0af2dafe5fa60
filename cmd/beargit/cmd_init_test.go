package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	t.Run("creates layout", func(t *testing.T) {
		h := NewTestHelper(t)

		res := h.MustRun("init")
		assert.Contains(t, res.Stdout, "Initialized empty beargit repository")
		assert.Equal(t, "", h.ReadMeta(".index"))
		assert.Equal(t, "0000000000000000000000000000000000000000", h.ReadMeta(".prev"))
	})

	t.Run("relative path argument", func(t *testing.T) {
		h := NewTestHelper(t)

		h.MustRun("init", "nested/project")
		_, err := os.Stat(filepath.Join(h.RepoPath, "nested", "project", ".beargit", ".prev"))
		require.NoError(t, err)
	})

	t.Run("refuses existing repository", func(t *testing.T) {
		h := NewTestHelper(t)
		h.MustRun("init")
		h.WriteFile("a.txt", "a")
		h.MustRun("add", "a.txt")

		res := h.Run("init")
		assert.Equal(t, 1, res.Code)
		assert.Contains(t, res.Stderr, "ERROR: repository already exists")
		assert.Equal(t, "a.txt\n", h.ReadMeta(".index"))
	})
}

func TestCommandsOutsideRepository(t *testing.T) {
	h := NewTestHelper(t)

	for _, args := range [][]string{{"status"}, {"add", "a.txt"}, {"log"}, {"commit", "-m", "GO BEARS!"}} {
		res := h.Run(args...)
		assert.Equal(t, 1, res.Code, "%v", args)
		assert.Contains(t, res.Stderr, "ERROR: not a beargit repository", "%v", args)
	}
}

func TestUnknownLogLevel(t *testing.T) {
	h := NewTestHelper(t)
	res := h.Run("--log-level", "loud", "status")
	assert.Equal(t, 1, res.Code)
	assert.Contains(t, res.Stderr, "unknown log level")
}
