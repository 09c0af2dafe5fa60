package index

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

func newTestManager(t *testing.T, opts ...sourcerepo.Option) (*Manager, string) {
	t.Helper()

	root, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)

	repo, err := sourcerepo.InitializeRepository(root, opts...)
	require.NoError(t, err)

	return NewManager(repo), filepath.Join(root.String(), ".beargit", ".index")
}

func readIndexFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestManager_AddListRemove(t *testing.T) {
	m, indexPath := newTestManager(t)

	require.NoError(t, m.Add("a.txt"))
	require.NoError(t, m.Add("src/b.go"))

	names, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "src/b.go"}, names)
	assert.Equal(t, "a.txt\nsrc/b.go\n", readIndexFile(t, indexPath))

	require.NoError(t, m.Remove("a.txt"))
	names, err = m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/b.go"}, names)
}

func TestManager_DuplicateLeavesFileUnchanged(t *testing.T) {
	m, indexPath := newTestManager(t)

	require.NoError(t, m.Add("a.txt"))
	before := readIndexFile(t, indexPath)

	err := m.Add("a.txt")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeDuplicateFile))
	assert.Equal(t, before, readIndexFile(t, indexPath))
}

func TestManager_RemoveUntrackedLeavesFileUnchanged(t *testing.T) {
	m, indexPath := newTestManager(t)

	require.NoError(t, m.Add("a.txt"))
	before := readIndexFile(t, indexPath)

	err := m.Remove("never-added.txt")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotTracked))
	assert.Equal(t, before, readIndexFile(t, indexPath))
}

func TestManager_InvalidNameRejected(t *testing.T) {
	m, indexPath := newTestManager(t)

	for _, name := range []string{"", "../escape", ".prev", "/abs"} {
		err := m.Add(name)
		require.Error(t, err, "name %q", name)
		assert.True(t, scerr.IsCode(err, scerr.CodeInvalidPath), "name %q", name)
	}
	assert.Empty(t, readIndexFile(t, indexPath))
}

func TestManager_AddAllIsAllOrNothing(t *testing.T) {
	m, indexPath := newTestManager(t)
	require.NoError(t, m.Add("b.txt"))

	err := m.AddAll([]string{"a.txt", "b.txt", "c.txt"})
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeDuplicateFile))
	assert.Equal(t, "b.txt\n", readIndexFile(t, indexPath))

	require.NoError(t, m.AddAll([]string{"a.txt", "c.txt"}))
	assert.Equal(t, "b.txt\na.txt\nc.txt\n", readIndexFile(t, indexPath))

	err = m.RemoveAll([]string{"a.txt", "zzz"})
	require.Error(t, err)
	assert.Equal(t, "b.txt\na.txt\nc.txt\n", readIndexFile(t, indexPath))
}

func TestManager_ToleratesHandEditedFile(t *testing.T) {
	m, indexPath := newTestManager(t)
	require.NoError(t, os.WriteFile(indexPath, []byte("  a.txt  \n\n b.txt\n"), 0644))

	names, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)

	require.NoError(t, m.Add("c.txt"))
	assert.Equal(t, "a.txt\nb.txt\nc.txt\n", readIndexFile(t, indexPath))
}

func TestManager_MissingIndex(t *testing.T) {
	m, indexPath := newTestManager(t)
	require.NoError(t, os.Remove(indexPath))

	_, err := m.List()
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotInitialized))

	err = m.Add("a.txt")
	assert.True(t, scerr.IsCode(err, scerr.CodeNotInitialized))
}

func TestManager_WriteFailure(t *testing.T) {
	fsys := storage.NewFaultFS(storage.NewOSFS(), nil)
	m, indexPath := newTestManager(t, sourcerepo.WithFS(fsys))

	fsys.SetFault(func(op storage.Op, p scpath.AbsolutePath) error {
		if op == storage.OpWrite {
			return errors.New("no space left on device")
		}
		return nil
	})

	err := m.Add("a.txt")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeIOFailure))
	assert.Empty(t, readIndexFile(t, indexPath))
}

// Replaying random add/remove sequences must leave exactly the names that
// were added and not removed afterwards.
func TestManager_ReplayProperty(t *testing.T) {
	m, _ := newTestManager(t)
	rng := rand.New(rand.NewSource(42))
	pool := []string{"a", "b", "c", "d", "e"}
	model := map[string]bool{}

	for i := 0; i < 200; i++ {
		name := pool[rng.Intn(len(pool))]
		if rng.Intn(2) == 0 {
			err := m.Add(name)
			if model[name] {
				assert.True(t, scerr.IsCode(err, scerr.CodeDuplicateFile))
			} else {
				require.NoError(t, err)
				model[name] = true
			}
		} else {
			err := m.Remove(name)
			if model[name] {
				require.NoError(t, err)
				delete(model, name)
			} else {
				assert.True(t, scerr.IsCode(err, scerr.CodeNotTracked))
			}
		}
	}

	names, err := m.List()
	require.NoError(t, err)
	assert.Len(t, names, len(model))
	for _, n := range names {
		assert.True(t, model[n], "unexpected tracked name %q", n)
	}
}
