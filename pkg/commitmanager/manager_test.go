package commitmanager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/beargit/pkg/commitid"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/index"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

var (
	firstID  = commitid.MustParse(strings.Repeat("0", 39) + "1")
	secondID = commitid.MustParse(strings.Repeat("0", 39) + "6")
	thirdID  = commitid.MustParse(strings.Repeat("0", 39) + "c")
)

type testRepo struct {
	t     *testing.T
	repo  *sourcerepo.SourceRepository
	fault *storage.FaultFS
	index *index.Manager
}

func setupRepo(t *testing.T) *testRepo {
	t.Helper()

	path, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)

	fault := storage.NewFaultFS(storage.NewOSFS(), nil)
	repo, err := sourcerepo.InitializeRepository(path, sourcerepo.WithFS(fault))
	require.NoError(t, err)

	return &testRepo{t: t, repo: repo, fault: fault, index: index.NewManager(repo)}
}

func (r *testRepo) root() string {
	return r.repo.WorkingDirectory().String()
}

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	full := filepath.Join(r.root(), name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0644))
}

func (r *testRepo) track(names ...string) {
	r.t.Helper()
	require.NoError(r.t, r.index.AddAll(names))
}

func (r *testRepo) readMeta(parts ...string) string {
	r.t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{r.root(), ".beargit"}, parts...)...))
	require.NoError(r.t, err)
	return string(data)
}

func (r *testRepo) commitDirs() []string {
	r.t.Helper()
	entries, err := os.ReadDir(filepath.Join(r.root(), ".beargit"))
	require.NoError(r.t, err)

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}

func TestCreateCommit_FirstCommit(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.write("b.txt", "beta")
	r.track("a.txt", "b.txt")

	m := NewManager(r.repo)
	c, err := m.CreateCommit(context.Background(), "initial GO BEARS!")
	require.NoError(t, err)

	assert.Equal(t, firstID, c.ID)
	assert.True(t, c.IsRoot())
	assert.Equal(t, []string{"a.txt", "b.txt"}, c.Files)

	assert.Equal(t, firstID.String(), r.readMeta(".prev"))
	assert.Equal(t, "a.txt\nb.txt\n", r.readMeta(firstID.String(), ".index"))
	assert.Equal(t, commitid.Sentinel.String(), r.readMeta(firstID.String(), ".prev"))
	assert.Equal(t, "initial GO BEARS!", r.readMeta(firstID.String(), ".msg"))
	assert.Equal(t, "alpha", r.readMeta(firstID.String(), "a.txt"))
	assert.Equal(t, "beta", r.readMeta(firstID.String(), "b.txt"))
}

func TestCreateCommit_Chain(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "v1")
	r.track("a.txt")

	m := NewManager(r.repo)
	ctx := context.Background()

	_, err := m.CreateCommit(ctx, "one GO BEARS!")
	require.NoError(t, err)

	r.write("a.txt", "v2")
	c2, err := m.CreateCommit(ctx, "two GO BEARS!")
	require.NoError(t, err)
	assert.Equal(t, secondID, c2.ID)
	assert.Equal(t, firstID, c2.Parent)

	c3, err := m.CreateCommit(ctx, "three GO BEARS!")
	require.NoError(t, err)
	assert.Equal(t, thirdID, c3.ID)

	snap, err := m.ReadSnapshot(firstID, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(snap))

	snap, err = m.ReadSnapshot(secondID, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(snap))

	assert.Equal(t, thirdID.String(), r.readMeta(".prev"))
}

func TestCreateCommit_EmptyIndex(t *testing.T) {
	r := setupRepo(t)

	c, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.NoError(t, err)
	assert.Empty(t, c.Files)
	assert.Equal(t, "", r.readMeta(firstID.String(), ".index"))
}

func TestCreateCommit_NestedNames(t *testing.T) {
	r := setupRepo(t)
	r.write("src/lib/util.c", "int x;")
	r.track("src/lib/util.c")

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.NoError(t, err)
	assert.Equal(t, "int x;", r.readMeta(firstID.String(), "src", "lib", "util.c"))
}

func TestCreateCommit_InvalidMessage(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.track("a.txt")
	before := r.fault.Calls()

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "go bears")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidCommitMessage))
	assert.Equal(t, `Message must contain "GO BEARS!"`, scerr.UserMessage(err))

	assert.Equal(t, before, r.fault.Calls(), "no storage access after rejection")
	assert.Equal(t, commitid.Sentinel.String(), r.readMeta(".prev"))
	assert.Empty(t, r.commitDirs())
}

func TestCreateCommit_CustomPolicy(t *testing.T) {
	r := setupRepo(t)
	m := NewManager(r.repo, WithPolicy(NewMarkerPolicy("SHIP IT")))

	_, err := m.CreateCommit(context.Background(), "GO BEARS!")
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidCommitMessage))

	_, err = m.CreateCommit(context.Background(), "SHIP IT")
	assert.NoError(t, err)
}

func TestCreateCommit_MissingTrackedFile(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.track("a.txt", "gone.txt")

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeIOFailure))

	assert.Equal(t, commitid.Sentinel.String(), r.readMeta(".prev"))
	assert.Empty(t, r.commitDirs(), "partial commit directory is removed")
}

func TestCreateCommit_IOFailureLeavesHead(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.write("b.txt", "beta")
	r.track("a.txt", "b.txt")

	m := NewManager(r.repo)
	_, err := m.CreateCommit(context.Background(), "one GO BEARS!")
	require.NoError(t, err)

	injected := errors.New("disk full")
	r.fault.SetFault(func(op storage.Op, p scpath.AbsolutePath) error {
		if op == storage.OpCopy && p.Base() == "b.txt" {
			return injected
		}
		return nil
	})

	_, err = m.CreateCommit(context.Background(), "two GO BEARS!")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeIOFailure))
	assert.ErrorIs(t, err, injected)

	assert.Equal(t, firstID.String(), r.readMeta(".prev"))
	assert.Equal(t, []string{firstID.String()}, r.commitDirs())
}

func TestCreateCommit_HeadWriteFailure(t *testing.T) {
	r := setupRepo(t)
	r.fault.SetFault(func(op storage.Op, p scpath.AbsolutePath) error {
		if op == storage.OpWrite && p.Base() == scpath.HeadFile && p.Dir().Base() == scpath.SourceDir {
			return errors.New("read-only filesystem")
		}
		return nil
	})

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeIOFailure))
	assert.Equal(t, commitid.Sentinel.String(), r.readMeta(".prev"))
	assert.Empty(t, r.commitDirs())
}

func TestCreateCommit_ReplacesStaleDirectory(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.track("a.txt")

	stale := filepath.Join(r.root(), ".beargit", firstID.String())
	require.NoError(t, os.MkdirAll(stale, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "junk"), []byte("x"), 0644))

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(stale, "junk"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "alpha", r.readMeta(firstID.String(), "a.txt"))
}

func TestCreateCommit_Cancelled(t *testing.T) {
	r := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManager(r.repo).CreateCommit(ctx, "GO BEARS!")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, commitid.Sentinel.String(), r.readMeta(".prev"))
}

func TestCreateCommit_LegacyInvalidName(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(r.root(), ".beargit", ".index"), []byte("../escape\n"), 0644))

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidPath))
	assert.Empty(t, r.commitDirs())
}

func TestCreateCommit_IDSpaceExhausted(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(r.root(), ".beargit", ".prev"), []byte(commitid.Max), 0644))

	_, err := NewManager(r.repo).CreateCommit(context.Background(), "GO BEARS!")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeIDSpaceExhausted))
	assert.Empty(t, r.commitDirs())
}

func TestGetCommit(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.track("a.txt")

	m := NewManager(r.repo)
	_, err := m.CreateCommit(context.Background(), "GO BEARS!\n")
	require.NoError(t, err)

	c, err := m.GetCommit(firstID)
	require.NoError(t, err)
	assert.Equal(t, firstID, c.ID)
	assert.Equal(t, commitid.Sentinel, c.Parent)
	assert.Equal(t, "GO BEARS!\n", c.Message)
	assert.Equal(t, []string{"a.txt"}, c.Files)

	_, err = m.GetCommit(secondID)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))

	_, err = m.GetCommit(commitid.Sentinel)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))
}

func TestReadSnapshot_NotTracked(t *testing.T) {
	r := setupRepo(t)
	r.write("a.txt", "alpha")
	r.track("a.txt")

	m := NewManager(r.repo)
	_, err := m.CreateCommit(context.Background(), "GO BEARS!")
	require.NoError(t, err)

	_, err = m.ReadSnapshot(firstID, "b.txt")
	assert.True(t, scerr.IsCode(err, scerr.CodeNotTracked))
}
