package commitmanager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utkarsh5026/beargit/pkg/commitid"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/index"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

// Manager creates commits and reads them back.
//
// The commit creation process follows these steps:
//  1. Validate the message against the MessagePolicy
//  2. Read the head and compute the next commit id
//  3. Create the commit directory (replacing a stale one left by a failed attempt)
//  4. Copy the staging index, the old head and every tracked file into it,
//     then write the message
//  5. Atomically write the new id to the head
//
// The head is the only thing that makes a commit reachable, and it is
// written last. Any failure before that leaves the head unchanged.
//
// Thread Safety:
// Manager is not thread-safe. One operation runs per process.
type Manager struct {
	repo   sourcerepo.Repository
	fs     storage.FS
	index  *index.Manager
	policy MessagePolicy
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithPolicy replaces the message policy.
func WithPolicy(policy MessagePolicy) Option {
	return func(m *Manager) {
		m.policy = policy
	}
}

// NewManager creates a new commit Manager
//
// Example:
//
//	repo, _ := sourcerepo.Open(scpath.RepositoryPath("/path/to/repo"))
//	mgr := commitmanager.NewManager(repo, commitmanager.WithPolicy(commitmanager.NewMarkerPolicy("SHIP IT")))
func NewManager(repo sourcerepo.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:   repo,
		fs:     repo.FS(),
		index:  index.NewManager(repo),
		policy: NewMarkerPolicy(DefaultMarker),
		logger: logger.ForComponent(pkgName),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateCommit snapshots the staging index and every tracked file into a
// new commit and advances the head to it.
//
// Errors: INVALID_COMMIT_MESSAGE (nothing touched), NOT_INITIALIZED,
// INVALID_PATH for an index entry that cannot be used as a path,
// ID_SPACE_EXHAUSTED, IO_FAILURE. On any failure the head is unchanged.
func (m *Manager) CreateCommit(ctx context.Context, message string) (*Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := m.policy.Validate(message); err != nil {
		m.logger.Debug("commit message rejected", "error", err)
		return nil, err
	}

	head, err := m.repo.ReadHead()
	if err != nil {
		return nil, err
	}

	id, err := commitid.Next(head)
	if err != nil {
		return nil, scerr.Wrap(err, pkgName, "create commit")
	}

	names, err := m.trackedNames()
	if err != nil {
		return nil, err
	}

	source := m.repo.SourceDirectory()
	dir := source.CommitPath(id.String())

	if err := m.prepareDirectory(dir); err != nil {
		return nil, err
	}

	if err := m.snapshot(ctx, dir, names, message); err != nil {
		if rmErr := m.fs.RemoveAll(dir.ToAbsolutePath()); rmErr != nil {
			m.logger.Warn("failed to remove partial commit", "id", id.String(), "error", rmErr)
		}
		return nil, err
	}

	if err := m.fs.WriteFile(source.HeadPath(), []byte(id)); err != nil {
		if rmErr := m.fs.RemoveAll(dir.ToAbsolutePath()); rmErr != nil {
			m.logger.Warn("failed to remove unreachable commit", "id", id.String(), "error", rmErr)
		}
		return nil, ioFailure("create commit", "update head", err)
	}

	files := make([]string, len(names))
	for i, n := range names {
		files[i] = n.String()
	}

	m.logger.Info("commit created", "id", id.String(), "parent", head.String(), "files", len(files))
	return &Commit{ID: id, Parent: head, Message: message, Files: files}, nil
}

// trackedNames reads the staging index and checks every entry can be used
// as a path inside the commit directory.
func (m *Manager) trackedNames() ([]scpath.TrackedName, error) {
	list, err := m.index.List()
	if err != nil {
		return nil, err
	}

	names := make([]scpath.TrackedName, 0, len(list))
	for _, raw := range list {
		name, err := scpath.NewTrackedName(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// prepareDirectory creates the commit directory. A directory with the same
// name can only be debris from an earlier failed attempt, since the head
// never pointed at it, so it is removed first.
func (m *Manager) prepareDirectory(dir scpath.CommitPath) error {
	abs := dir.ToAbsolutePath()

	exists, err := m.fs.Exists(abs)
	if err != nil {
		return ioFailure("create commit", "inspect commit directory", err)
	}
	if exists {
		m.logger.Warn("removing stale commit directory", "path", abs.String())
		if err := m.fs.RemoveAll(abs); err != nil {
			return ioFailure("create commit", "remove stale commit directory", err)
		}
	}

	if err := m.fs.Mkdir(abs); err != nil {
		return ioFailure("create commit", "create commit directory", err)
	}
	return nil
}

func (m *Manager) snapshot(ctx context.Context, dir scpath.CommitPath, names []scpath.TrackedName, message string) error {
	source := m.repo.SourceDirectory()

	if err := m.fs.CopyFile(source.IndexPath(), dir.IndexPath()); err != nil {
		return ioFailure("snapshot", "copy index", err)
	}

	if err := m.fs.CopyFile(source.HeadPath(), dir.ParentPath()); err != nil {
		return ioFailure("snapshot", "copy parent pointer", err)
	}

	work := m.repo.WorkingDirectory()
	for _, name := range names {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.fs.CopyFile(work.WorkingFile(name), dir.SnapshotPath(name)); err != nil {
			if storage.IsNotExist(err) {
				return ioFailure("snapshot", fmt.Sprintf("tracked file %s is missing", name), err)
			}
			return ioFailure("snapshot", fmt.Sprintf("copy %s", name), err)
		}
	}

	if err := m.fs.WriteFile(dir.MessagePath(), []byte(message)); err != nil {
		return ioFailure("snapshot", "write message", err)
	}

	return ctx.Err()
}

// GetCommit reads a commit's frozen index, parent and message.
func (m *Manager) GetCommit(id commitid.ID) (*Commit, error) {
	dir := m.repo.SourceDirectory().CommitPath(id.String())

	isDir, err := m.fs.IsDir(dir.ToAbsolutePath())
	if err != nil {
		return nil, ioFailure("get commit", "inspect commit directory", err)
	}
	if !isDir || id.IsSentinel() {
		return nil, commitNotFound("get commit", id.String())
	}

	indexData, err := m.fs.ReadFile(dir.IndexPath())
	if err != nil {
		return nil, ioFailure("get commit", "read frozen index", err)
	}
	frozen, err := index.Parse(indexData)
	if err != nil {
		return nil, corruptCommit("get commit", id.String(), "unreadable index", err)
	}

	parentData, err := m.fs.ReadFile(dir.ParentPath())
	if err != nil {
		return nil, ioFailure("get commit", "read parent pointer", err)
	}
	parent, err := commitid.Parse(string(parentData))
	if err != nil {
		return nil, corruptCommit("get commit", id.String(), "invalid parent pointer", err)
	}

	msg, err := m.fs.ReadFile(dir.MessagePath())
	if err != nil {
		return nil, ioFailure("get commit", "read message", err)
	}

	return &Commit{
		ID:      id,
		Parent:  parent,
		Message: string(msg),
		Files:   frozen.Entries(),
	}, nil
}

// ReadSnapshot returns the content of a tracked file as it was in commit id.
func (m *Manager) ReadSnapshot(id commitid.ID, name string) ([]byte, error) {
	c, err := m.GetCommit(id)
	if err != nil {
		return nil, err
	}

	tracked, err := scpath.NewTrackedName(name)
	if err != nil {
		return nil, err
	}

	found := false
	for _, f := range c.Files {
		if f == name {
			found = true
			break
		}
	}
	if !found {
		return nil, scerr.New(pkgName, scerr.CodeNotTracked, "read snapshot",
			fmt.Sprintf("File %s not tracked in commit %s", name, id.Short()), nil)
	}

	dir := m.repo.SourceDirectory().CommitPath(id.String())
	data, err := m.fs.ReadFile(dir.SnapshotPath(tracked))
	if err != nil {
		return nil, ioFailure("read snapshot", fmt.Sprintf("read %s", name), err)
	}
	return data, nil
}
