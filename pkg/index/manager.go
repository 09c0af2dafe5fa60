package index

import (
	"log/slog"
	"sync"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

// Manager owns the persisted staging index of one repository.
//
// Every mutation reads the persisted file, applies the change in memory and
// rewrites the file atomically. A rejected mutation (invalid name, duplicate,
// untracked) never writes, so the file stays byte-identical.
type Manager struct {
	fs        storage.FS
	indexPath scpath.AbsolutePath
	mu        sync.Mutex
	logger    *slog.Logger
}

// NewManager creates a new index manager.
func NewManager(repo sourcerepo.Repository) *Manager {
	return &Manager{
		fs:        repo.FS(),
		indexPath: repo.SourceDirectory().IndexPath(),
		logger:    logger.ForComponent(pkgName),
	}
}

// Load reads the persisted index. A missing file means the repository was
// never initialized.
func (m *Manager) Load() (*Index, error) {
	data, err := m.fs.ReadFile(m.indexPath)
	if err != nil {
		if storage.IsNotExist(err) {
			return nil, scerr.New(pkgName, scerr.CodeNotInitialized, "load", sourcerepo.NotRepositoryMessage, err)
		}
		return nil, scerr.New(pkgName, scerr.CodeIOFailure, "load", "", err)
	}
	return Parse(data)
}

// List returns the tracked names in order.
func (m *Manager) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.Load()
	if err != nil {
		return nil, err
	}
	return idx.Entries(), nil
}

// Add starts tracking name.
func (m *Manager) Add(name string) error {
	return m.AddAll([]string{name})
}

// AddAll tracks names in order and persists once. The first invalid or
// duplicate name aborts the call and nothing is written.
func (m *Manager) AddAll(names []string) error {
	return m.update("add", names, func(idx *Index, name string) error {
		tracked, err := scpath.NewTrackedName(name)
		if err != nil {
			return err
		}
		return idx.Add(tracked.String())
	})
}

// Remove stops tracking name.
func (m *Manager) Remove(name string) error {
	return m.RemoveAll([]string{name})
}

// RemoveAll untracks names in order and persists once. The first name that
// is not tracked aborts the call and nothing is written.
func (m *Manager) RemoveAll(names []string) error {
	return m.update("remove", names, func(idx *Index, name string) error {
		return idx.Remove(name)
	})
}

func (m *Manager) update(op string, names []string, apply func(*Index, string) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.Load()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := apply(idx, name); err != nil {
			m.logger.Debug("index update rejected", "op", op, "name", name, "error", err)
			return err
		}
	}

	if err := m.fs.WriteFile(m.indexPath, idx.Bytes()); err != nil {
		m.logger.Error("failed to persist index", "op", op, "error", err)
		return scerr.New(pkgName, scerr.CodeIOFailure, op, "", err)
	}

	m.logger.Debug("index updated", "op", op, "names", names, "count", idx.Count())
	return nil
}
