// Package workdir reports the state of the working directory relative to
// the staging index.
package workdir

import (
	"log/slog"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/index"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

const pkgName = "workdir"

// Manager answers status queries. It never modifies the repository.
type Manager struct {
	repo   sourcerepo.Repository
	fs     storage.FS
	index  *index.Manager
	logger *slog.Logger
}

// NewManager creates a new working directory manager
func NewManager(repo sourcerepo.Repository) *Manager {
	return &Manager{
		repo:   repo,
		fs:     repo.FS(),
		index:  index.NewManager(repo),
		logger: logger.ForComponent(pkgName),
	}
}

// Status lists the tracked files and checks each one is present in the
// working directory. A missing index fails with NOT_INITIALIZED.
func (m *Manager) Status() (*Status, error) {
	files, err := m.index.List()
	if err != nil {
		return nil, err
	}

	status := &Status{
		Files:   files,
		Count:   len(files),
		Missing: []string{},
	}

	work := m.repo.WorkingDirectory()
	for _, raw := range files {
		present, err := m.isPresent(work, raw)
		if err != nil {
			return nil, err
		}
		if !present {
			status.Missing = append(status.Missing, raw)
		}
	}

	if len(status.Missing) > 0 {
		m.logger.Debug("tracked files missing from working directory", "count", len(status.Missing))
	}
	return status, nil
}

// isPresent reports whether raw names a regular file in the working
// directory. Names that cannot be resolved to a path, which only a
// hand-edited index can contain, count as missing.
func (m *Manager) isPresent(work scpath.RepositoryPath, raw string) (bool, error) {
	name, err := scpath.NewTrackedName(raw)
	if err != nil {
		return false, nil
	}

	p := work.WorkingFile(name)
	exists, err := m.fs.Exists(p)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "status", "", err).
			WithContext("path", p.String())
	}
	if !exists {
		return false, nil
	}

	isDir, err := m.fs.IsDir(p)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "status", "", err).
			WithContext("path", p.String())
	}
	return !isDir, nil
}
