package sourcerepo

import (
	"fmt"
	"log/slog"

	"github.com/utkarsh5026/beargit/pkg/commitid"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

const pkgName = "sourcerepo"

// NotRepositoryMessage is shown when no .beargit directory can be used.
const NotRepositoryMessage = "not a beargit repository"

// SourceRepository manages the on-disk layout of a beargit repository:
//
//	┌─ <working-directory>/
//	│ ├─ .beargit/            ← repository metadata
//	│ │ ├─ .index            ← staging index, one tracked name per line
//	│ │ ├─ .prev             ← head commit id (40 '0' when empty)
//	│ │ ├─ config.json       ← optional repository configuration
//	│ │ └─ <commit-id>/      ← one directory per commit
//	│ │   ├─ .index          ← frozen index
//	│ │   ├─ .prev           ← parent commit id
//	│ │   ├─ .msg            ← commit message
//	│ │   └─ <tracked files> ← full copies
//	│ ├─ file1.txt           ← working set
//	│ └─ ...
type SourceRepository struct {
	workingDir  scpath.RepositoryPath
	sourceDir   scpath.SourcePath
	fs          storage.FS
	initialized bool
	logger      *slog.Logger
}

// Option configures a SourceRepository.
type Option func(*SourceRepository)

// WithFS replaces the storage capability, mainly for fault injection in tests.
func WithFS(fsys storage.FS) Option {
	return func(sr *SourceRepository) {
		sr.fs = fsys
	}
}

// NewSourceRepository creates a new SourceRepository instance
func NewSourceRepository(opts ...Option) *SourceRepository {
	sr := &SourceRepository{
		fs:     storage.NewOSFS(),
		logger: logger.ForComponent(pkgName),
	}
	for _, opt := range opts {
		opt(sr)
	}
	return sr
}

// Initialize creates a new repository at the given path: the .beargit
// directory, an empty staging index and a head holding the sentinel.
//
// An existing .beargit directory is never touched; the call fails with
// ALREADY_EXISTS so prior history cannot be reset by accident.
func (sr *SourceRepository) Initialize(path scpath.RepositoryPath) error {
	exists, err := sr.fs.Exists(path.SourcePath().ToAbsolutePath())
	if err != nil {
		return scerr.New(pkgName, scerr.CodeIOFailure, "initialize", "", err)
	}
	if exists {
		return scerr.New(pkgName, scerr.CodeAlreadyExists, "initialize",
			fmt.Sprintf("repository already exists at %s", path), nil)
	}

	source := path.SourcePath()
	if err := sr.fs.MkdirAll(source.ToAbsolutePath()); err != nil {
		return scerr.New(pkgName, scerr.CodeIOFailure, "initialize", "", err)
	}

	files := []struct {
		path    scpath.AbsolutePath
		content string
	}{
		{source.IndexPath(), ""},
		{source.HeadPath(), commitid.Sentinel.String()},
	}
	for _, f := range files {
		if err := sr.fs.WriteFile(f.path, []byte(f.content)); err != nil {
			return scerr.New(pkgName, scerr.CodeIOFailure, "initialize",
				fmt.Sprintf("create %s", f.path.Base()), err)
		}
	}

	sr.workingDir = path
	sr.sourceDir = source
	sr.initialized = true
	sr.logger.Info("initialized repository", "path", path.String())
	return nil
}

// WorkingDirectory returns the repository root
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	if !sr.initialized {
		panic("repository not initialized")
	}
	return sr.workingDir
}

// SourceDirectory returns the path to the .beargit directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	if !sr.initialized {
		panic("repository not initialized")
	}
	return sr.sourceDir
}

// FS returns the storage capability
func (sr *SourceRepository) FS() storage.FS {
	return sr.fs
}

// IsInitialized returns whether the handle points at a usable repository
func (sr *SourceRepository) IsInitialized() bool {
	return sr.initialized
}

// ReadHead reads and parses .beargit/.prev.
func (sr *SourceRepository) ReadHead() (commitid.ID, error) {
	if !sr.initialized {
		return "", notInitialized("read head", nil)
	}

	data, err := sr.fs.ReadFile(sr.sourceDir.HeadPath())
	if err != nil {
		if storage.IsNotExist(err) {
			return "", notInitialized("read head", err)
		}
		return "", scerr.New(pkgName, scerr.CodeIOFailure, "read head", "", err)
	}

	id, err := commitid.Parse(string(data))
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeCorrupt, "read head", "head is not a valid commit id", err)
	}
	return id, nil
}

func notInitialized(op string, err error) *scerr.Error {
	return scerr.New(pkgName, scerr.CodeNotInitialized, op, NotRepositoryMessage, err)
}
