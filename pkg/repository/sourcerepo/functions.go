package sourcerepo

import (
	"path/filepath"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

// FindRepository walks up from startPath to the nearest directory holding a
// .beargit directory and opens it. It fails with NOT_INITIALIZED when the
// filesystem root is reached without a match.
func FindRepository(startPath scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	probe := NewSourceRepository(opts...)
	currentPath := startPath.String()

	for {
		repoPath, err := scpath.NewRepositoryPath(currentPath)
		if err != nil {
			return nil, scerr.Wrap(err, pkgName, "find")
		}

		exists, err := RepositoryExists(probe.fs, repoPath)
		if err != nil {
			return nil, err
		}

		if exists {
			return Open(repoPath, opts...)
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			return nil, notInitialized("find", nil)
		}

		currentPath = parentPath
	}
}

// RepositoryExists reports whether a .beargit directory exists at path.
func RepositoryExists(fsys storage.FS, path scpath.RepositoryPath) (bool, error) {
	isDir, err := fsys.IsDir(path.SourcePath().ToAbsolutePath())
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "exists", "", err)
	}
	return isDir, nil
}

// Open opens an existing repository. The .beargit directory and both its
// .index and .prev files must be present, otherwise the call fails with
// NOT_INITIALIZED.
func Open(path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	repo := NewSourceRepository(opts...)

	exists, err := RepositoryExists(repo.fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notInitialized("open", nil)
	}

	source := path.SourcePath()
	for _, required := range []scpath.AbsolutePath{source.IndexPath(), source.HeadPath()} {
		ok, err := repo.fs.Exists(required)
		if err != nil {
			return nil, scerr.New(pkgName, scerr.CodeIOFailure, "open", "", err)
		}
		if !ok {
			return nil, notInitialized("open", nil).WithContext("missing", required.Base())
		}
	}

	repo.workingDir = path
	repo.sourceDir = source
	repo.initialized = true
	return repo, nil
}

// InitializeRepository is a convenience function to initialize a new repository.
func InitializeRepository(path scpath.RepositoryPath, opts ...Option) (*SourceRepository, error) {
	repo := NewSourceRepository(opts...)
	if err := repo.Initialize(path); err != nil {
		return nil, err
	}
	return repo, nil
}
