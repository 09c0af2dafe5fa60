package sourcerepo

import (
	"github.com/utkarsh5026/beargit/pkg/commitid"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

// Repository is the handle every operation is threaded through. It replaces
// the "current directory is the repository" convention with an explicit root.
type Repository interface {
	// Initialize creates a new repository at the given path
	Initialize(path scpath.RepositoryPath) error

	// WorkingDirectory returns the root holding the working set
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .beargit directory
	SourceDirectory() scpath.SourcePath

	// FS returns the storage capability bound to this repository
	FS() storage.FS

	// ReadHead returns the persisted head identifier
	ReadHead() (commitid.ID, error)
}
