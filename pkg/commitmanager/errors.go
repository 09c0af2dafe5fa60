package commitmanager

import (
	"fmt"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
)

const pkgName = "commitmanager"

// ioFailure reports an unexpected storage error during op.
func ioFailure(op, what string, err error) error {
	return scerr.New(pkgName, scerr.CodeIOFailure, op, fmt.Sprintf("%s: %v", what, err), err)
}

func commitNotFound(op, id string) error {
	return scerr.New(pkgName, scerr.CodeNotFound, op, fmt.Sprintf("commit %s not found", id), nil)
}

func corruptCommit(op, id, what string, err error) error {
	return scerr.New(pkgName, scerr.CodeCorrupt, op, fmt.Sprintf("commit %s: %s", id, what), err)
}
