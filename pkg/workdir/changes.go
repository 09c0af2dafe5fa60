package workdir

import (
	"github.com/zeebo/xxh3"

	"github.com/utkarsh5026/beargit/pkg/commitmanager"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

// Changes compares the tracked files against the head commit.
type Changes struct {
	// Modified lists files whose content differs from the head snapshot
	Modified []string

	// Added lists tracked files the head commit does not contain
	Added []string

	// Removed lists files in the head commit that are no longer tracked
	Removed []string
}

// Empty reports whether the next commit would snapshot exactly the head.
func (c *Changes) Empty() bool {
	return len(c.Modified) == 0 && len(c.Added) == 0 && len(c.Removed) == 0
}

// Changes hashes each present tracked file and its snapshot in the head
// commit with xxh3 and reports which differ. Missing files are left to
// Status. Before the first commit every tracked file is Added.
func (m *Manager) Changes() (*Changes, error) {
	status, err := m.Status()
	if err != nil {
		return nil, err
	}

	head, err := m.repo.ReadHead()
	if err != nil {
		return nil, err
	}

	changes := &Changes{Modified: []string{}, Added: []string{}, Removed: []string{}}
	if head.IsSentinel() {
		changes.Added = append(changes.Added, status.Files...)
		return changes, nil
	}

	commit, err := commitmanager.NewManager(m.repo).GetCommit(head)
	if err != nil {
		return nil, err
	}

	inHead := make(map[string]struct{}, len(commit.Files))
	for _, f := range commit.Files {
		inHead[f] = struct{}{}
	}
	tracked := make(map[string]struct{}, len(status.Files))

	dir := m.repo.SourceDirectory().CommitPath(head.String())
	work := m.repo.WorkingDirectory()

	for _, raw := range status.Files {
		tracked[raw] = struct{}{}
		if _, ok := inHead[raw]; !ok {
			changes.Added = append(changes.Added, raw)
			continue
		}
		if status.IsMissing(raw) {
			continue
		}

		name, err := scpath.NewTrackedName(raw)
		if err != nil {
			continue
		}

		same, err := m.sameContent(work.WorkingFile(name), dir.SnapshotPath(name))
		if err != nil {
			return nil, err
		}
		if !same {
			changes.Modified = append(changes.Modified, raw)
		}
	}

	for _, f := range commit.Files {
		if _, ok := tracked[f]; !ok {
			changes.Removed = append(changes.Removed, f)
		}
	}

	m.logger.Debug("compared against head", "head", head.Short(),
		"modified", len(changes.Modified), "added", len(changes.Added), "removed", len(changes.Removed))
	return changes, nil
}

func (m *Manager) sameContent(a, b scpath.AbsolutePath) (bool, error) {
	left, err := m.fs.ReadFile(a)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "changes", "", err).WithContext("path", a.String())
	}
	right, err := m.fs.ReadFile(b)
	if err != nil {
		return false, scerr.New(pkgName, scerr.CodeIOFailure, "changes", "", err).WithContext("path", b.String())
	}
	if len(left) != len(right) {
		return false, nil
	}
	return xxh3.Hash128(left) == xxh3.Hash128(right), nil
}
