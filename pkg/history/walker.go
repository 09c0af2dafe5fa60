// Package history walks the linear chain of commits from the head back to
// the first commit.
package history

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/utkarsh5026/beargit/pkg/commitid"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

const pkgName = "history"

// NoCommitsMessage is shown when log runs before the first commit.
const NoCommitsMessage = "There are no commits!"

// Entry is one step of the history walk.
type Entry struct {
	ID      commitid.ID
	Parent  commitid.ID
	Message string
}

// Walker produces the commits reachable from the head, newest first.
type Walker struct {
	repo   sourcerepo.Repository
	fs     storage.FS
	logger *slog.Logger
}

// NewWalker creates a Walker over repo.
func NewWalker(repo sourcerepo.Repository) *Walker {
	return &Walker{
		repo:   repo,
		fs:     repo.FS(),
		logger: logger.ForComponent(pkgName),
	}
}

// Walk returns a lazy, single-pass sequence starting at the head and following
// parent links until the sentinel, which is not yielded. Each step reads the
// commit's message and parent pointer and nothing else.
//
// A head equal to the sentinel fails up front with NO_COMMITS. Errors met
// during iteration are yielded once and end the sequence: a missing commit
// directory or an unreadable parent pointer is IO_FAILURE, and a parent chain
// that loops back on itself is CORRUPT.
func (w *Walker) Walk(ctx context.Context) (iter.Seq2[Entry, error], error) {
	head, err := w.repo.ReadHead()
	if err != nil {
		return nil, err
	}
	if head.IsSentinel() {
		return nil, scerr.New(pkgName, scerr.CodeNoCommits, "walk", NoCommitsMessage, nil)
	}

	return func(yield func(Entry, error) bool) {
		seen := make(map[commitid.ID]struct{})

		for cur := head; !cur.IsSentinel(); {
			if err := ctx.Err(); err != nil {
				yield(Entry{}, err)
				return
			}

			if _, ok := seen[cur]; ok {
				w.logger.Error("history loops back on itself", "id", cur.String())
				yield(Entry{}, scerr.New(pkgName, scerr.CodeCorrupt, "walk",
					fmt.Sprintf("commit %s appears twice in history", cur), nil))
				return
			}
			seen[cur] = struct{}{}

			entry, err := w.step(cur)
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
			cur = entry.Parent
		}
	}, nil
}

func (w *Walker) step(id commitid.ID) (Entry, error) {
	dir := w.repo.SourceDirectory().CommitPath(id.String())

	msg, err := w.fs.ReadFile(dir.MessagePath())
	if err != nil {
		return Entry{}, brokenLink(id, "read message", err)
	}

	raw, err := w.fs.ReadFile(dir.ParentPath())
	if err != nil {
		return Entry{}, brokenLink(id, "read parent pointer", err)
	}

	parent, err := commitid.Parse(string(raw))
	if err != nil {
		return Entry{}, brokenLink(id, "parse parent pointer", err)
	}

	return Entry{ID: id, Parent: parent, Message: string(msg)}, nil
}

func brokenLink(id commitid.ID, what string, err error) error {
	return scerr.New(pkgName, scerr.CodeIOFailure, "walk",
		fmt.Sprintf("commit %s: %s: %v", id, what, err), err)
}

// Collect gathers up to limit entries, newest first. A limit of zero or less
// collects the whole history.
func (w *Walker) Collect(ctx context.Context, limit int) ([]Entry, error) {
	seq, err := w.Walk(ctx)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for entry, err := range seq {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}
