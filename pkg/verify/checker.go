// Package verify checks that every commit reachable from the head is
// complete on disk.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/beargit/pkg/commitid"
	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/common/logger"
	"github.com/utkarsh5026/beargit/pkg/history"
	"github.com/utkarsh5026/beargit/pkg/index"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/beargit/pkg/storage"
)

const pkgName = "verify"

// ProblemKind classifies a Problem.
type ProblemKind string

const (
	// ProblemBrokenChain: the history walk could not continue past this commit
	ProblemBrokenChain ProblemKind = "broken-chain"
	// ProblemMissingMetadata: .index, .prev or .msg is absent
	ProblemMissingMetadata ProblemKind = "missing-metadata"
	// ProblemCorruptIndex: the frozen index holds a name that is not a valid path
	ProblemCorruptIndex ProblemKind = "corrupt-index"
	// ProblemMissingSnapshot: a file named in the frozen index has no snapshot
	ProblemMissingSnapshot ProblemKind = "missing-snapshot"
	// ProblemOrder: the parent id is not smaller than the commit id
	ProblemOrder ProblemKind = "order"
)

// Problem is one defect found in a commit.
type Problem struct {
	ID     commitid.ID
	Kind   ProblemKind
	Detail string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %s", p.ID.Short(), p.Kind, p.Detail)
}

// Report is the outcome of a verification run.
type Report struct {
	// Checked counts the commits inspected
	Checked int
	// Problems is ordered newest commit first
	Problems []Problem
}

// OK reports whether no problem was found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Checker verifies the commits reachable from the head. It only reads.
type Checker struct {
	repo   sourcerepo.Repository
	fs     storage.FS
	walker *history.Walker
	limit  int
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithConcurrency bounds the number of commits checked at once.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewChecker creates a Checker for repo.
func NewChecker(repo sourcerepo.Repository, opts ...Option) *Checker {
	c := &Checker{
		repo:   repo,
		fs:     repo.FS(),
		walker: history.NewWalker(repo),
		limit:  runtime.NumCPU(),
		logger: logger.ForComponent(pkgName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run walks history from the head and checks each commit directory
// concurrently. A repository without commits yields an empty report. A
// history walk that breaks part way is reported as a ProblemBrokenChain
// against the commit it could not read. The error result is reserved for
// failures that prevent checking at all, such as a missing head or a
// cancelled context.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	seq, err := c.walker.Walk(ctx)
	if err != nil {
		if scerr.IsCode(err, scerr.CodeNoCommits) {
			return &Report{}, nil
		}
		return nil, err
	}

	head, err := c.repo.ReadHead()
	if err != nil {
		return nil, err
	}

	var entries []history.Entry
	var broken *Problem
	for entry, err := range seq {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			at := head
			if len(entries) > 0 {
				at = entries[len(entries)-1].Parent
			}
			broken = &Problem{ID: at, Kind: ProblemBrokenChain, Detail: scerr.UserMessage(err)}
			break
		}
		entries = append(entries, entry)
	}

	results := make([][]Problem, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for i, entry := range entries {
		g.Go(func() error {
			problems, err := c.checkCommit(gctx, entry)
			if err != nil {
				return err
			}
			results[i] = problems
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Checked: len(entries)}
	for _, problems := range results {
		report.Problems = append(report.Problems, problems...)
	}
	if broken != nil {
		report.Problems = append(report.Problems, *broken)
	}

	c.logger.Info("verification finished", "checked", report.Checked, "problems", len(report.Problems))
	return report, nil
}

func (c *Checker) checkCommit(ctx context.Context, entry history.Entry) ([]Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var problems []Problem
	report := func(kind ProblemKind, format string, args ...any) {
		problems = append(problems, Problem{ID: entry.ID, Kind: kind, Detail: fmt.Sprintf(format, args...)})
	}

	if !entry.Parent.IsSentinel() && entry.Parent.Compare(entry.ID) >= 0 {
		report(ProblemOrder, "parent %s does not precede it", entry.Parent.Short())
	}

	dir := c.repo.SourceDirectory().CommitPath(entry.ID.String())
	for _, p := range []scpath.AbsolutePath{dir.IndexPath(), dir.ParentPath(), dir.MessagePath()} {
		ok, err := c.fs.Exists(p)
		if err != nil {
			return nil, scerr.New(pkgName, scerr.CodeIOFailure, "check commit", "", err)
		}
		if !ok {
			report(ProblemMissingMetadata, "%s is missing", p.Base())
		}
	}

	data, err := c.fs.ReadFile(dir.IndexPath())
	if err != nil {
		if storage.IsNotExist(err) {
			return problems, nil
		}
		return nil, scerr.New(pkgName, scerr.CodeIOFailure, "check commit", "", err)
	}

	frozen, err := index.Parse(data)
	if err != nil {
		report(ProblemCorruptIndex, "%v", err)
		return problems, nil
	}

	for _, raw := range frozen.Entries() {
		name, err := scpath.NewTrackedName(raw)
		if err != nil {
			report(ProblemCorruptIndex, "%q is not a valid file name", raw)
			continue
		}

		ok, err := c.fs.Exists(dir.SnapshotPath(name))
		if err != nil {
			return nil, scerr.New(pkgName, scerr.CodeIOFailure, "check commit", "", err)
		}
		if !ok {
			report(ProblemMissingSnapshot, "%s has no snapshot", raw)
		}
	}

	return problems, nil
}
