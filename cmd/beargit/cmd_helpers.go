package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
	"github.com/utkarsh5026/beargit/pkg/config"
	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
)

// workingPath resolves -C, defaulting to the current directory.
func workingPath(opts *globalOptions) (scpath.RepositoryPath, error) {
	dir := opts.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	return scpath.NewRepositoryPath(dir)
}

// findRepository locates the repository containing the working path.
func findRepository(opts *globalOptions) (*sourcerepo.SourceRepository, error) {
	start, err := workingPath(opts)
	if err != nil {
		return nil, err
	}
	return sourcerepo.FindRepository(start)
}

// loadConfig loads the configuration hierarchy for repoPath, which may be
// empty outside a repository, and applies -c overrides.
func loadConfig(ctx context.Context, opts *globalOptions, repoPath scpath.RepositoryPath) (*config.Manager, error) {
	mgr := config.NewManager(repoPath)
	if err := mgr.Load(ctx); err != nil {
		return nil, err
	}

	for _, kv := range opts.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, scerr.New("cli", scerr.CodeInvalidInput, "config override",
				fmt.Sprintf("invalid override %q, expected key=value", kv), nil)
		}
		if err := mgr.SetCommandLine(strings.TrimSpace(key), value); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

// openWithConfig finds the repository and loads its configuration.
func openWithConfig(ctx context.Context, opts *globalOptions) (*sourcerepo.SourceRepository, *config.TypedConfig, error) {
	repo, err := findRepository(opts)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := loadConfig(ctx, opts, repo.WorkingDirectory())
	if err != nil {
		return nil, nil, err
	}

	cfg := config.NewTypedConfig(mgr)
	if v := cfg.RepositoryFormatVersion(); v > config.SupportedRepositoryFormatVersion {
		return nil, nil, scerr.New("cli", scerr.CodeInvalidFormat, "open",
			fmt.Sprintf("unsupported repository format version %d", v), nil)
	}
	return repo, cfg, nil
}
