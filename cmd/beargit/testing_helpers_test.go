package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
	"github.com/utkarsh5026/beargit/pkg/repository/sourcerepo"
)

// TestHelper provides utilities for CLI command testing
type TestHelper struct {
	t        *testing.T
	tempDir  string
	repo     *sourcerepo.SourceRepository
	RepoPath string
}

// Result captures one CLI invocation.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// NewTestHelper creates a new test helper with automatic cleanup. The user
// configuration file is redirected into the temp directory.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()
	repoDir := filepath.Join(tempDir, "repo")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("failed to create repo directory: %v", err)
	}
	t.Setenv("BEARGIT_CONFIG", filepath.Join(tempDir, "home", "config.json"))

	return &TestHelper{
		t:        t,
		tempDir:  tempDir,
		RepoPath: repoDir,
	}
}

// InitRepo initializes a test repository
func (th *TestHelper) InitRepo() *sourcerepo.SourceRepository {
	th.t.Helper()

	repoPath, err := scpath.NewRepositoryPath(th.RepoPath)
	if err != nil {
		th.t.Fatalf("failed to create repo path: %v", err)
	}

	repo, err := sourcerepo.InitializeRepository(repoPath)
	if err != nil {
		th.t.Fatalf("failed to initialize repo: %v", err)
	}

	th.repo = repo
	return repo
}

// Run executes beargit with -C pointing at the repository directory.
func (th *TestHelper) Run(args ...string) Result {
	th.t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"-C", th.RepoPath}, args...)
	code := run(full, &stdout, &stderr)

	return Result{Code: code, Stdout: stdout.String(), Stderr: stderr.String()}
}

// MustRun is Run that fails the test on a non-zero exit status.
func (th *TestHelper) MustRun(args ...string) Result {
	th.t.Helper()

	res := th.Run(args...)
	if res.Code != 0 {
		th.t.Fatalf("beargit %v exited %d: %s", args, res.Code, res.Stderr)
	}
	return res
}

// WriteFile creates a test file with content
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()

	filePath := filepath.Join(th.RepoPath, name)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		th.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		th.t.Fatalf("failed to write file %s: %v", filePath, err)
	}

	return filePath
}

// ReadMeta reads a file below .beargit.
func (th *TestHelper) ReadMeta(parts ...string) string {
	th.t.Helper()

	p := filepath.Join(append([]string{th.RepoPath, scpath.SourceDir}, parts...)...)
	data, err := os.ReadFile(p)
	if err != nil {
		th.t.Fatalf("failed to read %s: %v", p, err)
	}
	return string(data)
}

// Repo returns the initialized repository (must call InitRepo first)
func (th *TestHelper) Repo() *sourcerepo.SourceRepository {
	if th.repo == nil {
		th.t.Fatal("repository not initialized, call InitRepo() first")
	}
	return th.repo
}
