package scpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
)

const pkgName = "scpath"

// String returns the name as a string
func (tn TrackedName) String() string {
	return string(tn)
}

// IsValid reports whether the name passes NewTrackedName's checks.
func (tn TrackedName) IsValid() bool {
	return validateName(string(tn)) == ""
}

// Components returns the slash-separated components of the name
func (tn TrackedName) Components() []string {
	return strings.Split(string(tn), "/")
}

// IsNested reports whether the name lives in a subdirectory.
func (tn TrackedName) IsNested() bool {
	return strings.Contains(string(tn), "/")
}

// NewTrackedName validates a filename for the staging index.
//
// Names are stored verbatim (one per line) and reused as paths inside commit
// directories, so they must be non-empty, single-line, without surrounding
// whitespace, relative, already clean, free of ".." and backslashes, at most
// MaxNameLength bytes, and must not start with a reserved metadata name.
func NewTrackedName(name string) (TrackedName, error) {
	if reason := validateName(name); reason != "" {
		return "", scerr.New(pkgName, scerr.CodeInvalidPath, "validate",
			fmt.Sprintf("Invalid filename %q: %s", name, reason), nil)
	}
	return TrackedName(name), nil
}

func validateName(name string) string {
	switch {
	case name == "":
		return "empty name"
	case name == ".":
		return "not a file name"
	case len(name) > MaxNameLength:
		return fmt.Sprintf("longer than %d bytes", MaxNameLength)
	case strings.ContainsAny(name, "\n\r\x00"):
		return "contains a line break or NUL"
	case strings.TrimSpace(name) != name:
		return "leading or trailing whitespace"
	case strings.Contains(name, `\`):
		return "contains a backslash"
	case filepath.IsAbs(name) || strings.HasPrefix(name, "/"):
		return "absolute path"
	}

	if path.Clean(name) != name {
		return "not a clean relative path"
	}

	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "escapes the repository"
		}
	}

	first := strings.Split(name, "/")[0]
	if reservedNames[first] {
		return "reserved repository name"
	}

	return ""
}
