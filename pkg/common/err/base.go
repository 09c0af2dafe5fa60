package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every package in the repository.
//
// Each package creates its errors through New or Wrap with its own package
// name and one of the codes below, so callers can branch on the failure kind
// with IsCode or errors.Is without caring which layer produced it.
type Error struct {
	// Package identifies the originating package (e.g. "index", "commitmanager").
	Package string

	// Code is the machine-readable failure kind.
	Code string

	// Op is the operation being performed ("add", "commit", "read head").
	Op string

	// Message is the human-readable text shown to the user.
	Message string

	// Err is the wrapped cause, nil for leaf errors.
	Err error

	// Context holds optional structured metadata, allocated on first use.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] op: message: wrapped
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}

	return result
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors that carry the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext attaches a key/value pair and returns e for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext returns a previously attached value, or nil.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a base error.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps err with package and operation context. Returns nil for nil err.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Op:      op,
		Err:     err,
	}
}

// WrapWithCode wraps err with package, code and operation. Returns nil for nil err.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Err:     err,
	}
}

// Error codes shared across packages.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInternal      = "INTERNAL"
	CodeValidation    = "VALIDATION"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeReadOnly      = "READ_ONLY"
	CodeCorrupt       = "CORRUPT"

	// CodeDuplicateFile: add on an already tracked file.
	CodeDuplicateFile = "DUPLICATE_FILE"

	// CodeNotTracked: remove on a file that is not tracked.
	CodeNotTracked = "NOT_TRACKED"

	// CodeInvalidCommitMessage: the message fails the commit message policy.
	CodeInvalidCommitMessage = "INVALID_COMMIT_MESSAGE"

	// CodeNoCommits: log on a repository whose head is the sentinel.
	CodeNoCommits = "NO_COMMITS"

	// CodeNotInitialized: required repository files are missing.
	CodeNotInitialized = "NOT_INITIALIZED"

	// CodeIOFailure: any unexpected read, write, copy, move or mkdir failure.
	CodeIOFailure = "IO_FAILURE"

	// CodeIDSpaceExhausted: the head is already the largest commit identifier.
	CodeIDSpaceExhausted = "ID_SPACE_EXHAUSTED"

	// CodeInvalidPath: a tracked filename is empty, too long, absolute,
	// escapes the repository or collides with repository metadata.
	CodeInvalidPath = "INVALID_PATH"
)

// IsCode reports whether err or anything it wraps carries code.
func IsCode(err error, code string) bool {
	if code == "" {
		return false
	}
	return errors.Is(err, &Error{Code: code})
}

// GetCode returns the first non-empty code along the wrap chain, or "".
func GetCode(err error) string {
	var e *Error
	for cur := err; errors.As(cur, &e); cur = e.Err {
		if e.Code != "" {
			return e.Code
		}
	}
	return ""
}

// GetPackage extracts the originating package, or "".
func GetPackage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Package
	}
	return ""
}

// GetOp extracts the operation, or "".
func GetOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// UserMessage returns the first non-empty Message found along the wrap
// chain, falling back to err.Error(). The CLI prints this to users.
func UserMessage(err error) string {
	var e *Error
	for cur := err; errors.As(cur, &e); cur = e.Err {
		if e.Message != "" {
			return e.Message
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
