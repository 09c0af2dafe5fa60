package commitmanager

import (
	"fmt"
	"strings"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
)

// DefaultMarker is the substring a commit message must contain by default.
const DefaultMarker = "GO BEARS!"

// MessagePolicy decides whether a commit message is acceptable. A rejection
// must be an INVALID_COMMIT_MESSAGE error; the commit is then abandoned
// before any file is touched.
type MessagePolicy interface {
	Validate(message string) error
}

// PolicyFunc adapts a plain function to MessagePolicy.
type PolicyFunc func(message string) error

// Validate implements MessagePolicy
func (f PolicyFunc) Validate(message string) error {
	return f(message)
}

// MarkerPolicy requires Marker to appear in the message as a contiguous,
// case-sensitive substring.
type MarkerPolicy struct {
	Marker string
}

// NewMarkerPolicy returns a MarkerPolicy, falling back to DefaultMarker for
// an empty marker.
func NewMarkerPolicy(marker string) MarkerPolicy {
	if marker == "" {
		marker = DefaultMarker
	}
	return MarkerPolicy{Marker: marker}
}

// Validate implements MessagePolicy
func (p MarkerPolicy) Validate(message string) error {
	if strings.Contains(message, p.Marker) {
		return nil
	}
	return InvalidMessage(fmt.Sprintf("Message must contain %q", p.Marker))
}

// InvalidMessage builds the error custom policies should return.
func InvalidMessage(reason string) error {
	return scerr.New(pkgName, scerr.CodeInvalidCommitMessage, "validate message", reason, nil)
}
