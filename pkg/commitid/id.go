// Package commitid implements the fixed-width commit identifier codec.
//
// An identifier is 40 characters over the alphabet {'0','1','6','c'}, read as
// a big-endian base-4 number. The all-'0' value is the sentinel meaning "no
// commit". Each new commit takes the successor of the current head.
package commitid

import (
	"fmt"
	"strings"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
)

const pkgName = "commitid"

// Length is the width of every identifier.
const Length = 40

// ShortLength is the suffix width used in compact output.
const ShortLength = 7

// ID is a validated commit identifier.
type ID string

// Sentinel is the root of history. It is never assigned to a real commit.
const Sentinel ID = "0000000000000000000000000000000000000000"

// Max is the largest representable identifier.
const Max ID = "cccccccccccccccccccccccccccccccccccccccc"

// Parse validates s as an identifier. Surrounding whitespace is ignored so
// head files written by other tools with a trailing newline still parse.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if len(s) != Length {
		return "", scerr.New(pkgName, scerr.CodeInvalidFormat, "parse",
			fmt.Sprintf("commit id must be %d characters, got %d", Length, len(s)), nil).
			WithContext("input", s)
	}
	for i := 0; i < len(s); i++ {
		if _, err := ParseDigit(s[i]); err != nil {
			return "", scerr.New(pkgName, scerr.CodeInvalidFormat, "parse",
				fmt.Sprintf("commit id %q: position %d", s, i), err)
		}
	}
	return ID(s), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Next returns the successor of id: add one with leftward carry, stopping at
// the first digit that does not wrap. The maximum identifier has no
// successor and yields ID_SPACE_EXHAUSTED instead of wrapping to the sentinel.
func Next(id ID) (ID, error) {
	if len(id) != Length {
		return "", scerr.New(pkgName, scerr.CodeInvalidFormat, "next",
			fmt.Sprintf("commit id must be %d characters, got %d", Length, len(id)), nil)
	}

	buf := []byte(id)
	for i := len(buf) - 1; i >= 0; i-- {
		d, err := ParseDigit(buf[i])
		if err != nil {
			return "", scerr.New(pkgName, scerr.CodeInvalidFormat, "next", "", err)
		}

		next, carry := d.Succ()
		buf[i] = next.Symbol()
		if !carry {
			return ID(buf), nil
		}
	}

	return "", scerr.New(pkgName, scerr.CodeIDSpaceExhausted, "next",
		"commit identifier space exhausted", nil)
}

// String returns the identifier as a string
func (id ID) String() string {
	return string(id)
}

// IsSentinel reports whether id marks the root of history.
func (id ID) IsSentinel() bool {
	return id == Sentinel
}

// Short returns the last ShortLength characters. Identifiers count up from
// the right, so the low-order digits are the ones that tell commits apart.
func (id ID) Short() string {
	if len(id) <= ShortLength {
		return string(id)
	}
	return string(id[len(id)-ShortLength:])
}

// Compare orders identifiers numerically: -1, 0 or +1.
func (id ID) Compare(other ID) int {
	for i := 0; i < len(id) && i < len(other); i++ {
		a, _ := ParseDigit(id[i])
		b, _ := ParseDigit(other[i])
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	switch {
	case len(id) < len(other):
		return -1
	case len(id) > len(other):
		return 1
	}
	return 0
}
