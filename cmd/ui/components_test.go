package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorLine(t *testing.T) {
	assert.Contains(t, ErrorLine("File a.txt already added"), "ERROR: File a.txt already added")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this message is long", 10, "this me..."},
		{"first\nsecond", 20, "first"},
		{"tiny", 3, "tiny"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), tt.in)
	}
}

func TestCommitLine(t *testing.T) {
	line := CommitLine("0000001", "GO BEARS!\nbody")
	assert.Contains(t, line, "0000001")
	assert.Contains(t, line, "GO BEARS!")
	assert.False(t, strings.Contains(line, "body"))
}
