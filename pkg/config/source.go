package config

import "github.com/utkarsh5026/beargit/pkg/repository/scpath"

// ConfigSource names where an entry came from: command-line, builtin, or a
// file path.
type ConfigSource string

const (
	CommandLineSource ConfigSource = "command-line"
	BuiltinSource     ConfigSource = "builtin"
)

// NewFileSource creates a ConfigSource from a file path
func NewFileSource(path scpath.AbsolutePath) ConfigSource {
	return ConfigSource(path.String())
}

// String returns the string representation of the source
func (s ConfigSource) String() string {
	return string(s)
}

// IsFile returns true if this is a file-based source
func (s ConfigSource) IsFile() bool {
	return s != "" && s != CommandLineSource && s != BuiltinSource
}
