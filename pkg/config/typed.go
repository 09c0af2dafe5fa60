package config

import "strings"

// TypedConfig provides type-safe access to beargit's configuration values.
// Invalid stored values fall back to the builtin default.
type TypedConfig struct {
	manager *Manager
}

// NewTypedConfig creates a new TypedConfig wrapper around a Manager
func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{
		manager: manager,
	}
}

// CommitMarker returns the substring every commit message must contain
func (tc *TypedConfig) CommitMarker() string {
	entry := tc.manager.Get(KeyCommitMarker)
	if entry == nil || entry.Value == "" {
		return DefaultCommitMarker
	}
	return entry.Value
}

// LogFormat returns "text" or "table"
func (tc *TypedConfig) LogFormat() string {
	entry := tc.manager.Get(KeyLogFormat)
	if entry == nil {
		return LogFormatText
	}
	if strings.ToLower(strings.TrimSpace(entry.Value)) == LogFormatTable {
		return LogFormatTable
	}
	return LogFormatText
}

// LogLimit returns how many commits log prints; 0 means all
func (tc *TypedConfig) LogLimit() int {
	entry := tc.manager.Get(KeyLogLimit)
	if entry == nil {
		return 0
	}
	val, err := entry.AsInt()
	if err != nil || val < 0 {
		return 0
	}
	return val
}

// RepositoryFormatVersion returns the repository format version
func (tc *TypedConfig) RepositoryFormatVersion() int {
	entry := tc.manager.Get(KeyRepoFormatVersion)
	if entry == nil {
		return 0
	}
	val, err := entry.AsInt()
	if err != nil {
		return 0
	}
	return val
}
