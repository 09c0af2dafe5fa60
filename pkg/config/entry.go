package config

import (
	"strconv"
	"strings"
)

// ConfigEntry represents a single configuration entry with its value and metadata
type ConfigEntry struct {
	Key    string       // Configuration key (e.g., "commit.marker")
	Value  string       // String value
	Level  ConfigLevel  // Configuration level
	Source ConfigSource // command-line, builtin, or file path
}

// NewEntry creates a new configuration entry
func NewEntry(key, value string, level ConfigLevel, source ConfigSource) *ConfigEntry {
	return &ConfigEntry{
		Key:    key,
		Value:  value,
		Level:  level,
		Source: source,
	}
}

func NewCommandLineEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, CommandLineLevel, CommandLineSource)
}

func NewBuiltinEntry(key, value string) *ConfigEntry {
	return NewEntry(key, value, BuiltinLevel, BuiltinSource)
}

// AsString returns the value as a string
func (e *ConfigEntry) AsString() string {
	return e.Value
}

// AsInt converts the value to an integer
func (e *ConfigEntry) AsInt() (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(e.Value))
	if err != nil {
		return 0, NewConfigError("convert", CodeConversionErr, e.Key, "", "", err)
	}
	return val, nil
}

// AsBoolean converts the value to a boolean
// Accepts: "true", "yes", "1", "on" (case-insensitive) as true
// Accepts: "false", "no", "0", "off" (case-insensitive) as false
func (e *ConfigEntry) AsBoolean() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(e.Value)) {
	case "true", "yes", "1", "on":
		return true, nil
	case "false", "no", "0", "off":
		return false, nil
	default:
		return false, NewConfigError("convert", CodeConversionErr, e.Key, "", "", ErrConversion)
	}
}

// Clone creates a copy of the configuration entry
func (e *ConfigEntry) Clone() *ConfigEntry {
	c := *e
	return &c
}
