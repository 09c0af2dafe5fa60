package config

import (
	"fmt"

	"github.com/utkarsh5026/beargit/pkg/common/err"
)

const (
	pkgName = "config"

	// Package-specific error codes
	CodeNotFoundErr      = err.CodeNotFound
	CodeInvalidFormatErr = err.CodeInvalidFormat
	CodeInvalidValueErr  = err.CodeValidation
	CodeReadOnlyErr      = err.CodeReadOnly
	CodeIOErr            = err.CodeIOFailure
	CodeConversionErr    = "CONVERSION_FAILED"
	CodeInvalidLevelErr  = "INVALID_LEVEL"
)

// ConfigError represents a configuration-related error with detailed context
type ConfigError struct {
	base  *err.Error
	Path  string // file path if applicable
	Key   string // config key if applicable
	Level string // config level if applicable
}

// NewConfigError creates a new ConfigError
func NewConfigError(op, code, key, path, level string, underlying error) *ConfigError {
	return &ConfigError{
		base:  err.New(pkgName, code, op, "", underlying),
		Path:  path,
		Key:   key,
		Level: level,
	}
}

// NewInvalidValueError reports a value rejected by the Validator. The
// message is shown to CLI users as-is.
func NewInvalidValueError(key string, cause error) *ConfigError {
	e := NewConfigError("validate", CodeInvalidValueErr, key, "", "", cause)
	e.base.Message = fmt.Sprintf("invalid value for %s: %v", key, cause)
	return e
}

// NewInvalidFormatError reports an unreadable configuration file.
func NewInvalidFormatError(op, path string, cause error) *ConfigError {
	return NewConfigError(op, CodeInvalidFormatErr, "", path, "", cause)
}

// NewNotFoundError reports a key with no value at any level.
func NewNotFoundError(key, level string) *ConfigError {
	e := NewConfigError("get", CodeNotFoundErr, key, "", level, nil)
	e.base.Message = fmt.Sprintf("key %s is not set", key)
	return e
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.base.Error()
	if e.Key != "" {
		msg += fmt.Sprintf(" [key=%s]", e.Key)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	if e.Level != "" {
		msg += fmt.Sprintf(" [level=%s]", e.Level)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.base
}

// Sentinel errors for specific conditions
var (
	ErrInvalidFormat = err.New(pkgName, CodeInvalidFormatErr, "", "invalid configuration format", nil)
	ErrInvalidLevel  = err.New(pkgName, CodeInvalidLevelErr, "", "invalid configuration level", nil)
	ErrReadOnly      = err.New(pkgName, CodeReadOnlyErr, "", "configuration level is read-only", nil)
	ErrConversion    = err.New(pkgName, CodeConversionErr, "", "configuration value conversion failed", nil)
)

// IsNotFound returns true if no level holds the key
func IsNotFound(e error) bool {
	return err.IsCode(e, CodeNotFoundErr)
}

// IsInvalidValue returns true if the Validator rejected a value
func IsInvalidValue(e error) bool {
	return err.IsCode(e, CodeInvalidValueErr)
}

// IsReadOnly returns true if the error is ErrReadOnly
func IsReadOnly(e error) bool {
	return err.IsCode(e, CodeReadOnlyErr)
}
