package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator provides semantic validation for configuration values
type Validator struct{}

// ValidateKeyValue validates a configuration key-value pair. Keys need at
// least section.name form; unknown sections are accepted.
func (v *Validator) ValidateKeyValue(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return NewInvalidValueError(key, fmt.Errorf("configuration key must have at least section.name format"))
	}
	for _, part := range parts {
		if part == "" {
			return NewInvalidValueError(key, fmt.Errorf("configuration key has an empty component"))
		}
	}

	switch key {
	case KeyCommitMarker:
		return v.validateMarker(value)
	case KeyLogFormat:
		return v.validateLogFormat(value)
	case KeyLogLimit:
		return v.validateNonNegativeInt(key, value)
	case KeyRepoFormatVersion:
		return v.validateNonNegativeInt(key, value)
	default:
		return nil
	}
}

func (v *Validator) validateMarker(value string) error {
	if value == "" {
		return NewInvalidValueError(KeyCommitMarker, fmt.Errorf("marker cannot be empty"))
	}
	if strings.ContainsAny(value, "\r\n") {
		return NewInvalidValueError(KeyCommitMarker, fmt.Errorf("marker must be a single line"))
	}
	return nil
}

func (v *Validator) validateLogFormat(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case LogFormatText, LogFormatTable:
		return nil
	default:
		return NewInvalidValueError(KeyLogFormat, fmt.Errorf("must be one of: %s, %s", LogFormatText, LogFormatTable))
	}
}

func (v *Validator) validateNonNegativeInt(key, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return NewInvalidValueError(key, fmt.Errorf("must be an integer"))
	}
	if n < 0 {
		return NewInvalidValueError(key, fmt.Errorf("must not be negative"))
	}
	return nil
}
