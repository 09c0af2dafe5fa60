package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigFileStructure is the JSON document of one configuration file.
// Dotted keys map onto nested sections:
//
//	{
//	  "commit": {
//	    "marker": "GO BEARS!"
//	  },
//	  "log": {
//	    "format": "table",
//	    "limit": 10
//	  }
//	}
type ConfigFileStructure struct {
	data map[string]any
}

// NewConfigFileStructure creates a new empty ConfigFileStructure.
func NewConfigFileStructure() *ConfigFileStructure {
	return &ConfigFileStructure{
		data: make(map[string]any),
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ConfigFileStructure) UnmarshalJSON(data []byte) error {
	c.data = make(map[string]any)
	return json.Unmarshal(data, &c.data)
}

// MarshalJSON implements json.Marshaler
func (c *ConfigFileStructure) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.data)
}

// Range calls fn for every top-level key. Iteration order is undefined.
func (c *ConfigFileStructure) Range(fn func(key string, value any) error) error {
	for key, value := range c.data {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetNestedValue stores value under a dotted key, creating intermediate
// sections. An existing scalar at the same key is replaced; an existing
// section is left alone.
func (c *ConfigFileStructure) SetNestedValue(keyPath, value string) error {
	if keyPath == "" {
		return NewInvalidValueError(keyPath, fmt.Errorf("empty key path"))
	}

	segments := strings.Split(keyPath, ".")
	target := c.data
	for _, segment := range segments[:len(segments)-1] {
		next, ok := target[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			target[segment] = next
		}
		target = next
	}

	last := segments[len(segments)-1]
	if _, isSection := target[last].(map[string]any); isSection {
		return NewInvalidValueError(keyPath, fmt.Errorf("%s is a section, not a value", keyPath))
	}
	target[last] = value
	return nil
}
