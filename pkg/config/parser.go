package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parser handles parsing and serialization of JSON configuration files
type Parser struct{}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Parse flattens a JSON configuration document into dotted keys. Non-string
// scalars are stored in their JSON text form; for arrays the last element
// wins.
func (p *Parser) Parse(content string, source ConfigSource, level ConfigLevel) (map[string]*ConfigEntry, error) {
	result := make(map[string]*ConfigEntry)

	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	configData := NewConfigFileStructure()
	if err := json.Unmarshal([]byte(content), configData); err != nil {
		return nil, NewInvalidFormatError("parse", source.String(), fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	err := configData.Range(func(key string, value any) error {
		p.flatten(key, value, result, source, level)
		return nil
	})
	return result, err
}

// Serialize converts configuration entries to indented JSON
func (p *Parser) Serialize(entries map[string]*ConfigEntry) (string, error) {
	configData := NewConfigFileStructure()

	for key, entry := range entries {
		if err := configData.SetNestedValue(key, entry.Value); err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(configData, "", "  ")
	if err != nil {
		return "", NewInvalidFormatError("serialize", "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	return string(data) + "\n", nil
}

// Validate checks that content is a JSON object whose leaves are scalars
// or arrays of scalars.
func (p *Parser) Validate(content string) ValidationResult {
	var errors []string

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ValidationResult{Valid: false, Errors: []string{fmt.Sprintf("Invalid JSON: %v", err)}}
	}

	configMap, ok := parsed.(map[string]any)
	if !ok {
		return ValidationResult{Valid: false, Errors: []string{"Configuration must be a JSON object"}}
	}

	p.validateSection(configMap, "", &errors)
	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

func (p *Parser) flatten(key string, value any, result map[string]*ConfigEntry, source ConfigSource, level ConfigLevel) {
	switch v := value.(type) {
	case map[string]any:
		for sub, subValue := range v {
			p.flatten(key+"."+sub, subValue, result, source, level)
		}
	case []any:
		if len(v) > 0 {
			p.flatten(key, v[len(v)-1], result, source, level)
		}
	case string:
		result[key] = NewEntry(key, v, level, source)
	case nil:
		// null clears nothing and sets nothing
	default:
		result[key] = NewEntry(key, fmt.Sprintf("%v", v), level, source)
	}
}

func (p *Parser) validateSection(section map[string]any, prefix string, errors *[]string) {
	for key, value := range section {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			p.validateSection(v, path, errors)
		case []any:
			for _, item := range v {
				if _, isObject := item.(map[string]any); isObject {
					*errors = append(*errors, fmt.Sprintf("Configuration array at '%s' cannot contain objects", path))
				}
			}
		}
	}
}
