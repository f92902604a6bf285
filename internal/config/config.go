// Package config handles configuration loading and validation for Gather.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gather/internal/category"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// WatchConfig contains watch-mode settings.
type WatchConfig struct {
	DebounceSeconds int      `json:"debounceSeconds,omitempty"`
	IgnorePatterns  []string `json:"ignorePatterns,omitempty"`
}

// Configuration holds all settings for a Gather run.
type Configuration struct {
	SourceDirectory      string       `json:"sourceDirectory"`
	DestinationDirectory string       `json:"destinationDirectory"`
	Categories           []string     `json:"categories"`
	DateOnly             bool         `json:"dateOnly,omitempty"`
	DateFromFilename     bool         `json:"dateFromFilename,omitempty"`
	DuplicateSuffix      string       `json:"duplicateSuffix,omitempty"`
	TimestampedRoot      bool         `json:"timestampedRoot,omitempty"`
	Watch                *WatchConfig `json:"watch,omitempty"`
}

// ApplyDefaults fills in zero-valued optional fields.
func (c *Configuration) ApplyDefaults() {
	if len(c.Categories) == 0 {
		c.Categories = []string{category.All}
	}
	if c.DuplicateSuffix == "" {
		c.DuplicateSuffix = "_dup"
	}
	if c.Watch != nil && c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
	}
}

// Validate checks that the configuration has all required fields and
// that every selected category name is known.
func (c *Configuration) Validate() error {
	if c.SourceDirectory == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "sourceDirectory must be set",
		}
	}
	if c.DestinationDirectory == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "destinationDirectory must be set",
		}
	}

	for _, name := range c.Categories {
		if !category.IsKnown(name) {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("unknown category %q", name),
			}
		}
	}
	return nil
}

// Selection returns the category selection configured for the run.
func (c *Configuration) Selection() category.Selection {
	return category.NewSelection(c.Categories)
}

// Load reads, parses, and validates a configuration file.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Type: FileNotFound, Path: filePath}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Type: InvalidJSON, Message: err.Error()}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save serializes and writes a configuration to the given path.
func Save(cfg *Configuration, filePath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{Type: InvalidJSON, Message: err.Error()}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}
	return nil
}
