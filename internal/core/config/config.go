// Package config provides configuration management for the slovar CLI.
package config

import (
	"fmt"
	"slices"

	"github.com/solatis/slovar/internal/fields"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log formats.
const (
	LogJSON = "json"
	LogText = "text"
)

// Config holds CLI settings.
type Config struct {
	OutputFormat string
	OutputIndent int
	// FieldsCacheSize bounds the parsed field-expression cache.
	FieldsCacheSize int
	// KeepLists makes flatten treat sequences as leaves.
	KeepLists bool
	LogLevel  string
	LogFormat string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat:    FormatJSON,
		OutputIndent:    2,
		FieldsCacheSize: fields.DefaultCacheSize,
		KeepLists:       false,
		LogLevel:        "info",
		LogFormat:       LogText,
	}
}

// validateConfig checks enumerations and ranges, naming the offending key.
func validateConfig(cfg *Config) error {
	if !slices.Contains([]string{FormatJSON, FormatYAML}, cfg.OutputFormat) {
		return fmt.Errorf("output.format must be json or yaml, got %q", cfg.OutputFormat)
	}
	if cfg.OutputIndent < 0 {
		return fmt.Errorf("output.indent must not be negative, got %d", cfg.OutputIndent)
	}
	if cfg.FieldsCacheSize <= 0 {
		return fmt.Errorf("fields.cache_size must be positive, got %d", cfg.FieldsCacheSize)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	if !slices.Contains([]string{LogJSON, LogText}, cfg.LogFormat) {
		return fmt.Errorf("log.format must be json or text, got %q", cfg.LogFormat)
	}
	return nil
}
