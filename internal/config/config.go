// Package config handles all configuration management for lintbundle.
//
// Configuration is loaded from multiple sources in order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (LINTBUNDLE_*)
// 3. Configuration file (.lintbundle.yaml)
// 4. Default values (lowest priority)
package config

import "strings"

// Config is the main configuration structure for lintbundle.
type Config struct {
	// Bundle is the name of the lint bundle to assemble: "javascript", "graphql"
	Bundle string `mapstructure:"bundle" yaml:"bundle" json:"bundle"`

	// Prettier controls the formatting-compatibility layer: "auto", "on", "off"
	Prettier string `mapstructure:"prettier" yaml:"prettier" json:"prettier"`

	// Project configures where the linted project lives
	Project ProjectConfig `mapstructure:"project" yaml:"project" json:"project"`

	// Output configures output formatting
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Log configures logging
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`

	// Cache configures the resolution cache
	Cache CacheConfig `mapstructure:"cache" yaml:"cache" json:"cache"`
}

// ProjectConfig configures the project the bundle is applied to.
type ProjectConfig struct {
	// Root is the project root; package presence is resolved from here upward
	Root string `mapstructure:"root" yaml:"root" json:"root"`

	// RulesDir holds extra rule-set YAML files that shadow the embedded ones
	RulesDir string `mapstructure:"rules_dir" yaml:"rules_dir" json:"rules_dir"`
}

// OutputConfig configures output formatting.
type OutputConfig struct {
	// Format is the output format: "json", "yaml", "markdown", "table"
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// File is the output file path (empty = stdout)
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// CacheConfig configures the resolution cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached resolutions (0 disables the cache)
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries" json:"max_entries"`
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Bundle == "" {
		return &ValidationError{Field: "bundle", Message: "bundle name is required"}
	}

	validPrettier := map[string]bool{"auto": true, "on": true, "off": true}
	if !validPrettier[c.Prettier] {
		return &ValidationError{Field: "prettier", Message: "invalid value, must be one of: auto, on, off"}
	}

	validFormats := map[string]bool{"json": true, "yaml": true, "markdown": true, "table": true}
	if !validFormats[c.Output.Format] {
		return &ValidationError{Field: "output.format", Message: "invalid format, must be one of: json, yaml, markdown, table"}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return &ValidationError{Field: "log.level", Message: "invalid level, must be one of: debug, info, warn, error"}
	}

	if c.Cache.MaxEntries < 0 {
		return &ValidationError{Field: "cache.max_entries", Message: "must not be negative"}
	}

	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config validation error: " + e.Field + ": " + e.Message
}
