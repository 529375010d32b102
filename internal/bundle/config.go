// Package bundle assembles the lint configuration a host engine consumes:
// extended rule sets, customizations and file-pattern overrides, resolved
// for an optional target file.
package bundle

import (
	"github.com/JNZader/lintbundle/internal/rules"
)

// ParserOptions are passed through to the host engine's parser.
type ParserOptions struct {
	EcmaVersion int    `json:"ecmaVersion,omitempty" yaml:"ecmaVersion,omitempty"`
	SourceType  string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
}

// OverrideSpec is an override as exported to the host engine.
type OverrideSpec struct {
	Files []string    `json:"files" yaml:"files"`
	Rules rules.Table `json:"rules" yaml:"rules"`
}

// Config is the assembled configuration object.
type Config struct {
	Env           map[string]bool `json:"env,omitempty" yaml:"env,omitempty"`
	Parser        string          `json:"parser,omitempty" yaml:"parser,omitempty"`
	ParserOptions *ParserOptions  `json:"parserOptions,omitempty" yaml:"parserOptions,omitempty"`
	Plugins       []string        `json:"plugins" yaml:"plugins"`
	Extends       []string        `json:"extends" yaml:"extends"`
	Rules         rules.Table     `json:"rules" yaml:"rules"`
	Overrides     []OverrideSpec  `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// HasExtends reports whether name is in the extends list.
func (c *Config) HasExtends(name string) bool {
	for _, e := range c.Extends {
		if e == name {
			return true
		}
	}
	return false
}

// Environments returns the enabled environment names.
func (c *Config) Environments() []string {
	out := make([]string, 0, len(c.Env))
	for name, on := range c.Env {
		if on {
			out = append(out, name)
		}
	}
	return sortedCopy(out)
}
