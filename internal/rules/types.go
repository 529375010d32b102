// Package rules models lint rule tables and the upstream rule sets they are
// assembled from.
package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is the normalized rule severity.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the canonical severity keyword.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	return s >= SeverityOff && s <= SeverityError
}

// InvalidSeverityError is returned when a severity value cannot be parsed.
type InvalidSeverityError struct {
	Value any
}

func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid rule severity: %v", e.Value)
}

// ParseSeverity accepts "off", "warn", "error" or their numeric forms 0, 1, 2.
func ParseSeverity(v any) (Severity, error) {
	switch s := v.(type) {
	case Severity:
		if s.Valid() {
			return s, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "off", "0":
			return SeverityOff, nil
		case "warn", "warning", "1":
			return SeverityWarn, nil
		case "error", "2":
			return SeverityError, nil
		}
	case int:
		return severityFromNumber(int64(s), v)
	case int64:
		return severityFromNumber(s, v)
	case uint64:
		if s <= math.MaxInt64 {
			return severityFromNumber(int64(s), v)
		}
	case float64:
		if s == math.Trunc(s) {
			return severityFromNumber(int64(s), v)
		}
	}
	return SeverityOff, &InvalidSeverityError{Value: v}
}

func severityFromNumber(n int64, raw any) (Severity, error) {
	sev := Severity(n)
	if !sev.Valid() {
		return SeverityOff, &InvalidSeverityError{Value: raw}
	}
	return sev, nil
}

// Entry is the configured severity and options of a single rule.
type Entry struct {
	Severity Severity
	Options  []any
}

// Off returns a disabled entry.
func Off() Entry { return Entry{Severity: SeverityOff} }

// Warn returns a warning entry with the given options.
func Warn(options ...any) Entry { return newEntry(SeverityWarn, options) }

// Error returns an error entry with the given options.
func Error(options ...any) Entry { return newEntry(SeverityError, options) }

func newEntry(sev Severity, options []any) Entry {
	if len(options) == 0 {
		return Entry{Severity: sev}
	}
	return Entry{Severity: sev, Options: append([]any(nil), options...)}
}

// Clone returns a copy of e whose options share no maps or slices with e.
func (e Entry) Clone() Entry {
	if e.Options == nil {
		return e
	}
	opts := make([]any, len(e.Options))
	for i, o := range e.Options {
		opts[i] = cloneValue(o)
	}
	return Entry{Severity: e.Severity, Options: opts}
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}

// Enabled reports whether the rule is reported at all.
func (e Entry) Enabled() bool {
	return e.Severity != SeverityOff
}

// Values returns the normalized array form, [severity, options...].
func (e Entry) Values() []any {
	out := make([]any, 0, len(e.Options)+1)
	out = append(out, int(e.Severity))
	return append(out, e.Options...)
}

// ParseEntry parses a bare severity or a [severity, options...] list.
func ParseEntry(v any) (Entry, error) {
	list, ok := v.([]any)
	if !ok {
		sev, err := ParseSeverity(v)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Severity: sev}, nil
	}
	if len(list) == 0 {
		return Entry{}, &InvalidSeverityError{Value: v}
	}
	sev, err := ParseSeverity(list[0])
	if err != nil {
		return Entry{}, err
	}
	return newEntry(sev, list[1:]), nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Values())
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseEntry(raw)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Entry) MarshalYAML() (interface{}, error) {
	return e.Values(), nil
}

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseEntry(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*e = parsed
	return nil
}

// Meta describes a rule independently of how it is configured.
type Meta struct {
	Plugin               string `yaml:"plugin" json:"plugin,omitempty"`
	Description          string `yaml:"description" json:"description,omitempty"`
	RequiresTypeChecking bool   `yaml:"requires_type_checking" json:"requiresTypeChecking,omitempty"`
	Deprecated           bool   `yaml:"deprecated" json:"deprecated,omitempty"`
}

// RuleSet is a named upstream bundle of rule entries, such as
// "eslint:recommended" or "plugin:unicorn/recommended".
type RuleSet struct {
	Name        string          `yaml:"name" json:"name"`
	Plugin      string          `yaml:"plugin" json:"plugin,omitempty"`
	Description string          `yaml:"description" json:"description,omitempty"`
	Rules       Table           `yaml:"rules" json:"rules"`
	Meta        map[string]Meta `yaml:"meta" json:"meta,omitempty"`
}

// UnknownRuleSetError is returned when an extends name has no rule set.
type UnknownRuleSetError struct {
	Name string
}

func (e *UnknownRuleSetError) Error() string {
	return "unknown rule set: " + e.Name
}

// PluginOf returns the plugin namespace of a rule identifier, or "" for
// core rules. "@scope/rule" belongs to "@scope" and "@scope/plugin/rule" to
// "@scope/plugin".
func PluginOf(id string) string {
	i := strings.LastIndexByte(id, '/')
	if i < 0 {
		return ""
	}
	return id[:i]
}
