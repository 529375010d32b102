// Package report renders configurations, rule listings and harness results.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/harness"
	"github.com/JNZader/lintbundle/internal/rules"
)

// Reporter renders command output in one format.
type Reporter interface {
	// WriteConfig writes an assembled configuration.
	WriteConfig(w io.Writer, cfg *bundle.Config) error

	// WriteRules writes a rule listing.
	WriteRules(w io.Writer, rows []RuleRow) error

	// WriteClassification writes the categories of each path.
	WriteClassification(w io.Writer, items []Classification) error

	// WriteLint writes a harness result.
	WriteLint(w io.Writer, res *harness.Result) error

	// Format returns the format name.
	Format() string
}

// NewReporter creates a reporter for the given format.
func NewReporter(format string) (Reporter, error) {
	switch format {
	case "json":
		return &JSONReporter{Indent: true}, nil
	case "yaml", "yml":
		return &YAMLReporter{}, nil
	case "markdown", "md":
		return &MarkdownReporter{}, nil
	case "table":
		return &TableReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// AvailableFormats returns the list of supported formats.
func AvailableFormats() []string {
	return []string{"json", "yaml", "markdown", "table"}
}

// RuleRow is one line of a rule listing.
type RuleRow struct {
	ID                   string `json:"id" yaml:"id"`
	Severity             string `json:"severity" yaml:"severity"`
	Options              []any  `json:"options,omitempty" yaml:"options,omitempty"`
	Plugin               string `json:"plugin,omitempty" yaml:"plugin,omitempty"`
	RequiresTypeChecking bool   `json:"requiresTypeChecking,omitempty" yaml:"requires_type_checking,omitempty"`
	Deprecated           bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// RuleRows lists t sorted by identifier, annotated with catalog metadata
// when c is not nil.
func RuleRows(t rules.Table, c *rules.Catalog) []RuleRow {
	rows := make([]RuleRow, 0, len(t))
	for _, id := range t.IDs() {
		e := t[id]
		row := RuleRow{
			ID:       id,
			Severity: e.Severity.String(),
			Options:  e.Options,
			Plugin:   rules.PluginOf(id),
		}
		if c != nil {
			meta, _ := c.Meta(id)
			row.Plugin = meta.Plugin
			row.RequiresTypeChecking = meta.RequiresTypeChecking
			row.Deprecated = meta.Deprecated
		}
		rows = append(rows, row)
	}
	return rows
}

// Classification is the category list of one path.
type Classification struct {
	Path       string   `json:"path" yaml:"path"`
	Categories []string `json:"categories" yaml:"categories"`
}

// formatOptions renders rule options compactly for text formats.
func formatOptions(opts []any) string {
	if len(opts) == 0 {
		return ""
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Sprintf("%v", opts)
	}
	return string(data)
}
