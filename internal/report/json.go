package report

import (
	"encoding/json"
	"io"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/harness"
)

// JSONReporter writes JSON documents.
type JSONReporter struct {
	Indent bool
}

func (r *JSONReporter) Format() string { return "json" }

func (r *JSONReporter) WriteConfig(w io.Writer, cfg *bundle.Config) error {
	return r.encode(w, cfg)
}

func (r *JSONReporter) WriteRules(w io.Writer, rows []RuleRow) error {
	return r.encode(w, rows)
}

func (r *JSONReporter) WriteClassification(w io.Writer, items []Classification) error {
	return r.encode(w, items)
}

func (r *JSONReporter) WriteLint(w io.Writer, res *harness.Result) error {
	return r.encode(w, res)
}

func (r *JSONReporter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if r.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
