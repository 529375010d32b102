package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/harness"
)

// YAMLReporter writes YAML documents.
type YAMLReporter struct{}

func (r *YAMLReporter) Format() string { return "yaml" }

func (r *YAMLReporter) WriteConfig(w io.Writer, cfg *bundle.Config) error {
	return r.encode(w, cfg)
}

func (r *YAMLReporter) WriteRules(w io.Writer, rows []RuleRow) error {
	return r.encode(w, rows)
}

func (r *YAMLReporter) WriteClassification(w io.Writer, items []Classification) error {
	return r.encode(w, items)
}

func (r *YAMLReporter) WriteLint(w io.Writer, res *harness.Result) error {
	return r.encode(w, res)
}

func (r *YAMLReporter) encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
