package report

import (
	"io"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/harness"
)

// MarkdownReporter generates Markdown reports.
type MarkdownReporter struct{}

func (r *MarkdownReporter) Format() string { return "markdown" }

func (r *MarkdownReporter) WriteConfig(w io.Writer, cfg *bundle.Config) error {
	return textRenderer{markdown: true}.writeConfig(w, cfg)
}

func (r *MarkdownReporter) WriteRules(w io.Writer, rows []RuleRow) error {
	return textRenderer{markdown: true}.writeRules(w, rows)
}

func (r *MarkdownReporter) WriteClassification(w io.Writer, items []Classification) error {
	return textRenderer{markdown: true}.writeClassification(w, items)
}

func (r *MarkdownReporter) WriteLint(w io.Writer, res *harness.Result) error {
	return textRenderer{markdown: true}.writeLint(w, res)
}
