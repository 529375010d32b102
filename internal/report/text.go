package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/harness"
	"github.com/JNZader/lintbundle/internal/rules"
)

// textRenderer holds the layout shared by the table and markdown reporters;
// they only differ in how a go-pretty table and a heading are emitted.
type textRenderer struct {
	markdown bool
}

func (r textRenderer) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if !r.markdown {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func (r textRenderer) render(t table.Writer) {
	if r.markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func (r textRenderer) heading(w io.Writer, level int, text string) {
	if r.markdown {
		_, _ = fmt.Fprintf(w, "\n%s %s\n\n", strings.Repeat("#", level), text)
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", text)
}

func (r textRenderer) writeConfig(w io.Writer, cfg *bundle.Config) error {
	r.heading(w, 1, "Configuration")

	summary := r.newTable(w)
	summary.AppendHeader(table.Row{"Field", "Value"})
	if cfg.Parser != "" {
		summary.AppendRow(table.Row{"parser", cfg.Parser})
	}
	if env := cfg.Environments(); len(env) > 0 {
		summary.AppendRow(table.Row{"env", strings.Join(env, ", ")})
	}
	if cfg.ParserOptions != nil {
		summary.AppendRow(table.Row{"ecmaVersion", cfg.ParserOptions.EcmaVersion})
		summary.AppendRow(table.Row{"sourceType", cfg.ParserOptions.SourceType})
	}
	summary.AppendRow(table.Row{"plugins", strings.Join(cfg.Plugins, ", ")})
	summary.AppendRow(table.Row{"extends", strings.Join(cfg.Extends, ", ")})
	r.render(summary)

	r.heading(w, 2, fmt.Sprintf("Rules (%d)", len(cfg.Rules)))
	r.writeTable(w, cfg.Rules)

	for i, o := range cfg.Overrides {
		r.heading(w, 2, fmt.Sprintf("Override %d: %s", i+1, strings.Join(o.Files, ", ")))
		r.writeTable(w, o.Rules)
	}
	return nil
}

func (r textRenderer) writeTable(w io.Writer, tbl rules.Table) {
	t := r.newTable(w)
	t.AppendHeader(table.Row{"Rule", "Severity", "Options"})
	for _, id := range tbl.IDs() {
		e := tbl[id]
		t.AppendRow(table.Row{id, e.Severity.String(), formatOptions(e.Options)})
	}
	r.render(t)
}

func (r textRenderer) writeRules(w io.Writer, rows []RuleRow) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rules)")
		return nil
	}

	t := r.newTable(w)
	t.AppendHeader(table.Row{"Rule", "Severity", "Options", "Plugin", "Notes"})
	for _, row := range rows {
		var notes []string
		if row.RequiresTypeChecking {
			notes = append(notes, "type-checked")
		}
		if row.Deprecated {
			notes = append(notes, "deprecated")
		}
		t.AppendRow(table.Row{row.ID, row.Severity, formatOptions(row.Options), row.Plugin, strings.Join(notes, ", ")})
	}
	r.render(t)
	_, _ = fmt.Fprintf(w, "(%d rules)\n", len(rows))
	return nil
}

func (r textRenderer) writeClassification(w io.Writer, items []Classification) error {
	t := r.newTable(w)
	t.AppendHeader(table.Row{"Path", "Categories"})
	for _, item := range items {
		cats := "-"
		if len(item.Categories) > 0 {
			cats = strings.Join(item.Categories, ", ")
		}
		t.AppendRow(table.Row{item.Path, cats})
	}
	r.render(t)
	return nil
}

func (r textRenderer) writeLint(w io.Writer, res *harness.Result) error {
	r.heading(w, 1, "Bundle "+res.Bundle)

	t := r.newTable(w)
	t.AppendHeader(table.Row{"File", "Categories", "Active", "Warnings", "Errors"})
	for _, f := range res.Files {
		cats := f.Categories.Key()
		if cats == "" {
			cats = "-"
		}
		t.AppendRow(table.Row{f.Path, cats, f.Active, f.Warnings, f.Errors})
	}
	r.render(t)
	_, _ = fmt.Fprintf(w, "(%d files)\n", len(res.Files))
	return nil
}

// TableReporter writes box-drawn tables for terminals.
type TableReporter struct{}

func (r *TableReporter) Format() string { return "table" }

func (r *TableReporter) WriteConfig(w io.Writer, cfg *bundle.Config) error {
	return textRenderer{}.writeConfig(w, cfg)
}

func (r *TableReporter) WriteRules(w io.Writer, rows []RuleRow) error {
	return textRenderer{}.writeRules(w, rows)
}

func (r *TableReporter) WriteClassification(w io.Writer, items []Classification) error {
	return textRenderer{}.writeClassification(w, items)
}

func (r *TableReporter) WriteLint(w io.Writer, res *harness.Result) error {
	return textRenderer{}.writeLint(w, res)
}
