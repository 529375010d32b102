package rules

// SeverityTransform maps one severity to another. It is applied to each
// entry of an imported rule set; options are never touched.
type SeverityTransform func(Severity) Severity

// Remap returns a transform that turns from into to and leaves every other
// severity unchanged.
func Remap(from, to Severity) SeverityTransform {
	return func(s Severity) Severity {
		if s == from {
			return to
		}
		return s
	}
}

// ErrorsToWarnings downgrades every error to a warning.
var ErrorsToWarnings = Remap(SeverityError, SeverityWarn)

// Transform returns a copy of t with fn applied to every entry's severity.
// A nil fn is the identity.
func (t Table) Transform(fn SeverityTransform) Table {
	if fn == nil {
		return t.Clone()
	}
	out := make(Table, len(t))
	for id, e := range t {
		out[id] = Entry{Severity: fn(e.Severity), Options: e.Options}
	}
	return out
}

// Import is an upstream rule set folded wholesale into a table, optionally
// through a severity transform.
type Import struct {
	Name      string
	Rules     Table
	Transform SeverityTransform
}

// Merge folds every import, transformed, into a copy of base and then
// overlays customizations verbatim. On conflict customizations win, then
// later imports, then base.
func Merge(base, customizations Table, imports ...Import) Table {
	result := base.Clone()
	for _, imp := range imports {
		for id, e := range imp.Rules.Transform(imp.Transform) {
			result[id] = e
		}
	}
	for id, e := range customizations {
		result[id] = e
	}
	return result
}

// MergeTables merges tables with later tables taking precedence.
func MergeTables(tables ...Table) Table {
	result := make(Table)
	for _, t := range tables {
		for id, e := range t {
			result[id] = e
		}
	}
	return result
}
