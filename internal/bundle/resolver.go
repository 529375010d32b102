package bundle

import (
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
)

// Override is a rule delta applied to files in any of its categories.
type Override struct {
	Categories []patterns.Category
	Rules      rules.Table
}

// Resolver applies overrides to a rule table for a given file.
type Resolver struct {
	classifier *patterns.Classifier
	overrides  []Override
}

// NewResolver creates a resolver. Overrides are applied in the given order
// and copied, so later changes to them are not seen.
func NewResolver(classifier *patterns.Classifier, overrides []Override) *Resolver {
	owned := make([]Override, len(overrides))
	for i, o := range overrides {
		owned[i] = Override{
			Categories: append([]patterns.Category(nil), o.Categories...),
			Rules:      o.Rules.DeepClone(),
		}
	}
	return &Resolver{classifier: classifier, overrides: owned}
}

// Resolve classifies path and applies every matching override to table,
// later overrides winning on shared identifiers. An empty path means no
// file context and returns table unchanged.
func (r *Resolver) Resolve(path string, table rules.Table) rules.Table {
	if path == "" {
		return table
	}
	return r.Apply(r.classifier.Classify(path), table)
}

// Apply applies the overrides selected by an already computed
// classification.
func (r *Resolver) Apply(cats patterns.CategorySet, table rules.Table) rules.Table {
	out := table
	for _, o := range r.overrides {
		if cats.Intersects(o.Categories...) {
			out = out.Overlay(o.Rules)
		}
	}
	return out
}

// Classify returns the categories of path.
func (r *Resolver) Classify(path string) patterns.CategorySet {
	return r.classifier.Classify(path)
}

// Specs exports the overrides with their categories expanded to patterns.
func (r *Resolver) Specs() []OverrideSpec {
	specs := make([]OverrideSpec, 0, len(r.overrides))
	for _, o := range r.overrides {
		var files []string
		for _, c := range o.Categories {
			files = append(files, r.classifier.Patterns(c)...)
		}
		specs = append(specs, OverrideSpec{Files: files, Rules: o.Rules.DeepClone()})
	}
	return specs
}
