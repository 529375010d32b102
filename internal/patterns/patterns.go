// Package patterns classifies file paths into the categories that lint
// overrides are keyed on.
package patterns

// Category names a class of files that receives its own rule overrides.
type Category string

const (
	CategoryTest        Category = "test"
	CategoryGenerated   Category = "generated"
	CategoryKnownConfig Category = "known-config"
)

// PatternSet is an ordered, immutable list of glob patterns for a category.
type PatternSet struct {
	category Category
	patterns []string
}

// NewPatternSet creates a pattern set. The patterns slice is copied.
func NewPatternSet(category Category, patterns ...string) PatternSet {
	return PatternSet{
		category: category,
		patterns: append([]string(nil), patterns...),
	}
}

// Category returns the category the set belongs to.
func (s PatternSet) Category() Category { return s.category }

// Patterns returns a copy of the patterns.
func (s PatternSet) Patterns() []string {
	return append([]string(nil), s.patterns...)
}

// Test files: specs, unit tests and their helpers.
var TestFilePatterns = NewPatternSet(CategoryTest,
	"**/*.{spec,test}.{js,jsx,cjs,mjs,ts,tsx,cts,mts}",
	"**/{__tests__,__mocks__,test,tests}/**",
	"**/{setupTests,jest.setup,vitest.setup}.{js,jsx,ts,tsx}",
)

// Generated files: output of code generators that is checked in.
var GeneratedFilePatterns = NewPatternSet(CategoryGenerated,
	"**/generated/**",
	"**/__generated__/**",
	"**/*.generated.{js,jsx,cjs,mjs,ts,tsx}",
	"**/*.gen.{js,ts}",
)

// Known config files: tool configuration modules that conventionally use an
// anonymous default export.
var KnownConfigFilePatterns = NewPatternSet(CategoryKnownConfig,
	"**/*.config.{js,cjs,mjs,ts,cts,mts}",
	"**/.*rc.{js,cjs,mjs,ts}",
)

// DefaultSets returns the built-in pattern sets in declaration order.
func DefaultSets() []PatternSet {
	return []PatternSet{TestFilePatterns, GeneratedFilePatterns, KnownConfigFilePatterns}
}

// Patterns returns the built-in pattern set for c.
func Patterns(c Category) (PatternSet, bool) {
	for _, s := range DefaultSets() {
		if s.category == c {
			return s, true
		}
	}
	return PatternSet{}, false
}
