package patterns

import (
	"slices"
	"strings"
	"sync"
)

// CategorySet is the set of categories a path belongs to, in the order the
// classifier declares them.
type CategorySet []Category

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return slices.Contains(s, c)
}

// Intersects reports whether any of cats is in the set.
func (s CategorySet) Intersects(cats ...Category) bool {
	for _, c := range cats {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Key is a stable string form of the set, usable as a map key.
func (s CategorySet) Key() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return strings.Join(parts, "+")
}

type compiledSet struct {
	set     PatternSet
	matcher Matcher
}

// Classifier maps file paths to categories.
type Classifier struct {
	sets []compiledSet
}

// NewClassifier compiles the given pattern sets. The order of sets fixes the
// order of categories in every CategorySet it returns.
func NewClassifier(sets ...PatternSet) (*Classifier, error) {
	c := &Classifier{sets: make([]compiledSet, 0, len(sets))}
	for _, s := range sets {
		m, err := CompileAll(s.patterns)
		if err != nil {
			return nil, err
		}
		c.sets = append(c.sets, compiledSet{set: s, matcher: m})
	}
	return c, nil
}

var defaultClassifier = sync.OnceValues(func() (*Classifier, error) {
	return NewClassifier(DefaultSets()...)
})

// Default returns a classifier over the built-in pattern sets.
func Default() (*Classifier, error) {
	return defaultClassifier()
}

// Classify returns every category whose patterns match path. Unmatched and
// empty paths give an empty set.
func (c *Classifier) Classify(path string) CategorySet {
	var out CategorySet
	if path == "" {
		return out
	}
	for _, s := range c.sets {
		if s.matcher.Match(path) {
			out = append(out, s.set.category)
		}
	}
	return out
}

// Categories returns the categories the classifier knows about.
func (c *Classifier) Categories() []Category {
	out := make([]Category, len(c.sets))
	for i, s := range c.sets {
		out[i] = s.set.category
	}
	return out
}

// Patterns returns the patterns registered for category.
func (c *Classifier) Patterns(category Category) []string {
	for _, s := range c.sets {
		if s.set.category == category {
			return s.set.Patterns()
		}
	}
	return nil
}
