package patterns

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a relative file path matches a compiled pattern.
type Matcher interface {
	Match(path string) bool
}

// PatternError is returned for a pattern the glob engine rejects.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "invalid glob pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

type globMatcher struct {
	globs    []glob.Glob
	baseName bool
}

// Compile compiles pattern with "/" as the path separator. On top of the
// glob syntax ("*", "**", "?", "[...]", "{a,b}") it follows the override
// semantics of the host lint engine: a pattern without a slash is matched
// against the base name, and a leading "**/" also matches at the root.
func Compile(pattern string) (Matcher, error) {
	return compile(pattern, true)
}

// CompileAnchored compiles pattern the way command-line file arguments are
// matched: relative to the root, so "*.js" only matches top-level files.
// A leading "**/" still matches at the root.
func CompileAnchored(pattern string) (Matcher, error) {
	return compile(pattern, false)
}

func compile(pattern string, baseName bool) (Matcher, error) {
	p := strings.TrimPrefix(pattern, "./")
	m := &globMatcher{baseName: baseName && !strings.Contains(p, "/")}

	variants := []string{p}
	if rest, ok := strings.CutPrefix(p, "**/"); ok && rest != "" {
		variants = append(variants, rest)
	}

	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match compiles pattern and tests p against it.
func Match(pattern, p string) (bool, error) {
	m, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return m.Match(p), nil
}

func (m *globMatcher) Match(p string) bool {
	p = Normalize(p)
	if m.baseName {
		p = path.Base(p)
	}
	for _, g := range m.globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// Normalize converts p to the slash-separated relative form patterns are
// matched against.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

type anyMatcher []Matcher

func (a anyMatcher) Match(p string) bool {
	for _, m := range a {
		if m.Match(p) {
			return true
		}
	}
	return false
}

// CompileAll compiles every pattern into one matcher that matches when any
// of them does.
func CompileAll(patterns []string) (Matcher, error) {
	return compileAll(patterns, Compile)
}

// CompileAllAnchored is CompileAll for command-line patterns.
func CompileAllAnchored(patterns []string) (Matcher, error) {
	return compileAll(patterns, CompileAnchored)
}

func compileAll(patterns []string, compileFn func(string) (Matcher, error)) (Matcher, error) {
	out := make(anyMatcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := compileFn(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
