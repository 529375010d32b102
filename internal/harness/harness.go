// Package harness verifies an assembled bundle against sample files: it
// writes fixtures, loads the effective configuration for them and resolves
// them in bulk.
package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/logger"
	"github.com/JNZader/lintbundle/internal/metrics"
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
	"github.com/JNZader/lintbundle/internal/worker"
)

// NoFilesError is returned by Lint when no fixture matches the patterns.
type NoFilesError struct {
	Patterns []string
}

func (e *NoFilesError) Error() string {
	return "no files matching the patterns were found: " + strings.Join(e.Patterns, ", ")
}

// Option configures a Harness.
type Option func(*Harness)

// WithFS sets the filesystem fixtures are written to.
func WithFS(fs afero.Fs) Option {
	return func(h *Harness) {
		h.fs = fs
	}
}

// WithDir sets the fixture directory.
func WithDir(dir string) Option {
	return func(h *Harness) {
		h.dir = dir
	}
}

// WithFixtures replaces the bundle's default sample files.
func WithFixtures(f Fixtures) Option {
	return func(h *Harness) {
		h.fixtures = f
	}
}

// WithWorkers sets how many files Lint resolves concurrently.
func WithWorkers(n int) Option {
	return func(h *Harness) {
		h.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Harness) {
		h.log = l
	}
}

// WithMetrics sets the collector Lint records into. The global collector
// is used by default.
func WithMetrics(c *metrics.Collector) Option {
	return func(h *Harness) {
		h.metrics = c
	}
}

// WithAssemblerOptions passes options to the bundle assembler.
func WithAssemblerOptions(opts ...bundle.Option) Option {
	return func(h *Harness) {
		h.asmOpts = append(h.asmOpts, opts...)
	}
}

// Harness drives one bundle over a fixture tree.
type Harness struct {
	name     string
	fs       afero.Fs
	dir      string
	fixtures Fixtures
	workers  int
	log      *logger.Logger
	metrics  *metrics.Collector
	asmOpts  []bundle.Option

	assembler *bundle.Assembler
}

// New creates a harness for the named bundle.
func New(bundleName string, opts ...Option) (*Harness, error) {
	def, err := bundle.Lookup(bundleName)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		name:     bundleName,
		fs:       afero.NewMemMapFs(),
		dir:      "/fixtures/" + bundleName,
		fixtures: DefaultFixtures(bundleName),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.Default()
	}
	h.log = h.log.WithPrefix("harness")
	if h.metrics == nil {
		h.metrics = metrics.Global()
	}

	asmOpts := append([]bundle.Option{bundle.WithLogger(h.log)}, h.asmOpts...)
	h.assembler, err = bundle.NewAssembler(def, asmOpts...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Dir returns the fixture directory.
func (h *Harness) Dir() string {
	return h.dir
}

// Assembler returns the assembler the harness resolves with.
func (h *Harness) Assembler() *bundle.Assembler {
	return h.assembler
}

// Setup writes the fixture files.
func (h *Harness) Setup(ctx context.Context) error {
	for path, content := range h.fixtures {
		if err := ctx.Err(); err != nil {
			return err
		}

		full := filepath.Join(h.dir, filepath.FromSlash(path))
		if err := h.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("creating fixture directory: %w", err)
		}
		if err := afero.WriteFile(h.fs, full, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing fixture %s: %w", path, err)
		}
	}

	h.log.Debug("wrote %d fixtures to %s", len(h.fixtures), h.dir)
	return nil
}

// Teardown removes the fixture directory.
func (h *Harness) Teardown(_ context.Context) error {
	if err := h.fs.RemoveAll(h.dir); err != nil {
		return fmt.Errorf("removing fixtures: %w", err)
	}
	return nil
}

// LoadConfig returns the effective configuration for path, relative to the
// fixture directory. An empty path returns the configuration without file
// context.
func (h *Harness) LoadConfig(ctx context.Context, path string) (*bundle.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.assembler.Build(path)
}

// LoadRules returns the metadata of every active rule of the configuration
// without file context.
func (h *Harness) LoadRules(ctx context.Context) (map[string]rules.Meta, error) {
	cfg, err := h.LoadConfig(ctx, "")
	if err != nil {
		return nil, err
	}

	catalog := h.assembler.Catalog()
	out := make(map[string]rules.Meta)
	for id := range cfg.Rules.Enabled() {
		meta, _ := catalog.Meta(id)
		out[id] = meta
	}
	return out, nil
}

// FileResult is the resolved configuration summary of one file.
type FileResult struct {
	Path       string               `json:"path" yaml:"path"`
	Categories patterns.CategorySet `json:"categories" yaml:"categories"`
	Active     int                  `json:"active" yaml:"active"`
	Warnings   int                  `json:"warnings" yaml:"warnings"`
	Errors     int                  `json:"errors" yaml:"errors"`
	Duration   time.Duration        `json:"duration" yaml:"duration"`
}

// Result is the outcome of Lint.
type Result struct {
	Bundle string       `json:"bundle" yaml:"bundle"`
	Files  []FileResult `json:"files" yaml:"files"`
}

// Lint resolves every fixture matching any of the glob patterns. Patterns
// are anchored at the fixture directory like command-line file arguments:
// "*.js" matches top-level files only, "**/*.js" matches at any depth.
func (h *Harness) Lint(ctx context.Context, globs []string) (*Result, error) {
	matcher, err := patterns.CompileAllAnchored(globs)
	if err != nil {
		return nil, err
	}

	files, err := h.match(matcher)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoFilesError{Patterns: globs}
	}

	tasks := make([]worker.Task, len(files))
	resolve := make([]*worker.ResolveTask, len(files))
	for i, f := range files {
		resolve[i] = worker.NewResolveTask(f, h.assembler)
		tasks[i] = resolve[i]
	}

	results, stats, err := worker.Run(ctx, worker.Config{Workers: h.workers}, tasks)
	if err != nil {
		return nil, err
	}
	h.log.Debug("worker pool: %s", stats)

	out := &Result{Bundle: h.name, Files: make([]FileResult, 0, len(files))}
	for i, r := range results {
		if r.Error != nil {
			h.metrics.Counter(metrics.MetricResolveErrors).Inc()
			return nil, r.Error
		}
		cats := h.assembler.Classify(resolve[i].Path())
		h.record(cats, r.Duration)

		counts := resolve[i].Config().Rules.Counts()
		out.Files = append(out.Files, FileResult{
			Path:       resolve[i].Path(),
			Categories: cats,
			Active:     counts[rules.SeverityWarn] + counts[rules.SeverityError],
			Warnings:   counts[rules.SeverityWarn],
			Errors:     counts[rules.SeverityError],
			Duration:   r.Duration,
		})
	}

	cacheStats := h.assembler.CacheStats()
	h.metrics.Gauge(metrics.MetricCacheHits).Set(float64(cacheStats.Hits))
	h.metrics.Gauge(metrics.MetricCacheMisses).Set(float64(cacheStats.Misses))
	h.metrics.Gauge(metrics.MetricCacheSize).Set(float64(cacheStats.Entries))

	h.log.Debug("resolved %d files", len(out.Files))
	return out, nil
}

func (h *Harness) record(cats patterns.CategorySet, d time.Duration) {
	h.metrics.Counter(metrics.MetricFilesResolved).Inc()
	if len(cats) > 0 {
		h.metrics.Counter(metrics.MetricFilesOverridden).Inc()
	}
	h.metrics.Histogram(metrics.MetricResolveLatency).ObserveDuration(d)
}

// match returns the fixture-relative, slash-separated paths under the
// fixture directory accepted by m, in walk order. node_modules directories
// are skipped.
func (h *Harness) match(m patterns.Matcher) ([]string, error) {
	if _, err := h.fs.Stat(h.dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := afero.Walk(h.fs, h.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != h.dir && info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(h.dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if m.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking fixtures: %w", err)
	}
	return files, nil
}
