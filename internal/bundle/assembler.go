package bundle

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JNZader/lintbundle/internal/cache"
	"github.com/JNZader/lintbundle/internal/logger"
	"github.com/JNZader/lintbundle/internal/packages"
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
)

// Conditional is an extends entry that is only included when every required
// package is installed.
type Conditional struct {
	Extends  string
	Requires []string
}

// ImportRef pulls an upstream rule set into the rule table through a
// severity transform.
type ImportRef struct {
	Name      string
	Transform rules.SeverityTransform
}

// Definition declares a bundle.
type Definition struct {
	Name          string
	Env           []string
	Parser        string
	ParserOptions *ParserOptions
	Plugins       []string
	Extends       []string
	Conditional   []Conditional
	Imports       []ImportRef
	Rules         rules.Table
	Overrides     []Override
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPackageLookup sets the capability check used for conditional extends.
func WithPackageLookup(lookup packages.Lookup) Option {
	return func(a *Assembler) {
		a.lookup = lookup
	}
}

// WithCatalog sets the rule-set catalog extends names resolve against.
func WithCatalog(c *rules.Catalog) Option {
	return func(a *Assembler) {
		a.catalog = c
	}
}

// WithClassifier sets the classifier used for overrides.
func WithClassifier(c *patterns.Classifier) Option {
	return func(a *Assembler) {
		a.classifier = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Assembler) {
		a.log = l
	}
}

// WithCacheSize sets how many resolved tables are kept. Zero disables the
// cache.
func WithCacheSize(n int) Option {
	return func(a *Assembler) {
		a.cacheSize = n
	}
}

// DefaultCacheSize is the number of resolved tables kept per assembler.
const DefaultCacheSize = 256

type base struct {
	extends []string
	rules   rules.Table
}

// Assembler builds configuration objects for a bundle.
type Assembler struct {
	def        *Definition
	catalog    *rules.Catalog
	classifier *patterns.Classifier
	lookup     packages.Lookup
	log        *logger.Logger
	cacheSize  int

	resolver *Resolver
	resolved cache.Cache[rules.Table]

	once    sync.Once
	base    *base
	baseErr error
}

// NewAssembler creates an assembler for def.
func NewAssembler(def *Definition, opts ...Option) (*Assembler, error) {
	a := &Assembler{
		def:       def,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = logger.Default()
	}
	a.log = a.log.WithPrefix("bundle").WithField("bundle", def.Name)

	if a.catalog == nil {
		c, err := rules.Default()
		if err != nil {
			return nil, fmt.Errorf("loading rule sets: %w", err)
		}
		a.catalog = c
	}

	if a.classifier == nil {
		c, err := patterns.Default()
		if err != nil {
			return nil, fmt.Errorf("compiling file patterns: %w", err)
		}
		a.classifier = c
	}

	if a.lookup == nil {
		r, err := packages.NewOSResolver(".")
		if err != nil {
			return nil, err
		}
		a.lookup = r.Lookup()
	}

	if a.cacheSize > 0 {
		a.resolved = cache.NewLRUCache[rules.Table](a.cacheSize)
	} else {
		a.resolved = cache.Nop[rules.Table]{}
	}

	a.resolver = NewResolver(a.classifier, def.Overrides)
	return a, nil
}

// Build returns the configuration for path. With an empty path the
// overrides are exported instead of applied.
func (a *Assembler) Build(path string) (*Config, error) {
	b, err := a.layered()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:           a.env(),
		Parser:        a.def.Parser,
		ParserOptions: a.parserOptions(),
		Plugins:       append([]string{}, a.def.Plugins...),
		Extends:       append([]string{}, b.extends...),
	}

	if path == "" {
		cfg.Rules = b.rules.DeepClone()
		cfg.Overrides = a.resolver.Specs()
		return cfg, nil
	}

	cats := a.resolver.Classify(path)
	key := cats.Key()
	table, ok := a.resolved.Get(key)
	if !ok {
		table = a.resolver.Apply(cats, b.rules)
		a.resolved.Set(key, table)
	}
	a.log.Debug("resolved %s as [%s]", path, key)

	cfg.Rules = table.DeepClone()
	return cfg, nil
}

// Classify returns the override categories of path.
func (a *Assembler) Classify(path string) patterns.CategorySet {
	return a.resolver.Classify(path)
}

// Catalog returns the rule-set catalog the assembler resolves against.
func (a *Assembler) Catalog() *rules.Catalog {
	return a.catalog
}

// CacheStats returns statistics for the resolved-table cache.
func (a *Assembler) CacheStats() cache.Stats {
	return a.resolved.Stats()
}

// layered computes the extends list and the merged base table once.
func (a *Assembler) layered() (*base, error) {
	a.once.Do(func() {
		a.base, a.baseErr = a.compute()
	})
	return a.base, a.baseErr
}

func (a *Assembler) compute() (*base, error) {
	extends := append([]string{}, a.def.Extends...)
	for _, c := range a.def.Conditional {
		if a.available(c.Requires) {
			extends = append(extends, c.Extends)
		} else {
			a.log.Debug("skipping %s", c.Extends)
		}
	}

	table, err := a.catalog.Layer(extends...)
	if err != nil {
		return nil, err
	}

	imports := make([]rules.Import, 0, len(a.def.Imports))
	for _, ref := range a.def.Imports {
		set, err := a.catalog.Get(ref.Name)
		if err != nil {
			return nil, err
		}
		imports = append(imports, rules.Import{Name: ref.Name, Rules: set.Rules, Transform: ref.Transform})
	}

	return &base{
		extends: extends,
		rules:   rules.Merge(table, a.def.Rules, imports...).DeepClone(),
	}, nil
}

// available reports whether every package in names is installed. Lookup
// errors count as absent.
func (a *Assembler) available(names []string) bool {
	for _, name := range names {
		ok, err := a.lookup(name)
		if err != nil {
			a.log.WithField("package", name).Warn("package lookup failed, treating as absent: %v", err)
			return false
		}
		if !ok {
			return false
		}
	}
	return true
}

func (a *Assembler) env() map[string]bool {
	if len(a.def.Env) == 0 {
		return nil
	}
	env := make(map[string]bool, len(a.def.Env))
	for _, name := range a.def.Env {
		env[name] = true
	}
	return env
}

func (a *Assembler) parserOptions() *ParserOptions {
	if a.def.ParserOptions == nil {
		return nil
	}
	opts := *a.def.ParserOptions
	return &opts
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
