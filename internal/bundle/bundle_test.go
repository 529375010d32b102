package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JNZader/lintbundle/internal/logger"
	"github.com/JNZader/lintbundle/internal/packages"
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
)

func newAssembler(t *testing.T, def *Definition, opts ...Option) *Assembler {
	t.Helper()
	opts = append([]Option{
		WithPackageLookup(packages.Static()),
		WithLogger(logger.Nop()),
	}, opts...)
	a, err := NewAssembler(def, opts...)
	require.NoError(t, err)
	return a
}

func entryJSON(t *testing.T, e rules.Entry) string {
	t.Helper()
	data, err := json.Marshal(e)
	require.NoError(t, err)
	return string(data)
}

func TestJavaScriptAmbientConfig(t *testing.T) {
	a := newAssembler(t, JavaScript())

	cfg, err := a.Build("")
	require.NoError(t, err)

	assert.Contains(t, cfg.Rules, "eqeqeq")
	assert.Contains(t, cfg.Rules, "no-const-assign")
	assert.Equal(t, rules.Error("always", map[string]any{"null": "never"}), cfg.Rules["eqeqeq"])
	assert.Equal(t, "@typescript-eslint/parser", cfg.Parser)
	assert.Equal(t, &ParserOptions{EcmaVersion: 2020, SourceType: "module"}, cfg.ParserOptions)
	assert.Equal(t, []string{"browser", "node"}, cfg.Environments())
	assert.False(t, cfg.HasExtends("prettier"))

	require.Len(t, cfg.Overrides, 3)
	assert.Equal(t, patterns.TestFilePatterns.Patterns(), cfg.Overrides[0].Files)
	assert.Equal(t, patterns.KnownConfigFilePatterns.Patterns(), cfg.Overrides[1].Files)
	assert.Equal(t,
		append(patterns.GeneratedFilePatterns.Patterns(), patterns.KnownConfigFilePatterns.Patterns()...),
		cfg.Overrides[2].Files)
}

func TestJavaScriptUnicornRulesOnlyWarn(t *testing.T) {
	a := newAssembler(t, JavaScript())

	cfg, err := a.Build("")
	require.NoError(t, err)

	unicorn := cfg.Rules.WithPrefix("unicorn/")
	assert.NotEmpty(t, unicorn)
	assert.Empty(t, unicorn.AtLeast(rules.SeverityError).IDs())
	assert.Equal(t, rules.Warn("avoid"), cfg.Rules["unicorn/switch-case-braces"])
	assert.Equal(t, rules.Off(), cfg.Rules["unicorn/no-null"])
}

func TestJavaScriptHasNoTypeCheckedRules(t *testing.T) {
	a := newAssembler(t, JavaScript())

	cfg, err := a.Build("")
	require.NoError(t, err)

	for id := range cfg.Rules.Enabled() {
		meta, _ := a.Catalog().Meta(id)
		assert.False(t, meta.RequiresTypeChecking, id)
	}
}

func TestJavaScriptFileOverrides(t *testing.T) {
	a := newAssembler(t, JavaScript())

	tests := []struct {
		path string
		rule string
		want string
	}{
		{"utils.spec.js", "@typescript-eslint/no-non-null-assertion", `[0]`},
		{"utils.spec.js", "max-nested-callbacks", `[1,{"max":10}]`},
		{"jest.config.ts", "import/no-anonymous-default-export", `[0]`},
		{"jest.config.ts", "unicorn/no-abusive-eslint-disable", `[0]`},
		{"src/graphql/generated/introspection-result.ts", "unicorn/no-abusive-eslint-disable", `[0]`},
		{"src/graphql/generated/introspection-result.ts", "import/no-anonymous-default-export", `[1]`},
		{"index.js", "@typescript-eslint/no-non-null-assertion", `[1]`},
		{"src/utils.ts", "max-nested-callbacks", `[1,{"max":3}]`},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.rule, func(t *testing.T) {
			cfg, err := a.Build(tt.path)
			require.NoError(t, err)
			assert.Nil(t, cfg.Overrides)
			assert.Equal(t, tt.want, entryJSON(t, cfg.Rules[tt.rule]))
		})
	}
}

func TestTestOverrideAppliesRegardlessOfPriorValue(t *testing.T) {
	def := JavaScript()
	def.Rules = def.Rules.Overlay(rules.Table{
		"curly":                                    rules.Error("all"),
		"@typescript-eslint/no-non-null-assertion": rules.Off(),
	})
	a := newAssembler(t, def)

	cfg, err := a.Build("src/__tests__/button.ts")
	require.NoError(t, err)
	assert.Equal(t, rules.Off(), cfg.Rules["curly"])
	assert.Equal(t, rules.Off(), cfg.Rules["@typescript-eslint/no-non-null-assertion"])
}

func stackingCatalog() *rules.Catalog {
	c := rules.NewCatalog()
	c.Add(&rules.RuleSet{Name: "base", Rules: rules.Table{"x": rules.Error(), "y": rules.Error()}})
	return c
}

func TestOverridesStackInDeclaredOrder(t *testing.T) {
	def := &Definition{
		Name:    "stacked",
		Extends: []string{"base"},
		Overrides: []Override{
			{Categories: []patterns.Category{patterns.CategoryGenerated}, Rules: rules.Table{"x": rules.Warn(), "y": rules.Warn()}},
			{Categories: []patterns.Category{patterns.CategoryKnownConfig}, Rules: rules.Table{"x": rules.Off()}},
		},
	}
	a := newAssembler(t, def, WithCatalog(stackingCatalog()))

	cfg, err := a.Build("src/generated/codegen.config.ts")
	require.NoError(t, err)
	assert.Equal(t, rules.Table{"x": rules.Off(), "y": rules.Warn()}, cfg.Rules)

	cfg, err = a.Build("src/generated/types.ts")
	require.NoError(t, err)
	assert.Equal(t, rules.Table{"x": rules.Warn(), "y": rules.Warn()}, cfg.Rules)
}

func TestResolveIsIdempotent(t *testing.T) {
	c, err := patterns.Default()
	require.NoError(t, err)
	r := NewResolver(c, JavaScript().Overrides)
	table := rules.Table{"curly": rules.Warn(), "unicorn/no-abusive-eslint-disable": rules.Error()}

	for _, path := range []string{"utils.spec.js", "jest.config.ts", "src/generated/a.ts", "index.js"} {
		once := r.Resolve(path, table)
		assert.Equal(t, once, r.Resolve(path, once), path)
	}
}

func TestResolveWithoutPathReturnsTable(t *testing.T) {
	c, err := patterns.Default()
	require.NoError(t, err)
	r := NewResolver(c, JavaScript().Overrides)
	table := rules.Table{"curly": rules.Warn()}

	assert.Equal(t, table, r.Resolve("", table))
	assert.Equal(t, table, r.Resolve("src/utils.ts", table))
}

func TestPrettierIncludedWhenInstalled(t *testing.T) {
	a := newAssembler(t, JavaScript(), WithPackageLookup(packages.Static("prettier", "eslint-config-prettier")))

	cfg, err := a.Build("")
	require.NoError(t, err)
	assert.Equal(t, "prettier", cfg.Extends[len(cfg.Extends)-1])
	assert.Equal(t, rules.Warn(), cfg.Rules["curly"])
}

func TestPrettierRequiresBothPackages(t *testing.T) {
	a := newAssembler(t, JavaScript(), WithPackageLookup(packages.Static("prettier")))

	cfg, err := a.Build("")
	require.NoError(t, err)
	assert.False(t, cfg.HasExtends("prettier"))
}

func TestLookupErrorMeansAbsent(t *testing.T) {
	var buf bytes.Buffer
	var calls atomic.Int32
	lookup := func(string) (bool, error) {
		calls.Add(1)
		return false, errors.New("permission denied")
	}
	a := newAssembler(t, JavaScript(),
		WithPackageLookup(lookup),
		WithLogger(logger.New(logger.LevelWarn, &buf)))

	for _, path := range []string{"", "index.js", "utils.spec.js"} {
		cfg, err := a.Build(path)
		require.NoError(t, err)
		assert.False(t, cfg.HasExtends("prettier"))
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, buf.String(), "treating as absent")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestUnknownExtends(t *testing.T) {
	def := &Definition{Name: "broken", Extends: []string{"plugin:missing/recommended"}}
	a := newAssembler(t, def)

	_, err := a.Build("")
	var unknown *rules.UnknownRuleSetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "plugin:missing/recommended", unknown.Name)
}

func TestBuildReturnsIndependentCopies(t *testing.T) {
	a := newAssembler(t, JavaScript())

	first, err := a.Build("utils.spec.js")
	require.NoError(t, err)
	first.Rules["curly"] = rules.Error()
	first.Extends[0] = "changed"
	first.Rules["max-nested-callbacks"].Options[0].(map[string]any)["max"] = 99

	second, err := a.Build("utils.spec.js")
	require.NoError(t, err)
	assert.Equal(t, rules.Off(), second.Rules["curly"])
	assert.Equal(t, "eslint:recommended", second.Extends[0])
	assert.Equal(t, rules.Warn(map[string]any{"max": 10}), second.Rules["max-nested-callbacks"])

	ambient, err := a.Build("")
	require.NoError(t, err)
	ambient.Overrides[0].Rules["max-nested-callbacks"].Options[0].(map[string]any)["max"] = 42
	assert.Equal(t, rules.Warn(map[string]any{"max": 10}), ambient.Overrides[0].Rules["max-nested-callbacks"])

	again, err := a.Build("")
	require.NoError(t, err)
	assert.Equal(t, rules.Warn(map[string]any{"max": 10}), again.Overrides[0].Rules["max-nested-callbacks"])

	stats := a.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestResolverOwnsOverrides(t *testing.T) {
	c, err := patterns.Default()
	require.NoError(t, err)

	opts := map[string]any{"max": 10}
	overrides := []Override{{
		Categories: []patterns.Category{patterns.CategoryTest},
		Rules:      rules.Table{"max-nested-callbacks": rules.Warn(opts)},
	}}
	r := NewResolver(c, overrides)
	opts["max"] = 1
	overrides[0].Rules["curly"] = rules.Off()

	got := r.Resolve("utils.spec.js", rules.Table{})
	assert.Equal(t, rules.Table{"max-nested-callbacks": rules.Warn(map[string]any{"max": 10})}, got)
}

func TestCacheDisabled(t *testing.T) {
	a := newAssembler(t, JavaScript(), WithCacheSize(0))

	for i := 0; i < 3; i++ {
		cfg, err := a.Build("jest.config.ts")
		require.NoError(t, err)
		assert.Equal(t, rules.Off(), cfg.Rules["import/no-anonymous-default-export"])
	}
	assert.Equal(t, 0, a.CacheStats().Entries)
}

func TestConcurrentBuilds(t *testing.T) {
	a := newAssembler(t, JavaScript())
	paths := []string{"index.js", "utils.spec.js", "jest.config.ts", "src/generated/a.ts"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			cfg, err := a.Build(path)
			assert.NoError(t, err)
			assert.Contains(t, cfg.Rules, "eqeqeq")
		}(paths[i%len(paths)])
	}
	wg.Wait()
}

func TestGraphQLConfig(t *testing.T) {
	a := newAssembler(t, GraphQL())

	cfg, err := a.Build("src/schema.graphql")
	require.NoError(t, err)
	assert.Contains(t, strings.Join(cfg.Rules.IDs(), ","), "@graphql-eslint/")
	assert.Empty(t, a.Classify("src/schema.graphql"))

	cfg, err = a.Build("")
	require.NoError(t, err)
	assert.Contains(t, cfg.Rules, "@graphql-eslint/naming-convention")
	assert.Contains(t, cfg.Rules, "@graphql-eslint/relay-connection-types")
	assert.Equal(t, `[1,{"style":"inline"}]`, entryJSON(t, cfg.Rules["@graphql-eslint/description-style"]))
	assert.Nil(t, cfg.Env)
	assert.Nil(t, cfg.ParserOptions)

	cfg, err = a.Build("src/generated/schema.graphql")
	require.NoError(t, err)
	assert.Equal(t, rules.Off(), cfg.Rules["@graphql-eslint/naming-convention"])
}

func TestConfigJSONFieldNames(t *testing.T) {
	a := newAssembler(t, JavaScript())

	cfg, err := a.Build("")
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"env", "parser", "parserOptions", "plugins", "extends", "rules", "overrides"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `{"browser":true,"node":true}`, string(raw["env"]))
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"graphql", "javascript"}, Names())

	def, err := Lookup("javascript")
	require.NoError(t, err)
	def.Extends = nil

	again, err := Lookup("javascript")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Extends)

	_, err = Lookup("python")
	var unknown *UnknownBundleError
	assert.ErrorAs(t, err, &unknown)
}

func BenchmarkBuild(b *testing.B) {
	a, err := NewAssembler(JavaScript(), WithPackageLookup(packages.Static()), WithLogger(logger.Nop()))
	require.NoError(b, err)
	paths := []string{"index.js", "utils.spec.js", "jest.config.ts", "src/generated/a.ts"}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := a.Build(paths[i%len(paths)]); err != nil {
			b.Fatal(err)
		}
	}
}
