package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.js", "index.js", true},
		{"*.js", "src/deep/index.js", true}, // base-name match
		{"src/*.js", "src/index.js", true},
		{"src/*.js", "src/deep/index.js", false},
		{"src/**/*.js", "src/deep/index.js", true},
		{"**/*.spec.js", "utils.spec.js", true}, // "**/" matches at the root
		{"**/*.spec.js", "a/b/utils.spec.js", true},
		{"**/*.{spec,test}.{js,ts}", "src/utils.test.ts", true},
		{"**/*.{spec,test}.{js,ts}", "src/utils.ts", false},
		{"./*.config.ts", "jest.config.ts", true},
		{"**/generated/**", "src/graphql/generated/introspection-result.ts", true},
		{"**/generated/**", "generated/x.ts", true},
		{"**/generated/**", "src/generator.ts", false},
		{"*.ts", `src\win\file.ts`, true},
		{"file?.js", "file1.js", true},
		{"file[0-9].js", "filex.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileAnchored(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.js", "index.js", true},
		{"*.js", "src/deep/index.js", false},
		{"./*.js", "index.js", true},
		{"**/*.js", "index.js", true},
		{"**/*.js", "src/deep/index.js", true},
		{"src/*.js", "src/index.js", true},
		{"src/*.js", "src/deep/index.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			m, err := CompileAnchored(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}

	m, err := CompileAllAnchored([]string{"*.ts", "src/**/*.js"})
	require.NoError(t, err)
	assert.True(t, m.Match("a.ts"))
	assert.False(t, m.Match("lib/a.ts"))
	assert.True(t, m.Match("src/x/y.js"))

	_, err = CompileAllAnchored([]string{"[abc"})
	var patErr *PatternError
	assert.ErrorAs(t, err, &patErr)
}

func TestCompileRejectsMalformedPattern(t *testing.T) {
	_, err := Compile("src/[abc")
	var patErr *PatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, "src/[abc", patErr.Pattern)

	_, err = NewClassifier(NewPatternSet(CategoryTest, "**/*.js", "[abc"))
	assert.ErrorAs(t, err, &patErr)
}

func TestClassifyDefaults(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		path string
		want CategorySet
	}{
		{"utils.spec.js", CategorySet{CategoryTest}},
		{"src/components/button.test.tsx", CategorySet{CategoryTest}},
		{"src/__tests__/helpers.ts", CategorySet{CategoryTest}},
		{"jest.config.ts", CategorySet{CategoryKnownConfig}},
		{"packages/app/vite.config.mjs", CategorySet{CategoryKnownConfig}},
		{".eslintrc.js", CategorySet{CategoryKnownConfig}},
		{"src/graphql/generated/introspection-result.ts", CategorySet{CategoryGenerated}},
		{"src/api/types.generated.ts", CategorySet{CategoryGenerated}},
		{"src/generated/codegen.config.ts", CategorySet{CategoryGenerated, CategoryKnownConfig}},
		{"test/generated/fixture.ts", CategorySet{CategoryTest, CategoryGenerated}},
		{"src/schema.graphql", nil},
		{"index.js", nil},
		{"src/utils.ts", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.path))
		})
	}
}

func TestClassifierCategoryOrderFollowsDeclaration(t *testing.T) {
	c, err := NewClassifier(
		NewPatternSet("b", "*.ts"),
		NewPatternSet("a", "src/**"),
	)
	require.NoError(t, err)

	got := c.Classify("src/x.ts")
	assert.Equal(t, CategorySet{"b", "a"}, got)
	assert.Equal(t, "b+a", got.Key())
	assert.Equal(t, []Category{"b", "a"}, c.Categories())
}

func TestCategorySet(t *testing.T) {
	s := CategorySet{CategoryGenerated, CategoryKnownConfig}
	assert.True(t, s.Has(CategoryGenerated))
	assert.False(t, s.Has(CategoryTest))
	assert.True(t, s.Intersects(CategoryTest, CategoryKnownConfig))
	assert.False(t, CategorySet(nil).Intersects(CategoryTest))
	assert.Equal(t, "", CategorySet(nil).Key())
}

func TestPatternSetIsImmutable(t *testing.T) {
	src := []string{"*.js"}
	s := NewPatternSet(CategoryTest, src...)
	src[0] = "*.ts"

	got := s.Patterns()
	assert.Equal(t, []string{"*.js"}, got)
	got[0] = "changed"
	assert.Equal(t, []string{"*.js"}, s.Patterns())
}

func TestPatternsLookup(t *testing.T) {
	set, ok := Patterns(CategoryKnownConfig)
	require.True(t, ok)
	assert.Equal(t, KnownConfigFilePatterns.Patterns(), set.Patterns())

	_, ok = Patterns("unknown")
	assert.False(t, ok)
}

func BenchmarkClassify(b *testing.B) {
	c, err := Default()
	require.NoError(b, err)
	paths := []string{
		"utils.spec.js",
		"jest.config.ts",
		"src/graphql/generated/introspection-result.ts",
		"src/schema.graphql",
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = c.Classify(paths[i%len(paths)])
	}
}
