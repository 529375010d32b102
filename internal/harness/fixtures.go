package harness

// Fixtures maps fixture file paths, relative to the harness directory, to
// their contents.
type Fixtures map[string]string

var defaultFixtures = map[string]Fixtures{
	"javascript": {
		"index.js":                                      "import { sum } from './src/utils';\n\nconsole.info(sum(1, 2));\n",
		"src/utils.ts":                                  "export const sum = (a: number, b: number): number => a + b;\n",
		"utils.spec.js":                                 "import { sum } from './src/utils';\n\ntest('sum', () => {\n  expect(sum(1, 2)).toBe(3);\n});\n",
		"jest.config.ts":                                "export default {\n  testEnvironment: 'node',\n};\n",
		"src/graphql/generated/introspection-result.ts": "export default { possibleTypes: {} };\n",
	},
	"graphql": {
		"src/schema.graphql":           "\"The root query.\"\ntype Query {\n  \"Returns a greeting.\"\n  hello: String\n}\n",
		"src/generated/schema.graphql": "type Query {\n  hello: String\n}\n",
	},
}

// DefaultFixtures returns the sample files for the named bundle.
func DefaultFixtures(bundleName string) Fixtures {
	out := make(Fixtures, len(defaultFixtures[bundleName]))
	for path, content := range defaultFixtures[bundleName] {
		out[path] = content
	}
	return out
}
