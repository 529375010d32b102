package bundle

import (
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
)

type opts = map[string]any

// JavaScript returns the bundle for JavaScript and TypeScript sources.
func JavaScript() *Definition {
	return &Definition{
		Name:   "javascript",
		Env:    []string{"browser", "node"},
		Parser: "@typescript-eslint/parser",
		ParserOptions: &ParserOptions{
			EcmaVersion: 2020,
			SourceType:  "module",
		},
		Plugins: []string{"@typescript-eslint", "functional", "no-secrets"},
		Extends: []string{
			"eslint:recommended",
			"plugin:@typescript-eslint/eslint-recommended",
			"plugin:@typescript-eslint/recommended",
			"plugin:import/recommended",
			"plugin:sonarjs/recommended",
			"plugin:promise/recommended",
			"plugin:unicorn/recommended",
		},
		Conditional: []Conditional{
			{Extends: "prettier", Requires: []string{"prettier", "eslint-config-prettier"}},
		},
		Imports: []ImportRef{
			{Name: "plugin:unicorn/recommended", Transform: rules.ErrorsToWarnings},
		},
		Rules:     javascriptRules(),
		Overrides: javascriptOverrides(),
	}
}

func javascriptRules() rules.Table {
	return rules.Table{
		// tuned upstream rules
		"@typescript-eslint/consistent-type-definitions": rules.Warn("type"),
		"unicorn/switch-case-braces":                     rules.Warn("avoid"),
		"unicorn/better-regex":                           rules.Warn(opts{"sortCharacterClasses": false}),
		"unicorn/no-useless-undefined":                   rules.Warn(opts{"checkArguments": false}),
		"sonarjs/no-small-switch":                        rules.Warn(),
		"sonarjs/prefer-immediate-return":                rules.Warn(),
		"sonarjs/no-duplicate-string":                    rules.Warn(),
		"promise/always-return":                          rules.Error(opts{"ignoreLastCallback": true}),

		// disabled upstream rules
		"@typescript-eslint/consistent-indexed-object-style": rules.Off(),
		"unicorn/prevent-abbreviations":                      rules.Off(),
		"unicorn/no-array-for-each":                          rules.Off(),
		"unicorn/no-array-reduce":                            rules.Off(),
		"unicorn/no-array-callback-reference":                rules.Off(),
		"unicorn/no-null":                                    rules.Off(),
		"unicorn/prefer-export-from":                         rules.Off(),
		"unicorn/no-object-as-default-parameter":             rules.Off(),
		"unicorn/no-await-expression-member":                 rules.Off(),
		"unicorn/no-nested-ternary":                          rules.Off(),

		// core
		"arrow-body-style":       rules.Warn("as-needed"),
		"complexity":             rules.Warn(),
		"curly":                  rules.Warn(),
		"eqeqeq":                 rules.Error("always", opts{"null": "never"}),
		"guard-for-in":           rules.Error(),
		"max-depth":              rules.Warn(),
		"max-lines":              rules.Warn(opts{"skipBlankLines": true, "skipComments": true}),
		"max-lines-per-function": rules.Warn(opts{"skipBlankLines": true, "skipComments": true}),
		"max-nested-callbacks":   rules.Warn(opts{"max": 3}),
		"no-bitwise":             rules.Warn(),
		"no-console":             rules.Warn(opts{"allow": []any{"error", "warn", "info"}}),
		"no-duplicate-imports":   rules.Warn(),
		"no-eval":                rules.Error(),
		"no-magic-numbers": rules.Warn(opts{
			"ignore":              []any{-1, 0, 1, 2, 7, 10, 24, 60, 100, 1000, 3600},
			"ignoreDefaultValues": true,
			"enforceConst":        true,
			"detectObjects":       true,
		}),
		"no-param-reassign":           rules.Error(opts{"props": true}),
		"no-sequences":                rules.Error(),
		"no-template-curly-in-string": rules.Error(),
		"no-undef-init":               rules.Warn(),
		"no-unreachable-loop":         rules.Error(),
		"prefer-template":             rules.Warn(),
		"radix":                       rules.Warn(),
		"yoda":                        rules.Warn(),

		// @typescript-eslint
		"@typescript-eslint/no-require-imports":     rules.Error(),
		"@typescript-eslint/default-param-last":     rules.Warn(),
		"@typescript-eslint/max-params":             rules.Warn(opts{"max": 4}),
		"@typescript-eslint/method-signature-style": rules.Warn(),
		"@typescript-eslint/no-shadow":              rules.Warn(),
		"@typescript-eslint/no-unused-expressions":  rules.Warn(),

		// import
		"import/extensions":                  rules.Warn("never", opts{"json": "always"}),
		"import/max-dependencies":            rules.Warn(opts{"ignoreTypeImports": true}),
		"import/no-absolute-path":            rules.Error(),
		"import/no-amd":                      rules.Error(),
		"import/no-anonymous-default-export": rules.Warn(),
		"import/no-commonjs":                 rules.Error(),
		"import/no-cycle":                    rules.Error(),
		"import/no-deprecated":               rules.Warn(),
		"import/no-mutable-exports":          rules.Error(),
		"import/no-named-default":            rules.Warn(),
		"import/no-self-import":              rules.Error(),
		"import/no-unassigned-import":        rules.Warn(),
		"import/no-useless-path-segments":    rules.Warn(),

		// functional
		"functional/immutable-data":             rules.Error(opts{"ignoreImmediateMutation": true}),
		"functional/no-let":                     rules.Warn(),
		"functional/no-loop-statements":         rules.Warn(),
		"functional/prefer-property-signatures": rules.Warn(),
		"functional/prefer-tacit":               rules.Warn(),

		"no-secrets/no-secrets": rules.Error(opts{
			"additionalDelimiters": []any{"-"},
			"ignoreContent":        []any{"https://", "__Zone_", "__zone_"},
		}),
	}
}

func javascriptOverrides() []Override {
	return []Override{
		{
			Categories: []patterns.Category{patterns.CategoryTest},
			Rules: rules.Table{
				"no-magic-numbers":                         rules.Off(),
				"max-lines-per-function":                   rules.Off(),
				"max-lines":                                rules.Off(),
				"curly":                                    rules.Off(),
				"@typescript-eslint/no-non-null-assertion": rules.Off(),
				"@typescript-eslint/no-explicit-any":       rules.Off(),
				"sonarjs/no-duplicate-string":              rules.Off(),
				"unicorn/consistent-function-scoping":      rules.Off(),
				"functional/no-let":                        rules.Off(),

				"max-nested-callbacks":      rules.Warn(opts{"max": 10}),
				"functional/immutable-data": rules.Warn(opts{"ignoreImmediateMutation": true}),
			},
		},
		{
			Categories: []patterns.Category{patterns.CategoryKnownConfig},
			Rules: rules.Table{
				"import/no-anonymous-default-export": rules.Off(),
			},
		},
		{
			Categories: []patterns.Category{patterns.CategoryGenerated, patterns.CategoryKnownConfig},
			Rules: rules.Table{
				"unicorn/no-abusive-eslint-disable": rules.Off(),
			},
		},
	}
}
