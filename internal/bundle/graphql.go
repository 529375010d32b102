package bundle

import (
	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/rules"
)

// GraphQL returns the bundle for GraphQL schema documents.
func GraphQL() *Definition {
	return &Definition{
		Name:    "graphql",
		Parser:  "@graphql-eslint/eslint-plugin",
		Plugins: []string{"@graphql-eslint"},
		Extends: []string{
			"plugin:@graphql-eslint/schema-recommended",
			"plugin:@graphql-eslint/relay",
		},
		Rules: rules.Table{
			"@graphql-eslint/description-style": rules.Warn(opts{"style": "inline"}),
		},
		Overrides: []Override{
			{
				Categories: []patterns.Category{patterns.CategoryGenerated},
				Rules: rules.Table{
					"@graphql-eslint/require-description": rules.Off(),
					"@graphql-eslint/naming-convention":   rules.Off(),
				},
			},
		},
	}
}
