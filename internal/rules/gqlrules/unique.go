package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// MutationsInputsUnique reports every mutation argument whose named type was
// already taken by an earlier argument in the same document.
var MutationsInputsUnique = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "mutations-inputs-unique",
		Language:    lint.LangGraphQL,
		Description: "All mutations must take a unique input type",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlMutationsInputsUnique,
		Messages: map[string]string{
			"reusedInput": "Mutation input types must be unique; reused type {{type}}",
		},
	},
	Visitor: graphql.Visitor{
		Document: func(p *graphql.Pass, doc *graphql.Document) error {
			seen := make(map[string]struct{})
			for _, def := range doc.Definitions {
				for _, f := range mutationFields(def) {
					for _, arg := range f.Arguments {
						named, err := graphql.ExtractNamedType(arg.Type)
						if err != nil {
							return err
						}
						if _, dup := seen[named.Name]; dup {
							report(p, arg, "reusedInput", map[string]string{"type": named.Name})
							continue
						}
						seen[named.Name] = struct{}{}
					}
				}
			}
			return nil
		},
	},
}

// MutationsPayloadsUnique reports every mutation whose payload type was
// already returned by an earlier mutation in the same document. List and
// non-null returns are left to mutations-return-payload.
var MutationsPayloadsUnique = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "mutations-payloads-unique",
		Language:    lint.LangGraphQL,
		Description: "All mutations must return a unique type",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlMutationsPayloadsUnique,
		Messages: map[string]string{
			"reusedPayload": "Mutation payload types must be unique",
		},
	},
	Visitor: graphql.Visitor{
		Document: func(p *graphql.Pass, doc *graphql.Document) error {
			seen := make(map[string]struct{})
			for _, def := range doc.Definitions {
				for _, f := range mutationFields(def) {
					named, ok := f.Type.(*graphql.NamedType)
					if !ok {
						continue
					}
					if _, dup := seen[named.Name]; dup {
						report(p, f, "reusedPayload", nil)
						continue
					}
					seen[named.Name] = struct{}{}
				}
			}
			return nil
		},
	},
}
