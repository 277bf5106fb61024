package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

const userErrorInterface = "UserError"

// ErrorsImplementUserError ties the "Error" name suffix to the UserError
// interface in both directions.
//
// Interface references are plain names here, so membership is a name
// comparison. An interface listed under another kind of node cannot occur.
var ErrorsImplementUserError = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "errors-implement-usererror",
		Language:    lint.LangGraphQL,
		Description: "A type should implement the UserError interface if and only if its name ends with Error.",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlErrorsImplementUserError,
		Messages: map[string]string{
			"mustImplement":   "Types that end with 'Error' must implement UserError",
			"cannotImplement": "Types that do not end in 'Error' cannot implement UserError",
		},
	},
	Visitor: graphql.Visitor{
		ObjectTypeDefinition: func(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
			isError := hasSuffix(def.Name, "Error")
			implements := def.Implements(userErrorInterface)
			switch {
			case isError && !implements:
				report(p, def, "mustImplement", nil)
			case !isError && implements:
				report(p, def, "cannotImplement", nil)
			}
			return nil
		},
		// an extension may be adding UserError to a type defined elsewhere,
		// so only the forbidden direction is checked
		ObjectTypeExtension: func(p *graphql.Pass, ext *graphql.ObjectTypeExtension) error {
			if !hasSuffix(ext.Name, "Error") && ext.Implements(userErrorInterface) {
				report(p, ext, "cannotImplement", nil)
			}
			return nil
		},
	},
}
