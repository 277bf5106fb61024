package tsrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// NoOneLineArrowFunctions flags block-bodied arrow functions whose only
// statement is not a return.
var NoOneLineArrowFunctions = &tsast.Rule{
	Meta: lint.Meta{
		ID:          "no-one-line-arrow-functions",
		Language:    lint.LangTypeScript,
		Description: "This short function is missing a return statement, please add an empty return statement at the end",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Severity:    diag.SevWarning,
		Code:        diag.TsNoOneLineArrowFunctions,
		Messages: map[string]string{
			"missingReturn": "Expect a one-line arrow function to have a return statement",
		},
	},
	Visitor: tsast.Visitor{
		ArrowFunction: func(p *tsast.Pass, n *tsast.ArrowFunction) {
			if !n.BlockBody || len(n.Statements) != 1 {
				return
			}
			if n.Statements[0].Kind() == "return_statement" {
				return
			}
			report(p, n, "missingReturn", nil, nil)
		},
	},
}
