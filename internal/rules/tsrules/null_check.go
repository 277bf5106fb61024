package tsrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// NullOrUndefinedCheck rewrites comparisons against null or undefined into
// isSome calls.
var NullOrUndefinedCheck = &tsast.Rule{
	Meta: lint.Meta{
		ID:          "null-or-undefined-check",
		Language:    lint.LangTypeScript,
		Description: "Use isSome(expr) to check against undefined or null.",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Stylistic Issues",
		Fixable:     true,
		Severity:    diag.SevWarning,
		Code:        diag.TsNullOrUndefinedCheck,
		Messages: map[string]string{
			"default": "Use isSome(expr) to check against undefined or null.",
		},
	},
	Visitor: tsast.Visitor{
		BinaryExpression: checkNullComparison,
	},
}

func checkNullComparison(p *tsast.Pass, n *tsast.BinaryExpr) {
	var negate bool
	switch n.Operator {
	case "==", "===":
		negate = true
	case "!=", "!==":
		negate = false
	default:
		return
	}
	if n.Left == nil || n.Right == nil {
		return
	}

	var operand *tsast.Expr
	switch {
	case isNullish(p, n.Left):
		operand = n.Right
	case isNullish(p, n.Right):
		operand = n.Left
	default:
		return
	}

	replacement := "isSome(" + p.Text(operand.Span()) + ")"
	if negate {
		replacement = "!" + replacement
	}
	f := fix.ReplaceNode("Use isSome", n.Span(), p.Text(n.Span()), replacement, fix.Preferred())
	report(p, n, "default", nil, &f)
}

// isNullish matches the null literal and the identifier undefined, which is
// assumed not to be shadowed.
func isNullish(p *tsast.Pass, e *tsast.Expr) bool {
	return e.Kind() == "null" || p.Text(e.Span()) == "undefined"
}
