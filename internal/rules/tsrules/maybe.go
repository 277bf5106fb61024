package tsrules

import (
	"strings"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// OptionalAlwaysMaybe requires optional properties and parameters to be
// typed Maybe<T>.
var OptionalAlwaysMaybe = &tsast.Rule{
	Meta: lint.Meta{
		ID:          "optional-always-maybe",
		Language:    lint.LangTypeScript,
		Description: "Optional properties must be of type Maybe<T>",
		Category:    lint.CategorySuggestion,
		Recommended: true,
		Fixable:     true,
		Severity:    diag.SevError,
		Code:        diag.TsOptionalAlwaysMaybe,
		Messages: map[string]string{
			"default": "`{{property}}` should be changed to `Maybe<{{property}}>`",
		},
	},
	Visitor: tsast.Visitor{
		PropertySignature: func(p *tsast.Pass, n *tsast.PropertySignature) {
			introduceMaybe(p, n, n.Optional, n.Type)
		},
		Parameter: func(p *tsast.Pass, n *tsast.Parameter) {
			introduceMaybe(p, n, n.Optional, n.Type)
		},
	},
}

func introduceMaybe(p *tsast.Pass, at tsast.Node, optional bool, typ tsast.TypeNode) {
	if !optional || typ == nil {
		return
	}
	if ref, ok := typ.(*tsast.TypeRef); ok && ref.Name == "Maybe" {
		return
	}
	text := p.Text(typ.Span())
	f := fix.WrapWith("Wrap in Maybe", typ.Span(), "Maybe<", ">", fix.WithKind(diag.FixKindQuickFix))
	report(p, at, "default", map[string]string{"property": text}, &f)
}

// PreferMaybe rewrites unions with null or undefined into Maybe<T>.
var PreferMaybe = &tsast.Rule{
	Meta: lint.Meta{
		ID:          "prefer-maybe",
		Language:    lint.LangTypeScript,
		Description: "Prefer Maybe<T> to T | null or T | undefined.",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Stylistic Issues",
		Fixable:     true,
		Severity:    diag.SevWarning,
		Code:        diag.TsPreferMaybe,
		Messages: map[string]string{
			"default": "Prefer Maybe<T> to T | null or T | undefined.",
		},
	},
	Visitor: tsast.Visitor{
		UnionType: checkUnion,
	},
}

func checkUnion(p *tsast.Pass, n *tsast.UnionType) {
	kept := make([]string, 0, len(n.Members))
	for _, m := range n.Members {
		if !tsast.IsNothing(m) {
			kept = append(kept, p.Text(m.Span()))
		}
	}
	if len(kept) == len(n.Members) {
		return
	}
	// null | undefined has nothing left to wrap
	if len(kept) == 0 {
		report(p, n, "default", nil, nil)
		return
	}
	replacement := "Maybe<" + strings.Join(kept, " | ") + ">"
	f := fix.ReplaceNode("Use Maybe", n.Span(), p.Text(n.Span()), replacement, fix.Preferred())
	report(p, n, "default", nil, &f)
}
