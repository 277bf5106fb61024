package tsrules

import (
	"strings"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

var (
	CommonAbsoluteImport       = AbsoluteImportRule("common", diag.TsCommonAbsoluteImport)
	ServerCommonAbsoluteImport = AbsoluteImportRule("server-common", diag.TsServerCommonAbsoluteImport)
)

// AbsoluteImportRule builds the "<folder>-absolute-import" rule, which turns
// relative imports reaching into folder/src into absolute folder imports.
func AbsoluteImportRule(folder string, code diag.Code) *tsast.Rule {
	return &tsast.Rule{
		Meta: lint.Meta{
			ID:          folder + "-absolute-import",
			Language:    lint.LangTypeScript,
			Description: "Import " + folder + " from its absolute path",
			Category:    lint.CategorySuggestion,
			Recommended: true,
			Fixable:     true,
			Severity:    diag.SevError,
			Code:        code,
			Messages: map[string]string{
				"default": "Import code in " + folder + " from its absolute path",
			},
		},
		Visitor: tsast.Visitor{
			ImportDeclaration: func(p *tsast.Pass, n *tsast.ImportDecl) {
				if n.Source == nil {
					return
				}
				replacement, ok := AbsoluteImportPath(n.Source.Value, folder)
				if !ok {
					return
				}
				f := fix.ReplaceStringContents("Use absolute import", n.Source.Span(), n.Source.Value, replacement)
				report(p, n, "default", nil, &f)
			},
		},
	}
}

// AbsoluteImportPath rewrites an import path of the form
// [../ or ./ ...]folder/src/rest into folder/rest. Only a leading run of
// relative segments may precede folder, folder and src must be whole
// segments, and rest must be non-empty.
func AbsoluteImportPath(importPath, folder string) (string, bool) {
	segs := strings.Split(importPath, "/")
	i := 0
	for i < len(segs) && (segs[i] == ".." || segs[i] == ".") {
		i++
	}
	if i+2 >= len(segs) || segs[i] != folder || segs[i+1] != "src" {
		return "", false
	}
	rest := segs[i+2:]
	if len(rest) == 1 && rest[0] == "" {
		return "", false
	}
	return folder + "/" + strings.Join(rest, "/"), true
}
