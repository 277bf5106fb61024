package gqlrules

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
	"vantalint/internal/source"
)

// ruleCase mirrors the valid/invalid layout of rule tests: messages lists the
// expected diagnostics in report order.
type ruleCase struct {
	name     string
	sdl      string
	messages []string
}

type runResult struct {
	file  *source.File
	diags []diag.Diagnostic
	err   error
}

func runRule(t *testing.T, rule *graphql.Rule, sdl string, schema *ast.Schema) runResult {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("schema.graphql", []byte(sdl)))
	doc, err := graphql.Parse(file)
	require.NoError(t, err)

	bag := diag.NewBag(0)
	p := &graphql.Pass{
		Pass:   lint.NewPass(&rule.Meta, file, rule.Severity, diag.BagReporter{Bag: bag}),
		Doc:    doc,
		Schema: schema,
	}
	err = rule.Run(p)
	return runResult{file: file, diags: bag.Items(), err: err}
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func mustSchema(t *testing.T, sdl string) *ast.Schema {
	t.Helper()
	schema, err := graphql.LoadSchemaSources(&ast.Source{Name: "schema.graphql", Input: sdl})
	require.NoError(t, err)
	return schema
}

func runCases(t *testing.T, rule *graphql.Rule, cases []ruleCase, withSchema bool) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var schema *ast.Schema
			if withSchema {
				schema = mustSchema(t, tc.sdl)
			}
			res := runRule(t, rule, tc.sdl, schema)
			require.NoError(t, res.err)
			if len(tc.messages) == 0 {
				require.Empty(t, messages(res.diags))
				return
			}
			require.Equal(t, tc.messages, messages(res.diags))
			for _, d := range res.diags {
				require.Equal(t, rule.ID, d.Rule)
				require.Equal(t, rule.Code, d.Code)
			}
		})
	}
}
