package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// AllListsInConnections requires list fields to be connection edges or to be
// marked @tinylist.
var AllListsInConnections = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "all-lists-in-connections",
		Language:    lint.LangGraphQL,
		Description: "Ensures that all list types are edges in connections, or marked as " + tinyListDirective,
		Category:    lint.CategoryProblem,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlAllListsInConnections,
		Messages: map[string]string{
			"unpaginated": "Lists must be paginated or marked as guaranteed to be short using the directive @" + tinyListDirective + ".",
		},
	},
	Visitor: graphql.Visitor{
		FieldDefinition: checkListField,
	},
}

func checkListField(p *graphql.Pass, f *graphql.FieldDefinition) error {
	if graphql.HasDirective(f.Directives, tinyListDirective) {
		return nil
	}
	if f.Name == "edges" && hasSuffix(f.Parent.DefName(), "Connection") {
		return nil
	}
	if graphql.IsListType(f.Type) {
		report(p, f, "unpaginated", nil)
	}
	return nil
}
