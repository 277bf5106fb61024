package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// EdgesAreRelayCompliant checks *Edge types against the Relay edge shape.
var EdgesAreRelayCompliant = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "edges-are-relay-compliant",
		Language:    lint.LangGraphQL,
		Description: "All Edge GraphQL types must implement the interface specified by the Relay cursor spec.",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlEdgesRelayCompliant,
		Messages: map[string]string{
			"missingNode":   "Edges must contain a node field",
			"nodeIsList":    "Node field cannot be a list",
			"missingCursor": "Edges must contain a cursor field",
			"cursorType":    "Cursor field must be a string or serializable to string",
		},
	},
	Visitor: graphql.Visitor{
		ObjectTypeDefinition: checkEdge,
	},
}

func checkEdge(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
	if !hasSuffix(def.Name, "Edge") {
		return nil
	}

	node := def.Field("node")
	if node == nil {
		report(p, def, "missingNode", nil)
		return nil
	}
	if graphql.IsListType(node.Type) {
		report(p, node, "nodeIsList", nil)
	}

	cursor := def.Field("cursor")
	if cursor == nil {
		report(p, def, "missingCursor", nil)
		return nil
	}
	named, err := graphql.ExtractNamedType(cursor.Type)
	if err != nil {
		return err
	}
	if named.Name != "String" {
		report(p, cursor, "cursorType", nil)
	}
	return nil
}
