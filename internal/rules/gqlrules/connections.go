package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// ConnectionsAreRelayCompliant checks *Connection types against the Relay
// cursor connection shape.
var ConnectionsAreRelayCompliant = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "connections-are-relay-compliant",
		Language:    lint.LangGraphQL,
		Description: "All Connection GraphQL types must implement the interface specified by the Relay cursor spec.",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlConnectionsRelayCompliant,
		Messages: map[string]string{
			"missingEdges":     "Connections must contain an edge field",
			"edgesNotList":     "Edges field must be a list",
			"missingPageInfo":  "Connections must contain a pageInfo field",
			"pageInfoNullable": "pageInfo must be non-nullable",
			"pageInfoNotNamed": "pageInfo must be an object type",
			"pageInfoType":     "pageInfo must be of type PageInfo",
		},
	},
	Visitor: graphql.Visitor{
		ObjectTypeDefinition: checkConnection,
	},
}

func checkConnection(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
	if !hasSuffix(def.Name, "Connection") {
		return nil
	}

	edges := def.Field("edges")
	if edges == nil {
		report(p, def, "missingEdges", nil)
		return nil
	}
	if !graphql.IsListType(edges.Type) {
		report(p, edges, "edgesNotList", nil)
	}

	pageInfo := def.Field("pageInfo")
	if pageInfo == nil {
		report(p, def, "missingPageInfo", nil)
		return nil
	}
	nn, ok := pageInfo.Type.(*graphql.NonNullType)
	if !ok {
		report(p, pageInfo, "pageInfoNullable", nil)
		return nil
	}
	named, ok := nn.Elem.(*graphql.NamedType)
	if !ok {
		report(p, pageInfo, "pageInfoNotNamed", nil)
		return nil
	}
	if named.Name != "PageInfo" {
		report(p, pageInfo, "pageInfoType", nil)
	}
	return nil
}
