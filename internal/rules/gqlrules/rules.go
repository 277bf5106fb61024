package gqlrules

import (
	"strings"

	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

const (
	publicDirective   = "public"
	tinyListDirective = "tinylist"
	mutationType      = "Mutation"
)

// All returns the GraphQL rules in catalog order.
func All() []*graphql.Rule {
	return []*graphql.Rule{
		ConnectionsAreRelayCompliant,
		EdgesAreRelayCompliant,
		AllListsInConnections,
		PublicDescendantsPublic,
		ErrorsImplementUserError,
		PayloadsAreUnions,
		MutationsInputType,
		MutationsInputsUnique,
		MutationsPayloadsUnique,
		MutationsReturnPayload,
	}
}

func report(p *graphql.Pass, at graphql.Node, msgID string, data map[string]string) {
	p.Report(lint.Violation{Span: at.Span(), MessageID: msgID, Data: data})
}

// mutationFields returns the fields of a Mutation object type or extension,
// nil for anything else.
func mutationFields(def graphql.Definition) []*graphql.FieldDefinition {
	if def.DefName() != mutationType {
		return nil
	}
	switch d := def.(type) {
	case *graphql.ObjectTypeDefinition:
		return d.Fields
	case *graphql.ObjectTypeExtension:
		return d.Fields
	}
	return nil
}

func hasSuffix(name, suffix string) bool {
	return strings.HasSuffix(name, suffix)
}
