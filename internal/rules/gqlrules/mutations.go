package gqlrules

import (
	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// MutationsInputType requires mutations to take no arguments or a single
// non-null "input" argument of an *Input type.
var MutationsInputType = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "mutations-input-type",
		Language:    lint.LangGraphQL,
		Description: "All mutations must take a single non-nullable input type with the suffix `Input` or have no arguments",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlMutationsInputType,
		Messages: map[string]string{
			"tooManyArguments": "Mutations must take zero or one argument",
			"argumentName":     "Mutations must take a single argument named input",
			"inputIsList":      "Mutation input must not be list type",
			"inputNullable":    "Mutation input must be non-nullable",
			"inputSuffix":      "Mutation input must be a type with suffix `Input`",
		},
	},
	Visitor: graphql.Visitor{
		ObjectTypeDefinition: func(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
			checkMutationInputs(p, mutationFields(def))
			return nil
		},
		ObjectTypeExtension: func(p *graphql.Pass, ext *graphql.ObjectTypeExtension) error {
			checkMutationInputs(p, mutationFields(ext))
			return nil
		},
	},
}

func checkMutationInputs(p *graphql.Pass, fields []*graphql.FieldDefinition) {
	for _, f := range fields {
		if len(f.Arguments) > 1 {
			report(p, f, "tooManyArguments", nil)
			continue
		}
		for _, arg := range f.Arguments {
			checkMutationInput(p, arg)
		}
	}
}

func checkMutationInput(p *graphql.Pass, arg *graphql.InputValue) {
	if arg.Name != "input" {
		report(p, arg, "argumentName", nil)
		return
	}
	if graphql.IsListType(arg.Type) {
		report(p, arg, "inputIsList", nil)
		return
	}
	nn, ok := arg.Type.(*graphql.NonNullType)
	if !ok {
		report(p, arg, "inputNullable", nil)
		return
	}
	if named, ok := nn.Elem.(*graphql.NamedType); !ok || !hasSuffix(named.Name, "Input") {
		report(p, arg, "inputSuffix", nil)
	}
}

// MutationsReturnPayload requires mutations to return a nullable, non-list
// *Payload type.
var MutationsReturnPayload = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "mutations-return-payload",
		Language:    lint.LangGraphQL,
		Description: "All mutations must return a nullable type with the suffix `Payload`",
		Category:    lint.CategorySuggestion,
		DocsGroup:   "Operations",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlMutationsReturnPayload,
		Messages: map[string]string{
			"payloadIsList":  "Mutation payloads must not be list types",
			"payloadNonNull": "Mutation payloads must be nullable",
			"payloadSuffix":  `Mutations must return types with the suffix "Payload"`,
		},
	},
	Visitor: graphql.Visitor{
		ObjectTypeDefinition: func(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
			checkMutationPayloads(p, mutationFields(def))
			return nil
		},
		ObjectTypeExtension: func(p *graphql.Pass, ext *graphql.ObjectTypeExtension) error {
			checkMutationPayloads(p, mutationFields(ext))
			return nil
		},
	},
}

func checkMutationPayloads(p *graphql.Pass, fields []*graphql.FieldDefinition) {
	for _, f := range fields {
		switch t := f.Type.(type) {
		case *graphql.ListType:
			report(p, f, "payloadIsList", nil)
		case *graphql.NonNullType:
			report(p, f, "payloadNonNull", nil)
		case *graphql.NamedType:
			if !hasSuffix(t.Name, "Payload") {
				report(p, f, "payloadSuffix", nil)
			}
		}
	}
}
