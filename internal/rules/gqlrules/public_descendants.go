package gqlrules

import (
	"github.com/vektah/gqlparser/v2/ast"

	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
)

// PublicDescendantsPublic requires every type reachable from a @public field
// or type to be @public itself, a scalar or an enum.
var PublicDescendantsPublic = &graphql.Rule{
	Meta: lint.Meta{
		ID:          "public-descendants-public",
		Language:    lint.LangGraphQL,
		Description: "Ensures that all types reachable from fields marked as @public are themselves marked as @public.",
		Category:    lint.CategoryProblem,
		DocsGroup:   "Best Practices",
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.GqlPublicDescendantsPublic,
		Messages: map[string]string{
			"publicField":   "Types accessible by @" + publicDirective + " fields must be marked @" + publicDirective + ".",
			"unmarkedField": "Types accessible from @" + publicDirective + " types must themselves be marked @" + publicDirective + ". Unmarked field: {{field}}",
			"extension":     "@" + publicDirective + " directive not supported on type extensions",
		},
	},
	Visitor: graphql.Visitor{
		Document: func(p *graphql.Pass, _ *graphql.Document) error {
			_, err := graphql.RequireSchema(p)
			return err
		},
		FieldDefinition:      checkPublicField,
		ObjectTypeDefinition: checkPublicType,
		ObjectTypeExtension:  checkPublicExtension,
	},
}

func checkPublicField(p *graphql.Pass, f *graphql.FieldDefinition) error {
	if !graphql.HasDirective(f.Directives, publicDirective) {
		return nil
	}
	schema, err := graphql.RequireSchema(p)
	if err != nil {
		return err
	}
	ok, err := reachesPublic(schema, f)
	if err != nil {
		return err
	}
	if !ok {
		report(p, f, "publicField", nil)
	}
	return nil
}

func checkPublicType(p *graphql.Pass, def *graphql.ObjectTypeDefinition) error {
	if !graphql.HasDirective(def.Directives, publicDirective) {
		return nil
	}
	schema, err := graphql.RequireSchema(p)
	if err != nil {
		return err
	}
	for _, f := range def.Fields {
		ok, err := reachesPublic(schema, f)
		if err != nil {
			return err
		}
		if !ok {
			report(p, f, "unmarkedField", map[string]string{"field": f.Name})
		}
	}
	return nil
}

func checkPublicExtension(p *graphql.Pass, ext *graphql.ObjectTypeExtension) error {
	if graphql.HasDirective(ext.Directives, publicDirective) {
		report(p, ext, "extension", nil)
	}
	return nil
}

// reachesPublic reports whether the field's named type may be exposed from a
// @public type. Types missing from the schema are given the benefit of the doubt.
func reachesPublic(schema *ast.Schema, f *graphql.FieldDefinition) (bool, error) {
	named, err := graphql.ExtractNamedType(f.Type)
	if err != nil {
		return false, err
	}
	def := schema.Types[named.Name]
	if def == nil {
		return true, nil
	}
	switch {
	case def.Kind == ast.Scalar, def.Kind == ast.Enum, graphql.IsBuiltinScalar(named.Name):
		return true, nil
	}
	return def.Directives.ForName(publicDirective) != nil, nil
}
