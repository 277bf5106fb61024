package tsrules

import (
	"strings"

	"vantalint/internal/diag"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// For a collection X the conventions are:
//
//	XFields = typeof schema;
//	XDoc = XFields & mongoose.Document;
//	XModel = model<XDoc>(schema, options);
const (
	docSuffix    = "Doc"
	fieldsSuffix = "Fields"
	modelSuffix  = "Model"
)

var (
	mongooseDocumentTypes = map[string]struct{}{
		"mongoose.Document": {},
		"Document":          {},
	}
	mongooseModelCallees = map[string]struct{}{
		"mongoose.model": {},
		"model":          {},
		"mongoose.Model": {},
		"Model":          {},
	}
)

// MongooseNamingConvention checks the Doc/Fields/Model naming of mongoose
// document types and models.
var MongooseNamingConvention = &tsast.Rule{
	Meta: lint.Meta{
		ID:          "mongoose-naming-convention",
		Language:    lint.LangTypeScript,
		Description: "Follow naming conventions for Mongoose modules and schemas.",
		Category:    lint.CategorySuggestion,
		Recommended: true,
		Severity:    diag.SevError,
		Code:        diag.TsMongooseNamingConvention,
		Messages: map[string]string{
			"mongooseDocumentNaming":            "Type alias names for mongoose documents must be suffixed with 'Doc', got {{typeAliasName}}",
			"mongooseFieldsNaming":              "Types intersected with mongoose.Document must be suffixed with 'Fields', got {{typeName}}",
			"mongooseDocumentFieldsMismatch":    "Prefixes of type alias name for mongoose documents must match the prefixes of types unioned, got {{typeAliasNamePrefix}} and {{fieldTypeNamePrefix}}",
			"mongooseModelNaming":               "Mongoose models must be suffixed with 'Model', got {{variableName}}",
			"mongooseModelDocumentTypeNaming":   "Mongoose model initialized with type that is not suffixed by 'Doc', got {{documentTypeName}}",
			"mongooseModelDocumentTypeMismatch": "Prefixes of variable declaration for mongoose models must match the prefix of document type, got {{variableDeclarationNamePrefix}} and {{documentTypeNamePrefix}}",
		},
	},
	Visitor: tsast.Visitor{
		TypeAlias:          checkDocumentAlias,
		VariableDeclarator: checkModelDeclarator,
	},
}

func isDocumentType(p *tsast.Pass, t tsast.TypeNode) bool {
	if _, ok := t.(*tsast.TypeRef); !ok {
		return false
	}
	_, ok := mongooseDocumentTypes[p.Text(t.Span())]
	return ok
}

func checkDocumentAlias(p *tsast.Pass, n *tsast.TypeAlias) {
	inter, ok := n.Value.(*tsast.IntersectionType)
	if !ok || n.Name == nil {
		return
	}
	aliasName := p.Text(n.Name.Span())

	for _, member := range inter.Members {
		if !isDocumentType(p, member) {
			continue
		}
		if !strings.HasSuffix(aliasName, docSuffix) {
			report(p, n.Name, "mongooseDocumentNaming", map[string]string{"typeAliasName": aliasName}, nil)
			continue
		}
		checkFieldsSiblings(p, inter, strings.TrimSuffix(aliasName, docSuffix))
	}
}

func checkFieldsSiblings(p *tsast.Pass, inter *tsast.IntersectionType, aliasPrefix string) {
	for _, sibling := range inter.Members {
		ref, ok := sibling.(*tsast.TypeRef)
		if !ok || isDocumentType(p, sibling) {
			continue
		}
		if !strings.HasSuffix(ref.Name, fieldsSuffix) {
			report(p, ref, "mongooseFieldsNaming", map[string]string{"typeName": p.Text(ref.Span())}, nil)
			continue
		}
		prefix := strings.TrimSuffix(ref.Name, fieldsSuffix)
		if prefix != aliasPrefix {
			report(p, ref, "mongooseDocumentFieldsMismatch", map[string]string{
				"typeAliasNamePrefix": aliasPrefix,
				"fieldTypeNamePrefix": prefix,
			}, nil)
		}
	}
}

func checkModelDeclarator(p *tsast.Pass, n *tsast.VarDeclarator) {
	call := n.Init
	if call == nil || call.Callee == nil || n.Name == nil {
		return
	}
	if _, ok := mongooseModelCallees[p.Text(call.Callee.Span())]; !ok {
		return
	}
	varName := p.Text(n.Name.Span())

	for _, arg := range call.TypeArgs {
		ref, ok := arg.(*tsast.TypeRef)
		if !ok {
			continue
		}
		if !strings.HasSuffix(varName, modelSuffix) {
			report(p, n.Name, "mongooseModelNaming", map[string]string{"variableName": varName}, nil)
			continue
		}
		docName := p.Text(ref.Span())
		if !strings.HasSuffix(docName, docSuffix) {
			report(p, ref, "mongooseModelDocumentTypeNaming", map[string]string{"documentTypeName": docName}, nil)
			continue
		}
		varPrefix := strings.TrimSuffix(varName, modelSuffix)
		docPrefix := strings.TrimSuffix(docName, docSuffix)
		if varPrefix != docPrefix {
			report(p, ref, "mongooseModelDocumentTypeMismatch", map[string]string{
				"variableDeclarationNamePrefix": varPrefix,
				"documentTypeNamePrefix":        docPrefix,
			}, nil)
		}
	}
}
