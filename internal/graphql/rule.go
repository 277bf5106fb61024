package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"vantalint/internal/lint"
)

// Pass is the view of one rule over one schema document.
type Pass struct {
	*lint.Pass
	Doc    *Document
	Schema *ast.Schema // nil when no schema was configured
}

// Visitor maps node kinds to handlers. Nil handlers are skipped.
// A handler error aborts the rule for the current document.
type Visitor struct {
	Document                  func(*Pass, *Document) error
	ObjectTypeDefinition      func(*Pass, *ObjectTypeDefinition) error
	ObjectTypeExtension       func(*Pass, *ObjectTypeExtension) error
	InterfaceTypeDefinition   func(*Pass, *InterfaceTypeDefinition) error
	UnionTypeDefinition       func(*Pass, *UnionTypeDefinition) error
	EnumTypeDefinition        func(*Pass, *EnumTypeDefinition) error
	ScalarTypeDefinition      func(*Pass, *ScalarTypeDefinition) error
	InputObjectTypeDefinition func(*Pass, *InputObjectTypeDefinition) error
	TypeExtension             func(*Pass, *TypeExtension) error
	FieldDefinition           func(*Pass, *FieldDefinition) error
}

// Rule is a GraphQL schema rule.
type Rule struct {
	lint.Meta
	Visitor Visitor
}

// Run walks doc with the rule's visitor.
func (r *Rule) Run(p *Pass) error {
	return Walk(&r.Visitor, p, p.Doc)
}
