package graphql

import (
	"vantalint/internal/source"
)

// Node is implemented by every GraphQL syntax node the rules see.
// The set of implementations is closed: dispatch switches over it exhaustively.
type Node interface {
	Span() source.Span
	gqlNode()
}

// TypeExpr is a type reference: *NamedType, *ListType or *NonNullType.
type TypeExpr interface {
	Node
	typeExpr()
}

// Definition is a top-level type system definition or extension.
type Definition interface {
	Node
	DefName() string
	DefDirectives() []*Directive
	definition()
}

type base struct {
	span source.Span
}

func (b base) Span() source.Span { return b.span }
func (base) gqlNode()            {}

type NamedType struct {
	base
	Name string
}

type ListType struct {
	base
	Elem TypeExpr
}

// NonNullType wraps a *NamedType or *ListType, never another NonNullType.
type NonNullType struct {
	base
	Elem TypeExpr
}

func (*NamedType) typeExpr()   {}
func (*ListType) typeExpr()    {}
func (*NonNullType) typeExpr() {}

type Directive struct {
	base
	Name string
}

// InputValue is an argument or an input object field.
type InputValue struct {
	base
	Name       string
	Type       TypeExpr
	Directives []*Directive
}

// FieldDefinition is a field of an object or interface type (or extension).
type FieldDefinition struct {
	base
	Name       string
	Arguments  []*InputValue
	Type       TypeExpr
	Directives []*Directive
	Parent     Definition
}

type typeDef struct {
	base
	Name       string
	Directives []*Directive
}

func (d *typeDef) DefName() string             { return d.Name }
func (d *typeDef) DefDirectives() []*Directive { return d.Directives }
func (*typeDef) definition()                   {}

type ObjectTypeDefinition struct {
	typeDef
	Interfaces []*NamedType
	Fields     []*FieldDefinition
}

type ObjectTypeExtension struct {
	typeDef
	Interfaces []*NamedType
	Fields     []*FieldDefinition
}

type InterfaceTypeDefinition struct {
	typeDef
	Interfaces []*NamedType
	Fields     []*FieldDefinition
}

type UnionTypeDefinition struct {
	typeDef
	Types []*NamedType
}

type EnumTypeDefinition struct {
	typeDef
	Values []string
}

type ScalarTypeDefinition struct {
	typeDef
}

type InputObjectTypeDefinition struct {
	typeDef
	Fields []*InputValue
}

// TypeExtension is any extension other than an object type extension.
type TypeExtension struct {
	typeDef
	Kind   string // INTERFACE, UNION, ENUM, SCALAR, INPUT_OBJECT
	Fields []*FieldDefinition
}

// Document is one parsed schema file.
type Document struct {
	base
	File        *source.File
	Definitions []Definition // source order, definitions and extensions interleaved
}

// HasDirective reports whether name is among dirs.
func HasDirective(dirs []*Directive, name string) bool {
	for _, d := range dirs {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Field returns the field named name, or nil.
func (d *ObjectTypeDefinition) Field(name string) *FieldDefinition {
	return findField(d.Fields, name)
}

func findField(fields []*FieldDefinition, name string) *FieldDefinition {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Implements reports whether the object type lists iface among its interfaces.
func (d *ObjectTypeDefinition) Implements(iface string) bool {
	return implements(d.Interfaces, iface)
}

// Implements reports whether the extension adds iface.
func (d *ObjectTypeExtension) Implements(iface string) bool {
	return implements(d.Interfaces, iface)
}

func implements(list []*NamedType, iface string) bool {
	for _, n := range list {
		if n.Name == iface {
			return true
		}
	}
	return false
}
