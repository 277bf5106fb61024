package tsast

import (
	"vantalint/internal/source"
)

// Node is implemented by every TypeScript node the rules see. The set is
// closed; Walk switches over it exhaustively.
type Node interface {
	Span() source.Span
	// Kind is the tree-sitter node type, e.g. "binary_expression".
	Kind() string
	tsNode()
}

// TypeNode is a type expression.
type TypeNode interface {
	Node
	typeNode()
}

type base struct {
	span source.Span
	kind string
}

func (b base) Span() source.Span { return b.span }
func (b base) Kind() string      { return b.kind }
func (base) tsNode()             {}

// Expr is an expression, identifier or pattern inspected only by kind and text.
type Expr struct {
	base
}

// StringLit is a string literal; its span includes the quotes.
type StringLit struct {
	base
	Value string
}

type ImportDecl struct {
	base
	Source *StringLit
}

type BinaryExpr struct {
	base
	Operator string
	Left     *Expr
	Right    *Expr
}

type PropertySignature struct {
	base
	Name     *Expr
	Optional bool
	Type     TypeNode // nil without annotation
}

// Parameter is an optional function parameter ("x?: T").
type Parameter struct {
	base
	Pattern  *Expr
	Optional bool
	Type     TypeNode
}

// Stmt is a statement inside a block body.
type Stmt struct {
	base
}

type ArrowFunction struct {
	base
	BlockBody  bool
	Statements []*Stmt // only for block bodies, comments excluded
}

type TypeAlias struct {
	base
	Name  *Expr
	Value TypeNode
}

type CallExpr struct {
	base
	Callee   *Expr
	TypeArgs []TypeNode
}

type VarDeclarator struct {
	base
	Name *Expr
	Init *CallExpr // set only when the initializer is a call expression
}

// TypeRef is a named type reference, possibly qualified or generic.
type TypeRef struct {
	base
	Name string // without type arguments: "Maybe", "mongoose.Document"
}

// UnionType holds the flattened members of "A | B | C".
// Parenthesized unions stay separate nodes.
type UnionType struct {
	base
	Members []TypeNode
}

// IntersectionType holds the flattened members of "A & B & C".
type IntersectionType struct {
	base
	Members []TypeNode
}

// KeywordType is a predefined or literal keyword type: null, undefined, string…
type KeywordType struct {
	base
	Keyword string
}

// ParenType is a parenthesized type.
type ParenType struct {
	base
	Inner TypeNode
}

// OtherType is any type expression the rules do not look into.
type OtherType struct {
	base
}

func (*TypeRef) typeNode()          {}
func (*UnionType) typeNode()        {}
func (*IntersectionType) typeNode() {}
func (*KeywordType) typeNode()      {}
func (*ParenType) typeNode()        {}
func (*OtherType) typeNode()        {}

// IsNothing reports whether t is the null or undefined type, ignoring parentheses.
func IsNothing(t TypeNode) bool {
	for {
		p, ok := t.(*ParenType)
		if !ok {
			break
		}
		t = p.Inner
	}
	k, ok := t.(*KeywordType)
	return ok && (k.Keyword == "null" || k.Keyword == "undefined")
}

// File is one parsed TypeScript source.
type File struct {
	Source *source.File
	// Nodes lists the visitable nodes in pre-order.
	Nodes []Node
}
