package tsast

import (
	"vantalint/internal/lint"
)

// Pass is the view of one rule over one TypeScript file.
type Pass struct {
	*lint.Pass
	Tree *File
}

// Visitor maps node kinds to handlers. Nil handlers are skipped.
// TypeScript rules have no preconditions, so handlers cannot fail.
type Visitor struct {
	File               func(*Pass, *File)
	ImportDeclaration  func(*Pass, *ImportDecl)
	BinaryExpression   func(*Pass, *BinaryExpr)
	PropertySignature  func(*Pass, *PropertySignature)
	Parameter          func(*Pass, *Parameter)
	UnionType          func(*Pass, *UnionType)
	ArrowFunction      func(*Pass, *ArrowFunction)
	TypeAlias          func(*Pass, *TypeAlias)
	VariableDeclarator func(*Pass, *VarDeclarator)
}

// Rule is a TypeScript source rule.
type Rule struct {
	lint.Meta
	Visitor Visitor
}

// Run walks the pass's tree with the rule's visitor.
func (r *Rule) Run(p *Pass) {
	Walk(&r.Visitor, p, p.Tree)
}
