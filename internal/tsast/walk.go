package tsast

import "fmt"

// Walk calls the File handler, then dispatches every visitable node in
// pre-order. A union nested directly inside another union is part of the
// outer one and is not visited on its own.
func Walk(v *Visitor, p *Pass, f *File) {
	if v.File != nil {
		v.File(p, f)
	}
	for _, n := range f.Nodes {
		dispatch(v, p, n)
	}
}

func dispatch(v *Visitor, p *Pass, n Node) {
	switch n := n.(type) {
	case *ImportDecl:
		if v.ImportDeclaration != nil {
			v.ImportDeclaration(p, n)
		}
	case *BinaryExpr:
		if v.BinaryExpression != nil {
			v.BinaryExpression(p, n)
		}
	case *PropertySignature:
		if v.PropertySignature != nil {
			v.PropertySignature(p, n)
		}
	case *Parameter:
		if v.Parameter != nil {
			v.Parameter(p, n)
		}
	case *UnionType:
		if v.UnionType != nil {
			v.UnionType(p, n)
		}
	case *ArrowFunction:
		if v.ArrowFunction != nil {
			v.ArrowFunction(p, n)
		}
	case *TypeAlias:
		if v.TypeAlias != nil {
			v.TypeAlias(p, n)
		}
	case *VarDeclarator:
		if v.VariableDeclarator != nil {
			v.VariableDeclarator(p, n)
		}
	default:
		panic(fmt.Sprintf("tsast: unhandled node %T", n))
	}
}
