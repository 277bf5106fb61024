package tsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkPreOrder(t *testing.T) {
	f := parseTS(t, "a.ts", `import x from "y";
type T = A | null;
const f = (p?: string) => p === undefined;
`)
	var seen []string
	add := func(s string) { seen = append(seen, s) }
	v := &Visitor{
		File:               func(*Pass, *File) { add("file") },
		ImportDeclaration:  func(*Pass, *ImportDecl) { add("import") },
		TypeAlias:          func(*Pass, *TypeAlias) { add("alias") },
		UnionType:          func(*Pass, *UnionType) { add("union") },
		VariableDeclarator: func(*Pass, *VarDeclarator) { add("var") },
		ArrowFunction:      func(*Pass, *ArrowFunction) { add("arrow") },
		Parameter:          func(*Pass, *Parameter) { add("param") },
		BinaryExpression:   func(*Pass, *BinaryExpr) { add("binary") },
	}
	Walk(v, &Pass{Tree: f}, f)
	assert.Equal(t, []string{"file", "import", "alias", "union", "var", "arrow", "param", "binary"}, seen)
}

func TestWalkSkipsNilHandlers(t *testing.T) {
	f := parseTS(t, "a.ts", "a === null;\ntype T = A | B;\n")
	calls := 0
	v := &Visitor{BinaryExpression: func(*Pass, *BinaryExpr) { calls++ }}
	assert.NotPanics(t, func() { Walk(v, &Pass{Tree: f}, f) })
	assert.Equal(t, 1, calls)
}

type foreignNode struct{ base }

func TestDispatchPanicsOnUnknownNode(t *testing.T) {
	f := &File{Nodes: []Node{&foreignNode{}}}
	assert.Panics(t, func() { Walk(&Visitor{}, &Pass{Tree: f}, f) })
}
