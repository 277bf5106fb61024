package tsast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantalint/internal/source"
)

func parseTS(t *testing.T, name, src string) *File {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	tree, err := Parse(context.Background(), file)
	require.NoError(t, err)
	return tree
}

func nodesOf[T Node](f *File) []T {
	var out []T
	for _, n := range f.Nodes {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestParseImport(t *testing.T) {
	f := parseTS(t, "a.ts", `import { x } from "../common/src/x";`+"\n")
	imps := nodesOf[*ImportDecl](f)
	require.Len(t, imps, 1)
	assert.Equal(t, "../common/src/x", imps[0].Source.Value)
	assert.Equal(t, `"../common/src/x"`, f.Source.Text(imps[0].Source.Span()))
}

func TestParseBinaryExpression(t *testing.T) {
	f := parseTS(t, "a.ts", "if (a === null) {}\n")
	bins := nodesOf[*BinaryExpr](f)
	require.Len(t, bins, 1)
	assert.Equal(t, "===", bins[0].Operator)
	assert.Equal(t, "a", f.Source.Text(bins[0].Left.Span()))
	assert.Equal(t, "null", f.Source.Text(bins[0].Right.Span()))
	assert.Equal(t, "a === null", f.Source.Text(bins[0].Span()))
}

func TestParsePropertySignatures(t *testing.T) {
	f := parseTS(t, "a.ts", "interface A {\n  x?: string;\n  y: number;\n}\n")
	props := nodesOf[*PropertySignature](f)
	require.Len(t, props, 2)

	assert.True(t, props[0].Optional)
	assert.Equal(t, "x", f.Source.Text(props[0].Name.Span()))
	kw, ok := props[0].Type.(*KeywordType)
	require.True(t, ok)
	assert.Equal(t, "string", kw.Keyword)

	assert.False(t, props[1].Optional)
}

func TestParseOptionalParameter(t *testing.T) {
	f := parseTS(t, "a.ts", "function g(a: number, b?: Maybe<string>) {}\n")
	params := nodesOf[*Parameter](f)
	require.Len(t, params, 1)
	assert.Equal(t, "b", f.Source.Text(params[0].Pattern.Span()))
	ref, ok := params[0].Type.(*TypeRef)
	require.True(t, ok)
	assert.Equal(t, "Maybe", ref.Name)
}

func TestParseUnionIsFlattened(t *testing.T) {
	f := parseTS(t, "a.ts", "type T = A | null | undefined;\n")
	unions := nodesOf[*UnionType](f)
	require.Len(t, unions, 1)
	u := unions[0]
	require.Len(t, u.Members, 3)
	assert.False(t, IsNothing(u.Members[0]))
	assert.True(t, IsNothing(u.Members[1]))
	assert.True(t, IsNothing(u.Members[2]))

	alias := nodesOf[*TypeAlias](f)
	require.Len(t, alias, 1)
	assert.Same(t, u, alias[0].Value)
}

func TestParseParenthesizedUnionIsSeparate(t *testing.T) {
	f := parseTS(t, "a.ts", "type T = (A | null) | B;\n")
	unions := nodesOf[*UnionType](f)
	require.Len(t, unions, 2)
	assert.Equal(t, "(A | null) | B", f.Source.Text(unions[0].Span()))
	assert.Equal(t, "A | null", f.Source.Text(unions[1].Span()))
	require.Len(t, unions[0].Members, 2)
	_, isParen := unions[0].Members[0].(*ParenType)
	assert.True(t, isParen)
}

func TestParseArrowFunctions(t *testing.T) {
	f := parseTS(t, "a.ts", "const f = () => {\n  // note\n  doThing();\n};\nconst g = () => 1;\n")
	fns := nodesOf[*ArrowFunction](f)
	require.Len(t, fns, 2)
	assert.True(t, fns[0].BlockBody)
	require.Len(t, fns[0].Statements, 1)
	assert.Equal(t, "expression_statement", fns[0].Statements[0].Kind())
	assert.False(t, fns[1].BlockBody)
}

func TestParseModelDeclarator(t *testing.T) {
	f := parseTS(t, "a.ts", `const UserModel = mongoose.model<UserDoc>("User", schema);`+"\n")
	decls := nodesOf[*VarDeclarator](f)
	require.Len(t, decls, 1)
	d := decls[0]
	assert.Equal(t, "UserModel", f.Source.Text(d.Name.Span()))
	require.NotNil(t, d.Init)
	assert.Equal(t, "mongoose.model", f.Source.Text(d.Init.Callee.Span()))
	require.Len(t, d.Init.TypeArgs, 1)
	ref, ok := d.Init.TypeArgs[0].(*TypeRef)
	require.True(t, ok)
	assert.Equal(t, "UserDoc", ref.Name)
}

func TestParseIntersectionAlias(t *testing.T) {
	f := parseTS(t, "a.ts", "type UserDoc = UserFields & mongoose.Document & Extra<X>;\n")
	aliases := nodesOf[*TypeAlias](f)
	require.Len(t, aliases, 1)
	inter, ok := aliases[0].Value.(*IntersectionType)
	require.True(t, ok)
	require.Len(t, inter.Members, 3)

	var names []string
	for _, m := range inter.Members {
		names = append(names, m.(*TypeRef).Name)
	}
	assert.Equal(t, []string{"UserFields", "mongoose.Document", "Extra"}, names)
}

func TestParseTSX(t *testing.T) {
	f := parseTS(t, "view.tsx", "const a = <div>{x}</div>;\n")
	assert.Len(t, nodesOf[*VarDeclarator](f), 1)
}

func TestParseSyntaxError(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.ts", []byte("const = ;\n")))
	_, err := Parse(context.Background(), file)
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, file.ID, se.Span.File)
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("a/b.ts"))
	assert.True(t, IsSourceFile("a/b.TSX"))
	assert.True(t, IsSourceFile("a/b.mts"))
	assert.False(t, IsSourceFile("a/b.js"))
	assert.False(t, IsSourceFile("schema.graphql"))
}
