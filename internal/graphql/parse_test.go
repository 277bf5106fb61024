package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantalint/internal/source"
)

func parseString(t *testing.T, sdl string) (*source.FileSet, *Document) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("schema.graphql", []byte(sdl)))
	doc, err := Parse(file)
	require.NoError(t, err)
	return fs, doc
}

func TestParseSourceOrderAndKinds(t *testing.T) {
	_, doc := parseString(t, `
type Mutation { a(input: AInput!): APayload }
extend type Mutation { b(input: BInput!): BPayload }
union APayload = ASuccess | BaseUserError
interface Node { id: ID! }
enum Color { RED GREEN }
scalar DateTime
input AInput { id: ID! }
extend union APayload = Other
`)

	require.Len(t, doc.Definitions, 8)
	kinds := make([]string, 0, len(doc.Definitions))
	for _, d := range doc.Definitions {
		switch d.(type) {
		case *ObjectTypeDefinition:
			kinds = append(kinds, "object")
		case *ObjectTypeExtension:
			kinds = append(kinds, "object-ext")
		case *UnionTypeDefinition:
			kinds = append(kinds, "union")
		case *InterfaceTypeDefinition:
			kinds = append(kinds, "interface")
		case *EnumTypeDefinition:
			kinds = append(kinds, "enum")
		case *ScalarTypeDefinition:
			kinds = append(kinds, "scalar")
		case *InputObjectTypeDefinition:
			kinds = append(kinds, "input")
		case *TypeExtension:
			kinds = append(kinds, "ext")
		}
	}
	assert.Equal(t, []string{"object", "object-ext", "union", "interface", "enum", "scalar", "input", "ext"}, kinds)

	union := doc.Definitions[2].(*UnionTypeDefinition)
	assert.Equal(t, "APayload", union.Name)
	require.Len(t, union.Types, 2)
	assert.Equal(t, "BaseUserError", union.Types[1].Name)

	ext := doc.Definitions[7].(*TypeExtension)
	assert.Equal(t, "UNION", ext.Kind)
}

func TestParseFieldsAndTypes(t *testing.T) {
	fs, doc := parseString(t, `type FooConnection @public {
  "the edges"
  edges: [FooEdge!]! @tinylist
  pageInfo(first: Int, after: String): PageInfo!
}`)

	obj := doc.Definitions[0].(*ObjectTypeDefinition)
	assert.True(t, HasDirective(obj.Directives, "public"))

	edges := obj.Field("edges")
	require.NotNil(t, edges)
	assert.Same(t, obj, edges.Parent)
	assert.Equal(t, "[FooEdge!]!", TypeString(edges.Type))
	assert.True(t, HasDirective(edges.Directives, "tinylist"))

	// description is skipped when locating the field name
	start, _ := fs.Resolve(edges.Span())
	assert.Equal(t, source.LineCol{Line: 3, Col: 3}, start)
	assert.Equal(t, "edges", doc.File.Text(edges.Span()))

	pageInfo := obj.Field("pageInfo")
	require.NotNil(t, pageInfo)
	require.Len(t, pageInfo.Arguments, 2)
	assert.Equal(t, "after", pageInfo.Arguments[1].Name)
	assert.Equal(t, "String", TypeString(pageInfo.Arguments[1].Type))

	assert.Equal(t, "FooConnection", doc.File.Text(obj.Span()))
}

func TestParseMultibytePositions(t *testing.T) {
	fs, doc := parseString(t, "\"\"\"Ünïcödé description\"\"\"\ntype Foo { bar: String }\n")
	obj := doc.Definitions[0].(*ObjectTypeDefinition)
	assert.Equal(t, "Foo", doc.File.Text(obj.Span()))
	start, _ := fs.Resolve(obj.Fields[0].Span())
	assert.Equal(t, uint32(2), start.Line)
	assert.Equal(t, "bar", doc.File.Text(obj.Fields[0].Span()))
}

func TestParseShortNameSpans(t *testing.T) {
	_, doc := parseString(t, "type e @e {\n  \"e\"\n  e(e: E @e): E\n}\nextend type e { f: E }\n")
	obj := doc.Definitions[0].(*ObjectTypeDefinition)
	assert.Equal(t, uint32(5), obj.Span().Start)
	assert.Equal(t, uint32(8), obj.Directives[0].Span().Start)
	field := obj.Fields[0]
	assert.Equal(t, "e", doc.File.Text(field.Span()))
	assert.Equal(t, uint32(20), field.Span().Start)
	assert.Equal(t, uint32(22), field.Arguments[0].Span().Start)

	ext := doc.Definitions[1].(*ObjectTypeExtension)
	assert.Equal(t, "e", doc.File.Text(ext.Span()))
	assert.Equal(t, uint32(48), ext.Span().Start)
}

func TestIndexNameBoundaries(t *testing.T) {
	assert.Equal(t, 5, indexName([]byte("type e {"), "e"))
	assert.Equal(t, 7, indexName([]byte("Node_e e: E"), "e"))
	assert.Equal(t, 2, indexName([]byte("@ e_1"), "e_1"))
	assert.Equal(t, -1, indexName([]byte("ee: E"), "e"))
}

func TestParseSyntaxError(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.graphql", []byte("type Foo {\n  bar: \n}")))
	_, err := Parse(file)
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	start, _ := fs.Resolve(se.Span)
	assert.Equal(t, uint32(3), start.Line)
}
