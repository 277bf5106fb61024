package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(n string) *NamedType       { return &NamedType{Name: n} }
func list(t TypeExpr) *ListType       { return &ListType{Elem: t} }
func nonNull(t TypeExpr) *NonNullType { return &NonNullType{Elem: t} }

func TestExtractNamedType(t *testing.T) {
	forms := map[string]TypeExpr{
		"N":     named("N"),
		"N!":    nonNull(named("N")),
		"[N]":   list(named("N")),
		"[N!]":  list(nonNull(named("N"))),
		"[N!]!": nonNull(list(nonNull(named("N")))),
		"[N]!":  nonNull(list(named("N"))),
		"[[N]]": list(list(named("N"))),
	}
	for sdl, form := range forms {
		t.Run(sdl, func(t *testing.T) {
			n, err := ExtractNamedType(form)
			require.NoError(t, err)
			assert.Equal(t, "N", n.Name)
			assert.Equal(t, sdl, TypeString(form))
		})
	}
}

func TestExtractNamedTypeMalformed(t *testing.T) {
	_, err := ExtractNamedType(nil)
	assert.Error(t, err)

	_, err = ExtractNamedType(list(nil))
	assert.Error(t, err)

	var nilNamed *NamedType
	_, err = ExtractNamedType(nonNull(nilNamed))
	assert.Error(t, err)
}

func TestIsListType(t *testing.T) {
	assert.False(t, IsListType(nonNull(named("N"))))
	assert.True(t, IsListType(list(named("N"))))
	assert.True(t, IsListType(nonNull(list(nonNull(named("N"))))))
	assert.False(t, IsListType(named("N")))
	assert.True(t, IsListType(list(list(named("N")))))
}
