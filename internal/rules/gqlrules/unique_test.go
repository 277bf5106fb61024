package gqlrules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationsInputsUnique(t *testing.T) {
	const sdl = `
type Mutation {
  a(input: SharedInput!): APayload
  b(input: SharedInput!): BPayload
}
type Query { q(input: SharedInput): Int }
extend type Mutation {
  c(input: SharedInput!): CPayload
  d(input: DInput!): DPayload
}
`
	res := runRule(t, MutationsInputsUnique, sdl, nil)
	require.NoError(t, res.err)
	require.Len(t, res.diags, 2)
	for _, d := range res.diags {
		assert.Equal(t, "Mutation input types must be unique; reused type SharedInput", d.Message)
		assert.Equal(t, "input", res.file.Text(d.Primary))
	}

	// the first occurrence is never the one reported
	first := strings.Index(sdl, "a(input")
	for _, d := range res.diags {
		assert.Greater(t, int(d.Primary.Start), first+2)
	}
	assert.Less(t, res.diags[0].Primary.Start, res.diags[1].Primary.Start)
}

func TestMutationsPayloadsUnique(t *testing.T) {
	const sdl = `
type Mutation {
  a: SamePayload
  b: SamePayload
  e: [SamePayload]
  f: SamePayload!
}
extend type Mutation { c: SamePayload d: OtherPayload }
`
	res := runRule(t, MutationsPayloadsUnique, sdl, nil)
	require.NoError(t, res.err)
	require.Len(t, res.diags, 2)
	assert.Equal(t, "b", res.file.Text(res.diags[0].Primary))
	assert.Equal(t, "c", res.file.Text(res.diags[1].Primary))
	assert.Equal(t, "Mutation payload types must be unique", res.diags[0].Message)
}

func TestUniquenessReportsCountMinusOne(t *testing.T) {
	for count := 1; count <= 6; count++ {
		t.Run(fmt.Sprintf("count=%d", count), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("type Mutation {\n")
			for i := 0; i < count; i++ {
				fmt.Fprintf(&b, "  m%d(input: SameInput!): SamePayload\n", i)
			}
			b.WriteString("  other(input: OtherInput!): OtherPayload\n}\n")

			inputs := runRule(t, MutationsInputsUnique, b.String(), nil)
			require.NoError(t, inputs.err)
			assert.Len(t, inputs.diags, count-1)

			payloads := runRule(t, MutationsPayloadsUnique, b.String(), nil)
			require.NoError(t, payloads.err)
			assert.Len(t, payloads.diags, count-1)
		})
	}
}

func TestUniquenessIsPerDocument(t *testing.T) {
	const sdl = "type Mutation { a(input: XInput!): XPayload }\n"
	for i := 0; i < 3; i++ {
		res := runRule(t, MutationsInputsUnique, sdl, nil)
		require.NoError(t, res.err)
		assert.Empty(t, res.diags)
	}
}
