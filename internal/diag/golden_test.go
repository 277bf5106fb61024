package diag

import (
	"testing"

	"vantalint/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/schema/sample.graphql", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/schema/other.graphql", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     GqlConnectionsRelayCompliant,
			Rule:     "connections-are-relay-compliant",
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "declared here"},
			},
		},
		{
			Severity: SevWarning,
			Code:     GqlEdgesRelayCompliant,
			Rule:     "edges-are-relay-compliant",
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "note GQL1001 schema/other.graphql:1:1 declared here\n" +
		"error GQL1001 schema/sample.graphql:1:1 first line second (connections-are-relay-compliant)\n" +
		"warning GQL1002 schema/sample.graphql:2:1 another (edges-are-relay-compliant)"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags[1:], fs, false)
	if short != "warning GQL1002 schema/sample.graphql:2:1 another" {
		t.Fatalf("unexpected short output: %q", short)
	}
}
