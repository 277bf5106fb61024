package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("type FooEdge {\n  node: [Foo]\n}\n")
	fileID := fs.AddVirtual("schema.graphql", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.GqlEdgesRelayCompliant,
		source.Span{File: fileID, Start: 17, End: 21},
		"Edge node must not be a list",
	).WithRule("edges-are-relay-compliant"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || output.Errors != 1 || output.Warnings != 0 {
		t.Errorf("unexpected counts: %+v", output)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "GQL1002" {
		t.Errorf("Expected code=GQL1002, got %s", d.Code)
	}
	if d.Rule != "edges-are-relay-compliant" {
		t.Errorf("Expected rule, got %q", d.Rule)
	}
	if d.Location.File != "schema.graphql" {
		t.Errorf("Expected file=schema.graphql, got %s", d.Location.File)
	}
	if d.Location.StartByte != 17 || d.Location.EndByte != 21 {
		t.Errorf("Expected bytes 17..21, got %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 3 {
		t.Errorf("Expected 2:3, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("types.ts", []byte("type T = A | null;\n"))
	span := source.Span{File: fileID, Start: 9, End: 17}

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.TsPreferMaybe, span, "Prefer Maybe<T> to T | null or T | undefined.")
	d = d.WithNote(span, "union with null")
	d = d.WithFixSuggestion(fix.ReplaceNode("Use Maybe", span, "A | null", "Maybe<A>", fix.Preferred()))
	bag.Add(d)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		PathMode:        PathModeBasename,
		IncludeNotes:    true,
		IncludeFixes:    true,
		IncludePreviews: true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	got := output.Diagnostics[0]
	if len(got.Notes) != 1 || got.Notes[0].Message != "union with null" {
		t.Fatalf("unexpected notes: %+v", got.Notes)
	}
	if len(got.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(got.Fixes))
	}
	f := got.Fixes[0]
	if !f.IsPreferred || f.Kind != "quickfix" || f.Applicability != "always-safe" {
		t.Errorf("unexpected fix metadata: %+v", f)
	}
	if len(f.Edits) != 1 || f.Edits[0].NewText != "Maybe<A>" || f.Edits[0].OldText != "A | null" {
		t.Fatalf("unexpected edits: %+v", f.Edits)
	}
	if len(f.Edits[0].AfterLines) != 1 || f.Edits[0].AfterLines[0] != "type T = Maybe<A>;" {
		t.Errorf("unexpected preview: %+v", f.Edits[0].AfterLines)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("x == null; y == null; z == null;\n"))
	bag := diag.NewBag(0)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.TsNullOrUndefinedCheck, source.Span{File: fileID, Start: i * 11, End: i*11 + 9}, "check"))
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", output.Count)
	}
	if output.Warnings != 3 {
		t.Errorf("Expected warnings to count the whole bag, got %d", output.Warnings)
	}
}

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/check.ts", []byte("if (x == null) {}\n"))
	span := source.Span{File: fileID, Start: 4, End: 13}

	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.TsNullOrUndefinedCheck, span, "Use isSome(expr) to check against undefined or null.").
		WithRule("null-or-undefined-check").
		WithFixSuggestion(fix.ReplaceNode("Use isSome", span, "x == null", "!isSome(x)")))
	bag.Add(diag.NewError(diag.DrvSyntaxError, source.Span{File: fileID}, "unexpected \"=\""))

	var buf bytes.Buffer
	err := Sarif(&buf, bag, fs, SarifRunMeta{
		ToolName:       "vantalint",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"lint", "src"},
		Rules: []SarifRule{{
			ID:           "null-or-undefined-check",
			Description:  "Prefer isSome",
			DefaultLevel: "warning",
		}},
	})
	if err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex *int   `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
							ByteLength  int `json:"byteLength"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				Fixes []struct {
					ArtifactChanges []struct {
						Replacements []struct {
							InsertedContent struct {
								Text string `json:"text"`
							} `json:"insertedContent"`
						} `json:"replacements"`
					} `json:"artifactChanges"`
				} `json:"fixes"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected SARIF header: %s", buf.String())
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "vantalint" || len(run.Tool.Driver.Rules) != 1 {
		t.Fatalf("unexpected tool section: %+v", run.Tool)
	}
	if len(run.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != "null-or-undefined-check" || first.RuleIndex == nil || *first.RuleIndex != 0 || first.Level != "warning" {
		t.Errorf("unexpected first result: %+v", first)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 1 || region.StartColumn != 5 || region.ByteLength != 9 {
		t.Errorf("unexpected region: %+v", region)
	}
	if first.Locations[0].PhysicalLocation.ArtifactLocation.URI == "" {
		t.Error("expected artifact uri")
	}
	if len(first.Fixes) != 1 || first.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text != "!isSome(x)" {
		t.Errorf("unexpected fixes: %+v", first.Fixes)
	}

	second := run.Results[1]
	if second.RuleID != "VL9001" || second.RuleIndex != nil || second.Level != "error" {
		t.Errorf("unexpected driver result: %+v", second)
	}
}
