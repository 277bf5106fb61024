package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("type FooConnection {\n  edges: FooEdge\n}\n")
	fileID := fs.AddVirtual("/home/user/project/schema/api.graphql", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.GqlConnectionsRelayCompliant,
		source.Span{File: fileID, Start: 23, End: 28},
		"Edges field must be a list",
	)
	bag.Add(d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/schema/api.graphql"},
		{"Relative path", PathModeRelative, "schema/api.graphql:2:3"},
		{"Basename only", PathModeBasename, "api.graphql:2:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "GQL1001") {
				t.Error("Expected GQL1001 code in output")
			}
			if !strings.Contains(output, "Edges field must be a list") {
				t.Error("Expected error message in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "check.ts", "check.ts"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/check.ts", "check.ts:1:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("if (x == null) {}\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.TsNullOrUndefinedCheck, source.Span{File: fileID, Start: 4, End: 13}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
			if strings.Contains(output, "/very/long") {
				t.Errorf("Expected long path to be shortened, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const 名前 = x == null;\n")
	fileID := fs.AddVirtual("wide.ts", content)
	start := uint32(strings.Index(string(content), "x == null"))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.TsNullOrUndefinedCheck, source.Span{File: fileID, Start: start, End: start + 9}, "check"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, source and caret lines, got:\n%s", buf.String())
	}
	if lines[1] != "1 | const 名前 = x == null;" {
		t.Fatalf("source line mismatch: %q", lines[1])
	}
	// gutter as wide as "1 |", then "const " (6) + "名前" (4 columns) + " = " (3)
	want := "  | " + strings.Repeat(" ", 13) + "^~~~~~~~~"
	if lines[2] != want {
		t.Fatalf("caret line mismatch:\n got %q\nwant %q", lines[2], want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("import { a } from \"../common/src/a\";\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 18, End: 35}
	d := diag.New(diag.SevError, diag.TsCommonAbsoluteImport, primary, "use an absolute import").WithRule("common-absolute-import")
	d = d.WithNote(source.Span{File: fileID, Start: 19, End: 34}, "relative path into common")
	d = d.WithFix("use absolute path", diag.TextEdit{Span: source.Span{File: fileID, Start: 19, End: 34}, NewText: "common/a"})
	d = d.WithFixSuggestion(fix.WrapWith(
		"comment out import",
		source.Span{File: fileID, Start: 0, End: 36},
		"/* ",
		" */",
		fix.WithID("wrap-import-001"),
		fix.WithApplicability(diag.FixApplicabilityManualReview),
	))
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:  PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
		ShowRule:  true,
	})
	output := buf.String()

	for _, want := range []string{
		"[common-absolute-import]",
		"note: test.ts:1:20",
		"fix #1: use absolute path",
		`apply="common/a"`,
		"fix #2: comment out import",
		"id=wrap-import-001",
		"manual-review",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("if (x == null) {}")
	fileID := fs.AddVirtual("example.ts", content)

	bag := diag.NewBag(2)
	span := source.Span{File: fileID, Start: 4, End: 13}
	d := diag.New(diag.SevWarning, diag.TsNullOrUndefinedCheck, span, "use isSome")
	d = d.WithFixSuggestion(fix.ReplaceNode("Use isSome", span, "x == null", "!isSome(x)"))
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()
	if !strings.Contains(output, "preview:") {
		t.Fatalf("expected preview header in output, got:\n%s", output)
	}
	if !strings.Contains(output, "- if (x == null) {}") {
		t.Fatalf("expected before line in preview, got:\n%s", output)
	}
	if !strings.Contains(output, "+ if (!isSome(x)) {}") {
		t.Fatalf("expected after line in preview, got:\n%s", output)
	}
}

func TestSummary(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("x\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevError, diag.TsPreferMaybe, source.Span{File: fileID}, "e"))
	bag.Add(diag.New(diag.SevWarning, diag.TsPreferMaybe, source.Span{File: fileID}, "w1"))
	bag.Add(diag.New(diag.SevWarning, diag.TsPreferMaybe, source.Span{File: fileID}, "w2"))

	var buf bytes.Buffer
	Summary(&buf, bag, 2, false)
	out := buf.String()
	if !strings.Contains(out, "3 problems (1 error, 2 warnings, 0 infos)") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "2 problems potentially fixable") {
		t.Fatalf("expected fixable hint:\n%s", out)
	}

	buf.Reset()
	Summary(&buf, diag.NewBag(0), 0, false)
	if buf.Len() != 0 {
		t.Fatalf("expected no summary for empty bag, got %q", buf.String())
	}
}

func TestFileDiff(t *testing.T) {
	before := []byte("a\nb\nc\nd\n")
	after := []byte("a\nB\nc\nd\n")
	var buf bytes.Buffer
	FileDiff(&buf, "x.ts", before, after, false)
	want := "--- x.ts\n+++ x.ts\n@@ -2,1 +2,1 @@\n-b\n+B\n"
	if buf.String() != want {
		t.Fatalf("unexpected diff:\n got %q\nwant %q", buf.String(), want)
	}

	buf.Reset()
	FileDiff(&buf, "x.ts", before, before, false)
	if buf.Len() != 0 {
		t.Fatalf("expected no diff for identical content, got %q", buf.String())
	}
}
