package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"vantalint/internal/source"
)

// shortLine is one rendered entry: a diagnostic or one of its notes.
type shortLine struct {
	label   string // error | warning | info | note
	code    string
	rule    string
	path    string
	line    uint32
	col     uint32
	message string
}

func (l shortLine) write(sb *strings.Builder, withRule bool) {
	fmt.Fprintf(sb, "%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.message)
	if withRule && l.rule != "" {
		sb.WriteString(" (" + l.rule + ")")
	}
}

func compareShortLines(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.label, b.label),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.message, b.message),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic, for golden files
// and rule tests:
//
//	error GQL1001 schema/a.graphql:3:6 Connections must contain an edge field (connections-are-relay-compliant)
//
// Lines are sorted by path, position, label, code and message. Paths of
// files on disk are relative to the FileSet base directory.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatShort(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics is FormatGoldenDiagnostics without the trailing rule name.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatShort(diags, fs, includeNotes, false)
}

func formatShort(diags []Diagnostic, fs *source.FileSet, includeNotes, withRule bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := locate(fs, d.Primary); ok {
			l.label = severityLabel(d.Severity)
			l.code = d.Code.ID()
			l.rule = d.Rule
			l.message = flattenMessage(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if l, ok := locate(fs, note.Span); ok {
				l.label = "note"
				l.code = d.Code.ID()
				l.message = flattenMessage(note.Msg)
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, compareShortLines)

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		l.write(&sb, withRule)
	}
	return sb.String()
}

// locate fills path, line and col; false when span.File is unknown.
func locate(fs *source.FileSet, span source.Span) (shortLine, bool) {
	if int(span.File) >= fs.Len() {
		return shortLine{}, false
	}
	file := fs.Get(span.File)
	path := file.Path
	if file.Flags&source.FileVirtual == 0 {
		path = file.FormatPath("relative", fs.BaseDir())
	}
	path = filepath.ToSlash(path)
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	start, _ := fs.Resolve(span)
	return shortLine{path: path, line: start.Line, col: start.Col}, true
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// flattenMessage keeps each entry on one line.
func flattenMessage(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
