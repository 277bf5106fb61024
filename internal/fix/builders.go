package fix

import (
	"vantalint/internal/diag"
	"vantalint/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func single(title string, edit diag.TextEdit, opts []Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{edit},
	}
	return applyOptions(fix, opts)
}

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string, guard string, opts ...Option) diag.Fix {
	return single(title, diag.TextEdit{Span: at, NewText: text, OldText: guard}, opts)
}

// InsertBefore inserts text immediately before span.
func InsertBefore(title string, span source.Span, text string, opts ...Option) diag.Fix {
	at := source.Span{File: span.File, Start: span.Start, End: span.Start}
	return InsertText(title, at, text, "", opts...)
}

// InsertAfter inserts text immediately after span.
func InsertAfter(title string, span source.Span, text string, opts ...Option) diag.Fix {
	at := source.Span{File: span.File, Start: span.End, End: span.End}
	return InsertText(title, at, text, "", opts...)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return single(title, diag.TextEdit{Span: span, NewText: newText, OldText: expect}, opts)
}

// ReplaceNode replaces the full range of a syntax node. old is the node's
// current text and guards the edit.
func ReplaceNode(title string, node source.Span, old, newText string, opts ...Option) diag.Fix {
	return ReplaceSpan(title, node, newText, old, opts...)
}

// ReplaceStringContents replaces the contents of a quoted string literal,
// leaving both quote characters untouched. literal is the span including the
// quotes; old is the current unquoted contents.
func ReplaceStringContents(title string, literal source.Span, old, newText string, opts ...Option) diag.Fix {
	return ReplaceSpan(title, literal.Shrink(1), newText, old, opts...)
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string, opts ...Option) diag.Fix {
	edits := []diag.TextEdit{
		InsertBefore(title, span, prefix).Edits[0],
		InsertAfter(title, span, suffix).Edits[0],
	}
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindRefactorRewrite,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
	return applyOptions(fix, opts)
}
