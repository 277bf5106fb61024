package diag

import (
	"vantalint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the bytes covered by Span with NewText.
// OldText, when set, must match the current bytes for the edit to apply.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind classifies a fix for UI listings.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability is the confidence that applying a fix preserves intent.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Span covers every edit of the fix. Zero-edit fixes return the zero span.
func (f Fix) Span() source.Span {
	if len(f.Edits) == 0 {
		return source.Span{}
	}
	sp := f.Edits[0].Span
	for _, e := range f.Edits[1:] {
		sp = sp.Cover(e.Span)
	}
	return sp
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Rule     string // rule identifier, empty for driver diagnostics
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
