package lint

import (
	"fmt"

	"go.uber.org/zap"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/observ"
	"vantalint/internal/source"
)

// Violation is what a rule handler hands to Pass.Report.
type Violation struct {
	Span      source.Span
	MessageID string
	Data      map[string]string
	Fix       *diag.Fix
}

// Pass binds one rule to one file for one traversal.
type Pass struct {
	Meta     *Meta
	File     *source.File
	Severity diag.Severity
	// Log receives rule authoring errors; nil discards them.
	Log *zap.Logger

	reporter diag.Reporter
}

// NewPass creates a pass reporting into r with the given severity.
func NewPass(meta *Meta, file *source.File, sev diag.Severity, r diag.Reporter) *Pass {
	return &Pass{Meta: meta, File: file, Severity: sev, reporter: r}
}

// Report records one diagnostic for v. The message is the rule's template for
// v.MessageID with v.Data substituted. A report with an unknown message ID is
// dropped and a fix from a non-fixable rule is stripped; both are logged.
// A fix without an ID gets "<rule>@<line>:<col>" of the violation.
func (p *Pass) Report(v Violation) {
	tmpl, ok := p.Meta.Messages[v.MessageID]
	if !ok {
		observ.OrNop(p.Log).Error("unknown message id, report dropped",
			zap.String("rule", p.Meta.ID), zap.String("message_id", v.MessageID))
		return
	}
	if v.Fix != nil && !p.Meta.Fixable {
		observ.OrNop(p.Log).Error("fix from a non-fixable rule, fix dropped",
			zap.String("rule", p.Meta.ID), zap.String("fix", v.Fix.Title))
		v.Fix = nil
	}
	if v.Span.File != p.File.ID {
		v.Span.File = p.File.ID
	}
	if v.Fix != nil && v.Fix.ID == "" {
		f := *v.Fix
		fix.WithID(FixID(p.Meta.ID, p.File.Position(v.Span.Start)))(&f)
		v.Fix = &f
	}

	b := diag.NewReportBuilder(p.reporter, p.Severity, p.Meta.Code, v.Span, FormatMessage(tmpl, v.Data)).
		WithRule(p.Meta.ID)
	if v.Fix != nil {
		b.WithFixSuggestion(*v.Fix)
	}
	b.Emit()
}

// FixID formats the identifier Report assigns to a rule's fix.
func FixID(rule string, at source.LineCol) string {
	return fmt.Sprintf("%s@%d:%d", rule, at.Line, at.Col)
}

// Text returns the source text covered by sp.
func (p *Pass) Text(sp source.Span) string {
	return p.File.Text(sp)
}
