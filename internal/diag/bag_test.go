package diag

import (
	"testing"

	"vantalint/internal/source"
)

func TestBagNeverDeduplicates(t *testing.T) {
	b := NewBag(0)
	r := BagReporter{Bag: b}
	sp := source.Span{File: 0, Start: 4, End: 9}

	for range 3 {
		ReportError(r, GqlMutationsInputsUnique, sp, "same").WithRule("mutations-inputs-unique").Emit()
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 identical diagnostics, got %d", b.Len())
	}
}

func TestBagLimitAndCounts(t *testing.T) {
	b := NewBag(2)
	b.Add(New(SevInfo, DrvInfo, source.Span{}, "i"))
	b.Add(New(SevWarning, TsPreferMaybe, source.Span{}, "w"))
	if b.Add(NewError(TsPreferMaybe, source.Span{}, "e")) {
		t.Fatal("third diagnostic must be rejected by the limit")
	}
	if b.Dropped() != 1 {
		t.Errorf("Dropped = %d", b.Dropped())
	}
	if b.HasErrors() {
		t.Error("no errors expected")
	}
	if !b.HasWarnings() || b.Count(SevInfo) != 2 {
		t.Errorf("unexpected counts: warnings=%v info+=%d", b.HasWarnings(), b.Count(SevInfo))
	}
}

func TestBagSortKeepsEmissionOrderAtSameLocation(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{File: 1, Start: 10, End: 12}
	b.Add(Diagnostic{Severity: SevError, Code: TsPreferMaybe, Primary: sp, Message: "first"})
	b.Add(Diagnostic{Severity: SevError, Code: TsPreferMaybe, Primary: sp, Message: "second"})
	b.Add(Diagnostic{Severity: SevError, Code: TsPreferMaybe, Primary: source.Span{File: 0, Start: 50, End: 51}, Message: "other file"})
	b.Add(Diagnostic{Severity: SevWarning, Code: TsNullOrUndefinedCheck, Primary: source.Span{File: 1, Start: 1, End: 2}, Message: "early"})
	b.Sort()

	want := []string{"other file", "early", "first", "second"}
	for i, d := range b.Items() {
		if d.Message != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, d.Message, want[i])
		}
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportWarning(BagReporter{Bag: b}, TsPreferMaybe, source.Span{}, "m").
		WithNote(source.Span{}, "n").
		WithFix("fix", TextEdit{NewText: "x"})
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d diagnostics", b.Len())
	}
	d := b.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Applicability != FixApplicabilityAlwaysSafe {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		GqlPayloadsAreUnions:       "GQL1006",
		TsMongooseNamingConvention: "TS2007",
		DrvPrecondition:            "VL9002",
		Code(42):                   "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", c, got, want)
		}
	}
}
