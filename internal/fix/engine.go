package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"vantalint/internal/diag"
	"vantalint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// Rules restricts candidates to the named rules when non-empty.
	Rules []string
	// Unsafe admits fixes below FixApplicabilityAlwaysSafe in ApplyModeAll
	// and ApplyModeOnce. ApplyModeID applies the named fix regardless.
	Unsafe bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Rule          string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Rule   string
	Reason string
}

// FileChange holds the rewritten content of one file.
type FileChange struct {
	File      source.FileID
	Path      string
	EditCount int
	Before    []byte
	After     []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	span  source.Span
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies the non-overlapping ones in memory. Nothing is written to disk;
// see Write.
//
// Candidates are visited in source order of their edits. A candidate whose
// edits overlap an edit accepted earlier in the same call is skipped; callers
// re-lint and call Apply again to pick it up.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics, opts.Rules)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes := applyCandidates(fs, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates flattens the fixes of every diagnostic into candidates.
// Fixes without edits and fixes whose ID was already seen are skipped.
// Missing IDs are synthesised from the diagnostic code, file, start offset
// and fix index. order preserves emission order for stable sorting.
func gatherCandidates(diagnostics []diag.Diagnostic, rules []string) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 || !ruleSelected(d.Rule, rules) {
			continue
		}

		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Rule:   d.Rule,
					Reason: "fix has no edits",
				})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Rule:   d.Rule,
					Reason: "duplicate fix id",
				})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				span:  f.Span(),
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

func ruleSelected(rule string, rules []string) bool {
	if len(rules) == 0 {
		return true
	}
	for _, r := range rules {
		if r == rule {
			return true
		}
	}
	return false
}

// sortCandidates orders candidates by file, fix start, fix end (wider first),
// emission order, preference, ID and title. Wider-first makes an enclosing
// fix win over the fixes nested inside it.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].span, candidates[j].span
		if si.File != sj.File {
			return si.File < sj.File
		}
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End > sj.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if opts.Unsafe || cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Rule:   cand.diag.Rule,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		var fallback *candidate
		for i := range candidates {
			if candidates[i].fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{candidates[i]}, nil
			}
			if fallback == nil && opts.Unsafe {
				fallback = &candidates[i]
			}
		}
		if fallback != nil {
			return []candidate{*fallback}, nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

type stagedEdit struct {
	edit  diag.TextEdit
	order int
}

func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	accepted := make(map[source.FileID][]stagedEdit)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	baseDir := fs.BaseDir()
	seq := 0

	for _, cand := range selected {
		reason := checkCandidate(fs, cand.fix.Edits, accepted)
		if reason != "" {
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Rule:   cand.diag.Rule,
				Reason: reason,
			})
			continue
		}

		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], stagedEdit{edit: e, order: seq})
			seq++
		}

		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Rule:          cand.diag.Rule,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}

	fileChanges := make([]FileChange, 0, len(accepted))
	for fileID, edits := range accepted {
		file := fs.Get(fileID)
		fileChanges = append(fileChanges, FileChange{
			File:      fileID,
			Path:      file.FormatPath("relative", baseDir),
			EditCount: len(edits),
			Before:    file.Content,
			After:     splice(file.Content, edits),
		})
	}

	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges
}

// checkCandidate validates a fix against file bounds, its OldText guards,
// its own edits and edits accepted so far. It returns a skip reason or "".
func checkCandidate(fs *source.FileSet, edits []diag.TextEdit, accepted map[source.FileID][]stagedEdit) string {
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit targets unknown file"
		}
		file := fs.Get(e.Span.File)
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(file.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.edit, e) {
				return fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", fs.BaseDir()))
			}
		}
		for _, other := range edits[i+1:] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix contains overlapping edits"
			}
		}
	}
	return ""
}

// splice applies non-overlapping edits (in original coordinates) to content.
// Insertions at the same offset keep their acceptance order.
func splice(content []byte, edits []stagedEdit) []byte {
	sorted := append([]stagedEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ei, ej := sorted[i].edit.Span, sorted[j].edit.Span
		if ei.Start != ej.Start {
			return ei.Start < ej.Start
		}
		if ei.End != ej.End {
			return ei.End < ej.End
		}
		return sorted[i].order < sorted[j].order
	})

	var b strings.Builder
	b.Grow(len(content))
	cursor := uint32(0)
	for _, se := range sorted {
		b.Write(content[cursor:se.edit.Span.Start])
		b.WriteString(se.edit.NewText)
		cursor = se.edit.Span.End
	}
	b.Write(content[cursor:])
	return []byte(b.String())
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// (Start == End) never conflict. A zero-length edit conflicts with a non-zero
// span if its position is within that span (Start <= pos < End). For two
// non-zero spans, any overlap yields a conflict.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// Write persists the file changes of result, restoring the BOM and CRLF line
// endings the loader stripped. Virtual files are left untouched.
func Write(fs *source.FileSet, result *ApplyResult) error {
	if result == nil {
		return nil
	}
	for _, change := range result.FileChanges {
		file := fs.Get(change.File)
		if file.Flags&source.FileVirtual != 0 {
			continue
		}

		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}

		if err := os.WriteFile(file.Path, file.Encode(change.After), mode); err != nil {
			return fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return nil
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil || int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath("auto", fs.BaseDir())
}
