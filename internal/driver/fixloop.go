package driver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/observ"
	"vantalint/internal/source"
)

// MaxFixPasses bounds the lint+apply loop.
const MaxFixPasses = 10

// FixOptions configures a fix run. The cache in Options is ignored.
type FixOptions struct {
	Options
	// Unsafe admits fixes that are not marked always-safe.
	Unsafe bool
	// Rules restricts applied fixes to these rule IDs when non-empty.
	OnlyRules []string
	// Write persists the final contents; otherwise the run is a dry run.
	Write bool
	// Once applies a single fix and stops after one pass.
	Once bool
	// TargetID applies only the fix with this ID, in one pass.
	TargetID string
}

func (o *FixOptions) apply() fix.ApplyOptions {
	mode := fix.ApplyModeAll
	switch {
	case o.TargetID != "":
		mode = fix.ApplyModeID
	case o.Once:
		mode = fix.ApplyModeOnce
	}
	return fix.ApplyOptions{Mode: mode, TargetID: o.TargetID, Rules: o.OnlyRules, Unsafe: o.Unsafe}
}

// FixResult is the outcome of a fix run. Lint holds the diagnostics that
// remain after the last pass.
type FixResult struct {
	Lint      *Result
	Passes    int
	Converged bool
	Applied   []fix.AppliedFix
	// Changes holds one entry per rewritten file: Before is the content read
	// from disk, After the final content, File the latest version's ID.
	Changes []fix.FileChange
}

// Fix lints, applies every non-overlapping fix, and re-lints the rewritten
// files until no fix applies or MaxFixPasses is reached. A file still
// carrying fixes after the last pass gets a VL9004 diagnostic. With Once or
// TargetID set a single fix is applied and the run ends after one pass.
func Fix(ctx context.Context, opts *FixOptions) (*FixResult, error) {
	if opts == nil {
		return nil, fmt.Errorf("driver: missing fix options")
	}
	lintOpts := opts.Options
	lintOpts.Cache = nil
	log := observ.OrNop(opts.Logger)

	res, err := Lint(ctx, &lintOpts)
	if err != nil {
		return nil, err
	}
	out := &FixResult{Lint: res}

	l := &linter{
		rules:    opts.Rules,
		ruleHash: opts.Rules.Fingerprint(),
		schema:   res.Schema,
		log:      log,
		progress: opts.Progress,
		maxDiags: opts.MaxDiagnostics,
	}
	byID := make(map[source.FileID]int, len(res.Files))
	for i := range res.Files {
		if res.Files[i].Loaded {
			byID[res.Files[i].FileID] = i
		}
	}
	original := make(map[int][]byte)

	applyOpts := opts.apply()
	idx := res.Timer.Begin("fix")
	for out.Passes < MaxFixPasses {
		applyRes, err := fix.Apply(res.FileSet, res.Diagnostics(), applyOpts)
		if errors.Is(err, fix.ErrNoFixes) {
			out.Converged = true
			break
		}
		if err != nil {
			return nil, err
		}
		out.Passes++
		out.Applied = append(out.Applied, applyRes.Applied...)
		log.Info("fix pass",
			zap.Int("pass", out.Passes),
			zap.Int("applied", len(applyRes.Applied)),
			zap.Int("skipped", len(applyRes.Skipped)))

		changed := make([]int, 0, len(applyRes.FileChanges))
		for _, change := range applyRes.FileChanges {
			i, ok := byID[change.File]
			if !ok {
				continue
			}
			if _, seen := original[i]; !seen {
				original[i] = change.Before
			}
			emit(opts.Progress, Event{File: res.Files[i].Path, Stage: StageFix, Status: StatusWorking})
			res.Files[i].FileID = res.FileSet.Replace(change.File, change.After)
			byID[res.Files[i].FileID] = i
			changed = append(changed, i)
		}
		if err := l.run(ctx, res, opts.Jobs, changed); err != nil {
			return nil, err
		}
		if applyOpts.Mode != fix.ApplyModeAll {
			// одиночное исправление: повторных проходов нет
			out.Converged = true
			break
		}
	}
	if !out.Converged {
		// последний проход исчерпал лимит: проверим, остались ли исправления
		_, err := fix.Apply(res.FileSet, res.Diagnostics(), applyOpts)
		out.Converged = errors.Is(err, fix.ErrNoFixes)
		if !out.Converged {
			markUnconverged(res)
		}
	}
	res.Timer.End(idx, fmt.Sprintf("%d passes", out.Passes))

	for i := range res.Files {
		before, ok := original[i]
		if !ok {
			continue
		}
		file := res.FileSet.Get(res.Files[i].FileID)
		out.Changes = append(out.Changes, fix.FileChange{
			File:   file.ID,
			Path:   file.Path,
			Before: before,
			After:  file.Content,
		})
	}
	if opts.Write && len(out.Changes) > 0 {
		if err := fix.Write(res.FileSet, &fix.ApplyResult{FileChanges: out.Changes}); err != nil {
			return out, err
		}
		for _, c := range out.Changes {
			emit(opts.Progress, Event{File: c.Path, Stage: StageFix, Status: StatusDone})
		}
	}
	return out, nil
}

func markUnconverged(res *Result) {
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Bag == nil || len(fr.Bag.Fixable()) == 0 {
			continue
		}
		msg := fmt.Sprintf("fixes did not converge after %d passes", MaxFixPasses)
		fr.Bag.Add(diag.NewError(diag.DrvTooManyFixes, source.Span{File: fr.FileID}, msg))
	}
}
