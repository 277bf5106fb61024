package tsrules

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"vantalint/internal/diag"
	"vantalint/internal/fix"
	"vantalint/internal/lint"
	"vantalint/internal/source"
	"vantalint/internal/tsast"
)

type lintResult struct {
	fs    *source.FileSet
	file  *source.File
	diags []diag.Diagnostic
}

func lintSource(t *testing.T, rule *tsast.Rule, src string) lintResult {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input.ts", []byte(src)))
	tree, err := tsast.Parse(context.Background(), file)
	require.NoError(t, err)

	bag := diag.NewBag(0)
	rule.Run(&tsast.Pass{
		Pass: lint.NewPass(&rule.Meta, file, rule.Severity, diag.BagReporter{Bag: bag}),
		Tree: tree,
	})
	return lintResult{fs: fs, file: file, diags: bag.Items()}
}

// applyOnce runs one fix pass over src and returns the new text.
func applyOnce(t *testing.T, rule *tsast.Rule, src string) string {
	t.Helper()
	res := lintSource(t, rule, src)
	out, err := fix.Apply(res.fs, res.diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if errors.Is(err, fix.ErrNoFixes) {
		return src
	}
	require.NoError(t, err)
	for _, ch := range out.FileChanges {
		if ch.File == res.file.ID {
			return string(ch.After)
		}
	}
	return src
}

// applyUntilStable repeats fix passes the way the driver does.
func applyUntilStable(t *testing.T, rule *tsast.Rule, src string) string {
	t.Helper()
	for i := 0; i < 10; i++ {
		next := applyOnce(t, rule, src)
		if next == src {
			return next
		}
		src = next
	}
	t.Fatalf("fixes for %s did not converge", rule.ID)
	return src
}

// position returns the 1-based line and column of d.
func position(r lintResult, d diag.Diagnostic) (line, col uint32) {
	start, _ := r.fs.Resolve(d.Primary)
	return start.Line, start.Col
}

type tsCase struct {
	name   string
	code   string
	output string // expected text after one fix pass; empty when not fixable
	errors [][2]uint32
}

func runTSCases(t *testing.T, rule *tsast.Rule, valid []string, invalid []tsCase) {
	t.Helper()
	for i, code := range valid {
		t.Run(fmt.Sprintf("valid/%d", i), func(t *testing.T) {
			res := lintSource(t, rule, code)
			require.Empty(t, res.diags, "code: %s", code)
		})
	}
	for _, tc := range invalid {
		t.Run("invalid/"+tc.name, func(t *testing.T) {
			res := lintSource(t, rule, tc.code)
			require.Len(t, res.diags, len(tc.errors))
			for i, want := range tc.errors {
				line, col := position(res, res.diags[i])
				require.Equal(t, want, [2]uint32{line, col}, "diagnostic %d: %s", i, res.diags[i].Message)
				require.Equal(t, rule.ID, res.diags[i].Rule)
			}
			if tc.output != "" {
				require.Equal(t, tc.output, applyOnce(t, rule, tc.code))
			}
		})
	}
}
