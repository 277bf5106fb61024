package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vantalint/internal/diagfmt"
	"vantalint/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Apply automatic fixes and report what remains",
	Long: `Run lint and apply every non-overlapping fix, repeating until nothing more
applies (at most 10 passes). Files are rewritten in place unless --dry-run
is given, in which case a diff is printed instead.

--once applies the first safe fix and --id applies the fix with that ID (shown
as id=... by --suggest); both stop after a single pass.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringSlice("schema", nil, "schema SDL files or directories (overrides [graphql].schema)")
	fixCmd.Flags().StringSlice("exclude", nil, "directories or files to skip while walking (added to [lint].exclude)")
	fixCmd.Flags().StringSlice("rule", nil, "run and fix only these rules")
	fixCmd.Flags().String("format", "pretty", "output format for remaining diagnostics (pretty|short|json|sarif)")
	fixCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fixCmd.Flags().Bool("dry-run", false, "print a diff instead of writing files")
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that are not marked safe")
	fixCmd.Flags().Bool("once", false, "apply only the first available fix")
	fixCmd.Flags().String("id", "", "apply only the fix with this id (single file)")
	fixCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	fixCmd.Flags().Bool("suggest", false, "show fix suggestions of remaining diagnostics")
	fixCmd.Flags().Bool("preview", false, "show fix previews (implies --suggest)")
	fixCmd.Flags().Bool("fullpath", false, "print absolute paths")
}

func runFix(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	ro, err := readRenderOptions(cmd, env)
	if err != nil {
		return err
	}
	lf, err := readLintFlags(cmd)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	unsafe, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return fmt.Errorf("failed to get unsafe flag: %w", err)
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	if targetID != "" {
		if once {
			return fmt.Errorf("--id cannot be combined with --once")
		}
		if err := requireSingleFile(args); err != nil {
			return err
		}
	}

	opts, err := driverOptions(env, lf, args)
	if err != nil {
		return err
	}
	stopProfiling, err := startProfiling(cmd, env.log)
	if err != nil {
		return err
	}
	defer stopProfiling()
	fixOpts := &driver.FixOptions{
		Options:   *opts,
		Unsafe:    unsafe,
		OnlyRules: lf.only,
		Write:     !dryRun,
		Once:      once,
		TargetID:  targetID,
	}

	var res *driver.FixResult
	if !env.quiet && lf.ui.enabled() {
		files, discoverErr := driver.Discover(opts.Paths, opts.Exclude)
		if discoverErr != nil {
			return discoverErr
		}
		res, err = runFixWithUI(cmd.Context(), "vantalint fix", files, fixOpts)
	} else {
		res, err = driver.Fix(cmd.Context(), fixOpts)
	}
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}
	if targetID != "" && len(res.Applied) == 0 {
		return fmt.Errorf("fix: no applicable fix with id %q", targetID)
	}

	out := cmd.OutOrStdout()
	if ro.format == "pretty" {
		for _, change := range res.Changes {
			if dryRun {
				diagfmt.FileDiff(out, change.Path, change.Before, change.After, ro.useColor)
				continue
			}
			if !env.quiet {
				fmt.Fprintf(out, "fixed %s\n", change.Path)
			}
		}
		if !env.quiet && len(res.Applied) > 0 {
			fmt.Fprintf(out, "applied %d fixes in %d passes\n", len(res.Applied), res.Passes)
		}
	}

	bag := mergeBags(res.Lint)
	if err := renderDiagnostics(out, bag, res.Lint, ro); err != nil {
		return err
	}
	if ro.format == "pretty" && !env.quiet {
		diagfmt.Summary(out, bag, len(bag.Fixable()), ro.useColor)
	}
	if env.timings && res.Lint.Timer != nil {
		fmt.Fprintln(os.Stderr, res.Lint.Timer.Summary())
	}
	if bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

func requireSingleFile(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("fix: id can only be used with a single file")
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("fix: id can only be used with a single file")
	}
	return nil
}
