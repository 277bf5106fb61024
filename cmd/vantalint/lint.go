package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vantalint/internal/diag"
	"vantalint/internal/diagfmt"
	"vantalint/internal/driver"
	"vantalint/internal/rules"
	"vantalint/internal/version"
)

const cacheAppName = "vantalint"

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [paths...]",
	Short: "Report rule violations in GraphQL and TypeScript files",
	Long: `Lint files or directories. Without arguments the [lint].include paths of
vantalint.toml are used, or the current directory.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringSlice("schema", nil, "schema SDL files or directories (overrides [graphql].schema)")
	lintCmd.Flags().StringSlice("exclude", nil, "directories or files to skip while walking (added to [lint].exclude)")
	lintCmd.Flags().StringSlice("rule", nil, "run only these rules")
	lintCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	lintCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	lintCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	lintCmd.Flags().Bool("clear-cache", false, "drop every cached result before linting")
	lintCmd.Flags().Int("max-warnings", -1, "exit with status 1 when warnings exceed this number (-1 = no limit)")
	lintCmd.Flags().Bool("warnings-as-errors", false, "exit with status 1 when any warning is reported")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	lintCmd.Flags().Bool("suggest", false, "show fix suggestions")
	lintCmd.Flags().Bool("preview", false, "show fix previews (implies --suggest)")
	lintCmd.Flags().Bool("fullpath", false, "print absolute paths")
}

// renderOptions are the output flags shared by lint and fix.
type renderOptions struct {
	format    string
	withNotes bool
	suggest   bool
	preview   bool
	fullPath  bool
	useColor  bool
}

func readRenderOptions(cmd *cobra.Command, env *cliEnv) (renderOptions, error) {
	var (
		ro  renderOptions
		err error
	)
	if ro.format, err = cmd.Flags().GetString("format"); err != nil {
		return ro, fmt.Errorf("failed to get format flag: %w", err)
	}
	ro.format = strings.ToLower(strings.TrimSpace(ro.format))
	switch ro.format {
	case "pretty", "short", "json", "sarif":
	default:
		return ro, fmt.Errorf("unknown format: %s", ro.format)
	}
	if ro.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return ro, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if ro.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return ro, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if ro.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return ro, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if ro.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return ro, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	ro.useColor = env.useColor
	return ro, nil
}

// lintFlags are the inputs of a run shared by lint and fix.
type lintFlags struct {
	schema  []string
	exclude []string
	only    []string
	jobs    int
	ui      tristate
}

func readLintFlags(cmd *cobra.Command) (lintFlags, error) {
	var (
		lf  lintFlags
		err error
	)
	if lf.schema, err = cmd.Flags().GetStringSlice("schema"); err != nil {
		return lf, fmt.Errorf("failed to get schema flag: %w", err)
	}
	if lf.exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return lf, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	if lf.only, err = cmd.Flags().GetStringSlice("rule"); err != nil {
		return lf, fmt.Errorf("failed to get rule flag: %w", err)
	}
	if lf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return lf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if lf.jobs < 0 {
		return lf, fmt.Errorf("--jobs must not be negative")
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return lf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if lf.ui, err = parseTristate("ui", uiValue); err != nil {
		return lf, err
	}
	return lf, nil
}

// driverOptions merges flags over the config file.
func driverOptions(env *cliEnv, lf lintFlags, args []string) (*driver.Options, error) {
	ruleSet, err := driver.NewRuleSet(env.cfg, lf.only)
	if err != nil {
		return nil, err
	}
	schema := lf.schema
	if len(schema) == 0 {
		schema = env.cfg.GraphQL.Schema
	}
	exclude := append(append([]string(nil), env.cfg.Lint.Exclude...), lf.exclude...)
	baseDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return &driver.Options{
		Paths:          lintPaths(args, env.cfg),
		Exclude:        exclude,
		SchemaPaths:    schema,
		Rules:          ruleSet,
		Jobs:           pick(lf.jobs, env.cfg.Lint.Jobs),
		MaxDiagnostics: env.maxDiagnostics,
		Logger:         env.log,
		BaseDir:        baseDir,
	}, nil
}

func runLint(cmd *cobra.Command, args []string) error {
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
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	maxWarnings, err := cmd.Flags().GetInt("max-warnings")
	if err != nil {
		return fmt.Errorf("failed to get max-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
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
	if !noCache && env.cfg.CacheEnabled() {
		opts.Cache = openCache(env.log, clearCache)
	}

	var res *driver.Result
	if ro.format == "pretty" && !env.quiet && lf.ui.enabled() {
		files, discoverErr := driver.Discover(opts.Paths, opts.Exclude)
		if discoverErr != nil {
			return discoverErr
		}
		res, err = runLintWithUI(cmd.Context(), "vantalint lint", files, opts)
	} else {
		res, err = driver.Lint(cmd.Context(), opts)
	}
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	bag := mergeBags(res)
	out := cmd.OutOrStdout()
	if err := renderDiagnostics(out, bag, res, ro); err != nil {
		return err
	}
	if ro.format == "pretty" && !env.quiet {
		diagfmt.Summary(out, bag, len(bag.Fixable()), ro.useColor)
	}
	if env.timings && res.Timer != nil {
		fmt.Fprintln(os.Stderr, res.Timer.Summary())
	}

	if code := lintExitCode(bag, maxWarnings, warningsAsErrors); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func openCache(log *zap.Logger, dropAll bool) *driver.DiskCache {
	cache, err := driver.OpenDiskCache(cacheAppName)
	if err != nil {
		log.Warn("result cache disabled", zap.Error(err))
		return nil
	}
	if dropAll {
		if err := cache.DropAll(); err != nil {
			log.Warn("failed to clear result cache", zap.String("dir", cache.Dir()), zap.Error(err))
		}
	}
	return cache
}

// mergeBags collects the per-file bags into one sorted bag for rendering.
func mergeBags(res *driver.Result) *diag.Bag {
	bag := diag.NewBag(0)
	for i := range res.Files {
		bag.Merge(res.Files[i].Bag)
	}
	bag.Sort()
	return bag
}

// lintExitCode is 1 when errors remain, when warnings are treated as errors,
// or when there are more warnings than maxWarnings (negative disables the
// limit).
func lintExitCode(bag *diag.Bag, maxWarnings int, warningsAsErrors bool) int {
	errs := bag.Count(diag.SevError)
	warns := bag.Count(diag.SevWarning) - errs
	switch {
	case errs > 0:
		return 1
	case warningsAsErrors && warns > 0:
		return 1
	case maxWarnings >= 0 && warns > maxWarnings:
		return 1
	}
	return 0
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, res *driver.Result, ro renderOptions) error {
	pathMode := diagfmt.PathModeAuto
	if ro.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := ro.suggest || ro.preview

	switch ro.format {
	case "pretty":
		diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       ro.useColor,
			Context:     1,
			PathMode:    pathMode,
			ShowNotes:   ro.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: ro.preview,
			ShowRule:    true,
		})
	case "short":
		output := diag.FormatShortDiagnostics(bag.Items(), res.FileSet, ro.withNotes)
		if output != "" {
			fmt.Fprintln(w, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     ro.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  ro.preview,
		}
		if err := diagfmt.JSON(w, bag, res.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "vantalint",
			ToolVersion:    version.Version,
			InformationURI: "https://github.com/VantaInc/eslint-plugin-vanta",
			InvocationArgs: os.Args[1:],
			Rules:          sarifRules(),
		}
		if err := diagfmt.Sarif(w, bag, res.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", ro.format)
	}
	return nil
}

func sarifRules() []diagfmt.SarifRule {
	all := rules.All()
	out := make([]diagfmt.SarifRule, 0, len(all))
	for _, e := range all {
		meta := e.Meta()
		out = append(out, diagfmt.SarifRule{
			ID:           meta.ID,
			Name:         ruleTitle(meta.ID),
			Description:  meta.Description,
			HelpURI:      meta.URL(),
			DefaultLevel: diagfmt.SarifLevel(meta.Severity),
		})
	}
	return out
}
