package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vantalint/internal/config"
	"vantalint/internal/observ"
	"vantalint/internal/prof"
)

const configFileHint = config.FileName

// exitError carries a process exit code for findings that are not failures
// of the tool itself. It prints nothing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitCodeOf(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

// cliEnv is the state shared by lint and fix: the effective config, the
// logger and the resolved global flags.
type cliEnv struct {
	cfg            *config.Config
	log            *zap.Logger
	useColor       bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func loadEnv(cmd *cobra.Command) (*cliEnv, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag)
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	levelStr, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := observ.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if quiet {
		level = zap.ErrorLevel
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	log := observ.NewLogger(level, os.Stderr)
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		log.Debug("using config", zap.String("path", cfg.Path))
	}
	return &cliEnv{
		cfg:            cfg,
		log:            log,
		useColor:       useColor,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
	}, nil
}

// loadConfig reads path when given, otherwise searches upward from the
// working directory and falls back to the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Discover(wd)
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

// tristate is the auto|on|off value of --color and --ui.
type tristate string

const (
	modeAuto tristate = "auto"
	modeOn   tristate = "on"
	modeOff  tristate = "off"
)

func parseTristate(flag, value string) (tristate, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled resolves auto by checking whether stdout is a terminal.
func (m tristate) enabled() bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func resolveColor(value string) (bool, error) {
	mode, err := parseTristate("color", value)
	if err != nil {
		return false, err
	}
	return mode.enabled(), nil
}

// lintPaths picks the CLI arguments, then [lint].include, then ".".
func lintPaths(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	if len(cfg.Lint.Include) > 0 {
		return cfg.Lint.Include
	}
	return []string{"."}
}

func pick[T comparable](flagValue, cfgValue T) T {
	var zero T
	if flagValue != zero {
		return flagValue
	}
	return cfgValue
}

// startProfiling starts the profiles requested by the persistent flags.
// The returned stop function logs instead of failing the command.
func startProfiling(cmd *cobra.Command, log *zap.Logger) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			log.Warn("failed to finish profiling", zap.Error(err))
		}
	}, nil
}
