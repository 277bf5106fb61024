package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vantalint/internal/rules"
	"vantalint/internal/version"
)

// buildInfo is both the JSON payload and the source of the pretty output.
// Empty optional fields are omitted unless requested.
type buildInfo struct {
	Tool       string   `json:"tool"`
	Version    string   `json:"version"`
	Rules      []string `json:"rules"`
	GitCommit  string   `json:"git_commit,omitempty"`
	GitMessage string   `json:"git_message,omitempty"`
	BuildDate  string   `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vantalint build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show all build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	show := func(name string) (bool, error) {
		v, err := cmd.Flags().GetBool(name)
		if err != nil {
			return false, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		return v || full, nil
	}

	info := buildInfo{
		Tool:    "vantalint",
		Version: strings.TrimSpace(version.Version),
		Rules:   rules.IDs(),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	for _, opt := range []struct {
		flag  string
		value string
		dst   *string
	}{
		{"hash", version.GitCommit, &info.GitCommit},
		{"message", version.GitMessage, &info.GitMessage},
		{"date", version.BuildDate, &info.BuildDate},
	} {
		on, err := show(opt.flag)
		if err != nil {
			return err
		}
		if on {
			*opt.dst = valueOrUnknown(opt.value)
		}
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		useColor, err := resolveColor(colorFlag)
		if err != nil {
			return err
		}
		renderVersionPretty(out, info, useColor)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, info buildInfo, useColor bool) {
	v := info.Version
	if useColor && v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "vantalint %s (%d rules)\n", v, len(info.Rules))
	for _, row := range [][2]string{
		{"commit", info.GitCommit},
		{"message", info.GitMessage},
		{"built", info.BuildDate},
	} {
		if row[1] != "" {
			fmt.Fprintf(out, "%-8s %s\n", row[0]+":", row[1])
		}
	}
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
