package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vantalint/internal/lint"
	"vantalint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog",
	Long: `Print every rule with its language, default severity and fixability.
--format markdown renders one documentation page per rule; with --out the
pages are written as <rule-id>.md into that directory.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().String("format", "table", "output format (table|json|markdown)")
	rulesCmd.Flags().String("out", "", "directory for markdown pages (markdown format only)")
	rulesCmd.Flags().String("lang", "", "only rules for this language (graphql|typescript)")
}

type ruleJSON struct {
	ID          string            `json:"id"`
	Language    string            `json:"language"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Severity    string            `json:"severity"`
	Code        string            `json:"code"`
	Recommended bool              `json:"recommended"`
	Fixable     bool              `json:"fixable"`
	URL         string            `json:"url"`
	Messages    map[string]string `json:"messages"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	metas, err := selectRules(lang)
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "table":
		renderRulesTable(out, metas, useColor)
		return nil
	case "json":
		return renderRulesJSON(out, metas)
	case "markdown", "md":
		if outDir == "" {
			for i, meta := range metas {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, ruleMarkdown(meta))
			}
			return nil
		}
		return writeRuleDocs(outDir, metas)
	default:
		return fmt.Errorf("unsupported format %q (must be table, json or markdown)", format)
	}
}

func selectRules(lang string) ([]*lint.Meta, error) {
	var want lint.Language
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "":
	case "graphql", "gql":
		want = lint.LangGraphQL
	case "typescript", "ts":
		want = lint.LangTypeScript
	default:
		return nil, fmt.Errorf("unknown language %q (expected graphql or typescript)", lang)
	}
	var out []*lint.Meta
	for _, e := range rules.All() {
		meta := e.Meta()
		if want != 0 && meta.Language != want {
			continue
		}
		out = append(out, meta)
	}
	return out, nil
}

// ruleTitle turns "prefer-maybe" into "Prefer Maybe".
func ruleTitle(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "-", " "))
}

func renderRulesTable(w io.Writer, metas []*lint.Meta, useColor bool) {
	idWidth := len("RULE")
	for _, m := range metas {
		idWidth = max(idWidth, len(m.ID))
	}
	header := lipgloss.NewStyle().Bold(true)
	fixable := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if !useColor {
		header, fixable, muted = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}
	col := func(s string, width int) string {
		return lipgloss.NewStyle().Width(width + 2).Render(s)
	}

	fmt.Fprintln(w, header.Render(col("RULE", idWidth)+col("LANG", 10)+col("SEVERITY", 8)+col("FIX", 3)+"DESCRIPTION"))
	for _, m := range metas {
		fix := muted.Render(col("-", 3))
		if m.Fixable {
			fix = fixable.Render(col("yes", 3))
		}
		fmt.Fprintln(w, col(m.ID, idWidth)+col(m.Language.String(), 10)+col(m.Severity.String(), 8)+fix+m.Description)
	}
}

func renderRulesJSON(w io.Writer, metas []*lint.Meta) error {
	payload := make([]ruleJSON, 0, len(metas))
	for _, m := range metas {
		payload = append(payload, ruleJSON{
			ID:          m.ID,
			Language:    m.Language.String(),
			Category:    m.Category.String(),
			Description: m.Description,
			Severity:    m.Severity.String(),
			Code:        m.Code.ID(),
			Recommended: m.Recommended,
			Fixable:     m.Fixable,
			URL:         m.URL(),
			Messages:    m.Messages,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func ruleMarkdown(m *lint.Meta) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (`%s`)\n\n", ruleTitle(m.ID), m.ID)
	fmt.Fprintf(&sb, "%s\n\n", m.Description)
	fmt.Fprintf(&sb, "- Language: %s\n", m.Language)
	fmt.Fprintf(&sb, "- Category: %s\n", m.Category)
	if m.DocsGroup != "" {
		fmt.Fprintf(&sb, "- Group: %s\n", m.DocsGroup)
	}
	fmt.Fprintf(&sb, "- Default severity: %s\n", m.Severity)
	fmt.Fprintf(&sb, "- Code: %s\n", m.Code.ID())
	if m.Fixable {
		sb.WriteString("- Fixable: yes, with `vantalint fix`\n")
	} else {
		sb.WriteString("- Fixable: no\n")
	}
	sb.WriteString("\n## Messages\n\n")
	for _, id := range m.MessageIDs() {
		fmt.Fprintf(&sb, "- `%s`: %s\n", id, m.Messages[id])
	}
	sb.WriteString("\n## Options\n\nThis rule takes no options.\n")
	return sb.String()
}

func writeRuleDocs(dir string, metas []*lint.Meta) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for _, m := range metas {
		path := filepath.Join(dir, m.ID+".md")
		if err := os.WriteFile(path, []byte(ruleMarkdown(m)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
