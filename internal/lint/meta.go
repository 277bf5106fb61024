package lint

import (
	"fmt"
	"sort"

	"vantalint/internal/diag"
)

// Language selects the parser a rule runs on.
type Language uint8

const (
	LangGraphQL Language = iota + 1
	LangTypeScript
)

func (l Language) String() string {
	switch l {
	case LangGraphQL:
		return "graphql"
	case LangTypeScript:
		return "typescript"
	}
	return "unknown"
}

// Category mirrors the problem/suggestion/layout split used in rule docs.
type Category uint8

const (
	CategoryProblem Category = iota
	CategorySuggestion
	CategoryLayout
)

func (c Category) String() string {
	switch c {
	case CategoryProblem:
		return "problem"
	case CategorySuggestion:
		return "suggestion"
	case CategoryLayout:
		return "layout"
	}
	return "unknown"
}

const docsBaseURL = "https://github.com/VantaInc/eslint-plugin-vanta/blob/main/docs/rules/"

// DocsURL returns the documentation page of rule id.
func DocsURL(id string) string {
	return docsBaseURL + id + ".md"
}

// Meta is the immutable description of a rule.
type Meta struct {
	ID          string
	Language    Language
	Description string
	Category    Category
	DocsGroup   string // "Best Practices", "Stylistic Issues"
	Recommended bool
	Fixable     bool
	Severity    diag.Severity // default severity
	Code        diag.Code
	// Messages maps message IDs to templates with {{name}} placeholders.
	Messages map[string]string
}

// URL returns the documentation page of the rule.
func (m *Meta) URL() string {
	return DocsURL(m.ID)
}

// MessageIDs returns the message IDs in sorted order.
func (m *Meta) MessageIDs() []string {
	ids := make([]string, 0, len(m.Messages))
	for id := range m.Messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the metadata for internal consistency.
func (m *Meta) Validate() error {
	switch {
	case m.ID == "":
		return fmt.Errorf("rule without id")
	case m.Language != LangGraphQL && m.Language != LangTypeScript:
		return fmt.Errorf("rule %s: unknown language %d", m.ID, m.Language)
	case len(m.Messages) == 0:
		return fmt.Errorf("rule %s: no messages", m.ID)
	case m.Code == diag.UnknownCode:
		return fmt.Errorf("rule %s: no diagnostic code", m.ID)
	}
	for id, tmpl := range m.Messages {
		if tmpl == "" {
			return fmt.Errorf("rule %s: empty message %q", m.ID, id)
		}
	}
	return nil
}
