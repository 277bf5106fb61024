// Package rules is the catalog of every rule vantalint ships, across languages.
package rules

import (
	"fmt"

	"vantalint/internal/graphql"
	"vantalint/internal/lint"
	"vantalint/internal/rules/gqlrules"
	"vantalint/internal/rules/tsrules"
	"vantalint/internal/tsast"
)

// Entry is one registered rule. Exactly one of GraphQL and TypeScript is set.
type Entry struct {
	GraphQL    *graphql.Rule
	TypeScript *tsast.Rule
}

// Meta returns the rule's metadata.
func (e Entry) Meta() *lint.Meta {
	if e.GraphQL != nil {
		return &e.GraphQL.Meta
	}
	return &e.TypeScript.Meta
}

// ID returns the rule identifier.
func (e Entry) ID() string {
	return e.Meta().ID
}

var catalog = buildCatalog()

func buildCatalog() []Entry {
	var out []Entry
	for _, r := range gqlrules.All() {
		out = append(out, Entry{GraphQL: r})
	}
	for _, r := range tsrules.All() {
		out = append(out, Entry{TypeScript: r})
	}
	return out
}

// All returns every rule, GraphQL rules first, each in catalog order.
func All() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a rule by ID.
func Lookup(id string) (Entry, bool) {
	for _, e := range catalog {
		if e.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IDs returns every rule ID in catalog order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, e := range catalog {
		ids = append(ids, e.ID())
	}
	return ids
}

// Validate checks every rule's metadata and that IDs and codes are unique.
func Validate() error {
	ids := make(map[string]struct{}, len(catalog))
	codes := make(map[string]string, len(catalog))
	for _, e := range catalog {
		m := e.Meta()
		if err := m.Validate(); err != nil {
			return err
		}
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("duplicate rule id %q", m.ID)
		}
		ids[m.ID] = struct{}{}
		code := m.Code.ID()
		if other, dup := codes[code]; dup {
			return fmt.Errorf("rules %s and %s share code %s", other, m.ID, code)
		}
		codes[code] = m.ID
		if e.GraphQL != nil && m.Language != lint.LangGraphQL {
			return fmt.Errorf("rule %s: registered as GraphQL but declares %s", m.ID, m.Language)
		}
		if e.TypeScript != nil && m.Language != lint.LangTypeScript {
			return fmt.Errorf("rule %s: registered as TypeScript but declares %s", m.ID, m.Language)
		}
	}
	return nil
}
