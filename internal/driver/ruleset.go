package driver

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"vantalint/internal/config"
	"vantalint/internal/diag"
	"vantalint/internal/lint"
	"vantalint/internal/rules"
)

// ActiveRule is an enabled rule with its effective severity.
type ActiveRule struct {
	rules.Entry
	Severity diag.Severity
}

// RuleSet is the rules of one run, in catalog order.
type RuleSet struct {
	active []ActiveRule
}

// NewRuleSet enables the catalog rules according to cfg. When only is
// non-empty, just those rules run (still subject to "off" in cfg).
func NewRuleSet(cfg *config.Config, only []string) (*RuleSet, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	known := func(id string) bool {
		_, ok := rules.Lookup(id)
		return ok
	}
	if err := cfg.Validate(known); err != nil {
		return nil, err
	}
	selected := make(map[string]struct{}, len(only))
	for _, id := range only {
		id = strings.TrimSpace(id)
		if !known(id) {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		selected[id] = struct{}{}
	}

	rs := &RuleSet{}
	for _, e := range rules.All() {
		id := e.ID()
		if len(selected) > 0 {
			if _, ok := selected[id]; !ok {
				continue
			}
		}
		if !cfg.Enabled(id) {
			continue
		}
		rs.active = append(rs.active, ActiveRule{Entry: e, Severity: cfg.Severity(id, e.Meta().Severity)})
	}
	return rs, nil
}

// Rules returns the enabled rules.
func (rs *RuleSet) Rules() []ActiveRule {
	return rs.active
}

// Len returns the number of enabled rules.
func (rs *RuleSet) Len() int {
	return len(rs.active)
}

// For returns the enabled rules of lang.
func (rs *RuleSet) For(lang lint.Language) []ActiveRule {
	var out []ActiveRule
	for _, r := range rs.active {
		if r.Meta().Language == lang {
			out = append(out, r)
		}
	}
	return out
}

// IDs returns the identifiers of the enabled rules.
func (rs *RuleSet) IDs() []string {
	out := make([]string, 0, len(rs.active))
	for _, r := range rs.active {
		out = append(out, r.ID())
	}
	return out
}

// Fingerprint identifies the rule selection and severities for cache keys.
func (rs *RuleSet) Fingerprint() Digest {
	h := sha256.New()
	for _, r := range rs.active {
		_, _ = fmt.Fprintf(h, "%s=%d\n", r.ID(), r.Severity)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
