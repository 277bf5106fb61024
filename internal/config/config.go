// Package config loads vantalint.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"vantalint/internal/diag"
)

// FileName is the name searched for by Find.
const FileName = "vantalint.toml"

// ErrNotFound is returned by Discover when no vantalint.toml exists in the
// start directory or any of its parents.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config is a decoded vantalint.toml. Path and Root are empty for the
// built-in default.
type Config struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Lint    LintConfig             `toml:"lint"`
	GraphQL GraphQLConfig          `toml:"graphql"`
	Rules   map[string]RuleSetting `toml:"rules"`
}

type LintConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Jobs    int      `toml:"jobs"`
	Cache   *bool    `toml:"cache"`
}

type GraphQLConfig struct {
	Schema []string `toml:"schema"`
}

// RuleSetting is one entry of [rules]: either a bare severity string or an
// inline table {severity = "...", options = [...]}.
type RuleSetting struct {
	Severity string
	Options  []any
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *RuleSetting) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		r.Severity = val
		return nil
	case map[string]any:
		for key, item := range val {
			switch key {
			case "severity":
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("severity must be a string, got %T", item)
				}
				r.Severity = s
			case "options":
				opts, ok := item.([]any)
				if !ok {
					return fmt.Errorf("options must be an array, got %T", item)
				}
				r.Options = opts
			default:
				return fmt.Errorf("unknown key %q", key)
			}
		}
		return nil
	}
	return fmt.Errorf("expected a severity string or a table, got %T", v)
}

// Off reports whether the setting disables the rule.
func (r RuleSetting) Off() bool {
	return strings.EqualFold(strings.TrimSpace(r.Severity), "off")
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{Rules: map[string]RuleSetting{}}
}

// CacheEnabled reports the [lint].cache value, defaulting to true.
func (c *Config) CacheEnabled() bool {
	if c.Lint.Cache == nil {
		return true
	}
	return *c.Lint.Cache
}

// Find walks up from startDir looking for vantalint.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest vantalint.toml above startDir.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return Load(path)
}

// Load decodes and validates the file at path. Paths in [lint] and
// [graphql] are resolved relative to the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			// entries of [rules] are checked by RuleSetting.UnmarshalTOML
			if len(k) > 2 && k[0] == "rules" {
				continue
			}
			keys = append(keys, k.String())
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleSetting{}
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.Lint.Include = cfg.resolve(cfg.Lint.Include)
	cfg.Lint.Exclude = cfg.resolve(cfg.Lint.Exclude)
	cfg.GraphQL.Schema = cfg.resolve(cfg.GraphQL.Schema)
	if err := cfg.Validate(nil); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) resolve(paths []string) []string {
	if len(paths) == 0 || c.Root == "" {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Root, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// Validate checks the rule table and [lint] values. known, when non-nil,
// reports whether a rule identifier exists.
func (c *Config) Validate(known func(id string) bool) error {
	if c.Lint.Jobs < 0 {
		return fmt.Errorf("[lint].jobs must not be negative, got %d", c.Lint.Jobs)
	}
	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		setting := c.Rules[id]
		if known != nil && !known(id) {
			return fmt.Errorf("[rules]: unknown rule %q", id)
		}
		if len(setting.Options) > 0 {
			return fmt.Errorf("[rules].%s: rule takes no options, got %d", id, len(setting.Options))
		}
		if setting.Off() || strings.TrimSpace(setting.Severity) == "" {
			continue
		}
		if _, err := diag.ParseSeverity(setting.Severity); err != nil {
			return fmt.Errorf("[rules].%s: %w (want off, info, warn or error)", id, err)
		}
	}
	return nil
}

// Enabled reports whether rule id runs under this config.
func (c *Config) Enabled(id string) bool {
	s, ok := c.Rules[id]
	return !ok || !s.Off()
}

// Severity returns the configured severity of rule id, or def when the rule
// is not configured. Callers check Enabled first.
func (c *Config) Severity(id string, def diag.Severity) diag.Severity {
	s, ok := c.Rules[id]
	if !ok || s.Off() || strings.TrimSpace(s.Severity) == "" {
		return def
	}
	sev, err := diag.ParseSeverity(s.Severity)
	if err != nil {
		return def
	}
	return sev
}
