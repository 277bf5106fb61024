package graphql

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"vantalint/internal/lint"
)

const schemaHint = "supply a schema with --schema or [graphql].schema in vantalint.toml"

// RequireSchema returns the resolved schema of the pass. Rules that need type
// information call it first; a missing schema is a precondition failure that
// aborts the rule for the current file.
func RequireSchema(p *Pass) (*ast.Schema, error) {
	if p.Schema == nil {
		return nil, &lint.PreconditionError{Rule: p.Meta.ID, Err: lint.ErrNoSchema, Hint: schemaHint}
	}
	return p.Schema, nil
}

// SchemaExtensions are the file suffixes treated as SDL.
var SchemaExtensions = []string{".graphql", ".graphqls", ".gql"}

// IsSchemaFile reports whether path has an SDL suffix.
func IsSchemaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SchemaExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// SchemaFiles expands paths (files or directories) into a sorted list of SDL files.
func SchemaFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("schema path %s: %w", p, err)
		}
		if !info.IsDir() {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				out = append(out, p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !IsSchemaFile(path) {
				return nil
			}
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk schema dir %s: %w", p, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadSchema reads and validates the SDL files under paths into one schema.
func LoadSchema(paths []string) (*ast.Schema, error) {
	files, err := SchemaFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files found in %s", strings.Join(paths, ", "))
	}
	sources := make([]*ast.Source, 0, len(files))
	for _, f := range files {
		// #nosec G304 -- schema paths come from config or flags
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", f, err)
		}
		sources = append(sources, &ast.Source{Name: f, Input: string(content)})
	}
	return LoadSchemaSources(sources...)
}

// LoadSchemaSources validates in-memory SDL sources into one schema.
func LoadSchemaSources(sources ...*ast.Source) (*ast.Schema, error) {
	schema, gqlErr := gqlparser.LoadSchema(sources...)
	if gqlErr != nil {
		return nil, fmt.Errorf("load schema: %w", gqlErr)
	}
	return schema, nil
}

// builtinScalars are the scalars every schema has.
var builtinScalars = map[string]struct{}{
	"Int": {}, "Float": {}, "String": {}, "Boolean": {}, "ID": {},
}

// IsBuiltinScalar reports whether name is one of the built-in GraphQL scalars.
func IsBuiltinScalar(name string) bool {
	_, ok := builtinScalars[name]
	return ok
}
