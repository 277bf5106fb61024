package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vantalint/internal/graphql"
	"vantalint/internal/lint"
	"vantalint/internal/tsast"
)

// skippedDirs are never descended into during discovery.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	"build":        {},
}

// LanguageOf classifies path by extension. It returns 0 for files no rule
// can read.
func LanguageOf(path string) lint.Language {
	switch {
	case graphql.IsSchemaFile(path):
		return lint.LangGraphQL
	case tsast.IsSourceFile(path):
		return lint.LangTypeScript
	}
	return 0
}

// Discover expands paths (files or directories) into the sorted list of
// lintable files. Explicit file arguments are kept even when excluded
// directories contain them; exclude prefixes apply to walked files only.
func Discover(paths, exclude []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if LanguageOf(root) == 0 {
				return nil, fmt.Errorf("%s: unsupported file type", root)
			}
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if excluded(path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if _, skip := skippedDirs[d.Name()]; skip && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if LanguageOf(path) != 0 {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func excluded(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, ex := range exclude {
		exAbs, err := filepath.Abs(ex)
		if err != nil {
			exAbs = ex
		}
		if abs == exAbs || strings.HasPrefix(abs, exAbs+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
