package testrunner

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover matches pattern under dir and returns the matching files and the
// package directories that hold them, as "./"-prefixed paths for go test.
// Files are never opened.
func Discover(dir, pattern string) (files, packages []string, err error) {
	if dir == "" {
		dir = "."
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	seen := make(map[string]bool)
	for _, m := range matches {
		rel, err := filepath.Rel(dir, m)
		if err != nil {
			return nil, nil, fmt.Errorf("relative path of %q: %w", m, err)
		}
		files = append(files, rel)

		pkg := "./" + filepath.ToSlash(filepath.Dir(rel))
		if pkg == "./." {
			pkg = "."
		}
		if !seen[pkg] {
			seen[pkg] = true
			packages = append(packages, pkg)
		}
	}

	sort.Strings(files)
	sort.Strings(packages)
	return files, packages, nil
}
