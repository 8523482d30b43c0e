package frontend

import (
	"path/filepath"
	"strings"
)

// NormalizePath returns the absolute, slash-normalized form of a file path.
// Paths that cannot be made absolute are cleaned and normalized in place.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return toSlash(abs)
}

// NormalizePaths normalizes every path, preserving input order and dropping
// duplicates after normalization.
func NormalizePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		n := NormalizePath(p)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, string(filepath.Separator), "/")
}
