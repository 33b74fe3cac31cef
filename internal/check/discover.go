package check

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/csscolor/internal/collections"
	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never searched
var skippedDirs = []string{"node_modules", ".git"}

// Discover expands patterns against root and returns the matching files,
// sorted and de-duplicated, as paths joined onto root
func Discover(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	found := collections.NewSet[string]()

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if skipped(match) {
				continue
			}
			found.Add(filepath.Join(root, filepath.FromSlash(match)))
		}
	}

	return found.Sorted(), nil
}

// Matches reports whether path, relative to root, matches any pattern
func Matches(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	// doublestar.Match expects forward slashes
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") || skipped(rel) {
		return false
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func skipped(rel string) bool {
	return slices.ContainsFunc(strings.Split(rel, "/"), func(segment string) bool {
		return slices.Contains(skippedDirs, segment)
	})
}
