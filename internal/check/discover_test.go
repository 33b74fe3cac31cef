package check_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/csscolor/internal/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("a { color: red; }"), 0o644))
	}
	return root
}

func TestDiscover(t *testing.T) {
	root := writeTree(t,
		"b.css",
		"a.css",
		"src/nested/c.css",
		"src/page.html",
		"node_modules/pkg/d.css",
		"tokens/colors.tokens.json",
		"notes.txt",
	)

	got, err := check.Discover(root, []string{"**/*.css", "**/*.css", "**/*.tokens.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.css"),
		filepath.Join(root, "b.css"),
		filepath.Join(root, "src", "nested", "c.css"),
		filepath.Join(root, "tokens", "colors.tokens.json"),
	}, got)
}

func TestDiscoverBadPattern(t *testing.T) {
	_, err := check.Discover(t.TempDir(), []string{"[*.css"})
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	root := filepath.Join("work", "site")
	patterns := []string{"**/*.css", "tokens/*.json"}

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "a.css"), true},
		{filepath.Join(root, "deep", "er", "b.css"), true},
		{filepath.Join(root, "tokens", "c.json"), true},
		{filepath.Join(root, "other", "c.json"), false},
		{filepath.Join(root, "node_modules", "x.css"), false},
		{filepath.Join("work", "elsewhere.css"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, check.Matches(root, tt.path, patterns))
		})
	}
}
