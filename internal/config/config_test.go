package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/csscolor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "rgba", cfg.Model)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.DefaultPatterns, cfg.Patterns)
	assert.Empty(t, cfg.Properties)
	require.NoError(t, cfg.Validate())

	// callers may append to the defaults without touching the package var
	cfg.Patterns[0] = "changed"
	assert.Equal(t, "**/*.css", config.DefaultPatterns[0])
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/full.jsonc")
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Model:      "hsla",
		Format:     config.FormatJSON,
		LogLevel:   "debug",
		Patterns:   []string{"src/**/*.css", "tokens/*.tokens.json"},
		Properties: []string{"accent-color", "--brand"},
	}, cfg)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := config.Load("testdata/partial.yaml")
	require.NoError(t, err)
	assert.Equal(t, "hsva", cfg.Model)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.DefaultPatterns, cfg.Patterns)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		invalid bool
	}{
		{"unknown model", "testdata/bad-model.json", true},
		{"bad pattern", "testdata/bad-pattern.yml", true},
		{"unknown format", "testdata/bad-format.yaml", true},
		{"malformed json", "testdata/broken.json", true},
		{"unsupported extension", "testdata/config.toml", true},
		{"missing file", "testdata/missing.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, config.ErrInvalidConfig), err.Error())
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	path, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".csscolor.yaml"), []byte("model: hsla\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".csscolor.jsonc"), []byte(`{"model": "hsva"}`), 0o644))

	path, err = config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".csscolor.jsonc"), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hsva", cfg.Model)
}

func TestDiscoverSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".csscolor.json"), 0o755))

	path, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	assert.True(t, errors.Is(cfg.Validate(), config.ErrInvalidConfig))

	cfg = config.Default()
	cfg.Properties = []string{" "}
	assert.True(t, errors.Is(cfg.Validate(), config.ErrInvalidConfig))

	cfg = config.Default()
	cfg.Model = ""
	assert.NoError(t, cfg.Validate(), "empty model selects rgba")
}
