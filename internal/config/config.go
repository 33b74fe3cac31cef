// Package config loads csscolor settings from .csscolor.{json,jsonc,yaml,yml}.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/csscolor/color"
	"bennypowers.dev/csscolor/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation and decoding failure
var ErrInvalidConfig = errors.New("invalid config")

// Output formats for the parse command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileNames are the config files Discover looks for, in order of preference
var FileNames = []string{
	".csscolor.json",
	".csscolor.jsonc",
	".csscolor.yaml",
	".csscolor.yml",
}

// DefaultPatterns are the globs checked when no patterns are configured.
// Token files follow the usual naming conventions:
//   - tokens.{ext}        (e.g., tokens.json, tokens.yaml)
//   - *.tokens.{ext}      (e.g., colors.tokens.json)
var DefaultPatterns = []string{
	"**/*.css",
	"**/*.{html,htm}",
	"**/*.{js,mjs,jsx,ts,tsx}",
	"**/tokens.{json,jsonc,yaml,yml}",
	"**/*.tokens.{json,jsonc,yaml,yml}",
}

// Config holds the settings shared by every command
type Config struct {
	// Model is the output model for parse: rgba, hsla or hsva
	Model string `json:"model" yaml:"model"`

	// Format is the parse output format: text, json or yaml
	Format string `json:"format" yaml:"format"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// Patterns are doublestar globs, relative to the check root
	Patterns []string `json:"patterns" yaml:"patterns"`

	// Properties are extra CSS properties, beyond the built-in color
	// properties, whose bare identifiers are checked as named colors
	Properties []string `json:"properties" yaml:"properties"`
}

// Default returns the configuration used when no file is found
func Default() Config {
	return Config{
		Model:    string(color.RGBA),
		Format:   FormatText,
		LogLevel: "info",
		Patterns: append([]string(nil), DefaultPatterns...),
	}
}

// Load reads the config file at path. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidConfig, path, ext)
	}

	if len(cfg.Patterns) == 0 {
		cfg.Patterns = append([]string(nil), DefaultPatterns...)
	}

	log.Debug("Loaded config from %s", path)
	return cfg, cfg.Validate()
}

// Discover returns the path of the first config file in dir, or "" when
// there is none. A missing file is not an error.
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// Validate checks every field
func (c Config) Validate() error {
	if _, err := color.ParseModel(c.Model); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q: expected one of text, json, yaml", ErrInvalidConfig, c.Format)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, pattern := range c.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad pattern %q", ErrInvalidConfig, pattern)
		}
	}

	for _, property := range c.Properties {
		if strings.TrimSpace(property) == "" {
			return fmt.Errorf("%w: empty property name", ErrInvalidConfig)
		}
	}

	return nil
}
