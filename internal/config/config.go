package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// maxIndent bounds the JSON indent width.
const maxIndent = 16

// ProjectConfig is the content of pkgmeta.yaml.
type ProjectConfig struct {
	// Generation is the metadata generation used by template.
	Generation int `yaml:"generation"`

	// Indent is the JSON indent width used when writing documents.
	Indent int `yaml:"indent"`

	// Defaults are template values applied before command-line overrides.
	// String values are expanded with environment variables.
	Defaults map[string]any `yaml:"defaults"`
}

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = pkgmeta.ConfigFileName

// Default returns the configuration used when no pkgmeta.yaml exists.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Generation: metadata.LatestGeneration,
		Indent:     pkgmeta.DefaultIndent,
		Defaults:   map[string]any{},
	}
}

// Load reads pkgmeta.yaml from sourcePath. Keys missing from the file keep
// the values of Default.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pkgmeta.ErrInvalidConfig, ConfigFileName, err)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = map[string]any{}
	}
	for key, value := range cfg.Defaults {
		cfg.Defaults[key] = expand(value)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the generation and indent ranges.
func (c *ProjectConfig) Validate() error {
	if _, err := metadata.SpecificationFor(c.Generation); err != nil {
		return fmt.Errorf("%w: generation %d is not supported (0-%d)",
			pkgmeta.ErrInvalidConfig, c.Generation, metadata.LatestGeneration)
	}
	if c.Indent < 0 || c.Indent > maxIndent {
		return fmt.Errorf("%w: indent must be between 0 and %d, got %d",
			pkgmeta.ErrInvalidConfig, maxIndent, c.Indent)
	}
	return nil
}

// expand applies os.ExpandEnv to every string inside v.
func expand(v any) any {
	switch t := v.(type) {
	case string:
		return os.ExpandEnv(t)
	case map[string]any:
		for k, inner := range t {
			t[k] = expand(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = expand(inner)
		}
		return t
	default:
		return v
	}
}
