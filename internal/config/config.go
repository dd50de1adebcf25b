package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DefaultGeneratorLabel is printed in the "DO NOT EDIT" banner of generated headers.
// It names the script the checked-in headers were first produced by, keeping
// the banner of regenerated headers unchanged.
const DefaultGeneratorLabel = "//src/graphics/lib/magma/include/virtio/virtio_magma.h.gen.py"

// Config represents the optional magmagen configuration file.
type Config struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	// Gen contains settings for header generation.
	Gen GenConfig `yaml:"gen" toml:"gen"`
	// Types maps additional abstract type names to their wire width in bytes.
	Types map[string]int `yaml:"types,omitempty" toml:"types,omitempty"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level" toml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path" toml:"path"`
}

// GenConfig controls the text of the generated header.
type GenConfig struct {
	// GeneratorLabel is the generator path quoted in the autogeneration warning.
	GeneratorLabel string `yaml:"generator_label" toml:"generator_label"`
}

// reservedTypes are resolved by built-in width rules and may not be redefined.
var reservedTypes = map[string]bool{
	"uint32_t":       true,
	"int32_t":        true,
	"magma_bool_t":   true,
	"magma_handle_t": true,
}

// validWidths are the byte widths every dialect has a wire type for.
var validWidths = map[int]bool{1: true, 2: true, 4: true, 8: true}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads a yaml or toml configuration file, applies defaults and validates it.
// The format is chosen by extension; .toml selects toml, anything else yaml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Marshal encodes the configuration as "yaml" or "toml".
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s (allowed: yaml, toml)", format)
	}
}

// Validate checks the configuration for errors, such as unknown log levels
// or type widths no dialect can represent.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: An error if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	for _, name := range sortedKeys(config.Types) {
		if name == "" {
			return fmt.Errorf("types: empty type name")
		}
		if reservedTypes[name] || strings.Contains(name, "*") {
			return fmt.Errorf("types: '%s' is resolved by a built-in rule and cannot be redefined", name)
		}
		if w := config.Types[name]; !validWidths[w] {
			return fmt.Errorf("types: '%s' has width %d (allowed: 1, 2, 4, 8)", name, w)
		}
	}

	return nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
//
// Parameters:
//   - config: The Config object to modify.
func ApplyDefaults(config *Config) {
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Gen.GeneratorLabel == "" {
		config.Gen.GeneratorLabel = DefaultGeneratorLabel
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
