// Package config loads and saves the engine's YAML configuration: the
// default saturation depth, logging settings, and the default policy and
// context search paths the CLI falls back to when a flag is omitted.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"prudens/internal/logging"
)

// Config holds every setting the CLI and engine read at startup.
type Config struct {
	// MaxDepth bounds saturation rounds when a command doesn't pass
	// --max-depth explicitly. Zero means unbounded.
	MaxDepth int `yaml:"max_depth"`

	// DefaultPolicyPath and DefaultContextPath are used when a command is
	// invoked without --policy/--context flags.
	DefaultPolicyPath  string `yaml:"default_policy_path"`
	DefaultContextPath string `yaml:"default_context_path"`

	Logging logging.Settings `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:           1000,
		DefaultPolicyPath:  "policy.prudens",
		DefaultContextPath: "context.prudens",
		Logging: logging.Settings{
			DebugMode: false,
			Level:     "info",
			Categories: map[string]bool{
				string(logging.CategoryParse):     true,
				string(logging.CategoryKernel):     true,
				string(logging.CategoryHasse):      false,
				string(logging.CategoryPriority):   true,
				string(logging.CategorySaturation): true,
				string(logging.CategoryCLI):        true,
			},
		},
	}
}

// Load reads path as YAML over top of DefaultConfig, then applies
// environment overrides. A missing file is not an error: it yields
// defaults, matching how the CLI behaves with no config present at all.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes c as YAML to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("PRUDENS_POLICY"); path != "" {
		c.DefaultPolicyPath = path
	}
	if path := os.Getenv("PRUDENS_CONTEXT"); path != "" {
		c.DefaultContextPath = path
	}
	if level := os.Getenv("PRUDENS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if os.Getenv("PRUDENS_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}
