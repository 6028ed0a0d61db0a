// Package config loads and validates the configuration of the tsindex
// command from YAML files with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textrun/index"
	"github.com/npillmayer/textrun/wsys"
	"golang.org/x/text/collate"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Index          IndexConfig           `yaml:"index"`
	WritingSystems []WritingSystemConfig `yaml:"writingSystems"`
	DefaultWS      int                   `yaml:"defaultWritingSystem"` // 0: derive from user environment
	Collation      CollationConfig       `yaml:"collation"`
	Tracing        TracingConfig         `yaml:"tracing"`
}

// IndexConfig selects the index mode and the number of files loaded
// concurrently.
type IndexConfig struct {
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`
}

// WritingSystemConfig maps a writing system id to a BCP 47 language tag.
type WritingSystemConfig struct {
	ID  int    `yaml:"id"`
	Tag string `yaml:"tag"`
}

// CollationConfig holds collation options applied to all writing systems.
type CollationConfig struct {
	IgnoreCase bool `yaml:"ignoreCase"`
	Loose      bool `yaml:"loose"`
	Numeric    bool `yaml:"numeric"`
}

// Options returns the collate options for c.
func (c CollationConfig) Options() []collate.Option {
	var opts []collate.Option
	if c.IgnoreCase {
		opts = append(opts, collate.IgnoreCase)
	}
	if c.Loose {
		opts = append(opts, collate.Loose)
	}
	if c.Numeric {
		opts = append(opts, collate.Numeric)
	}
	return opts
}

// TracingConfig holds the trace level, one of "debug", "info" or "error".
type TracingConfig struct {
	Level string `yaml:"level"`
}

// TraceLevel converts the configured level, ignoring case.
func (t TracingConfig) TraceLevel() tracing.TraceLevel {
	l := strings.ToLower(t.Level)
	if l == "" {
		return tracing.LevelError
	}
	return tracing.TraceLevelFromString(strings.ToUpper(l[:1]) + l[1:])
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values are set to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration for English text and an exact index.
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			Mode:    "exact",
			Workers: 4,
		},
		WritingSystems: []WritingSystemConfig{
			{ID: 1, Tag: "en"},
		},
		Tracing: TracingConfig{
			Level: "error",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TEXTRUN_TRACE"); v != "" {
		cfg.Tracing.Level = v
	}
	if v := os.Getenv("TEXTRUN_INDEX_MODE"); v != "" {
		cfg.Index.Mode = v
	}
	if v := os.Getenv("TEXTRUN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.Workers = n
		}
	}
}

// Validate checks c for consistency.
func (c *Config) Validate() error {
	var errs []error
	if _, err := index.ParseMode(c.Index.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Index.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, is %d", c.Index.Workers))
	}
	if len(c.WritingSystems) == 0 {
		errs = append(errs, errors.New("no writing systems configured"))
	}
	seen := make(map[int]bool)
	for _, ws := range c.WritingSystems {
		if ws.ID <= 0 {
			errs = append(errs, fmt.Errorf("writing system id must be positive, is %d", ws.ID))
		}
		if seen[ws.ID] {
			errs = append(errs, fmt.Errorf("duplicate writing system id %d", ws.ID))
		}
		seen[ws.ID] = true
	}
	if c.DefaultWS != 0 && !seen[c.DefaultWS] {
		errs = append(errs, fmt.Errorf("default writing system %d not configured", c.DefaultWS))
	}
	switch strings.ToLower(c.Tracing.Level) {
	case "debug", "info", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown trace level %q", c.Tracing.Level))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Registry creates a writing system registry from the configured writing
// systems. If no default writing system is configured, the default is
// derived from the locale of the user environment, falling back to the
// first writing system configured.
func (c *Config) Registry() (*wsys.Registry, error) {
	reg := wsys.NewRegistry()
	for _, ws := range c.WritingSystems {
		if _, err := reg.Register(ws.ID, ws.Tag); err != nil {
			return nil, err
		}
	}
	if c.DefaultWS != 0 {
		return reg, reg.SetDefault(c.DefaultWS)
	}
	if _, ok := reg.DefaultFromEnvironment(); !ok && len(c.WritingSystems) > 0 {
		return reg, reg.SetDefault(c.WritingSystems[0].ID)
	}
	return reg, nil
}
