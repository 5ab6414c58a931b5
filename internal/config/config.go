// Package config loads framegen run configuration from TOML
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultOutDir  = "."
	DefaultPackage = "frames"
	DefaultEndian  = "little"
)

// Config is the framegen.toml file after defaults are applied
type Config struct {
	OutDir  string    `toml:"out_dir"`
	Package string    `toml:"package"`
	Endian  string    `toml:"endian"`
	Builtin []string  `toml:"builtin"`
	Schemas []string  `toml:"schemas"`
	Log     LogConfig `toml:"log"`
}

// LogConfig is the [log] table
type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp *bool  `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads path, fills unset keys with defaults and validates the result
func Load(path string) (Config, error) {
	var cfg Config
	if err := loadToml(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	md, err := toml.Decode(string(data), out)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.Endian == "" {
		c.Endian = DefaultEndian
	}
}

// Validate checks a fully defaulted configuration
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.OutDir) == "" {
		return fmt.Errorf("out_dir is required")
	}
	if !validPackage(cfg.Package) {
		return fmt.Errorf("package %q is not a Go package name", cfg.Package)
	}
	switch strings.ToLower(cfg.Endian) {
	case "little", "le", "big", "be":
	default:
		return fmt.Errorf("endian %q must be little or big", cfg.Endian)
	}
	for i, name := range cfg.Builtin {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("builtin[%d] is empty", i)
		}
	}
	for i, path := range cfg.Schemas {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("schemas[%d] is empty", i)
		}
	}
	if cfg.Log.Level != "" {
		switch strings.ToLower(cfg.Log.Level) {
		case "trace", "debug", "info", "warn", "warning", "error", "disabled", "disable", "off", "none":
		default:
			return fmt.Errorf("log level %q is unknown", cfg.Log.Level)
		}
	}
	return nil
}

func validPackage(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
