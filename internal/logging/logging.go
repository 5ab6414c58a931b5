// Package logging configures the process-wide zerolog logger
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "FRAMEGEN_LOG_LEVEL"
	EnvLogTimestamp = "FRAMEGEN_LOG_TIMESTAMP"
	EnvLogNoColor   = "FRAMEGEN_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config controls the console logger
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Out       io.Writer
}

// Option adjusts Config before environment overrides apply
type Option func(*Config)

// WithLevel sets the level from its name; unknown names are ignored
func WithLevel(raw string) Option {
	return func(cfg *Config) {
		if lvl, ok := ParseLevel(raw); ok {
			cfg.Level = lvl
		}
	}
}

func WithTimestamp(v bool) Option {
	return func(cfg *Config) { cfg.Timestamp = v }
}

func WithNoColor(v bool) Option {
	return func(cfg *Config) { cfg.NoColor = v }
}

func WithOutput(w io.Writer) Option {
	return func(cfg *Config) { cfg.Out = w }
}

var (
	configureOnce sync.Once
	configured    zerolog.Logger
)

// Configure installs the global logger once per process and returns it.
// Later calls return the first logger unchanged.
func Configure(profile Profile, opts ...Option) zerolog.Logger {
	configureOnce.Do(func() {
		configured = New(Resolve(profile, opts...))
		log.Logger = configured
	})
	return configured
}

// Resolve applies profile defaults, then opts, then the FRAMEGEN_LOG_*
// environment
func Resolve(profile Profile, opts ...Option) Config {
	cfg := defaultConfig(profile)
	for _, opt := range opts {
		opt(&cfg)
	}
	applyEnvOverrides(&cfg)
	return cfg
}

// New builds a console logger without touching global state
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(output).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", "framegen").Logger()
}

func defaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.DebugLevel, NoColor: true}
	default:
		return Config{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
