package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/alexhholmes/framegen/internal/config"
	"github.com/alexhholmes/framegen/internal/logging"
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/protocols"
)

// runOptions are the flags shared by every command that builds units.
// Flags given on the command line override the config file.
type runOptions struct {
	configPath string
	outDir     string
	pkg        string
	endian     string
	builtin    []string
	logLevel   string

	fs *pflag.FlagSet
}

func (o *runOptions) flags(flags *pflag.FlagSet) {
	o.fs = flags
	flags.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	flags.StringVarP(&o.outDir, "out", "o", config.DefaultOutDir, "output directory")
	flags.StringVarP(&o.pkg, "package", "p", config.DefaultPackage, "package of generated files without their own")
	flags.StringVar(&o.endian, "endian", config.DefaultEndian, "byte order of multi-byte fields (little or big)")
	flags.StringSliceVar(&o.builtin, "builtin", nil, fmt.Sprintf("builtin protocol to generate (%s)", strings.Join(protocols.Names(), ", ")))
	flags.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
}

func (o *runOptions) changed(name string) bool {
	return o.fs != nil && o.fs.Changed(name)
}

// resolve loads the config file, if any, then applies flag overrides and
// appends the positional schema paths
func (o *runOptions) resolve(argv []string) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if o.changed("out") || o.configPath == "" {
		cfg.OutDir = o.outDir
	}
	if o.changed("package") || o.configPath == "" {
		cfg.Package = o.pkg
	}
	if o.changed("endian") || o.configPath == "" {
		cfg.Endian = o.endian
	}
	if o.changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	cfg.Builtin = append(cfg.Builtin, o.builtin...)
	cfg.Schemas = append(cfg.Schemas, argv...)

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("options invalid: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, s *stdio) zerolog.Logger {
	opts := []logging.Option{
		logging.WithLevel(cfg.Log.Level),
		logging.WithNoColor(cfg.Log.NoColor),
		logging.WithOutput(s.errOut()),
	}
	if cfg.Log.Timestamp != nil {
		opts = append(opts, logging.WithTimestamp(*cfg.Log.Timestamp))
	}
	return logging.New(logging.Resolve(logging.ProfileRuntime, opts...))
}

func newPipeline(cfg config.Config, logger zerolog.Logger) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		OutDir:  cfg.OutDir,
		Package: cfg.Package,
		Endian:  cfg.Endian,
		Logger:  logger,
	}
}

var errNoUnits = errors.New("nothing to generate: pass SCHEMA.yaml files or --builtin")

// collectUnits gathers builtin units first, then schema files in order
func collectUnits(cfg config.Config) ([]pipeline.Unit, error) {
	var (
		units []pipeline.Unit
		errs  []error
	)
	if len(cfg.Builtin) > 0 {
		builtin, err := protocols.Units(cfg.Builtin...)
		if err != nil {
			errs = append(errs, err)
		}
		units = append(units, builtin...)
	}
	if len(cfg.Schemas) > 0 {
		loaded, err := pipeline.LoadUnits(cfg.Schemas)
		if err != nil {
			errs = append(errs, err)
		}
		units = append(units, loaded...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, errNoUnits
	}
	return units, nil
}
