// Package pipeline drives schema units through compile, emit and write
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/codegen"
	"github.com/alexhholmes/framegen/internal/sink"
)

// Unit is one generated output file and the schema calls that fill it
type Unit struct {
	Name    string
	Path    string // relative to Pipeline.OutDir; Name + "_gen.go" when empty
	Package string // Pipeline.Package when empty
	Build   func(*Builder) error
}

func (u Unit) path() string {
	if u.Path != "" {
		return u.Path
	}
	return strings.ToLower(u.Name) + "_gen.go"
}

// Pipeline builds units against one shared registry. Each unit compiles
// into a fork of it; only units that build and render are merged back, so
// later units cannot reference a failed unit's declarations.
type Pipeline struct {
	OutDir  string
	Package string
	Endian  string
	Logger  zerolog.Logger
}

// Run builds every unit and writes the ones that succeed. The returned
// error joins every unit failure, each prefixed with its unit name.
func (p *Pipeline) Run(units []Unit) error {
	_, err := p.run(units, true)
	return err
}

// Check builds every unit without writing
func (p *Pipeline) Check(units []Unit) error {
	_, err := p.run(units, false)
	return err
}

// Compile builds every unit without writing and returns the registry
// holding everything that compiled
func (p *Pipeline) Compile(units []Unit) (*analyzer.Registry, error) {
	return p.run(units, false)
}

func (p *Pipeline) run(units []Unit, write bool) (*analyzer.Registry, error) {
	reg := analyzer.NewRegistry()
	gen := codegen.NewGenerator(codegen.WithEndian(p.Endian))

	var errs []error
	seen := make(map[string]string)
	for _, u := range units {
		logger := p.Logger.With().Str("unit", u.Name).Logger()

		path := filepath.Join(p.OutDir, u.path())
		if prev, ok := seen[path]; ok {
			err := fmt.Errorf("%s: output %s already written by unit %s", u.Name, path, prev)
			logger.Error().Err(err).Msg("unit failed")
			errs = append(errs, err)
			continue
		}
		seen[path] = u.Name

		pkg := u.Package
		if pkg == "" {
			pkg = p.Package
		}
		unitReg := reg.Fork(pkg)
		file, err := p.build(u, unitReg, gen, logger)
		if err == nil {
			if write {
				err = file.WriteFile(path)
			} else {
				_, err = file.Render()
			}
		}
		if err != nil {
			logger.Error().Err(err).Msg("unit failed")
			errs = append(errs, fmt.Errorf("%s: %w", u.Name, err))
			continue
		}
		reg = unitReg

		if write {
			logger.Info().Str("path", path).Int("decls", file.Len()).Msg("file written")
		} else {
			logger.Debug().Int("decls", file.Len()).Msg("unit checked")
		}
	}
	return reg, errors.Join(errs...)
}

func (p *Pipeline) build(u Unit, reg *analyzer.Registry, gen *codegen.Generator, logger zerolog.Logger) (*sink.File, error) {
	if u.Build == nil {
		return nil, fmt.Errorf("unit has no build function")
	}
	b := &Builder{
		reg:    reg,
		gen:    gen,
		file:   sink.NewFile(reg.Package()),
		logger: logger,
	}
	if err := u.Build(b); err != nil {
		return nil, err
	}
	return b.file, nil
}
