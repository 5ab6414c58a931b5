package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/codegen"
	"github.com/alexhholmes/framegen/internal/schema"
	"github.com/alexhholmes/framegen/internal/sink"
)

// Builder compiles schema declarations into the unit's registry and
// emits their code into the unit's output file
type Builder struct {
	reg    *analyzer.Registry
	gen    *codegen.Generator
	file   *sink.File
	logger zerolog.Logger
}

// Registry returns the unit's view of the run's registry
func (b *Builder) Registry() *analyzer.Registry {
	return b.reg
}

// AddBitfield compiles bf and emits its container type
func (b *Builder) AddBitfield(bf *schema.BitField) (*analyzer.BitLayout, error) {
	l, err := b.reg.CompileBitField(bf)
	if err != nil {
		return nil, err
	}
	b.file.Add(b.gen.Bitfield(l)...)
	b.logger.Debug().Str("bitfield", l.Name).Int("bits", l.Bits).Int("slots", len(l.Slots)).Msg("compiled")
	return l, nil
}

// AddStruct compiles s against the registry and the given groups
func (b *Builder) AddStruct(s *schema.Structure, groups ...*analyzer.GroupLayout) (*analyzer.StructLayout, error) {
	l, err := b.reg.CompileStructure(s, groups...)
	if err != nil {
		return nil, err
	}
	b.file.Add(b.gen.Structure(l)...)
	b.logger.Debug().Str("structure", l.Name).Int("static", l.StaticSize).Bool("fixed", l.Fixed()).Msg("compiled")
	return l, nil
}

// AddAlternatives compiles every group of a together with any variant
// structures not registered yet
func (b *Builder) AddAlternatives(a *schema.Alternatives) (*analyzer.AltLayout, error) {
	alt, err := b.reg.CompileAlternatives(a)
	if err != nil {
		return nil, err
	}
	b.file.Add(b.gen.Alternatives(alt)...)
	for _, g := range alt.Groups {
		b.logger.Debug().Str("group", g.Name).Int("variants", len(g.Variants)).Msg("compiled")
	}
	return alt, nil
}

// AddStructWithAlts compiles a's groups, then s against them
func (b *Builder) AddStructWithAlts(s *schema.Structure, a *schema.Alternatives) (*analyzer.StructLayout, error) {
	alt, err := b.AddAlternatives(a)
	if err != nil {
		return nil, err
	}
	return b.AddStruct(s, alt.Groups...)
}
