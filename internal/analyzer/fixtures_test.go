package analyzer

import (
	"testing"

	"github.com/alexhholmes/framegen/internal/schema"
)

// controlSchema: kind(2) {A, B, C}, flag(1) {off, on}, 5 reserved bits
func controlSchema() *schema.BitField {
	return schema.NewBitField("Control", "").
		AddBitField("kind", "", 2, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("A", 0).AddEnumValue("B", 1).AddEnumValue("C", 2)
		}).
		AddBitField("flag", "", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("off", 0).AddEnumValue("on", 1)
		}).
		AddReserved(5)
}

func addrFlagsSchema() *schema.BitField {
	return schema.NewBitField("Addr_flags", "").
		AddBitField("addr_mode", "", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("absent", 0).AddEnumValue("present", 1)
		}).
		AddReserved(7)
}

func addressGroup() *schema.AlternativeOptions {
	return schema.NewAlternativeOptions("address", schema.NewStructure("addr_none")).
		InsertType(schema.NewSimpleStructure("addr_short", "address", 2))
}

// compileHdr builds hdr = seq(1) + addr selected externally by
// Addr_flags.addr_mode
func compileHdr(t *testing.T) (*Registry, *StructLayout) {
	t.Helper()
	reg := NewRegistry()
	if _, err := reg.CompileBitField(addrFlagsSchema()); err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}
	alts, err := reg.CompileAlternatives(schema.NewAlternatives().Insert(addressGroup()))
	if err != nil {
		t.Fatalf("CompileAlternatives() error: %v", err)
	}
	hdr := schema.NewStructure("hdr").
		AddU8Field("seq").
		AddAltField("addr", "address", schema.External("Addr_flags", "addr_mode"))
	l, err := reg.CompileStructure(hdr, alts.Groups...)
	if err != nil {
		t.Fatalf("CompileStructure() error: %v", err)
	}
	return reg, l
}

// modeSchema: a 2-bit selector with three symbols, bound to a group of
// fallback (0 bytes), short (2 bytes) and long (8 bytes)
func modeSchema() *schema.BitField {
	return schema.NewBitField("Mode", "").
		AddBitField("addr", "", 2, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("none", 0).AddEnumValue("short", 1).AddEnumValue("long", 3)
		}).
		AddReserved(6)
}

func compileSized(t *testing.T) *StructLayout {
	t.Helper()
	reg := NewRegistry()
	if _, err := reg.CompileBitField(modeSchema()); err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}
	g := schema.NewAlternativeOptions("target", schema.NewStructure("target_none")).
		InsertType(schema.NewSimpleStructure("target_short", "addr", 2)).
		InsertType(schema.NewStructure("target_long").AddU64Field("addr"))
	alts, err := reg.CompileAlternatives(schema.NewAlternatives().Insert(g))
	if err != nil {
		t.Fatalf("CompileAlternatives() error: %v", err)
	}
	s := schema.NewStructure("frame").
		AddBitfield("mode", "Mode", 1).
		AddU16Field("seq").
		AddAltField("target", "target", schema.Sibling("mode", "addr"))
	l, err := reg.CompileStructure(s, alts.Groups...)
	if err != nil {
		t.Fatalf("CompileStructure() error: %v", err)
	}
	return l
}
