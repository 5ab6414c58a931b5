package codegen

import (
	"strings"
	"testing"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/schema"
)

// mhrRegistry compiles a trimmed MAC header: a 16-bit frame control whose
// address mode selects the destination address, plus an externally
// selected PAN identifier
func mhrRegistry(t *testing.T) (*analyzer.Registry, *analyzer.AltLayout, *analyzer.StructLayout) {
	t.Helper()
	reg := analyzer.NewRegistry()

	fc := schema.NewBitField("Frame_control", "").
		AddBitField("Frame_type", "", 3, nil).
		AddReserved(7).
		AddBitField("Dest_addr_mode", "", 2, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("Not_present", 0).AddEnumValue("Address_16bit", 2).AddEnumValue("Address_64bit_extended", 3)
		}).
		AddReserved(4)
	pan := schema.NewBitField("Pan_presence", "").
		AddBitField("dest_pan", "", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("absent", 0).AddEnumValue("present", 1)
		}).
		AddReserved(7)
	for _, b := range []*schema.BitField{fc, pan} {
		if _, err := reg.CompileBitField(b); err != nil {
			t.Fatalf("CompileBitField() error: %v", err)
		}
	}

	alts := schema.NewAlternatives().
		Insert(schema.NewAlternativeOptions("address", schema.NewStructure("addr_none")).
			InsertType(schema.NewSimpleStructure("addr_short", "address", 2)).
			InsertType(schema.NewSimpleStructure("addr_extended", "address", 8))).
		Insert(schema.NewAlternativeOptions("panid", schema.NewStructure("pan_none")).
			InsertType(schema.NewStructure("pan_short").AddU16Field("pan")))
	compiled, err := reg.CompileAlternatives(alts)
	if err != nil {
		t.Fatalf("CompileAlternatives() error: %v", err)
	}

	mhr := schema.NewStructure("mhr").
		AddBitfield("frame_control", "Frame_control", 2).
		AddU8Field("sequence_number").
		AddAltField("dest_pan", "panid", schema.External("Pan_presence", "dest_pan")).
		AddAltField("dest_address", "address", schema.Sibling("frame_control", "Dest_addr_mode")).
		AddU32Field("trailer")
	l, err := reg.CompileStructure(mhr, compiled.Groups...)
	if err != nil {
		t.Fatalf("CompileStructure() error: %v", err)
	}
	return reg, compiled, l
}

func TestGenerateStructure_Fixed(t *testing.T) {
	reg := analyzer.NewRegistry()
	s := schema.NewStructure("gts_descriptor").AddU16Field("short_address").AddBytesField("key", 4).AddU8Field("tag")
	l, err := reg.CompileStructure(s)
	if err != nil {
		t.Fatalf("CompileStructure() error: %v", err)
	}

	decls := NewGenerator(WithEndian("big")).Structure(l)
	code := joinCode(decls)

	wants := []string{
		"// GtsDescriptor encodes in 7 bytes\ntype GtsDescriptor struct {\n\tShortAddress uint16\n\tKey [4]byte\n\tTag uint8\n}",
		"func (p *GtsDescriptor) Size() int {\n\treturn 7\n}",
		"\t// short_address: uint16 at [0, 2)\n\tbuf = binary.BigEndian.AppendUint16(buf, p.ShortAddress)\n",
		"\tbuf = append(buf, p.Key[:]...)\n",
		"\tbuf = append(buf, p.Tag)\n",
		"func (p *GtsDescriptor) AppendFrame(buf []byte) ([]byte, error) {\n\tif p == nil {\n\t\treturn buf, wire.Nil(\"gts_descriptor\")\n\t}\n",
		"func (p *GtsDescriptor) UnmarshalFrame(buf []byte) (int, error) {",
		`return off, wire.Truncated("gts_descriptor.short_address", 2, len(buf)-off)`,
		"p.ShortAddress = binary.BigEndian.Uint16(buf[off:])\n\toff += 2\n",
		"\t// key: [4]byte at [2, 6)\n",
		"copy(p.Key[:], buf[off:off+4])",
		"p.Tag = buf[off]\n\toff++\n",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
	if strings.Contains(code, "var err error") {
		t.Error("fixed structure must not declare err")
	}
	if !hasImport(decls, importBinary) || !hasImport(decls, importWire) {
		t.Error("Missing imports")
	}
}

func TestGenerateStructure_Empty(t *testing.T) {
	l, err := analyzer.NewRegistry().CompileStructure(schema.NewStructure("addr_none"))
	if err != nil {
		t.Fatalf("CompileStructure() error: %v", err)
	}

	decls := NewGenerator().Structure(l)
	code := joinCode(decls)
	for _, want := range []string{
		"type AddrNone struct{}",
		"func (p *AddrNone) Size() int {\n\treturn 0\n}",
		"func (p *AddrNone) AppendFrame(buf []byte) ([]byte, error) {\n\treturn buf, nil\n}",
		"func (p *AddrNone) UnmarshalFrame(buf []byte) (int, error) {\n\treturn 0, nil\n}",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
	if hasImport(decls, importWire) {
		t.Error("empty structure needs no imports")
	}
}

func TestGenerateStructure_Alternatives(t *testing.T) {
	_, _, l := mhrRegistry(t)
	code := joinCode(NewGenerator().Structure(l))

	wants := []string{
		"// Mhr encodes in 7 bytes plus its variants",
		"\tDestPan Panid\n\tDestAddress Address\n\tTrailer uint32\n",
		"type MhrSelectors struct {\n\tDestPan PanPresenceDestPan // Pan_presence.dest_pan\n}",
		"\tn := 7\n\tn += sizePanid(p.DestPan)\n\tn += sizeAddress(p.DestAddress)\n\treturn n\n",

		// external selector mapping
		"func (*Mhr) destPanVariant(sel PanPresenceDestPan) (int, error) {",
		"\tcase PanPresenceDestPanPresent:\n\t\treturn 1, nil\n",
		`return 0, wire.Unresolved("mhr.dest_pan", uint64(sel))`,

		// sibling selector mapping
		"func (p *Mhr) destAddressVariant() (int, error) {\n\tsel, err := p.FrameControl.DestAddrMode()\n",
		"\tcase FrameControlDestAddrModeNotPresent:\n\t\treturn 0, nil\n",
		"\tcase FrameControlDestAddrModeAddress64bitExtended:\n\t\treturn 2, nil\n",

		// encode
		"func (p *Mhr) AppendFrame(buf []byte) ([]byte, error) {\n\tif p == nil {\n\t\treturn buf, wire.Nil(\"mhr\")\n\t}\n\tvar variant int\n\tvar err error\n",
		"\tbuf = p.FrameControl.AppendFrame(buf)\n",
		"\t// dest_pan: Panid selected by external Pan_presence.dest_pan\n\tif buf, err = appendPanid(buf, p.DestPan); err != nil {\n",
		"\tif variant, err = p.destAddressVariant(); err != nil {\n\t\treturn buf, err\n\t}\n",
		"\tif got := addressVariant(p.DestAddress); got != variant {\n\t\treturn buf, wire.Mismatch(\"mhr.dest_address\", variant, got)\n\t}\n",
		"\t// trailer: uint32 at [off, off+4)\n\tbuf = binary.LittleEndian.AppendUint32(buf, p.Trailer)\n",

		// decode
		"func (p *Mhr) UnmarshalFrame(buf []byte, sel MhrSelectors) (int, error) {\n\tvar variant, n int\n\tvar err error\n\toff := 0\n",
		"\t// frame_control: FrameControl at [0, 2)\n",
		"\tp.FrameControl = FrameControl(binary.LittleEndian.Uint16(buf[off:]))\n\toff += 2\n",
		"\tif variant, err = p.destPanVariant(sel.DestPan); err != nil {\n\t\treturn off, err\n\t}\n",
		"\tif p.DestPan, n, err = decodePanid(buf[off:], variant); err != nil {\n\t\treturn off, err\n\t}\n\toff += n\n",
		"\t// dest_address: Address selected by frame_control.Dest_addr_mode\n\tif variant, err = p.destAddressVariant(); err != nil {\n",
		"\tp.Trailer = binary.LittleEndian.Uint32(buf[off:])\n",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}
}

func TestGenerateAlternatives(t *testing.T) {
	_, alts, _ := mhrRegistry(t)
	decls := NewGenerator().Alternatives(alts)
	code := joinCode(decls)

	wants := []string{
		"type AddrShort struct {\n\tAddress [2]byte\n}",
		"type AddrExtended struct {\n\tAddress [8]byte\n}",
		"type PanShort struct {\n\tPan uint16\n}",
		"// Address is one of AddrNone, AddrShort, AddrExtended; AddrNone is the fallback\ntype Address interface {\n\tisAddress()\n\tSize() int\n\tAppendFrame(buf []byte) ([]byte, error)\n}",
		"func (*AddrNone) isAddress() {}",
		"func (*AddrExtended) isAddress() {}",
		"func addressVariant(v Address) int {\n\tswitch v.(type) {\n\tcase *AddrShort:\n\t\treturn 1\n\tcase *AddrExtended:\n\t\treturn 2\n\t}\n\treturn 0\n}",
		"func decodeAddress(buf []byte, variant int) (Address, int, error) {",
		"\tcase 2:\n\t\tv := new(AddrExtended)\n\t\tn, err := v.UnmarshalFrame(buf)\n\t\treturn v, n, err\n",
		`return nil, 0, wire.Unresolved("address", uint64(variant))`,
		"func appendAddress(buf []byte, v Address) ([]byte, error) {\n\tif v == nil {\n\t\tv = new(AddrNone)\n\t}\n\treturn v.AppendFrame(buf)\n}",
		"func sizePanid(v Panid) int {\n\tif v == nil {\n\t\treturn 0\n\t}\n\treturn v.Size()\n}",
		"func panidVariant(v Panid) int {",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}

	// Variant structures come before the groups that reference them
	if strings.Index(code, "type AddrShort struct") > strings.Index(code, "type Address interface") {
		t.Error("variant structures must precede their group")
	}
}
