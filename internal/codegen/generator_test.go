package codegen

import (
	"strings"
	"testing"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/schema"
)

func joinCode(decls []Decl) string {
	var b strings.Builder
	for _, d := range decls {
		b.WriteString(d.Code)
		b.WriteString("\n")
	}
	return b.String()
}

func hasImport(decls []Decl, path string) bool {
	for _, d := range decls {
		for _, imp := range d.Imports {
			if imp == path {
				return true
			}
		}
	}
	return false
}

func controlLayout(t *testing.T) *analyzer.BitLayout {
	t.Helper()
	b := schema.NewBitField("Control", "").
		AddBitField("kind", "", 2, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("A", 0).AddEnumValue("B", 1).AddEnumValue("C", 2)
		}).
		AddBitField("flag", "", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("off", 0).AddEnumValue("on", 1)
		}).
		AddReserved(5)
	l, err := analyzer.CompileBitField(b)
	if err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}
	return l
}

func TestGenerateBitfield_Control(t *testing.T) {
	decls := NewGenerator().Bitfield(controlLayout(t))
	code := joinCode(decls)

	wants := []string{
		"type Control uint8",
		"type ControlKind uint8",
		"ControlKindB ControlKind = 1",
		"ControlFlagOn ControlFlag = 1",
		`return fmt.Sprintf("ControlKind(%d)", uint64(v))`,
		"// Kind returns bits [0, 2)",
		"func (c Control) Kind() (ControlKind, error) {",
		"v := ControlKind(c & 0x3)",
		"case ControlKindA, ControlKindB, ControlKindC:",
		`return v, wire.Undeclared("Control.kind", uint64(v))`,
		"v := ControlFlag((c >> 2) & 0x1)",
		"type ControlFields struct {",
		"func (c Control) Decode() (ControlFields, error) {",
		"if v.Flag, err = c.Flag(); err != nil {",
		"func (v ControlFields) Encode() (Control, error) {",
		"c |= Control(v.Kind)\n",
		"c |= Control(v.Flag) << 2\n",
		"return append(buf, byte(c))",
		"*c = Control(buf[0])",
		`return 0, wire.Truncated("Control", 1, len(buf))`,
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("Missing %q", want)
		}
	}

	if strings.Contains(code, ">> 0") || strings.Contains(code, "<< 0") {
		t.Error("zero shifts must be omitted")
	}
	if !hasImport(decls, importFmt) || !hasImport(decls, importWire) {
		t.Error("Missing fmt or wire import")
	}
	if hasImport(decls, importBinary) {
		t.Error("1-byte container must not import encoding/binary")
	}
}

func TestGenerateBitfield_NumericAndEndian(t *testing.T) {
	b := schema.NewBitField("Superframe", "Superframe specification").
		AddBitField("Beacon_order", "", 4, nil).
		AddBitField("Superframe_order", "", 4, nil).
		AddBitField("Final_CAP_slot", "", 4, nil).
		AddBitField("Batt_life_ext", "", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("BLE_not_set", "battery life extension off", 0).AddEnumValue("BLE_set", 1)
		}).
		AddReserved(1).
		AddBitField("PAN_Coordinator", "", 1, nil).
		AddBitField("Association_permit", "", 1, nil)
	l, err := analyzer.CompileBitField(b)
	if err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}

	tests := []struct {
		endian string
		wants  []string
	}{
		{"little", []string{
			"return binary.LittleEndian.AppendUint16(buf, uint16(c))",
			"*c = Superframe(binary.LittleEndian.Uint16(buf))",
		}},
		{"big", []string{
			"return binary.BigEndian.AppendUint16(buf, uint16(c))",
			"*c = Superframe(binary.BigEndian.Uint16(buf))",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.endian, func(t *testing.T) {
			decls := NewGenerator(WithEndian(tt.endian)).Bitfield(l)
			code := joinCode(decls)
			wants := append([]string{
				"// Superframe is a uint16 bit container\n//\n// Superframe specification\n",
				"func (c Superframe) BeaconOrder() uint8 {",
				"return uint8(c & 0xf)",
				"return uint8((c >> 4) & 0xf)",
				"func (c Superframe) PANCoordinator() uint8 {",
				"return uint8((c >> 14) & 0x1)",
				"v.FinalCAPSlot = c.FinalCAPSlot()",
				"SuperframeBattLifeExtBLENotSet SuperframeBattLifeExt = 0 // battery life extension off",
				"if v.BeaconOrder > 0xf {",
				`return 0, wire.OutOfRange("Superframe.Beacon_order", uint64(v.BeaconOrder), 4)`,
				"c |= Superframe(v.AssociationPermit) << 15",
			}, tt.wants...)
			for _, want := range wants {
				if !strings.Contains(code, want) {
					t.Errorf("Missing %q", want)
				}
			}
			if !hasImport(decls, importBinary) {
				t.Error("Missing encoding/binary import")
			}
		})
	}
}

func TestGenerateBitfield_NumericOnlyDecode(t *testing.T) {
	b := schema.NewBitField("GTS_descriptor_config", "").
		AddBitField("starting_slot", "", 4, nil).
		AddBitField("length", "", 4, nil)
	l, err := analyzer.CompileBitField(b)
	if err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}

	code := joinCode(NewGenerator().Bitfield(l))
	if strings.Contains(code, "var err error") {
		t.Error("numeric-only Decode must not declare err")
	}
	if strings.Contains(code, "type GTSDescriptorConfigLength") {
		t.Error("numeric slots must not get an enum type")
	}
	if !strings.Contains(code, "v.StartingSlot = c.StartingSlot()") {
		t.Error("Missing numeric decode")
	}
}

func TestGenerateBitfield_LongCaseList(t *testing.T) {
	b := schema.NewBitField("Level", "").AddBitField("level", "", 8, func(d *schema.Domain) *schema.Domain {
		for i, s := range []string{"a", "b", "c", "d", "e"} {
			d.AddEnumValue(s, uint64(i))
		}
		return d
	})
	l, err := analyzer.CompileBitField(b)
	if err != nil {
		t.Fatalf("CompileBitField() error: %v", err)
	}

	code := joinCode(NewGenerator().Bitfield(l))
	if !strings.Contains(code, "case LevelLevelA,\n\t\tLevelLevelB,") {
		t.Error("long case lists must break per symbol")
	}
	if !strings.Contains(code, "v := LevelLevel(c & 0xff)") {
		t.Error("full-width slot extraction missing")
	}
}
