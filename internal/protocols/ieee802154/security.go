package ieee802154

import (
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/schema"
)

// SecurityControl is the one-byte security control field of the auxiliary security header
func SecurityControl() *schema.BitField {
	return schema.NewBitField("Security_control", "Protection applied to the frame.").
		AddBitField("Security_level", "The frame protection that is provided.", 3, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("NONE", "Security level 0, no protection.", 0b000).
				AddEnumValueDesc("MIC_32", "Security level 1, 4-byte MIC for authenticity.", 0b001).
				AddEnumValueDesc("MIC_64", "Security level 2, 8-byte MIC for authenticity.", 0b010).
				AddEnumValueDesc("MIC_128", "Security level 3, 16-byte MIC for authenticity.", 0b011).
				AddEnumValueDesc("ENC_MIC_32", "Security level 5, encryption and a 4-byte MIC.", 0b101).
				AddEnumValueDesc("ENC_MIC_64", "Security level 6, encryption and an 8-byte MIC.", 0b110).
				AddEnumValueDesc("ENC_MIC_128", "Security level 7, encryption and a 16-byte MIC.", 0b111)
		}).
		AddBitField("Key_identifier_mode", "Whether the key protecting the frame is derived implicitly or explicitly.", 2, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("implicit", "Key is determined implicitly.", 0b00).
				AddEnumValueDesc("key_index", "Key is determined from the key index field.", 0b01).
				AddEnumValueDesc("Key_source_4", "Key is determined from the 4-byte key source and key index fields.", 0b10).
				AddEnumValueDesc("Key_source_8", "Key is determined from the 8-byte key source and key index fields.", 0b11)
		}).
		AddBitField("Frame_counter_suppression", "Specifies if the frame counter is suppressed from the frame.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("present", "The frame counter is included in the frame.", 0).
				AddEnumValueDesc("suppressed", "The frame counter is suppressed from the frame.", 1)
		}).
		AddBitField("ASN_in_nonce", "Specifies if the absolute slot number is used to generate the nonce.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("frame_counter_nonce", "The frame counter is used to generate the nonce.", 0).
				AddEnumValueDesc("asn_nonce", "The ASN is used to generate the nonce.", 1)
		}).
		AddReserved(1)
}

// FrameCounterPresence inverts Frame_counter_suppression: the counter is
// present when suppression is 0, and positional binding gives value 0
// to the empty fallback
func FrameCounterPresence() *schema.BitField {
	return schema.NewBitField("Frame_counter_presence", "Frame counter carried by an auxiliary security header.").
		AddBitField("counter", "Frame counter field.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("absent", 0).AddEnumValue("present", 1)
		}).
		AddReserved(7)
}

// AuxiliarySecurityHeader returns the header and the groups its optional
// frame counter and key identifier select from
func AuxiliarySecurityHeader() (*schema.Structure, *schema.Alternatives) {
	counter := schema.NewAlternativeOptions("frame_counter_type", schema.NewStructure("frame_counter_none")).
		InsertType(schema.NewSimpleStructure("frame_counter_present", "frame_counter", 4))

	keyID := schema.NewAlternativeOptions("key_identifier", schema.NewStructure("key_id_none")).
		InsertType(schema.NewSimpleStructure("key_id_only", "key_id", 1)).
		InsertType(schema.NewStructure("key_id_short").AddU32Field("key_source_1").AddU8Field("key_id_1")).
		InsertType(schema.NewStructure("key_id_long").AddU64Field("key_source_2").AddU8Field("key_id_2"))

	hdr := schema.NewStructure("Auxiliary_security_header").
		AddBitfield("security_control", "Security_control", 1).
		AddAltField("frame_counter", "frame_counter_type", schema.External("Frame_counter_presence", "counter")).
		AddAltField("key_id", "key_identifier", schema.Sibling("security_control", "Key_identifier_mode"))
	return hdr, schema.NewAlternatives().Insert(counter).Insert(keyID)
}

func securityUnits() []pipeline.Unit {
	return []pipeline.Unit{
		bitfieldUnit("security_control", SecurityControl),
		{
			Name: "auxiliary_security_header",
			Build: func(b *pipeline.Builder) error {
				if _, err := b.AddBitfield(FrameCounterPresence()); err != nil {
					return err
				}
				hdr, alts := AuxiliarySecurityHeader()
				_, err := b.AddStructWithAlts(hdr, alts)
				return err
			},
		},
	}
}
