package ieee802154

import (
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/schema"
)

// FrameControl is the 16-bit frame control field opening every MAC frame
func FrameControl() *schema.BitField {
	return schema.NewBitField(
		"Frame_control",
		"This field contains information about the frame type, addressing and control flags.",
	).
		AddBitField("Frame_type", "The type of the frame.", 3, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("Beacon", 0b000).
				AddEnumValue("Data", 0b001).
				AddEnumValue("Acknowledgement", 0b010).
				AddEnumValue("MAC_command", 0b011)
		}).
		AddBitField("Security_enabled", "Specifies if the frame is encrypted using the key stored in the PIB.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("Unencrypted", 0).AddEnumValue("Encrypted", 1)
		}).
		AddBitField("Frame_pending", "Specifies if the sender has additional data to send to the recipient.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("No_frame_pending", 0).AddEnumValue("Frame_pending", 1)
		}).
		AddBitField("Ack_request", "Specifies whether an acknowledgement is required from the recipient device.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("Ack_not_requested", 0).AddEnumValue("Ack_requested", 1)
		}).
		AddBitField("Intra_PAN", "Specifies whether the MAC frame is to be sent within the same PAN.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("Pan_present", 0).AddEnumValue("Inter_pan", 1)
		}).
		AddReserved(3).
		AddBitField("Dest_addr_mode", "Specifies the type of the destination address.", 2, addrModes).
		AddReserved(2).
		AddBitField("Source_addr_mode", "Specifies the type of the source address.", 2, addrModes)
}

// addrModes leaves 0b01 undeclared; it is reserved on the air
func addrModes(d *schema.Domain) *schema.Domain {
	return d.AddEnumValue("Not_present", 0b00).
		AddEnumValue("Address_16bit", 0b10).
		AddEnumValue("Address_64bit_extended", 0b11)
}

// PanPresence carries which PAN identifiers a MAC header holds. The rule
// spans frame type, Intra_PAN and both address modes, so the caller
// derives it and passes it to the decoder.
func PanPresence() *schema.BitField {
	present := func(d *schema.Domain) *schema.Domain {
		return d.AddEnumValue("absent", 0).AddEnumValue("present", 1)
	}
	return schema.NewBitField("Pan_presence", "PAN identifiers carried by a MAC header.").
		AddBitField("dest", "Destination PAN identifier.", 1, present).
		AddBitField("source", "Source PAN identifier.", 1, present).
		AddReserved(6)
}

// Addressing returns the address and PAN identifier groups of the MAC
// header
func Addressing() *schema.Alternatives {
	address := schema.NewAlternativeOptions("address", schema.NewStructure("addr_none")).
		InsertType(schema.NewSimpleStructure("addr_short", "address", 2)).
		InsertType(schema.NewSimpleStructure("addr_extended", "address", 8))
	panid := schema.NewAlternativeOptions("panid", schema.NewStructure("pan_none")).
		InsertType(schema.NewSimpleStructure("pan_short", "pan", 2))
	return schema.NewAlternatives().Insert(address).Insert(panid)
}

// MHR is the MAC header: frame control, sequence number and up to four
// addressing fields
func MHR() *schema.Structure {
	return schema.NewStructure("mhr").
		AddBitfield("frame_control", "Frame_control", 2).
		AddU8Field("sequence_number").
		AddAltField("dest_pan", "panid", schema.External("Pan_presence", "dest")).
		AddAltField("dest_address", "address", schema.Sibling("frame_control", "Dest_addr_mode")).
		AddAltField("source_pan", "panid", schema.External("Pan_presence", "source")).
		AddAltField("source_address", "address", schema.Sibling("frame_control", "Source_addr_mode"))
}

func frameUnits() []pipeline.Unit {
	return []pipeline.Unit{
		{
			Name: "frame_control",
			Build: func(b *pipeline.Builder) error {
				_, err := b.AddBitfield(FrameControl())
				return err
			},
		},
		{
			Name: "mac_frame",
			Build: func(b *pipeline.Builder) error {
				if _, err := b.AddBitfield(PanPresence()); err != nil {
					return err
				}
				_, err := b.AddStructWithAlts(MHR(), Addressing())
				return err
			},
		},
	}
}
