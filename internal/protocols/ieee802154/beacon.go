package ieee802154

import (
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/schema"
)

func Superframe() *schema.BitField {
	return schema.NewBitField("Superframe", "Superframe specification field.").
		AddBitField("Beacon_order", "Transmission interval of the beacon.", 4, numeric).
		AddBitField("Superframe_order", "Transmission duration of the beacon.", 4, numeric).
		AddBitField("Final_CAP_slot", "Final superframe slot utilized by the CAP.", 4, numeric).
		AddBitField("batt_life_ext", "Set if the frames transmitted are required to start before battery life extended periods.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("BLE_not_set", "Battery life extension is not required.", 0).
				AddEnumValueDesc("BLE_set", "Battery life extension is required.", 1)
		}).
		AddReserved(1).
		AddBitField("PAN_Coordinator", "Specifies if the sender is a PAN coordinator.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("not_pan_coordinator", "The transmitting device is not a PAN coordinator.", 0).
				AddEnumValueDesc("pan_coordinator", "The transmitting device is a PAN coordinator.", 1)
		}).
		AddBitField("Association_permit", "Specifies if devices are permitted to join the PAN.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("not_permitted", "Devices are not permitted to associate with the PAN.", 0).
				AddEnumValueDesc("permitted", "Devices are permitted to associate with the PAN.", 1)
		})
}

func GTSSpecification() *schema.BitField {
	return schema.NewBitField("GTS_specification", "Guaranteed timeslot specification field.").
		AddBitField("descriptor_count", "The number of guaranteed timeslot descriptors included.", 3, numeric).
		AddReserved(4).
		AddBitField("permit", "Specifies if the coordinator is accepting guaranteed timeslot requests.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("not_permitted", "The coordinator is not accepting GTS requests.", 0).
				AddEnumValueDesc("permitted", "The coordinator is accepting GTS requests.", 1)
		})
}

func GTSDirections() *schema.BitField {
	return schema.NewBitField("GTS_directions", "Guaranteed timeslot directions field.").
		AddBitField("directions_mask", "Mask identifying the directions of the GTSs in the superframe.", 7, nil).
		AddReserved(1)
}

func GTSDescriptorConfig() *schema.BitField {
	return schema.NewBitField("GTS_descriptor_config", "The starting slot and length of a guaranteed time slot.").
		AddBitField("starting_slot", "The starting slot of the guaranteed time slot.", 4, numeric).
		AddBitField("length", "The number of contiguous superframe slots over which this guaranteed time slot is active.", 4, numeric)
}

func GTSDescriptor() *schema.Structure {
	return schema.NewStructure("gts_descriptor").
		AddU16Field("short_address").
		AddBitfield("config", "GTS_descriptor_config", 1)
}

// GTSPresence says whether GTS directions follow the GTS specification.
// They do when descriptor_count is non-zero, which positional binding
// cannot express on a numeric slot.
func GTSPresence() *schema.BitField {
	return schema.NewBitField("Gts_presence", "GTS directions carried by a beacon.").
		AddBitField("directions", "GTS directions field.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("absent", 0).AddEnumValue("present", 1)
		}).
		AddReserved(7)
}

func GTSInfo() (*schema.Structure, *schema.Alternatives) {
	present := schema.NewStructure("gts_dir_present").AddBitfield("gts_dir", "GTS_directions", 1)
	dir := schema.NewAlternativeOptions("gts_dir", schema.NewStructure("gts_dir_none")).InsertType(present)

	info := schema.NewStructure("gts_info").
		AddBitfield("gts_specification", "GTS_specification", 1).
		AddAltField("gts_directions", "gts_dir", schema.External("Gts_presence", "directions"))
	return info, schema.NewAlternatives().Insert(dir)
}

func PendingAddressSpecification() *schema.BitField {
	return schema.NewBitField("Pending_address_specification", "").
		AddBitField("number_short_addresses", "Number of short addresses pending.", 3, numeric).
		AddReserved(1).
		AddBitField("number_extended_addresses", "Number of extended addresses pending.", 3, numeric).
		AddReserved(1)
}

func numeric(d *schema.Domain) *schema.Domain {
	return d.Numeric()
}

func beaconUnits() []pipeline.Unit {
	return []pipeline.Unit{
		bitfieldUnit("superframe", Superframe),
		bitfieldUnit("gts_specification", GTSSpecification),
		bitfieldUnit("gts_directions", GTSDirections),
		bitfieldUnit("gts_descriptor_config", GTSDescriptorConfig),
		{
			Name: "gts_descriptor",
			Build: func(b *pipeline.Builder) error {
				_, err := b.AddStruct(GTSDescriptor())
				return err
			},
		},
		{
			Name: "gts_info",
			Build: func(b *pipeline.Builder) error {
				if _, err := b.AddBitfield(GTSPresence()); err != nil {
					return err
				}
				info, alts := GTSInfo()
				_, err := b.AddStructWithAlts(info, alts)
				return err
			},
		},
		bitfieldUnit("pending_address_specification", PendingAddressSpecification),
	}
}
