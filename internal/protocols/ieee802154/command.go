package ieee802154

import (
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/schema"
)

// MACCommand identifies the payload of a MAC command frame. Values
// 0x0c-0x12, 0x1d-0x1f and past 0x28 are reserved.
func MACCommand() *schema.BitField {
	return schema.NewBitField("MAC command", "The MAC command identifier.").
		AddBitField("id", "The MAC command identifier.", 8, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("assoc_request", "Association request command", 0x01).
				AddEnumValueDesc("assoc_response", "Association response command", 0x02).
				AddEnumValueDesc("disassoc_notify", "Disassociation notification command", 0x03).
				AddEnumValueDesc("data_request", "Data request command", 0x04).
				AddEnumValueDesc("pan_id_conflict", "PAN ID conflict notification command", 0x05).
				AddEnumValueDesc("orphan_notify", "Orphan notification command", 0x06).
				AddEnumValueDesc("beacon_request", "Beacon request command", 0x07).
				AddEnumValueDesc("coordinator_realign", "Coordinator realignment command", 0x08).
				AddEnumValueDesc("gts_request", "GTS request command", 0x09).
				AddEnumValueDesc("trle_mgmt_request", "TRLE management request command", 0x0a).
				AddEnumValueDesc("trle_mgmt_response", "TRLE management response command", 0x0b).
				AddEnumValueDesc("dsme_association_request", "DSME association request command", 0x13).
				AddEnumValueDesc("dsme_association_response", "DSME association response command", 0x14).
				AddEnumValueDesc("dsme_gts_request", "DSME GTS request command", 0x15).
				AddEnumValueDesc("dsme_gts_response", "DSME GTS response command", 0x16).
				AddEnumValueDesc("dsme_gts_notify", "DSME GTS notify command", 0x17).
				AddEnumValueDesc("dsme_info_request", "DSME information request command", 0x18).
				AddEnumValueDesc("dsme_info_response", "DSME information response command", 0x19).
				AddEnumValueDesc("dsme_beacon_alloc_notify", "DSME beacon allocation notification command", 0x1a).
				AddEnumValueDesc("dsme_beacon_collision_notify", "DSME beacon collision notification command", 0x1b).
				AddEnumValueDesc("dsme_link_report", "DSME link report command", 0x1c).
				AddEnumValueDesc("rit_data_request", "RIT data request command", 0x20).
				AddEnumValueDesc("dbs_request", "DBS request command", 0x21).
				AddEnumValueDesc("dbs_response", "DBS response command", 0x22).
				AddEnumValueDesc("rit_data_response", "RIT data response command", 0x23).
				AddEnumValueDesc("vendor_specific", "Vendor specific command", 0x24).
				AddEnumValueDesc("srm_request", "SRM request command", 0x25).
				AddEnumValueDesc("srm_response", "SRM response command", 0x26).
				AddEnumValueDesc("srm_report", "SRM report command", 0x27).
				AddEnumValueDesc("srm_info", "SRM information command", 0x28)
		})
}

func AssocRequestCapability() *schema.BitField {
	return schema.NewBitField("Assoc_request_capability", "Association request capabilities.").
		AddReserved(1).
		AddBitField("device_type", "Set if the device is an FFD, otherwise it is an RFD.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("ffd_device", 1).AddEnumValue("rfd_device", 0)
		}).
		AddBitField("power_source", "Set if the device is mains powered, otherwise it runs on battery.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("mains_powered", "The device is connected to alternating current mains.", 1).
				AddEnumValueDesc("battery_powered", "The device is powered by a battery pack.", 0)
		}).
		AddBitField("receiver_on_when_idle", "The device does not disable its receiver to conserve power during idle periods.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("receives_on_idle", "The device does not disable its receiver during idle periods.", 1).
				AddEnumValueDesc("disables_on_idle", "The device disables its receiver to conserve power during idle periods.", 0)
		}).
		AddBitField("association_type", "Set if the device requests fast association.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("fast_association", 1).AddEnumValue("slow_association", 0)
		}).
		AddReserved(1).
		AddBitField("security_capability", "Set if the device can send and receive cryptographically protected MAC frames.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValue("secure", 1).AddEnumValue("unsecure", 0)
		}).
		AddBitField("allocate_address", "Set if the coordinator should allocate a short address during association.", 1, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("request_address", "The device wishes the coordinator to allocate a short address.", 1).
				AddEnumValueDesc("no_request", "The device does not request a short address.", 0)
		})
}

func AssocStatus() *schema.BitField {
	return schema.NewBitField("Assoc_status", "Association status.").
		AddBitField("association_status", "The association status after a request.", 8, func(d *schema.Domain) *schema.Domain {
			return d.AddEnumValueDesc("assoc_success", "Association successful.", 0x00).
				AddEnumValueDesc("pan_at_capacity", "The PAN is at capacity.", 0x01).
				AddEnumValueDesc("pan_access_denied", "PAN access denied.", 0x02).
				AddEnumValueDesc("hopping_duplication", "Hopping sequence offset duplication.", 0x03).
				AddEnumValueDesc("fast_assoc_success", "Fast association successful.", 0x80)
		})
}

func AssocRequest() *schema.Structure {
	return schema.NewStructure("assoc_request").
		AddBitfield("capability", "Assoc_request_capability", 1)
}

func AssocResponse() *schema.Structure {
	return schema.NewStructure("assoc_response").
		AddU16Field("short_address").
		AddBitfield("status", "Assoc_status", 1)
}

func commandUnits() []pipeline.Unit {
	return []pipeline.Unit{
		bitfieldUnit("command_id", MACCommand),
		bitfieldUnit("assoc_request_capability", AssocRequestCapability),
		bitfieldUnit("assoc_status", AssocStatus),
		{
			Name: "commands",
			Build: func(b *pipeline.Builder) error {
				if _, err := b.AddStruct(AssocRequest()); err != nil {
					return err
				}
				_, err := b.AddStruct(AssocResponse())
				return err
			},
		},
	}
}
