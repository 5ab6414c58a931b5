// Package ieee802154 declares the IEEE 802.15.4 MAC frame schemas
// framegen ships as a built-in set
package ieee802154

import (
	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/schema"
)

// Name selects this set with --builtin
const Name = "ieee802154"

// Units returns every built-in unit in dependency order. Containers are
// compiled before the structures that embed them.
func Units() []pipeline.Unit {
	var units []pipeline.Unit
	units = append(units, frameUnits()...)
	units = append(units, beaconUnits()...)
	units = append(units, commandUnits()...)
	units = append(units, securityUnits()...)
	return units
}

func bitfieldUnit(name string, build func() *schema.BitField) pipeline.Unit {
	return pipeline.Unit{
		Name: name,
		Build: func(b *pipeline.Builder) error {
			_, err := b.AddBitfield(build())
			return err
		},
	}
}
