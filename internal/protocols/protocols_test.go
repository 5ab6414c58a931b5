package protocols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/framegen/internal/protocols/ieee802154"
)

func TestUnits(t *testing.T) {
	units, err := Units(" IEEE802154 ")
	require.NoError(t, err)
	assert.Len(t, units, len(ieee802154.Units()))
	assert.Equal(t, "frame_control", units[0].Name)
}

func TestUnitsUnknown(t *testing.T) {
	_, err := Units("ieee802154", "zigbee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown builtin "zigbee" (have ieee802154)`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"ieee802154"}, Names())
}
