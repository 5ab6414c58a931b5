package analyzer

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/framegen/internal/schema"
	"github.com/alexhholmes/framegen/wire"
)

func TestBitLayout_ScenarioA(t *testing.T) {
	l, err := CompileBitField(controlSchema())
	require.NoError(t, err)

	raw, err := l.Encode(map[string]uint64{"kind": 1, "flag": 1})
	require.NoError(t, err)
	// kind=1 in bits [0, 2), flag=1 in bit 2
	assert.Equal(t, uint64(0b00000101), raw)

	syms, err := l.Symbols(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"kind": "B", "flag": "on"}, syms)
}

func TestBitLayout_RoundTripAllValues(t *testing.T) {
	l, err := CompileBitField(controlSchema())
	require.NoError(t, err)
	kind, _ := l.Slot("kind")
	flag, _ := l.Slot("flag")

	for _, k := range kind.Symbols {
		for _, f := range flag.Symbols {
			values := map[string]uint64{"kind": k.Value, "flag": f.Value}
			raw, err := l.Encode(values)
			require.NoError(t, err)

			got, err := l.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, values, got)
		}
	}
}

func TestBitLayout_ReservedBitsIgnoredOnDecodeClearedOnEncode(t *testing.T) {
	l, err := CompileBitField(controlSchema())
	require.NoError(t, err)

	// 0xF8 sets every reserved bit; decode ignores them
	got, err := l.Decode(0xf8 | 0b110)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"kind": 2, "flag": 1}, got)

	raw, err := l.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b110), raw)
}

func TestBitLayout_Errors(t *testing.T) {
	l, err := CompileBitField(controlSchema())
	require.NoError(t, err)

	_, err = l.Decode(0b11)
	assert.ErrorIs(t, err, wire.ErrUndeclaredDiscriminant)

	_, err = l.Encode(map[string]uint64{"kind": 3, "flag": 0})
	assert.ErrorIs(t, err, wire.ErrUndeclaredDiscriminant)

	_, err = l.Encode(map[string]uint64{"kind": 0})
	assert.ErrorContains(t, err, "Control.flag: no value")

	_, err = l.Encode(map[string]uint64{"kind": 0, "flag": 0, "extra": 1})
	assert.ErrorContains(t, err, `no slot "extra"`)

	numeric, err := CompileBitField(schema.NewBitField("N", "").AddBitField("n", "", 4, nil).AddReserved(4))
	require.NoError(t, err)
	_, err = numeric.Encode(map[string]uint64{"n": 16})
	assert.ErrorIs(t, err, wire.ErrValueOutOfRange)

	// Numeric slots pass every raw value through
	got, err := numeric.Decode(0xff)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xf), got["n"])
}

func TestStructLayout_ScenarioB(t *testing.T) {
	_, hdr := compileHdr(t)
	order := binary.LittleEndian

	absent := Record{"seq": uint64(7), "addr": Variant{Index: 0}}
	buf, err := hdr.Encode(nil, order, absent)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07}, buf)
	assert.Equal(t, 1, hdr.Size(absent))

	short := Record{"seq": uint64(7), "addr": Variant{Index: 1, Record: Record{"address": []byte{0xaa, 0xbb}}}}
	buf, err = hdr.Encode(nil, order, short)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0xaa, 0xbb}, buf)
	assert.Equal(t, 3, hdr.Size(short))

	rec, n, err := hdr.Decode([]byte{0x07, 0xaa, 0xbb, 0xcc}, order, Selectors{"Addr_flags.addr_mode": 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, short, rec)

	rec, n, err = hdr.Decode([]byte{0x07, 0xaa}, order, Selectors{"Addr_flags.addr_mode": 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, Record{"seq": uint64(7), "addr": Variant{Index: 0, Record: Record{}}}, rec)
}

func TestStructLayout_Truncation(t *testing.T) {
	_, hdr := compileHdr(t)
	present := Selectors{"Addr_flags.addr_mode": 1}

	_, n, err := hdr.Decode([]byte{0x07, 0xaa}, binary.LittleEndian, present)
	require.ErrorIs(t, err, wire.ErrTruncatedInput)
	assert.Equal(t, 1, n)

	_, _, err = hdr.Decode(nil, binary.LittleEndian, present)
	assert.ErrorIs(t, err, wire.ErrTruncatedInput)

	_, _, err = hdr.Decode([]byte{0x07}, binary.LittleEndian, Selectors{"Addr_flags.addr_mode": 2})
	assert.ErrorIs(t, err, wire.ErrUnresolvedVariant)

	_, _, err = hdr.Decode([]byte{0x07}, binary.LittleEndian, nil)
	assert.ErrorContains(t, err, "no value for external selector Addr_flags.addr_mode")
}

func TestStructLayout_VariantSizing(t *testing.T) {
	l := compileSized(t)
	order := binary.BigEndian

	tests := []struct {
		mode    uint64
		variant Variant
		size    int
	}{
		{0, Variant{Index: 0}, 3},
		{1, Variant{Index: 1, Record: Record{"addr": []byte{1, 2}}}, 5},
		{3, Variant{Index: 2, Record: Record{"addr": uint64(0x0102030405060708)}}, 11},
	}

	for _, tt := range tests {
		rec := Record{"mode": tt.mode, "seq": uint64(0x1234), "target": tt.variant}
		assert.Equal(t, tt.size, l.Size(rec))

		buf, err := l.Encode(nil, order, rec)
		require.NoError(t, err)
		require.Len(t, buf, tt.size)
		assert.Equal(t, []byte{byte(tt.mode), 0x12, 0x34}, buf[:3])

		got, n, err := l.Decode(buf, order, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.size, n)
		assert.Equal(t, tt.variant.Index, got["target"].(Variant).Index)
	}
}

func TestStructLayout_SiblingMismatchAndUndeclared(t *testing.T) {
	l := compileSized(t)
	order := binary.LittleEndian

	rec := Record{"mode": uint64(1), "seq": uint64(0), "target": Variant{Index: 0}}
	_, err := l.Encode(nil, order, rec)
	assert.ErrorIs(t, err, wire.ErrSelectorMismatch)

	var we *wire.Error
	require.True(t, errors.As(err, &we))
	assert.Equal(t, 1, we.Want)
	assert.Equal(t, 0, we.Got)

	// mode 2 is not declared by Mode.addr
	_, _, err = l.Decode([]byte{0x02, 0, 0}, order, nil)
	assert.ErrorIs(t, err, wire.ErrUndeclaredDiscriminant)

	_, err = l.Encode(nil, order, Record{"mode": uint64(0x100), "seq": uint64(0)})
	assert.ErrorIs(t, err, wire.ErrValueOutOfRange)
}
