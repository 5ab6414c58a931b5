package pipeline

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/testutil"
)

const exampleDir = "../../example"

// The checked-in example must be exactly what the pipeline generates
// from its schema
func TestSchemaUnitMatchesExample(t *testing.T) {
	units, err := LoadUnits([]string{filepath.Join(exampleDir, "schema.yaml")})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "schema", units[0].Name)
	assert.Equal(t, "frames_gen.go", units[0].Path)
	assert.Equal(t, "example", units[0].Package)

	p := newPipeline(t, nil)
	p.Package = "ignored"
	require.NoError(t, p.Run(units))

	got, err := os.ReadFile(filepath.Join(p.OutDir, "frames_gen.go"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(exampleDir, "frames_gen.go"))
	require.NoError(t, err)

	testutil.ExpectSameCode(t, string(want), string(got))
}

// Big-endian output swaps every multi-byte emitter, and the reference
// codec lays out the same packet most significant byte first
func TestSchemaUnitBigEndian(t *testing.T) {
	units, err := LoadUnits([]string{filepath.Join(exampleDir, "schema.yaml")})
	require.NoError(t, err)

	p := newPipeline(t, nil)
	p.Endian = "big"
	require.NoError(t, p.Run(units))

	out, err := os.ReadFile(filepath.Join(p.OutDir, "frames_gen.go"))
	require.NoError(t, err)
	code := string(out)
	for _, want := range []string{
		"return binary.BigEndian.AppendUint16(buf, uint16(c))",
		"*c = FrameCtl(binary.BigEndian.Uint16(buf))",
		"buf = binary.BigEndian.AppendUint16(buf, p.Value)",
		"buf = binary.BigEndian.AppendUint64(buf, p.Value)",
		"p.Value = binary.BigEndian.Uint64(buf[off:])",
		"buf = binary.BigEndian.AppendUint32(buf, p.Stamp)",
		"p.Ctl = FrameCtl(binary.BigEndian.Uint16(buf[off:]))",
		"p.Crc = binary.BigEndian.Uint16(buf[off:])",
	} {
		assert.Contains(t, code, want)
	}
	assert.NotContains(t, code, "LittleEndian")

	reg, err := newPipeline(t, nil).Compile(units)
	require.NoError(t, err)
	l, ok := reg.Structure("packet")
	require.True(t, ok)

	rec := analyzer.Record{
		"ctl":     uint64(0x0031), // mode short, length 3
		"stamp":   uint64(0x01020304),
		"payload": analyzer.Variant{Index: 1, Record: analyzer.Record{"value": uint64(0x1234)}},
		"crc":     uint64(0xBEEF),
	}
	buf, err := l.Encode(nil, binary.BigEndian, rec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x31, 0x01, 0x02, 0x03, 0x04, 0x12, 0x34, 0xBE, 0xEF}, buf)

	dec, n, err := l.Decode(buf, binary.BigEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, rec, dec)
}

func TestSchemaUnitReportsEveryDeclaration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bitfields:
  - name: Short
    slots:
      - {name: a, bits: 3}
structures:
  - name: one
    fields:
      - {name: x, type: u8}
      - {name: x, type: u8}
  - name: two
    fields:
      - {name: f, type: bitfield, container: Missing, size: 1}
`), 0o644))

	units, err := LoadUnits([]string{path})
	require.NoError(t, err)

	err = newPipeline(t, nil).Check(units)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "bad: ")
	assert.Contains(t, msg, "width mismatch")
	assert.Contains(t, msg, "duplicate field name")
	assert.Contains(t, msg, "unknown reference")
}

func TestLoadUnitsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("structures: [{name: x, fields: [{name: y, type: f32}]}]\n"), 0o644))

	_, err := LoadUnits([]string{filepath.Join(dir, "absent.yaml"), bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema load failed")
	assert.Contains(t, err.Error(), `unknown field type "f32"`)
}
