package example

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/pipeline"
)

// packetLayout compiles schema.yaml without writing anything
func packetLayout(t *testing.T) *analyzer.StructLayout {
	t.Helper()
	units, err := pipeline.LoadUnits([]string{"schema.yaml"})
	if err != nil {
		t.Fatalf("LoadUnits failed: %v", err)
	}
	p := &pipeline.Pipeline{OutDir: t.TempDir(), Logger: zerolog.Nop()}
	reg, err := p.Compile(units)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	l, ok := reg.Structure("packet")
	if !ok {
		t.Fatal("packet not compiled")
	}
	return l
}

// Generated code and the reference codec agree byte for byte
func TestPacketMatchesReferenceCodec(t *testing.T) {
	l := packetLayout(t)

	tests := []struct {
		name    string
		mode    FrameCtlMode
		payload Body
		variant analyzer.Variant
	}{
		{"none", FrameCtlModeNone, &BodyNone{}, analyzer.Variant{Index: 0, Record: analyzer.Record{}}},
		{"short", FrameCtlModeShort, &BodyShort{Value: 0xA1B2}, analyzer.Variant{Index: 1, Record: analyzer.Record{"value": uint64(0xA1B2)}}},
		{"long", FrameCtlModeLong, &BodyLong{Value: 0xCAFEF00DDEADBEEF}, analyzer.Variant{Index: 2, Record: analyzer.Record{"value": uint64(0xCAFEF00DDEADBEEF)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Packet{Ctl: packetCtl(t, tt.mode), Stamp: 0xDEADBEEF, Payload: tt.payload, Crc: 0x55AA}
			got, err := in.AppendFrame(nil)
			if err != nil {
				t.Fatalf("AppendFrame failed: %v", err)
			}

			rec := analyzer.Record{
				"ctl":     uint64(in.Ctl),
				"stamp":   uint64(in.Stamp),
				"payload": tt.variant,
				"crc":     uint64(in.Crc),
			}
			want, err := l.Encode(nil, binary.LittleEndian, rec)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("Generated %x, reference %x", got, want)
			}
			if in.Size() != l.Size(rec) {
				t.Errorf("Size(): generated %d, reference %d", in.Size(), l.Size(rec))
			}

			dec, n, err := l.Decode(got, binary.LittleEndian, nil)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if n != len(got) || dec["stamp"] != uint64(0xDEADBEEF) {
				t.Errorf("Reference decode: %d bytes, record %v", n, dec)
			}
		})
	}
}
