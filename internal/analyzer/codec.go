package analyzer

import (
	"fmt"
	"sort"

	"github.com/alexhholmes/framegen/internal/schema"
	"github.com/alexhholmes/framegen/wire"
)

// The reference codec interprets compiled layouts directly. Generated
// code must agree with it byte for byte; tests and describe use it.

// Decode extracts every named slot of raw. Enumerated slots holding an
// undeclared value fail with wire.ErrUndeclaredDiscriminant.
func (l *BitLayout) Decode(raw uint64) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, s := range l.Named() {
		v := (raw >> s.Offset) & s.Mask()
		if s.Enumerated() {
			if _, ok := s.Symbol(v); !ok {
				return nil, wire.Undeclared(l.Name+"."+s.Name, v)
			}
		}
		out[s.Name] = v
	}
	return out, nil
}

// Encode packs values, one per named slot, from zero so reserved bits are
// always clear
func (l *BitLayout) Encode(values map[string]uint64) (uint64, error) {
	for name := range values {
		if _, ok := l.Slot(name); !ok {
			return 0, fmt.Errorf("%s: no slot %q", l.Name, name)
		}
	}

	var raw uint64
	for _, s := range l.Named() {
		field := l.Name + "." + s.Name
		v, ok := values[s.Name]
		if !ok {
			return 0, fmt.Errorf("%s: no value", field)
		}
		if s.Enumerated() {
			if _, ok := s.Symbol(v); !ok {
				return 0, wire.Undeclared(field, v)
			}
		} else if v > s.Mask() {
			return 0, wire.OutOfRange(field, v, s.Width)
		}
		raw |= v << s.Offset
	}
	return raw, nil
}

// Symbols decodes raw into symbol names, numeric slots rendered in decimal
func (l *BitLayout) Symbols(raw uint64) (map[string]string, error) {
	values, err := l.Decode(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for _, s := range l.Named() {
		v := values[s.Name]
		if sym, ok := s.Symbol(v); ok {
			out[s.Name] = sym.Name
		} else {
			out[s.Name] = fmt.Sprintf("%d", v)
		}
	}
	return out, nil
}

// Record holds field values keyed by schema field name: uint64 for
// integers and embedded bitfields, []byte for raw bytes, Variant for
// alternative fields
type Record map[string]any

// Variant is the decoded value of an alternative field
type Variant struct {
	Index  int // position in the group, 0 for the fallback
	Record Record
}

// Selectors carries external selector values keyed by External.Key
type Selectors map[string]uint64

// Keys returns the selector keys in sorted order
func (s Selectors) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode reads l from the front of buf, strictly left to right, and
// returns the record with the number of bytes consumed
func (l *StructLayout) Decode(buf []byte, order wire.ByteOrder, sel Selectors) (Record, int, error) {
	rec := make(Record, len(l.Fields))
	off := 0
	for _, f := range l.Fields {
		field := l.Name + "." + f.Name
		switch f.Kind {
		case schema.FixedInt, schema.EmbeddedBitfield:
			if len(buf) < off+f.Size {
				return rec, off, wire.Truncated(field, f.Size, len(buf)-off)
			}
			rec[f.Name] = wire.Uint(buf[off:], f.Size, order)
			off += f.Size
		case schema.RawBytes:
			if len(buf) < off+f.Size {
				return rec, off, wire.Truncated(field, f.Size, len(buf)-off)
			}
			rec[f.Name] = append([]byte(nil), buf[off:off+f.Size]...)
			off += f.Size
		case schema.AlternativeField:
			variant, err := l.variant(f, rec, sel)
			if err != nil {
				return rec, off, err
			}
			vl, _ := f.Group.Case(variant)
			sub, n, err := vl.Decode(buf[off:], order, nil)
			if err != nil {
				return rec, off, err
			}
			rec[f.Name] = Variant{Index: variant, Record: sub}
			off += n
		}
	}
	return rec, off, nil
}

// variant resolves the group position for alternative field f from an
// already decoded sibling or from the external selectors
func (l *StructLayout) variant(f FieldLayout, rec Record, sel Selectors) (int, error) {
	b := f.Binding
	field := l.Name + "." + f.Name
	var v uint64
	if b.Sibling >= 0 {
		sib := l.Fields[b.Sibling]
		raw, ok := rec[sib.Name].(uint64)
		if !ok {
			return 0, fmt.Errorf("%s: selector field %s holds %T", field, sib.Name, rec[sib.Name])
		}
		v = (raw >> b.Slot.Offset) & b.Slot.Mask()
		if _, ok := b.Slot.Symbol(v); !ok {
			return 0, wire.Undeclared(b.Source.Name+"."+b.Slot.Name, v)
		}
	} else {
		k := b.Source.Name + "." + b.Slot.Name
		var ok bool
		if v, ok = sel[k]; !ok {
			return 0, fmt.Errorf("%s: no value for external selector %s", field, k)
		}
	}
	variant, ok := b.Variant(v)
	if !ok {
		return 0, wire.Unresolved(field, v)
	}
	return variant, nil
}

// Encode appends rec laid out as l. A missing alternative field encodes
// as the fallback; a sibling-selected variant must agree with its
// selector.
func (l *StructLayout) Encode(dst []byte, order wire.ByteOrder, rec Record) ([]byte, error) {
	for _, f := range l.Fields {
		field := l.Name + "." + f.Name
		switch f.Kind {
		case schema.FixedInt, schema.EmbeddedBitfield:
			v, ok := rec[f.Name].(uint64)
			if !ok {
				return dst, fmt.Errorf("%s: want uint64, have %T", field, rec[f.Name])
			}
			if f.Size < 8 && v>>(8*f.Size) != 0 {
				return dst, wire.OutOfRange(field, v, 8*f.Size)
			}
			dst = wire.AppendUint(dst, v, f.Size, order)
		case schema.RawBytes:
			b, ok := rec[f.Name].([]byte)
			if !ok || len(b) != f.Size {
				return dst, fmt.Errorf("%s: want %d bytes", field, f.Size)
			}
			dst = append(dst, b...)
		case schema.AlternativeField:
			v, _ := rec[f.Name].(Variant)
			if f.Binding.Sibling >= 0 {
				want, err := l.variant(f, rec, nil)
				if err != nil {
					return dst, err
				}
				if want != v.Index {
					return dst, wire.Mismatch(field, want, v.Index)
				}
			}
			vl, ok := f.Group.Case(v.Index)
			if !ok {
				return dst, wire.Unresolved(field, uint64(v.Index))
			}
			var err error
			if dst, err = vl.Encode(dst, order, v.Record); err != nil {
				return dst, err
			}
		}
	}
	return dst, nil
}

// Size returns the encoded size of rec laid out as l
func (l *StructLayout) Size(rec Record) int {
	n := l.StaticSize
	for _, f := range l.Fields {
		if f.Kind != schema.AlternativeField {
			continue
		}
		v, _ := rec[f.Name].(Variant)
		if vl, ok := f.Group.Case(v.Index); ok {
			n += vl.StaticSize
		}
	}
	return n
}
