package schema

import "fmt"

// FieldKind identifies the shape of a structure field
type FieldKind int

const (
	FixedInt         FieldKind = iota // unsigned integer of 1, 2, 4 or 8 bytes
	RawBytes                          // opaque byte array
	EmbeddedBitfield                  // a compiled bit container
	AlternativeField                  // one variant of a group
)

func (k FieldKind) String() string {
	switch k {
	case FixedInt:
		return "int"
	case RawBytes:
		return "bytes"
	case EmbeddedBitfield:
		return "bitfield"
	case AlternativeField:
		return "alt"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Selector names the enumerated slot whose value picks the variant of an
// alternative field
type Selector struct {
	External bool   // value supplied by the caller at decode time
	Field    string // sibling EmbeddedBitfield field, or container name when External
	Slot     string
}

// Sibling selects on a slot of an EmbeddedBitfield declared earlier in
// the same structure
func Sibling(field, slot string) Selector {
	return Selector{Field: field, Slot: slot}
}

// External selects on a slot of a registered container whose value the
// caller passes to the decoder
func External(container, slot string) Selector {
	return Selector{External: true, Field: container, Slot: slot}
}

func (s Selector) String() string {
	if s.External {
		return fmt.Sprintf("external %s.%s", s.Field, s.Slot)
	}
	return fmt.Sprintf("%s.%s", s.Field, s.Slot)
}

// Field is one byte-granular member of a structure
type Field struct {
	Name      string
	Kind      FieldKind
	Width     int    // bytes; unused for AlternativeField
	Container string // EmbeddedBitfield container type
	Group     string // AlternativeField group name
	Selector  Selector
}

// Structure describes an ordered sequence of byte fields. A structure
// with no fields is the empty shape.
type Structure struct {
	Name   string
	Fields []Field
}

// NewStructure starts a structure with no fields
func NewStructure(name string) *Structure {
	return &Structure{Name: name}
}

// NewSimpleStructure returns a structure holding one raw byte field
func NewSimpleStructure(name, field string, width int) *Structure {
	return NewStructure(name).AddBytesField(field, width)
}

// AddIntField appends an unsigned integer of width bytes
func (s *Structure) AddIntField(name string, width int) *Structure {
	s.Fields = append(s.Fields, Field{Name: name, Kind: FixedInt, Width: width})
	return s
}

func (s *Structure) AddU8Field(name string) *Structure  { return s.AddIntField(name, 1) }
func (s *Structure) AddU16Field(name string) *Structure { return s.AddIntField(name, 2) }
func (s *Structure) AddU32Field(name string) *Structure { return s.AddIntField(name, 4) }
func (s *Structure) AddU64Field(name string) *Structure { return s.AddIntField(name, 8) }

// AddBytesField appends a raw byte array of width bytes
func (s *Structure) AddBytesField(name string, width int) *Structure {
	s.Fields = append(s.Fields, Field{Name: name, Kind: RawBytes, Width: width})
	return s
}

// AddBitfield embeds the compiled container containerType in width bytes
func (s *Structure) AddBitfield(name, containerType string, width int) *Structure {
	s.Fields = append(s.Fields, Field{Name: name, Kind: EmbeddedBitfield, Width: width, Container: containerType})
	return s
}

// AddAltField appends a field whose shape is picked from group by sel
func (s *Structure) AddAltField(name, group string, sel Selector) *Structure {
	s.Fields = append(s.Fields, Field{Name: name, Kind: AlternativeField, Group: group, Selector: sel})
	return s
}

// HasAlternatives reports whether any field is an AlternativeField
func (s *Structure) HasAlternatives() bool {
	for _, f := range s.Fields {
		if f.Kind == AlternativeField {
			return true
		}
	}
	return false
}
