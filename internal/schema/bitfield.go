// Package schema declares bit containers, byte structures and variant
// groups. Builders only accumulate; validation happens at compile time.
package schema

// EnumValue is one symbol of an enumerated slot domain
type EnumValue struct {
	Symbol      string
	Description string
	Value       uint64
}

// Domain is the value domain of a named slot. A domain with no symbols
// is numeric.
type Domain struct {
	Values  []EnumValue
	numeric bool
}

// AddEnumValue appends a symbol to the domain
func (d *Domain) AddEnumValue(symbol string, value uint64) *Domain {
	return d.AddEnumValueDesc(symbol, "", value)
}

// AddEnumValueDesc appends a described symbol to the domain
func (d *Domain) AddEnumValueDesc(symbol, description string, value uint64) *Domain {
	d.numeric = false
	d.Values = append(d.Values, EnumValue{Symbol: symbol, Description: description, Value: value})
	return d
}

// Numeric marks the slot as a raw unsigned integer, dropping any symbols
func (d *Domain) Numeric() *Domain {
	d.numeric = true
	d.Values = nil
	return d
}

// IsNumeric reports whether the slot carries raw integers
func (d *Domain) IsNumeric() bool {
	return d == nil || d.numeric || len(d.Values) == 0
}

// Slot is one sub-field of a bit container
type Slot struct {
	Name        string
	Description string
	Width       int // bits
	Reserved    bool
	Domain      *Domain
}

// BitField describes a bit container: slots packed from bit 0 upward
type BitField struct {
	Name        string
	Description string
	Slots       []Slot
}

// NewBitField starts a bit container with no slots
func NewBitField(name, description string) *BitField {
	return &BitField{Name: name, Description: description}
}

// AddBitField appends a named slot. build receives an empty domain and
// returns it populated; a nil build or an untouched domain is numeric.
func (b *BitField) AddBitField(name, description string, width int, build func(*Domain) *Domain) *BitField {
	d := &Domain{}
	if build != nil {
		if built := build(d); built != nil {
			d = built
		}
	}
	b.Slots = append(b.Slots, Slot{Name: name, Description: description, Width: width, Domain: d})
	return b
}

// AddReserved appends width bits of padding
func (b *BitField) AddReserved(width int) *BitField {
	b.Slots = append(b.Slots, Slot{Width: width, Reserved: true})
	return b
}

// Width returns the sum of all slot widths in bits
func (b *BitField) Width() int {
	n := 0
	for _, s := range b.Slots {
		n += s.Width
	}
	return n
}
