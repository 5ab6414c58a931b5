package analyzer

import (
	"errors"
	"fmt"

	"github.com/alexhholmes/framegen/internal/schema"
)

// Symbol is a compiled enumerated value
type Symbol struct {
	Name        string
	Description string
	Value       uint64
	GoName      string // constant name, prefixed with the enum type
}

// Slot is a compiled bit range of a container
type Slot struct {
	Name        string
	Description string
	GoName      string
	Offset      int // bit position of the least significant bit
	Width       int
	Reserved    bool
	Symbols     []Symbol // nil for numeric slots
}

// Mask returns the unshifted mask covering Width bits
func (s Slot) Mask() uint64 {
	return uint64(1)<<s.Width - 1
}

// Enumerated reports whether the slot has a closed symbolic domain
func (s Slot) Enumerated() bool {
	return len(s.Symbols) > 0
}

// ValueBits returns the width of the smallest unsigned Go integer
// holding the slot
func (s Slot) ValueBits() int {
	return containerBits(s.Width)
}

// Symbol finds the symbol declared for value v
func (s Slot) Symbol(v uint64) (Symbol, bool) {
	for _, sym := range s.Symbols {
		if sym.Value == v {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Lookup finds a symbol by name
func (s Slot) Lookup(name string) (Symbol, bool) {
	for _, sym := range s.Symbols {
		if sym.Name == name {
			return sym, true
		}
	}
	return Symbol{}, false
}

// BitLayout is a compiled bit container
type BitLayout struct {
	Name        string
	Description string
	GoName      string
	Bits        int // 8, 16, 32 or 64
	Slots       []Slot
}

// Bytes returns the encoded size of the container
func (l *BitLayout) Bytes() int {
	return l.Bits / 8
}

// Slot looks up a named slot
func (l *BitLayout) Slot(name string) (Slot, bool) {
	for _, s := range l.Slots {
		if !s.Reserved && s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// Named returns the non-reserved slots in declaration order
func (l *BitLayout) Named() []Slot {
	var out []Slot
	for _, s := range l.Slots {
		if !s.Reserved {
			out = append(out, s)
		}
	}
	return out
}

// EnumType returns the Go type name of an enumerated slot's domain
func (l *BitLayout) EnumType(s Slot) string {
	return l.GoName + s.GoName
}

// FieldsType returns the Go type name of the decoded slot struct
func (l *BitLayout) FieldsType() string {
	return l.GoName + "Fields"
}

// containerBits returns the smallest supported container width holding
// width bits, or 0 past 64
func containerBits(width int) int {
	for _, b := range []int{8, 16, 32, 64} {
		if width <= b {
			return b
		}
	}
	return 0
}

// Methods generated on containers and their field structs; slot names
// must not shadow them.
var containerMethods = map[string]bool{
	"Decode":         true,
	"Encode":         true,
	"AppendFrame":    true,
	"UnmarshalFrame": true,
}

// CompileBitField validates a container without registering it
func CompileBitField(b *schema.BitField) (*BitLayout, error) {
	return NewRegistry().CompileBitField(b)
}

// CompileBitField validates b, assigns bit offsets from bit 0 upward and
// registers the result. Every violation in b is reported.
func (r *Registry) CompileBitField(b *schema.BitField) (*BitLayout, error) {
	if b == nil {
		return nil, fmt.Errorf("bitfield is nil")
	}

	l := &BitLayout{
		Name:        b.Name,
		Description: b.Description,
		GoName:      GoName(b.Name),
	}
	var errs []error
	if !validIdent(l.GoName) {
		errs = append(errs, errorf(InvalidName, b.Name, "", "%q is not a valid Go type name", l.GoName))
	}
	if _, ok := r.BitField(b.Name); ok {
		errs = append(errs, errorf(NameCollision, b.Name, "", "container already registered"))
	}

	// Phase 1: Assign offsets and check each slot
	names := make(map[string]string)
	offset := 0
	for i, s := range b.Slots {
		slot := Slot{
			Name:        s.Name,
			Description: s.Description,
			Offset:      offset,
			Width:       s.Width,
			Reserved:    s.Reserved,
		}
		label := s.Name
		if s.Reserved {
			label = fmt.Sprintf("reserved#%d", i)
		}
		if s.Width <= 0 {
			errs = append(errs, errorf(InvalidWidth, b.Name, label, "width %d bits", s.Width))
		}
		offset += max(s.Width, 0)

		if !s.Reserved {
			slot.GoName = GoName(s.Name)
			errs = append(errs, checkSlotName(b.Name, slot, names)...)
			if !s.Domain.IsNumeric() {
				syms, serrs := compileDomain(l, slot, s.Domain)
				slot.Symbols = syms
				errs = append(errs, serrs...)
			}
		}
		l.Slots = append(l.Slots, slot)
	}

	// Phase 2: Width conservation
	switch bits := containerBits(offset); {
	case offset > 64:
		errs = append(errs, errorf(WidthOverflow, b.Name, "", "slots total %d bits, widest container is 64", offset))
	case bits != offset:
		errs = append(errs, errorf(WidthMismatch, b.Name, "", "slots total %d bits, want 8, 16, 32 or 64", offset))
	default:
		l.Bits = bits
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Phase 3: Claim generated identifiers
	idents := []string{l.GoName, l.FieldsType()}
	for _, s := range l.Slots {
		if s.Enumerated() {
			idents = append(idents, l.EnumType(s))
			for _, sym := range s.Symbols {
				idents = append(idents, sym.GoName)
			}
		}
	}
	if cerrs := r.claim(b.Name, "bitfield "+b.Name, idents); cerrs != nil {
		return nil, errors.Join(cerrs...)
	}

	r.addBitField(l)
	return l, nil
}

func checkSlotName(unit string, s Slot, names map[string]string) []error {
	var errs []error
	switch {
	case s.Name == "":
		errs = append(errs, errorf(InvalidName, unit, "", "named slot at bit %d has no name", s.Offset))
	case !validIdent(s.GoName):
		errs = append(errs, errorf(InvalidName, unit, s.Name, "%q is not a valid Go identifier", s.GoName))
	case containerMethods[s.GoName]:
		errs = append(errs, errorf(NameCollision, unit, s.Name, "slot shadows generated method %s", s.GoName))
	}
	if prev, ok := names[s.GoName]; ok && s.Name != "" {
		if prev == s.Name {
			errs = append(errs, errorf(DuplicateFieldName, unit, s.Name, "slot declared twice"))
		} else {
			errs = append(errs, errorf(DuplicateFieldName, unit, s.Name, "slot collides with %q as %s", prev, s.GoName))
		}
	}
	names[s.GoName] = s.Name
	return errs
}

// compileDomain checks symbol uniqueness, value uniqueness and that every
// value fits in the slot
func compileDomain(l *BitLayout, s Slot, d *schema.Domain) ([]Symbol, []error) {
	var (
		errs    []error
		syms    []Symbol
		symbols = make(map[string]string)
		values  = make(map[uint64]string)
	)
	prefix := l.GoName + s.GoName
	for _, ev := range d.Values {
		sym := Symbol{
			Name:        ev.Symbol,
			Description: ev.Description,
			Value:       ev.Value,
			GoName:      prefix + GoName(ev.Symbol),
		}
		switch {
		case GoName(ev.Symbol) == "":
			errs = append(errs, errorf(InvalidName, l.Name, s.Name, "enum value %d has no symbol", ev.Value))
		case !validIdent(sym.GoName):
			errs = append(errs, errorf(InvalidName, l.Name, s.Name, "symbol %q gives invalid Go identifier %q", ev.Symbol, sym.GoName))
		}
		if prev, ok := symbols[sym.GoName]; ok {
			errs = append(errs, errorf(DuplicateEnumSymbol, l.Name, s.Name, "symbol %q collides with %q", ev.Symbol, prev))
		}
		symbols[sym.GoName] = ev.Symbol
		if prev, ok := values[ev.Value]; ok {
			errs = append(errs, errorf(DuplicateEnumValue, l.Name, s.Name, "value %d used by %q and %q", ev.Value, prev, ev.Symbol))
		}
		values[ev.Value] = ev.Symbol
		if s.Width > 0 && s.Width < 64 && ev.Value > s.Mask() {
			errs = append(errs, errorf(EnumValueOutOfRange, l.Name, s.Name, "symbol %q value %d does not fit in %d bits", ev.Symbol, ev.Value, s.Width))
		}
		syms = append(syms, sym)
	}
	return syms, errs
}
