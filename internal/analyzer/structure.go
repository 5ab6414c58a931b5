package analyzer

import (
	"errors"
	"fmt"

	"github.com/alexhholmes/framegen/internal/schema"
)

// Case binds one selector symbol to a variant position: 0 is the
// fallback, k is the k-th inserted variant
type Case struct {
	Symbol  Symbol
	Variant int
}

// Binding ties an alternative field to the enumerated slot that selects
// its variant
type Binding struct {
	Selector schema.Selector
	Source   *BitLayout
	Slot     Slot
	Sibling  int // index of the sibling field, -1 for external selectors
	Cases    []Case
}

// Variant returns the position bound to raw selector value v
func (b *Binding) Variant(v uint64) (int, bool) {
	for _, c := range b.Cases {
		if c.Symbol.Value == v {
			return c.Variant, true
		}
	}
	return 0, false
}

// External is a selector slot read from outside the structure's bytes
type External struct {
	Source *BitLayout
	Slot   Slot
	GoName string // field of the generated Selectors struct
}

// Key names the external selector in reference-codec selector maps
func (e External) Key() string {
	return e.Source.Name + "." + e.Slot.Name
}

// FieldLayout is a compiled structure field
type FieldLayout struct {
	Name    string
	GoName  string
	Kind    schema.FieldKind
	Size    int // bytes, -1 for alternative fields
	Offset  int // static offset, -1 once an alternative field precedes it
	Bits    *BitLayout
	Group   *GroupLayout
	Binding *Binding
}

// StructLayout is a compiled byte structure
type StructLayout struct {
	Name       string
	GoName     string
	Fields     []FieldLayout
	StaticSize int // bytes of all non-alternative fields
	Externals  []External
}

// Fixed reports whether the encoded size is known without a value
func (l *StructLayout) Fixed() bool {
	for _, f := range l.Fields {
		if f.Kind == schema.AlternativeField {
			return false
		}
	}
	return true
}

// SelectorsType returns the Go type carrying external selector values
func (l *StructLayout) SelectorsType() string {
	return l.GoName + "Selectors"
}

// Field looks up a field by schema name
func (l *StructLayout) Field(name string) (FieldLayout, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

var structMethods = map[string]bool{
	"Size":           true,
	"AppendFrame":    true,
	"UnmarshalFrame": true,
}

// CompileStructure validates s, binds each alternative field to its
// selector and registers the result. Groups are looked up first in
// groups, then in the registry.
func (r *Registry) CompileStructure(s *schema.Structure, groups ...*GroupLayout) (*StructLayout, error) {
	if s == nil {
		return nil, fmt.Errorf("structure is nil")
	}

	l := &StructLayout{Name: s.Name, GoName: GoName(s.Name)}
	var errs []error
	if !validIdent(l.GoName) {
		errs = append(errs, errorf(InvalidName, s.Name, "", "%q is not a valid Go type name", l.GoName))
	}
	if _, ok := r.Structure(s.Name); ok {
		errs = append(errs, errorf(NameCollision, s.Name, "", "structure already registered"))
	}

	// Phase 1: Resolve every field
	names := make(map[string]string)
	for i, sf := range s.Fields {
		f := FieldLayout{Name: sf.Name, GoName: GoName(sf.Name), Kind: sf.Kind, Size: sf.Width}

		switch {
		case sf.Name == "":
			errs = append(errs, errorf(InvalidName, s.Name, "", "field %d has no name", i))
		case !validIdent(f.GoName):
			errs = append(errs, errorf(InvalidName, s.Name, sf.Name, "%q is not a valid Go identifier", f.GoName))
		case structMethods[f.GoName]:
			errs = append(errs, errorf(NameCollision, s.Name, sf.Name, "field shadows generated method %s", f.GoName))
		}
		if prev, ok := names[f.GoName]; ok && sf.Name != "" {
			if prev == sf.Name {
				errs = append(errs, errorf(DuplicateFieldName, s.Name, sf.Name, "field declared twice"))
			} else {
				errs = append(errs, errorf(DuplicateFieldName, s.Name, sf.Name, "field collides with %q as %s", prev, f.GoName))
			}
		}
		names[f.GoName] = sf.Name

		switch sf.Kind {
		case schema.FixedInt:
			if !intWidth(sf.Width) {
				errs = append(errs, errorf(InvalidWidth, s.Name, sf.Name, "integer width %d bytes, want 1, 2, 4 or 8", sf.Width))
			}
		case schema.RawBytes:
			if sf.Width < 1 {
				errs = append(errs, errorf(InvalidWidth, s.Name, sf.Name, "byte array width %d", sf.Width))
			}
		case schema.EmbeddedBitfield:
			if !intWidth(sf.Width) {
				errs = append(errs, errorf(InvalidWidth, s.Name, sf.Name, "bitfield width %d bytes, want 1, 2, 4 or 8", sf.Width))
			}
			bits, ok := r.BitField(sf.Container)
			if !ok {
				errs = append(errs, errorf(UnknownReference, s.Name, sf.Name, "bitfield %q is not compiled", sf.Container))
				break
			}
			if err := r.reachable(s.Name, sf.Name, "bitfield", sf.Container, bits); err != nil {
				errs = append(errs, err)
				break
			}
			if bits.Bytes() != sf.Width {
				errs = append(errs, errorf(WidthMismatch, s.Name, sf.Name, "declared %d bytes, %s is %d bytes", sf.Width, bits.Name, bits.Bytes()))
				break
			}
			f.Bits = bits
		case schema.AlternativeField:
			f.Size = -1
			g := findGroup(sf.Group, groups)
			if g == nil {
				g, _ = r.Group(sf.Group)
				if g != nil {
					if err := r.reachable(s.Name, sf.Name, "group", sf.Group, g); err != nil {
						errs = append(errs, err)
						break
					}
				}
			}
			if g == nil {
				errs = append(errs, errorf(UnknownReference, s.Name, sf.Name, "group %q is not compiled", sf.Group))
				break
			}
			f.Group = g
			b, err := r.bind(s.Name, sf, l.Fields, g)
			if err != nil {
				errs = append(errs, err)
				break
			}
			f.Binding = b
		default:
			errs = append(errs, errorf(InvalidWidth, s.Name, sf.Name, "unknown field kind %v", sf.Kind))
		}
		l.Fields = append(l.Fields, f)
	}

	// Phase 2: Static offsets and external selectors
	offset := 0
	for i := range l.Fields {
		f := &l.Fields[i]
		f.Offset = offset
		if f.Kind == schema.AlternativeField {
			offset = -1
			if f.Binding != nil && f.Binding.Sibling < 0 {
				if err := l.addExternal(f.Binding); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		l.StaticSize += f.Size
		if offset >= 0 {
			offset += f.Size
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Phase 3: Claim generated identifiers
	idents := []string{l.GoName}
	if len(l.Externals) > 0 {
		idents = append(idents, l.SelectorsType())
	}
	if cerrs := r.claim(s.Name, "structure "+s.Name, idents); cerrs != nil {
		return nil, errors.Join(cerrs...)
	}

	r.addStructure(l)
	return l, nil
}

func intWidth(w int) bool {
	return w == 1 || w == 2 || w == 4 || w == 8
}

func findGroup(name string, groups []*GroupLayout) *GroupLayout {
	for _, g := range groups {
		if key(g.Name) == key(name) {
			return g
		}
	}
	return nil
}

// bind resolves the selector of alternative field sf and binds the
// selector's symbols to g positionally. The symbol valued 0 takes the
// fallback; the remaining symbols, in declaration order, take the
// inserted variants in insertion order. The counts must match exactly.
func (r *Registry) bind(unit string, sf schema.Field, prior []FieldLayout, g *GroupLayout) (*Binding, error) {
	sel := sf.Selector
	b := &Binding{Selector: sel, Sibling: -1}

	if sel.External {
		src, ok := r.BitField(sel.Field)
		if !ok {
			return nil, errorf(UnknownReference, unit, sf.Name, "selector container %q is not compiled", sel.Field)
		}
		if err := r.reachable(unit, sf.Name, "selector container", sel.Field, src); err != nil {
			return nil, err
		}
		b.Source = src
	} else {
		for i, p := range prior {
			if p.Name == sel.Field {
				b.Sibling = i
				break
			}
		}
		if b.Sibling < 0 {
			return nil, errorf(UnresolvedVariant, unit, sf.Name, "selector field %q is not declared before %q", sel.Field, sf.Name)
		}
		p := prior[b.Sibling]
		if p.Kind != schema.EmbeddedBitfield {
			return nil, errorf(UnresolvedVariant, unit, sf.Name, "selector field %q is a %v, want bitfield", sel.Field, p.Kind)
		}
		if p.Bits == nil {
			return nil, errorf(UnknownReference, unit, sf.Name, "selector field %q has no compiled bitfield", sel.Field)
		}
		b.Source = p.Bits
	}

	slot, ok := b.Source.Slot(sel.Slot)
	if !ok {
		return nil, errorf(UnknownReference, unit, sf.Name, "%s has no slot %q", b.Source.Name, sel.Slot)
	}
	if !slot.Enumerated() {
		return nil, errorf(UnresolvedVariant, unit, sf.Name, "selector %s.%s is numeric", b.Source.Name, slot.Name)
	}
	b.Slot = slot

	var rest []Symbol
	fallback := false
	for _, sym := range slot.Symbols {
		if sym.Value == 0 {
			b.Cases = append(b.Cases, Case{Symbol: sym, Variant: 0})
			fallback = true
			continue
		}
		rest = append(rest, sym)
	}
	if !fallback {
		return nil, errorf(UnresolvedVariant, unit, sf.Name, "selector %s.%s has no zero symbol for fallback %s", b.Source.Name, slot.Name, g.Fallback.Name)
	}
	if len(rest) != len(g.Variants) {
		return nil, errorf(UnresolvedVariant, unit, sf.Name, "selector %s.%s has %d non-zero symbols, group %s has %d variants",
			b.Source.Name, slot.Name, len(rest), g.Name, len(g.Variants))
	}
	for i, sym := range rest {
		b.Cases = append(b.Cases, Case{Symbol: sym, Variant: i + 1})
	}
	return b, nil
}

func (l *StructLayout) addExternal(b *Binding) error {
	for _, e := range l.Externals {
		if e.Source == b.Source && e.Slot.Name == b.Slot.Name {
			return nil
		}
		if e.GoName == b.Slot.GoName {
			return errorf(DuplicateFieldName, l.Name, "", "external selectors %s and %s.%s share field %s",
				e.Key(), b.Source.Name, b.Slot.Name, e.GoName)
		}
	}
	l.Externals = append(l.Externals, External{Source: b.Source, Slot: b.Slot, GoName: b.Slot.GoName})
	return nil
}
