package analyzer

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Registry tracks compiled layouts by case-insensitive name and the Go
// identifiers each one claims in the generated package
type Registry struct {
	bits    map[string]*BitLayout
	structs map[string]*StructLayout
	groups  map[string]*GroupLayout
	idents  map[string]string // Go identifier -> owning declaration

	pkg   string         // package of declarations added from now on
	homes map[any]string // compiled layout -> its package

	bitOrder    []*BitLayout
	structOrder []*StructLayout
	groupOrder  []*GroupLayout
}

// NewRegistry returns an empty registry whose declarations share one package
func NewRegistry() *Registry {
	return &Registry{
		bits:    make(map[string]*BitLayout),
		structs: make(map[string]*StructLayout),
		groups:  make(map[string]*GroupLayout),
		idents:  make(map[string]string),
		homes:   make(map[any]string),
	}
}

// Fork returns a copy of r whose new declarations belong to package pkg.
// Compiling into the fork leaves r untouched, so a caller can discard a
// failed unit's declarations by dropping the fork. Layouts from another
// package are visible to lookups but cannot be referenced by compiles.
func (r *Registry) Fork(pkg string) *Registry {
	return &Registry{
		bits:        maps.Clone(r.bits),
		structs:     maps.Clone(r.structs),
		groups:      maps.Clone(r.groups),
		idents:      maps.Clone(r.idents),
		pkg:         pkg,
		homes:       maps.Clone(r.homes),
		bitOrder:    slices.Clone(r.bitOrder),
		structOrder: slices.Clone(r.structOrder),
		groupOrder:  slices.Clone(r.groupOrder),
	}
}

// Package returns the package new declarations are compiled into
func (r *Registry) Package() string {
	return r.pkg
}

func key(name string) string {
	return strings.ToLower(name)
}

// BitField looks up a compiled container
func (r *Registry) BitField(name string) (*BitLayout, bool) {
	l, ok := r.bits[key(name)]
	return l, ok
}

// Structure looks up a compiled structure
func (r *Registry) Structure(name string) (*StructLayout, bool) {
	l, ok := r.structs[key(name)]
	return l, ok
}

// Group looks up a compiled variant group
func (r *Registry) Group(name string) (*GroupLayout, bool) {
	g, ok := r.groups[key(name)]
	return g, ok
}

// BitFields returns compiled containers in registration order
func (r *Registry) BitFields() []*BitLayout { return r.bitOrder }

// Structures returns compiled structures in registration order
func (r *Registry) Structures() []*StructLayout { return r.structOrder }

// Groups returns compiled groups in registration order
func (r *Registry) Groups() []*GroupLayout { return r.groupOrder }

// SizeOf returns the encoded byte size of a registered container or
// structure, -1 when the structure's size depends on its variants
func (r *Registry) SizeOf(name string) (int, error) {
	if l, ok := r.BitField(name); ok {
		return l.Bytes(), nil
	}
	if l, ok := r.Structure(name); ok {
		if !l.Fixed() {
			return -1, nil
		}
		return l.StaticSize, nil
	}
	return 0, fmt.Errorf("unknown type: %s", name)
}

// claim reserves Go identifiers for owner. It reports every identifier
// already held by another declaration and claims nothing on conflict.
func (r *Registry) claim(unit, owner string, idents []string) []error {
	var errs []error
	seen := make(map[string]bool, len(idents))
	for _, id := range idents {
		if seen[id] {
			errs = append(errs, errorf(NameCollision, unit, "", "Go identifier %s generated twice", id))
			continue
		}
		seen[id] = true
		if prev, ok := r.idents[id]; ok {
			errs = append(errs, errorf(NameCollision, unit, "", "Go identifier %s already declared by %s", id, prev))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	for _, id := range idents {
		r.idents[id] = owner
	}
	return nil
}

// reachable reports an error when decl, found under name, was compiled
// into another package than the one r compiles into now
func (r *Registry) reachable(unit, field, what, name string, decl any) error {
	if home := r.homes[decl]; home != r.pkg {
		return errorf(UnknownReference, unit, field, "%s %q is declared in package %s, not %s", what, name, home, r.pkg)
	}
	return nil
}

func (r *Registry) addBitField(l *BitLayout) {
	r.bits[key(l.Name)] = l
	r.bitOrder = append(r.bitOrder, l)
	r.homes[l] = r.pkg
}

func (r *Registry) addStructure(l *StructLayout) {
	r.structs[key(l.Name)] = l
	r.structOrder = append(r.structOrder, l)
	r.homes[l] = r.pkg
}

func (r *Registry) addGroup(g *GroupLayout) {
	r.groups[key(g.Name)] = g
	r.groupOrder = append(r.groupOrder, g)
	r.homes[g] = r.pkg
}
