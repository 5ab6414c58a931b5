package analyzer

import (
	"errors"
	"fmt"

	"github.com/alexhholmes/framegen/internal/schema"
)

// GroupLayout is a compiled variant group. Position 0 is the fallback.
type GroupLayout struct {
	Name     string
	GoName   string
	Fallback *StructLayout
	Variants []*StructLayout
}

// Cases returns the fallback followed by the inserted variants
func (g *GroupLayout) Cases() []*StructLayout {
	return append([]*StructLayout{g.Fallback}, g.Variants...)
}

// Case returns the variant at position i
func (g *GroupLayout) Case(i int) (*StructLayout, bool) {
	switch {
	case i == 0:
		return g.Fallback, true
	case i > 0 && i <= len(g.Variants):
		return g.Variants[i-1], true
	}
	return nil, false
}

// LowerName returns the unexported stem of the group's helpers
func (g *GroupLayout) LowerName() string {
	return LowerGoName(g.Name)
}

// AltLayout is a compiled Alternatives batch
type AltLayout struct {
	Groups []*GroupLayout

	// Variant structures compiled for this batch, in first-use order.
	// Structures registered earlier are reused and not listed.
	Compiled []*StructLayout
}

// CompileAlternatives compiles every group in a. Variant structures not
// yet registered are compiled on the way; all variants must be
// fixed-size and pairwise distinct within a group.
func (r *Registry) CompileAlternatives(a *schema.Alternatives) (*AltLayout, error) {
	if a == nil {
		return nil, fmt.Errorf("alternatives is nil")
	}

	out := &AltLayout{}
	var errs []error
	for _, og := range a.Groups {
		g, compiled, gerrs := r.compileGroup(og)
		out.Compiled = append(out.Compiled, compiled...)
		if len(gerrs) > 0 {
			errs = append(errs, gerrs...)
			continue
		}
		out.Groups = append(out.Groups, g)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func (r *Registry) compileGroup(og *schema.AlternativeOptions) (*GroupLayout, []*StructLayout, []error) {
	g := &GroupLayout{Name: og.Name, GoName: GoName(og.Name)}
	var (
		errs     []error
		compiled []*StructLayout
	)
	if !validIdent(g.GoName) {
		errs = append(errs, errorf(InvalidName, og.Name, "", "%q is not a valid Go type name", g.GoName))
	}
	if _, ok := r.Group(og.Name); ok {
		errs = append(errs, errorf(NameCollision, og.Name, "", "group already registered"))
	}
	if og.Fallback == nil {
		errs = append(errs, errorf(UnresolvedVariant, og.Name, "", "group has no fallback"))
		return nil, nil, errs
	}

	seen := make(map[string]bool)
	resolve := func(s *schema.Structure) *StructLayout {
		if s == nil {
			errs = append(errs, errorf(UnknownReference, og.Name, "", "nil variant"))
			return nil
		}
		if seen[key(s.Name)] {
			errs = append(errs, errorf(DuplicateVariant, og.Name, s.Name, "structure appears more than once"))
			return nil
		}
		seen[key(s.Name)] = true

		l, ok := r.Structure(s.Name)
		if ok {
			if err := r.reachable(og.Name, s.Name, "structure", s.Name, l); err != nil {
				errs = append(errs, err)
				return nil
			}
		} else {
			var err error
			if l, err = r.CompileStructure(s); err != nil {
				errs = append(errs, err)
				return nil
			}
			compiled = append(compiled, l)
		}
		if !l.Fixed() {
			errs = append(errs, errorf(VariantNotFixed, og.Name, s.Name, "variant size depends on its own alternatives"))
			return nil
		}
		return l
	}

	g.Fallback = resolve(og.Fallback)
	for _, s := range og.Variants {
		g.Variants = append(g.Variants, resolve(s))
	}
	if len(errs) > 0 {
		return nil, compiled, errs
	}

	lower := g.LowerName()
	idents := []string{g.GoName, lower + "Variant", "decode" + g.GoName, "append" + g.GoName, "size" + g.GoName}
	if cerrs := r.claim(og.Name, "group "+og.Name, idents); cerrs != nil {
		return nil, compiled, cerrs
	}

	r.addGroup(g)
	return g, compiled, nil
}
