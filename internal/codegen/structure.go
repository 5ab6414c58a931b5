package codegen

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/schema"
)

// Structure generates the struct type, its external selector type when
// needed, Size, one variant mapping per alternative field, AppendFrame
// and UnmarshalFrame
func (g *Generator) Structure(l *analyzer.StructLayout) []Decl {
	decls := []Decl{structType(l)}
	if len(l.Externals) > 0 {
		decls = append(decls, selectorsType(l))
	}
	decls = append(decls, structSize(l))
	for _, f := range l.Fields {
		if f.Kind == schema.AlternativeField {
			decls = append(decls, variantMapping(l, f))
		}
	}
	decls = append(decls, g.structAppend(l), g.structUnmarshal(l))
	return decls
}

func structType(l *analyzer.StructLayout) Decl {
	var code strings.Builder
	if l.Fixed() {
		code.WriteString(fmt.Sprintf("// %s encodes in %s\n", l.GoName, byteCount(l.StaticSize)))
	} else {
		code.WriteString(fmt.Sprintf("// %s encodes in %s plus its variants\n", l.GoName, byteCount(l.StaticSize)))
	}
	if len(l.Fields) == 0 {
		code.WriteString(fmt.Sprintf("type %s struct{}\n", l.GoName))
		return Decl{Name: l.GoName, Code: code.String()}
	}
	code.WriteString(fmt.Sprintf("type %s struct {\n", l.GoName))
	for _, f := range l.Fields {
		code.WriteString(fmt.Sprintf("\t%s %s\n", f.GoName, goType(f)))
	}
	code.WriteString("}\n")
	return Decl{Name: l.GoName, Code: code.String()}
}

func byteCount(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}

func selectorsType(l *analyzer.StructLayout) Decl {
	var code strings.Builder
	name := l.SelectorsType()
	code.WriteString(fmt.Sprintf("// %s holds the discriminants %s reads from outside its bytes\n", name, l.GoName))
	code.WriteString(fmt.Sprintf("type %s struct {\n", name))
	for _, e := range l.Externals {
		code.WriteString(fmt.Sprintf("\t%s %s // %s\n", e.GoName, e.Source.EnumType(e.Slot), e.Key()))
	}
	code.WriteString("}\n")
	return Decl{Name: name, Code: code.String()}
}

func structSize(l *analyzer.StructLayout) Decl {
	var code strings.Builder
	code.WriteString("// Size returns the encoded size of p in bytes\n")
	code.WriteString(fmt.Sprintf("func (p *%s) Size() int {\n", l.GoName))
	if l.Fixed() {
		code.WriteString(fmt.Sprintf("\treturn %d\n", l.StaticSize))
	} else {
		code.WriteString(fmt.Sprintf("\tn := %d\n", l.StaticSize))
		for _, f := range l.Fields {
			if f.Kind == schema.AlternativeField {
				code.WriteString(fmt.Sprintf("\tn += size%s(p.%s)\n", f.Group.GoName, f.GoName))
			}
		}
		code.WriteString("\treturn n\n")
	}
	code.WriteString("}\n")
	return Decl{Name: l.GoName + ".Size", Code: code.String()}
}

// variantMethod names the per-field mapping from selector to position
func variantMethod(f analyzer.FieldLayout) string {
	return analyzer.LowerGoName(f.Name) + "Variant"
}

// variantMapping emits the positional binding of one alternative field.
// Sibling selectors read the already decoded container; external
// selectors take the caller's value.
func variantMapping(l *analyzer.StructLayout, f analyzer.FieldLayout) Decl {
	var code strings.Builder
	b := f.Binding
	enum := b.Source.EnumType(b.Slot)
	label := l.Name + "." + f.Name

	code.WriteString(fmt.Sprintf("// %s maps %s.%s to a position in %s\n", variantMethod(f), b.Source.Name, b.Slot.Name, f.Group.GoName))
	if b.Sibling >= 0 {
		sib := l.Fields[b.Sibling]
		code.WriteString(fmt.Sprintf("func (p *%s) %s() (int, error) {\n", l.GoName, variantMethod(f)))
		code.WriteString(fmt.Sprintf("\tsel, err := p.%s.%s()\n", sib.GoName, b.Slot.GoName))
		code.WriteString("\tif err != nil {\n")
		code.WriteString("\t\treturn 0, err\n")
		code.WriteString("\t}\n")
	} else {
		code.WriteString(fmt.Sprintf("func (*%s) %s(sel %s) (int, error) {\n", l.GoName, variantMethod(f), enum))
	}
	code.WriteString("\tswitch sel {\n")
	for _, c := range b.Cases {
		code.WriteString(fmt.Sprintf("\tcase %s:\n", c.Symbol.GoName))
		code.WriteString(fmt.Sprintf("\t\treturn %d, nil\n", c.Variant))
	}
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn 0, wire.Unresolved(%q, uint64(sel))\n", label))
	code.WriteString("}\n")

	return Decl{Name: l.GoName + "." + variantMethod(f), Code: code.String(), Imports: []string{importWire}}
}

// fieldComment renders "// name: type at [a, b)" with the static range
// when known
func fieldComment(f analyzer.FieldLayout) string {
	switch {
	case f.Kind == schema.AlternativeField:
		return fmt.Sprintf("\t// %s: %s selected by %s\n", f.Name, goType(f), f.Binding.Selector)
	case f.Offset >= 0:
		return fmt.Sprintf("\t// %s: %s at [%d, %d)\n", f.Name, goType(f), f.Offset, f.Offset+f.Size)
	}
	return fmt.Sprintf("\t// %s: %s at [off, off+%d)\n", f.Name, goType(f), f.Size)
}

func (g *Generator) structAppend(l *analyzer.StructLayout) Decl {
	var code strings.Builder
	imports := []string{}
	ems := g.emitters()

	hasAlt, hasSibling := false, false
	for _, f := range l.Fields {
		if f.Kind == schema.AlternativeField {
			hasAlt = true
			hasSibling = hasSibling || f.Binding.Sibling >= 0
		}
	}

	code.WriteString("// AppendFrame appends the encoding of p to buf\n")
	code.WriteString(fmt.Sprintf("func (p *%s) AppendFrame(buf []byte) ([]byte, error) {\n", l.GoName))
	if len(l.Fields) > 0 {
		code.WriteString("\tif p == nil {\n")
		code.WriteString(fmt.Sprintf("\t\treturn buf, wire.Nil(%q)\n", l.Name))
		code.WriteString("\t}\n")
		imports = append(imports, importWire)
	}
	if hasSibling {
		code.WriteString("\tvar variant int\n")
	}
	if hasAlt {
		code.WriteString("\tvar err error\n")
	}

	for _, f := range l.Fields {
		code.WriteString(fieldComment(f))
		expr := "p." + f.GoName
		switch f.Kind {
		case schema.FixedInt:
			code.WriteString(fmt.Sprintf("\tbuf = %s\n", ems[f.Size].append(emitCtx{expr: expr})))
			if f.Size > 1 {
				imports = append(imports, importBinary)
			}
		case schema.RawBytes:
			code.WriteString(fmt.Sprintf("\tbuf = append(buf, %s[:]...)\n", expr))
		case schema.EmbeddedBitfield:
			code.WriteString(fmt.Sprintf("\tbuf = %s.AppendFrame(buf)\n", expr))
		case schema.AlternativeField:
			if f.Binding.Sibling >= 0 {
				code.WriteString(fmt.Sprintf("\tif variant, err = p.%s(); err != nil {\n", variantMethod(f)))
				code.WriteString("\t\treturn buf, err\n")
				code.WriteString("\t}\n")
				code.WriteString(fmt.Sprintf("\tif got := %sVariant(%s); got != variant {\n", f.Group.LowerName(), expr))
				code.WriteString(fmt.Sprintf("\t\treturn buf, wire.Mismatch(%q, variant, got)\n", l.Name+"."+f.Name))
				code.WriteString("\t}\n")
				imports = append(imports, importWire)
			}
			code.WriteString(fmt.Sprintf("\tif buf, err = append%s(buf, %s); err != nil {\n", f.Group.GoName, expr))
			code.WriteString("\t\treturn buf, err\n")
			code.WriteString("\t}\n")
		}
	}
	code.WriteString("\treturn buf, nil\n")
	code.WriteString("}\n")

	return Decl{Name: l.GoName + ".AppendFrame", Code: code.String(), Imports: imports}
}

func (g *Generator) structUnmarshal(l *analyzer.StructLayout) Decl {
	var code strings.Builder
	imports := []string{}
	ems := g.emitters()

	code.WriteString("// UnmarshalFrame decodes p from the front of buf and returns the bytes consumed\n")
	if len(l.Externals) > 0 {
		code.WriteString(fmt.Sprintf("func (p *%s) UnmarshalFrame(buf []byte, sel %s) (int, error) {\n", l.GoName, l.SelectorsType()))
	} else {
		code.WriteString(fmt.Sprintf("func (p *%s) UnmarshalFrame(buf []byte) (int, error) {\n", l.GoName))
	}
	if len(l.Fields) == 0 {
		code.WriteString("\treturn 0, nil\n")
		code.WriteString("}\n")
		return Decl{Name: l.GoName + ".UnmarshalFrame", Code: code.String()}
	}

	imports = append(imports, importWire)
	if !l.Fixed() {
		code.WriteString("\tvar variant, n int\n")
		code.WriteString("\tvar err error\n")
	}
	code.WriteString("\toff := 0\n")

	for _, f := range l.Fields {
		code.WriteString(fieldComment(f))
		expr := "p." + f.GoName

		if f.Kind == schema.AlternativeField {
			if f.Binding.Sibling >= 0 {
				code.WriteString(fmt.Sprintf("\tif variant, err = p.%s(); err != nil {\n", variantMethod(f)))
			} else {
				ext := externalField(l, f.Binding)
				code.WriteString(fmt.Sprintf("\tif variant, err = p.%s(sel.%s); err != nil {\n", variantMethod(f), ext))
			}
			code.WriteString("\t\treturn off, err\n")
			code.WriteString("\t}\n")
			code.WriteString(fmt.Sprintf("\tif %s, n, err = decode%s(buf[off:], variant); err != nil {\n", expr, f.Group.GoName))
			code.WriteString("\t\treturn off, err\n")
			code.WriteString("\t}\n")
			code.WriteString("\toff += n\n")
			continue
		}

		code.WriteString(fmt.Sprintf("\tif len(buf) < off+%d {\n", f.Size))
		code.WriteString(fmt.Sprintf("\t\treturn off, wire.Truncated(%q, %d, len(buf)-off)\n", l.Name+"."+f.Name, f.Size))
		code.WriteString("\t}\n")
		switch f.Kind {
		case schema.FixedInt:
			code.WriteString(fmt.Sprintf("\t%s = %s\n", expr, ems[f.Size].read(emitCtx{expr: expr})))
		case schema.RawBytes:
			code.WriteString(fmt.Sprintf("\tcopy(%s[:], buf[off:off+%d])\n", expr, f.Size))
		case schema.EmbeddedBitfield:
			code.WriteString(fmt.Sprintf("\t%s = %s\n", expr, ems[f.Size].read(emitCtx{expr: expr, cast: f.Bits.GoName})))
		}
		if f.Size > 1 && f.Kind != schema.RawBytes {
			imports = append(imports, importBinary)
		}
		if f.Size == 1 {
			code.WriteString("\toff++\n")
		} else {
			code.WriteString(fmt.Sprintf("\toff += %d\n", f.Size))
		}
	}
	code.WriteString("\treturn off, nil\n")
	code.WriteString("}\n")

	return Decl{Name: l.GoName + ".UnmarshalFrame", Code: code.String(), Imports: imports}
}

// externalField returns the Selectors field carrying b's value
func externalField(l *analyzer.StructLayout, b *analyzer.Binding) string {
	for _, e := range l.Externals {
		if e.Source == b.Source && e.Slot.Name == b.Slot.Name {
			return e.GoName
		}
	}
	return b.Slot.GoName
}
