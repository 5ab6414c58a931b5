package codegen

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/framegen/internal/analyzer"
)

// Bitfield generates the container type, one enum type per enumerated
// slot, slot accessors, the Fields codec and byte-level framing
func (g *Generator) Bitfield(l *analyzer.BitLayout) []Decl {
	decls := []Decl{g.containerType(l)}
	for _, s := range l.Named() {
		if s.Enumerated() {
			decls = append(decls, enumType(l, s))
		}
	}
	for _, s := range l.Named() {
		decls = append(decls, getter(l, s))
	}
	decls = append(decls, decodeFields(l), encodeFields(l), g.containerFrame(l))
	return decls
}

func (g *Generator) containerType(l *analyzer.BitLayout) Decl {
	var code strings.Builder
	code.WriteString(fmt.Sprintf("// %s is a uint%d bit container\n", l.GoName, l.Bits))
	code.WriteString(docLines(l.Description))
	code.WriteString(fmt.Sprintf("type %s uint%d\n", l.GoName, l.Bits))
	return Decl{Name: l.GoName, Code: code.String()}
}

func enumType(l *analyzer.BitLayout, s analyzer.Slot) Decl {
	name := l.EnumType(s)
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// %s enumerates %s.%s\n", name, l.Name, s.Name))
	code.WriteString(docLines(s.Description))
	code.WriteString(fmt.Sprintf("type %s uint%d\n\n", name, s.ValueBits()))

	code.WriteString("const (\n")
	for _, sym := range s.Symbols {
		code.WriteString(fmt.Sprintf("\t%s %s = %d%s\n", sym.GoName, name, sym.Value, trailing(sym.Description)))
	}
	code.WriteString(")\n\n")

	code.WriteString(fmt.Sprintf("func (v %s) String() string {\n", name))
	code.WriteString("\tswitch v {\n")
	for _, sym := range s.Symbols {
		code.WriteString(fmt.Sprintf("\tcase %s:\n", sym.GoName))
		code.WriteString(fmt.Sprintf("\t\treturn %q\n", sym.Name))
	}
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn fmt.Sprintf(\"%s(%%d)\", uint64(v))\n", name))
	code.WriteString("}\n")

	return Decl{Name: name, Code: code.String(), Imports: []string{importFmt}}
}

// getter extracts (c >> offset) & mask; enumerated slots reject values
// outside their domain
func getter(l *analyzer.BitLayout, s analyzer.Slot) Decl {
	var code strings.Builder
	extract := fmt.Sprintf("%s & %#x", shifted("c", s.Offset), s.Mask())

	code.WriteString(fmt.Sprintf("// %s returns bits [%d, %d)\n", s.GoName, s.Offset, s.Offset+s.Width))
	code.WriteString(docLines(s.Description))

	if !s.Enumerated() {
		code.WriteString(fmt.Sprintf("func (c %s) %s() uint%d {\n", l.GoName, s.GoName, s.ValueBits()))
		code.WriteString(fmt.Sprintf("\treturn uint%d(%s)\n", s.ValueBits(), extract))
		code.WriteString("}\n")
		return Decl{Name: l.GoName + "." + s.GoName, Code: code.String()}
	}

	enum := l.EnumType(s)
	code.WriteString(fmt.Sprintf("func (c %s) %s() (%s, error) {\n", l.GoName, s.GoName, enum))
	code.WriteString(fmt.Sprintf("\tv := %s(%s)\n", enum, extract))
	code.WriteString("\tswitch v {\n")
	code.WriteString(fmt.Sprintf("\tcase %s:\n", caseList(s.Symbols)))
	code.WriteString("\t\treturn v, nil\n")
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn v, wire.Undeclared(%q, uint64(v))\n", l.Name+"."+s.Name))
	code.WriteString("}\n")
	return Decl{Name: l.GoName + "." + s.GoName, Code: code.String(), Imports: []string{importWire}}
}

// decodeFields emits the Fields struct and Decode
func decodeFields(l *analyzer.BitLayout) Decl {
	var code strings.Builder
	fields := l.FieldsType()
	named := l.Named()

	code.WriteString(fmt.Sprintf("// %s holds the named slots of a %s\n", fields, l.GoName))
	if len(named) == 0 {
		code.WriteString(fmt.Sprintf("type %s struct{}\n\n", fields))
	} else {
		code.WriteString(fmt.Sprintf("type %s struct {\n", fields))
		for _, s := range named {
			code.WriteString(fmt.Sprintf("\t%s %s\n", s.GoName, slotType(l, s)))
		}
		code.WriteString("}\n\n")
	}

	hasEnum := false
	for _, s := range named {
		hasEnum = hasEnum || s.Enumerated()
	}

	code.WriteString("// Decode extracts every named slot of c\n")
	code.WriteString(fmt.Sprintf("func (c %s) Decode() (%s, error) {\n", l.GoName, fields))
	code.WriteString(fmt.Sprintf("\tvar v %s\n", fields))
	if hasEnum {
		code.WriteString("\tvar err error\n")
	}
	for _, s := range named {
		if !s.Enumerated() {
			code.WriteString(fmt.Sprintf("\tv.%s = c.%s()\n", s.GoName, s.GoName))
			continue
		}
		code.WriteString(fmt.Sprintf("\tif v.%s, err = c.%s(); err != nil {\n", s.GoName, s.GoName))
		code.WriteString("\t\treturn v, err\n")
		code.WriteString("\t}\n")
	}
	code.WriteString("\treturn v, nil\n")
	code.WriteString("}\n")

	return Decl{Name: fields, Code: code.String()}
}

// encodeFields emits Encode. The container is built from zero so reserved
// bits are always clear.
func encodeFields(l *analyzer.BitLayout) Decl {
	var code strings.Builder
	var imports []string

	code.WriteString(fmt.Sprintf("// Encode packs v into a %s with every reserved bit clear\n", l.GoName))
	code.WriteString(fmt.Sprintf("func (v %s) Encode() (%s, error) {\n", l.FieldsType(), l.GoName))
	code.WriteString(fmt.Sprintf("\tvar c %s\n", l.GoName))
	for _, s := range l.Named() {
		label := l.Name + "." + s.Name
		value := "v." + s.GoName
		switch {
		case s.Enumerated():
			code.WriteString(fmt.Sprintf("\tswitch %s {\n", value))
			code.WriteString(fmt.Sprintf("\tcase %s:\n", caseList(s.Symbols)))
			code.WriteString("\tdefault:\n")
			code.WriteString(fmt.Sprintf("\t\treturn 0, wire.Undeclared(%q, uint64(%s))\n", label, value))
			code.WriteString("\t}\n")
			imports = []string{importWire}
		case s.Width < s.ValueBits():
			code.WriteString(fmt.Sprintf("\tif %s > %#x {\n", value, s.Mask()))
			code.WriteString(fmt.Sprintf("\t\treturn 0, wire.OutOfRange(%q, uint64(%s), %d)\n", label, value, s.Width))
			code.WriteString("\t}\n")
			imports = []string{importWire}
		}
		if s.Offset == 0 {
			code.WriteString(fmt.Sprintf("\tc |= %s(%s)\n", l.GoName, value))
		} else {
			code.WriteString(fmt.Sprintf("\tc |= %s(%s) << %d\n", l.GoName, value, s.Offset))
		}
	}
	code.WriteString("\treturn c, nil\n")
	code.WriteString("}\n")

	return Decl{Name: l.FieldsType() + ".Encode", Code: code.String(), Imports: imports}
}

// containerFrame emits AppendFrame and UnmarshalFrame for the container
func (g *Generator) containerFrame(l *analyzer.BitLayout) Decl {
	var code strings.Builder
	imports := []string{importWire}
	n := l.Bytes()
	em := g.emitters()[n]
	ctx := emitCtx{expr: "c", cast: l.GoName}
	if n > 1 {
		imports = append(imports, importBinary)
	}

	code.WriteString(fmt.Sprintf("// AppendFrame appends the %d-byte encoding of c to buf\n", n))
	code.WriteString(fmt.Sprintf("func (c %s) AppendFrame(buf []byte) []byte {\n", l.GoName))
	code.WriteString(fmt.Sprintf("\treturn %s\n", em.append(ctx)))
	code.WriteString("}\n\n")

	code.WriteString("// UnmarshalFrame reads c from the front of buf\n")
	code.WriteString(fmt.Sprintf("func (c *%s) UnmarshalFrame(buf []byte) (int, error) {\n", l.GoName))
	code.WriteString(fmt.Sprintf("\tif len(buf) < %d {\n", n))
	code.WriteString(fmt.Sprintf("\t\treturn 0, wire.Truncated(%q, %d, len(buf))\n", l.Name, n))
	code.WriteString("\t}\n")
	read := strings.ReplaceAll(em.read(ctx), "buf[off:]", "buf")
	read = strings.ReplaceAll(read, "buf[off]", "buf[0]")
	code.WriteString(fmt.Sprintf("\t*c = %s\n", read))
	code.WriteString(fmt.Sprintf("\treturn %d, nil\n", n))
	code.WriteString("}\n")

	return Decl{Name: l.GoName + ".Frame", Code: code.String(), Imports: imports}
}

// slotType returns the Go type of a named slot in the Fields struct
func slotType(l *analyzer.BitLayout, s analyzer.Slot) string {
	if s.Enumerated() {
		return l.EnumType(s)
	}
	return fmt.Sprintf("uint%d", s.ValueBits())
}
