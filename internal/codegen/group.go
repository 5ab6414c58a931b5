package codegen

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/framegen/internal/analyzer"
)

// Alternatives generates the variant structures compiled for the batch,
// then one sealed sum type and its dispatch helpers per group
func (g *Generator) Alternatives(a *analyzer.AltLayout) []Decl {
	var decls []Decl
	for _, l := range a.Compiled {
		decls = append(decls, g.Structure(l)...)
	}
	for _, grp := range a.Groups {
		decls = append(decls, g.Group(grp)...)
	}
	return decls
}

// Group generates the sum type of one variant group: an interface sealed
// by a marker method on every variant, plus position, decode, append and
// size helpers used by owning structures
func (g *Generator) Group(grp *analyzer.GroupLayout) []Decl {
	return []Decl{groupInterface(grp), groupVariant(grp), groupDecode(grp), groupAppend(grp), groupSize(grp)}
}

func groupInterface(grp *analyzer.GroupLayout) Decl {
	var code strings.Builder
	cases := grp.Cases()
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.GoName
	}

	code.WriteString(fmt.Sprintf("// %s is one of %s; %s is the fallback\n", grp.GoName, strings.Join(names, ", "), grp.Fallback.GoName))
	code.WriteString(fmt.Sprintf("type %s interface {\n", grp.GoName))
	code.WriteString(fmt.Sprintf("\tis%s()\n", grp.GoName))
	code.WriteString("\tSize() int\n")
	code.WriteString("\tAppendFrame(buf []byte) ([]byte, error)\n")
	code.WriteString("}\n")
	for _, c := range cases {
		code.WriteString(fmt.Sprintf("\nfunc (*%s) is%s() {}\n", c.GoName, grp.GoName))
	}
	return Decl{Name: grp.GoName, Code: code.String()}
}

func groupVariant(grp *analyzer.GroupLayout) Decl {
	var code strings.Builder
	name := grp.LowerName() + "Variant"

	code.WriteString(fmt.Sprintf("// %s returns the position of v in %s, 0 for nil and the fallback\n", name, grp.GoName))
	code.WriteString(fmt.Sprintf("func %s(v %s) int {\n", name, grp.GoName))
	if len(grp.Variants) > 0 {
		code.WriteString("\tswitch v.(type) {\n")
		for i, c := range grp.Variants {
			code.WriteString(fmt.Sprintf("\tcase *%s:\n", c.GoName))
			code.WriteString(fmt.Sprintf("\t\treturn %d\n", i+1))
		}
		code.WriteString("\t}\n")
	}
	code.WriteString("\treturn 0\n")
	code.WriteString("}\n")
	return Decl{Name: name, Code: code.String()}
}

func groupDecode(grp *analyzer.GroupLayout) Decl {
	var code strings.Builder
	name := "decode" + grp.GoName

	code.WriteString(fmt.Sprintf("// %s decodes the variant at position variant from the front of buf\n", name))
	code.WriteString(fmt.Sprintf("func %s(buf []byte, variant int) (%s, int, error) {\n", name, grp.GoName))
	code.WriteString("\tswitch variant {\n")
	for i, c := range grp.Cases() {
		code.WriteString(fmt.Sprintf("\tcase %d:\n", i))
		code.WriteString(fmt.Sprintf("\t\tv := new(%s)\n", c.GoName))
		code.WriteString("\t\tn, err := v.UnmarshalFrame(buf)\n")
		code.WriteString("\t\treturn v, n, err\n")
	}
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn nil, 0, wire.Unresolved(%q, uint64(variant))\n", grp.Name))
	code.WriteString("}\n")
	return Decl{Name: name, Code: code.String(), Imports: []string{importWire}}
}

func groupAppend(grp *analyzer.GroupLayout) Decl {
	var code strings.Builder
	name := "append" + grp.GoName

	code.WriteString(fmt.Sprintf("// %s appends v to buf; nil encodes as the fallback\n", name))
	code.WriteString(fmt.Sprintf("func %s(buf []byte, v %s) ([]byte, error) {\n", name, grp.GoName))
	code.WriteString("\tif v == nil {\n")
	code.WriteString(fmt.Sprintf("\t\tv = new(%s)\n", grp.Fallback.GoName))
	code.WriteString("\t}\n")
	code.WriteString("\treturn v.AppendFrame(buf)\n")
	code.WriteString("}\n")
	return Decl{Name: name, Code: code.String()}
}

func groupSize(grp *analyzer.GroupLayout) Decl {
	var code strings.Builder
	name := "size" + grp.GoName

	code.WriteString(fmt.Sprintf("// %s returns the encoded size of v; nil counts as the fallback\n", name))
	code.WriteString(fmt.Sprintf("func %s(v %s) int {\n", name, grp.GoName))
	code.WriteString("\tif v == nil {\n")
	code.WriteString(fmt.Sprintf("\t\treturn %d\n", grp.Fallback.StaticSize))
	code.WriteString("\t}\n")
	code.WriteString("\treturn v.Size()\n")
	code.WriteString("}\n")
	return Decl{Name: name, Code: code.String()}
}
