package codegen

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/schema"
)

// Imports used by generated code
const (
	importBinary = "encoding/binary"
	importFmt    = "fmt"
	importWire   = "github.com/alexhholmes/framegen/wire"
)

// Decl is one generated top-level declaration group and the imports it
// needs
type Decl struct {
	Name    string
	Code    string
	Imports []string
}

// Generator generates frame codecs for compiled layouts
type Generator struct {
	endian string // "little" or "big"
}

// Option configures a Generator
type Option func(*Generator)

// WithEndian selects the byte order of multi-byte integers and containers
func WithEndian(endian string) Option {
	return func(g *Generator) {
		switch strings.ToLower(endian) {
		case "big", "be":
			g.endian = "big"
		default:
			g.endian = "little"
		}
	}
}

// NewGenerator creates a new code generator
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{endian: "little"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// endianPrefix returns "binary.LittleEndian" or "binary.BigEndian"
func (g *Generator) endianPrefix() string {
	if g.endian == "big" {
		return "binary.BigEndian"
	}
	return "binary.LittleEndian"
}

// intEmitter holds append/read code generators for one integer width
type intEmitter struct {
	append func(c emitCtx) string
	read   func(c emitCtx) string
}

// emitCtx carries context for code emission
type emitCtx struct {
	expr string // Go expression of the value, e.g. "p.Seq"
	cast string // conversion applied on read, empty for plain integers
}

// emitters returns per-width integer codecs honoring the byte order
func (g *Generator) emitters() map[int]intEmitter {
	wrap := func(c emitCtx, v string) string {
		if c.cast == "" {
			return v
		}
		return c.cast + "(" + v + ")"
	}
	widths := map[int]intEmitter{
		1: {
			append: func(c emitCtx) string {
				if c.cast != "" {
					return fmt.Sprintf("append(buf, byte(%s))", c.expr)
				}
				return fmt.Sprintf("append(buf, %s)", c.expr)
			},
			read: func(c emitCtx) string {
				return wrap(c, "buf[off]")
			},
		},
	}
	for _, n := range []int{2, 4, 8} {
		bits := n * 8
		widths[n] = intEmitter{
			append: func(c emitCtx) string {
				v := c.expr
				if c.cast != "" {
					v = fmt.Sprintf("uint%d(%s)", bits, c.expr)
				}
				return fmt.Sprintf("%s.AppendUint%d(buf, %s)", g.endianPrefix(), bits, v)
			},
			read: func(c emitCtx) string {
				return wrap(c, fmt.Sprintf("%s.Uint%d(buf[off:])", g.endianPrefix(), bits))
			},
		}
	}
	return widths
}

// goType returns the Go type of a structure field
func goType(f analyzer.FieldLayout) string {
	switch f.Kind {
	case schema.FixedInt:
		return fmt.Sprintf("uint%d", f.Size*8)
	case schema.RawBytes:
		return fmt.Sprintf("[%d]byte", f.Size)
	case schema.EmbeddedBitfield:
		return f.Bits.GoName
	case schema.AlternativeField:
		return f.Group.GoName
	}
	return "invalid"
}

// docLines renders a description as comment lines
func docLines(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("//\n")
	for _, line := range strings.Split(desc, "\n") {
		b.WriteString(strings.TrimRight("// "+strings.TrimSpace(line), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// trailing renders a description as an end-of-line comment
func trailing(desc string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		return ""
	}
	return " // " + desc
}

// shifted returns "expr" or "(expr >> off)"
func shifted(expr string, off int) string {
	if off == 0 {
		return expr
	}
	return fmt.Sprintf("(%s >> %d)", expr, off)
}

// caseList joins symbol constants for a switch case, one per line past four
func caseList(syms []analyzer.Symbol) string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.GoName
	}
	if len(names) <= 4 {
		return strings.Join(names, ", ")
	}
	return strings.Join(names, ",\n\t\t")
}
