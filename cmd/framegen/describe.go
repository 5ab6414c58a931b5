package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexhholmes/framegen/internal/analyzer"
	"github.com/alexhholmes/framegen/internal/schema"
	"github.com/alexhholmes/framegen/wire"
)

type cmdDescribe struct {
	stdio
	opts runOptions

	decode  string
	hexData string
	selects map[string]string
}

func (*cmdDescribe) help() *commandHelp {
	return &commandHelp{
		usage:   "describe [options] [SCHEMA.yaml ...]",
		summary: "Print compiled layouts, or decode a hex frame with --decode",
	}
}

func (cmd *cmdDescribe) flags(flags *pflag.FlagSet) {
	cmd.opts.flags(flags)
	flags.StringVar(&cmd.decode, "decode", "", "bitfield or structure to decode --hex as")
	flags.StringVar(&cmd.hexData, "hex", "", "hex-encoded frame bytes")
	flags.StringToStringVar(&cmd.selects, "select", nil, "external selector as Container.slot=value (symbol or number)")
}

func (cmd *cmdDescribe) run(ctx context.Context, argv []string) int {
	cfg, err := cmd.opts.resolve(argv)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	units, err := collectUnits(cfg)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}

	reg, err := newPipeline(cfg, newLogger(cfg, &cmd.stdio)).Compile(units)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}

	if cmd.decode == "" {
		describeRegistry(cmd.out(), reg)
		return 0
	}

	order, err := wire.Order(cfg.Endian)
	if err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	buf, err := hex.DecodeString(strings.ReplaceAll(cmd.hexData, " ", ""))
	if err != nil {
		fmt.Fprintf(cmd.errOut(), "invalid --hex: %v\n", err)
		return 1
	}
	if err := decodeFrame(cmd.out(), reg, cmd.decode, buf, order, cmd.selects); err != nil {
		fmt.Fprintln(cmd.errOut(), err)
		return 1
	}
	return 0
}

func describeRegistry(w io.Writer, reg *analyzer.Registry) {
	for _, l := range reg.BitFields() {
		describeBitField(w, l)
	}
	for _, g := range reg.Groups() {
		describeGroup(w, g)
	}
	for _, l := range reg.Structures() {
		describeStructure(w, l)
	}
}

func describeBitField(w io.Writer, l *analyzer.BitLayout) {
	fmt.Fprintf(w, "\nbitfield %s (%d bits)\n", l.Name, l.Bits)
	for _, s := range l.Slots {
		name := s.Name
		if s.Reserved {
			name = "(reserved)"
		}
		fmt.Fprintf(w, "  %-24s [%2d, %2d) ", name, s.Offset, s.Offset+s.Width)
		if s.Enumerated() {
			syms := make([]string, len(s.Symbols))
			for i, sym := range s.Symbols {
				syms[i] = fmt.Sprintf("%s=%d", sym.Name, sym.Value)
			}
			fmt.Fprint(w, strings.Join(syms, " "))
		}
		fmt.Fprintln(w)
	}
}

func describeGroup(w io.Writer, g *analyzer.GroupLayout) {
	fmt.Fprintf(w, "\ngroup %s\n", g.Name)
	for i, c := range g.Cases() {
		fmt.Fprintf(w, "  %d %-22s %s", i, c.Name, byteCount(c.StaticSize))
		if i == 0 {
			fmt.Fprint(w, " (fallback)")
		}
		fmt.Fprintln(w)
	}
}

func describeStructure(w io.Writer, l *analyzer.StructLayout) {
	if l.Fixed() {
		fmt.Fprintf(w, "\nstructure %s (%s)\n", l.Name, byteCount(l.StaticSize))
	} else {
		fmt.Fprintf(w, "\nstructure %s (%s plus variant)\n", l.Name, byteCount(l.StaticSize))
	}
	for _, f := range l.Fields {
		at := "@?"
		if f.Offset >= 0 {
			at = fmt.Sprintf("@%d", f.Offset)
		}
		fmt.Fprintf(w, "  %-24s %-5s %s", f.Name, at, fieldType(f))
		if b := f.Binding; b != nil {
			fmt.Fprintf(w, " by %s:", b.Selector)
			for _, c := range b.Cases {
				vl, _ := f.Group.Case(c.Variant)
				fmt.Fprintf(w, " %s->%s", c.Symbol.Name, vl.Name)
			}
		}
		fmt.Fprintln(w)
	}
}

func fieldType(f analyzer.FieldLayout) string {
	switch f.Kind {
	case schema.FixedInt:
		return fmt.Sprintf("u%d", f.Size*8)
	case schema.RawBytes:
		return fmt.Sprintf("[%d]byte", f.Size)
	case schema.EmbeddedBitfield:
		return f.Bits.Name
	case schema.AlternativeField:
		return "alt " + f.Group.Name
	}
	return f.Kind.String()
}

func byteCount(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}

// decodeFrame decodes buf as the named bitfield or structure with the
// reference codec and prints the result
func decodeFrame(w io.Writer, reg *analyzer.Registry, name string, buf []byte, order wire.ByteOrder, selects map[string]string) error {
	if l, ok := reg.BitField(name); ok {
		if len(buf) < l.Bytes() {
			return wire.Truncated(l.Name, l.Bytes(), len(buf))
		}
		raw := wire.Uint(buf, l.Bytes(), order)
		fmt.Fprintf(w, "%s = %#x\n", l.Name, raw)
		return printBits(w, "  ", l, raw)
	}

	l, ok := reg.Structure(name)
	if !ok {
		return fmt.Errorf("no bitfield or structure named %q", name)
	}
	sel, err := parseSelectors(reg, selects)
	if err != nil {
		return err
	}
	rec, n, err := l.Decode(buf, order, sel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%d of %d bytes)\n", l.Name, n, len(buf))
	return printRecord(w, "  ", l, rec)
}

func printRecord(w io.Writer, indent string, l *analyzer.StructLayout, rec analyzer.Record) error {
	for _, f := range l.Fields {
		switch f.Kind {
		case schema.FixedInt:
			v := rec[f.Name].(uint64)
			fmt.Fprintf(w, "%s%s = %d (%#x)\n", indent, f.Name, v, v)
		case schema.RawBytes:
			fmt.Fprintf(w, "%s%s = %s\n", indent, f.Name, hex.EncodeToString(rec[f.Name].([]byte)))
		case schema.EmbeddedBitfield:
			raw := rec[f.Name].(uint64)
			fmt.Fprintf(w, "%s%s = %#x\n", indent, f.Name, raw)
			if err := printBits(w, indent+"  ", f.Bits, raw); err != nil {
				return err
			}
		case schema.AlternativeField:
			v := rec[f.Name].(analyzer.Variant)
			vl, _ := f.Group.Case(v.Index)
			fmt.Fprintf(w, "%s%s = %s\n", indent, f.Name, vl.Name)
			if err := printRecord(w, indent+"  ", vl, v.Record); err != nil {
				return err
			}
		}
	}
	return nil
}

func printBits(w io.Writer, indent string, l *analyzer.BitLayout, raw uint64) error {
	syms, err := l.Symbols(raw)
	if err != nil {
		return err
	}
	for _, s := range l.Named() {
		fmt.Fprintf(w, "%s%s = %s\n", indent, s.Name, syms[s.Name])
	}
	return nil
}

// parseSelectors resolves Container.slot=value pairs. Values are symbol
// names of the slot or unsigned numbers in Go literal syntax.
func parseSelectors(reg *analyzer.Registry, raw map[string]string) (analyzer.Selectors, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sel := make(analyzer.Selectors, len(raw))
	for _, k := range keys {
		container, slotName, ok := strings.Cut(k, ".")
		if !ok {
			return nil, fmt.Errorf("selector %q: want Container.slot", k)
		}
		l, ok := reg.BitField(container)
		if !ok {
			return nil, fmt.Errorf("selector %q: no bitfield %q", k, container)
		}
		s, ok := l.Slot(slotName)
		if !ok {
			return nil, fmt.Errorf("selector %q: %s has no slot %q", k, l.Name, slotName)
		}

		v := raw[k]
		if sym, ok := s.Lookup(v); ok {
			sel[l.Name+"."+s.Name] = sym.Value
			continue
		}
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %q is neither a symbol of %s nor a number", k, v, s.Name)
		}
		sel[l.Name+"."+s.Name] = n
	}
	return sel, nil
}
