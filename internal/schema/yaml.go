package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is one schema unit loaded from YAML
type File struct {
	Package      string
	Output       string
	BitFields    []*BitField
	Structures   []*Structure
	Alternatives *Alternatives
}

type yamlFile struct {
	Package      string         `yaml:"package"`
	Output       string         `yaml:"output"`
	BitFields    []yamlBitField `yaml:"bitfields"`
	Structures   []yamlStruct   `yaml:"structures"`
	Alternatives []yamlGroup    `yaml:"alternatives"`
}

type yamlBitField struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Slots       []yamlSlot `yaml:"slots"`
}

type yamlSlot struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Bits        int        `yaml:"bits"`
	Reserved    int        `yaml:"reserved"`
	Numeric     bool       `yaml:"numeric"`
	Enum        []yamlEnum `yaml:"enum"`
}

type yamlEnum struct {
	Symbol      string `yaml:"symbol"`
	Description string `yaml:"description"`
	Value       uint64 `yaml:"value"`
}

type yamlStruct struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name      string        `yaml:"name"`
	Type      string        `yaml:"type"`
	Size      int           `yaml:"size"`
	Container string        `yaml:"container"`
	Group     string        `yaml:"group"`
	Select    *yamlSelector `yaml:"select"`
}

type yamlSelector struct {
	Field     string `yaml:"field"`
	Container string `yaml:"container"`
	Slot      string `yaml:"slot"`
}

type yamlGroup struct {
	Name     string   `yaml:"name"`
	Fallback string   `yaml:"fallback"`
	Variants []string `yaml:"variants"`
}

// LoadFile reads and parses a YAML schema
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema load failed (%s): %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema parse failed (%s): %w", path, err)
	}
	return f, nil
}

// Parse builds a File from YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var raw yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	f := &File{
		Package:      raw.Package,
		Output:       raw.Output,
		Alternatives: NewAlternatives(),
	}
	var errs []error

	for _, rb := range raw.BitFields {
		b := NewBitField(rb.Name, rb.Description)
		for i, rs := range rb.Slots {
			if rs.Reserved > 0 {
				if rs.Name != "" || rs.Bits != 0 || len(rs.Enum) > 0 {
					errs = append(errs, fmt.Errorf("bitfield %q slot %d: reserved slots take no name, bits or enum", rb.Name, i))
					continue
				}
				b.AddReserved(rs.Reserved)
				continue
			}
			if rs.Numeric && len(rs.Enum) > 0 {
				errs = append(errs, fmt.Errorf("bitfield %q slot %q: numeric slots take no enum", rb.Name, rs.Name))
				continue
			}
			b.AddBitField(rs.Name, rs.Description, rs.Bits, func(d *Domain) *Domain {
				for _, e := range rs.Enum {
					d.AddEnumValueDesc(e.Symbol, e.Description, e.Value)
				}
				return d
			})
		}
		f.BitFields = append(f.BitFields, b)
	}

	byName := make(map[string]*Structure, len(raw.Structures))
	for _, rs := range raw.Structures {
		s := NewStructure(rs.Name)
		for _, rf := range rs.Fields {
			if err := addYAMLField(s, rf); err != nil {
				errs = append(errs, fmt.Errorf("structure %q field %q: %w", rs.Name, rf.Name, err))
			}
		}
		f.Structures = append(f.Structures, s)
		byName[strings.ToLower(rs.Name)] = s
	}

	for _, rg := range raw.Alternatives {
		fallback, ok := byName[strings.ToLower(rg.Fallback)]
		if !ok {
			errs = append(errs, fmt.Errorf("alternatives %q: unknown fallback structure %q", rg.Name, rg.Fallback))
			continue
		}
		g := NewAlternativeOptions(rg.Name, fallback)
		for _, name := range rg.Variants {
			v, ok := byName[strings.ToLower(name)]
			if !ok {
				errs = append(errs, fmt.Errorf("alternatives %q: unknown variant structure %q", rg.Name, name))
				continue
			}
			g.InsertType(v)
		}
		f.Alternatives.Insert(g)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f, nil
}

func addYAMLField(s *Structure, rf yamlField) error {
	switch strings.ToLower(rf.Type) {
	case "u8", "uint8":
		s.AddU8Field(rf.Name)
	case "u16", "uint16":
		s.AddU16Field(rf.Name)
	case "u32", "uint32":
		s.AddU32Field(rf.Name)
	case "u64", "uint64":
		s.AddU64Field(rf.Name)
	case "bytes":
		s.AddBytesField(rf.Name, rf.Size)
	case "bitfield":
		if rf.Container == "" {
			return fmt.Errorf("bitfield field needs a container")
		}
		s.AddBitfield(rf.Name, rf.Container, rf.Size)
	case "alt":
		if rf.Group == "" {
			return fmt.Errorf("alt field needs a group")
		}
		if rf.Select == nil {
			return fmt.Errorf("alt field needs a select")
		}
		sel, err := rf.Select.selector()
		if err != nil {
			return err
		}
		s.AddAltField(rf.Name, rf.Group, sel)
	default:
		return fmt.Errorf("unknown field type %q", rf.Type)
	}
	return nil
}

func (y *yamlSelector) selector() (Selector, error) {
	switch {
	case y.Slot == "":
		return Selector{}, fmt.Errorf("select needs a slot")
	case y.Field != "" && y.Container != "":
		return Selector{}, fmt.Errorf("select takes field or container, not both")
	case y.Field != "":
		return Sibling(y.Field, y.Slot), nil
	case y.Container != "":
		return External(y.Container, y.Slot), nil
	}
	return Selector{}, fmt.Errorf("select needs a field or a container")
}

// Plain returns the structures without alternative fields, in order
func (f *File) Plain() []*Structure {
	var out []*Structure
	for _, s := range f.Structures {
		if !s.HasAlternatives() {
			out = append(out, s)
		}
	}
	return out
}

// Variadic returns the structures with alternative fields, in order
func (f *File) Variadic() []*Structure {
	var out []*Structure
	for _, s := range f.Structures {
		if s.HasAlternatives() {
			out = append(out, s)
		}
	}
	return out
}
