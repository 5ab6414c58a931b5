package pipeline

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alexhholmes/framegen/internal/schema"
)

// SchemaUnit turns a loaded schema file into a unit. Containers compile
// first, then structures without alternatives, then the variant groups,
// then the structures that select among them. Every failing declaration
// is reported.
func SchemaUnit(path string, f *schema.File) Unit {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Unit{
		Name:    name,
		Path:    f.Output,
		Package: f.Package,
		Build: func(b *Builder) error {
			var errs []error
			for _, bf := range f.BitFields {
				if _, err := b.AddBitfield(bf); err != nil {
					errs = append(errs, err)
				}
			}
			for _, s := range f.Plain() {
				if _, err := b.AddStruct(s); err != nil {
					errs = append(errs, err)
				}
			}
			if f.Alternatives != nil && len(f.Alternatives.Groups) > 0 {
				if _, err := b.AddAlternatives(f.Alternatives); err != nil {
					errs = append(errs, err)
				}
			}
			for _, s := range f.Variadic() {
				if _, err := b.AddStruct(s); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}

// LoadUnits loads every schema path into a unit
func LoadUnits(paths []string) ([]Unit, error) {
	var (
		units []Unit
		errs  []error
	)
	for _, path := range paths {
		f, err := schema.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		units = append(units, SchemaUnit(path, f))
	}
	return units, errors.Join(errs...)
}
