// Package sink collects generated declarations for one output file and
// persists them as a unit
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexhholmes/framegen/internal/codegen"
)

// ErrWrite wraps every failure to persist a rendered file
var ErrWrite = errors.New("sink write failed")

// Header opens every generated file
const Header = "// Code generated by framegen. DO NOT EDIT.\n"

// File is an ordered buffer of declarations for one Go source file
type File struct {
	pkg     string
	decls   []codegen.Decl
	imports map[string]bool
}

// NewFile returns an empty file in package pkg
func NewFile(pkg string) *File {
	return &File{pkg: pkg, imports: make(map[string]bool)}
}

// Add appends declarations in order and merges their imports
func (f *File) Add(decls ...codegen.Decl) {
	for _, d := range decls {
		f.decls = append(f.decls, d)
		for _, imp := range d.Imports {
			f.imports[imp] = true
		}
	}
}

// Len returns the number of buffered declarations
func (f *File) Len() int {
	return len(f.decls)
}

// Names returns the buffered declaration names in order
func (f *File) Names() []string {
	names := make([]string, len(f.decls))
	for i, d := range f.decls {
		names[i] = d.Name
	}
	return names
}

// Imports returns the merged import paths, sorted
func (f *File) Imports() []string {
	out := make([]string, 0, len(f.imports))
	for imp := range f.imports {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

// Render concatenates the header, package clause, imports and
// declarations, then gofmts the result
func (f *File) Render() ([]byte, error) {
	var src strings.Builder
	src.WriteString(Header)
	src.WriteString("\n")
	src.WriteString(fmt.Sprintf("package %s\n", f.pkg))

	imports := f.Imports()
	std, ext := splitImports(imports)
	if len(imports) > 0 {
		src.WriteString("\nimport (\n")
		for _, imp := range std {
			src.WriteString(fmt.Sprintf("\t%q\n", imp))
		}
		if len(std) > 0 && len(ext) > 0 {
			src.WriteString("\n")
		}
		for _, imp := range ext {
			src.WriteString(fmt.Sprintf("\t%q\n", imp))
		}
		src.WriteString(")\n")
	}

	for _, d := range f.decls {
		src.WriteString("\n")
		src.WriteString(d.Code)
	}

	out, err := format.Source([]byte(src.String()))
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", f.pkg, err)
	}
	return out, nil
}

// splitImports separates standard library paths from module paths
func splitImports(imports []string) (std, ext []string) {
	for _, imp := range imports {
		first, _, _ := strings.Cut(imp, "/")
		if strings.Contains(first, ".") {
			ext = append(ext, imp)
		} else {
			std = append(std, imp)
		}
	}
	return std, ext
}

// WriteFile renders f and writes it to path. The file is written to a
// temporary sibling and renamed into place, so a failure leaves any
// previous content untouched. Every failure wraps ErrWrite.
func (f *File) WriteFile(path string) (err error) {
	out, err := f.Render()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
