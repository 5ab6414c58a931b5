package schema

import "strings"

// AlternativeOptions is a variant group: a fallback shape plus the
// variants inserted after it
type AlternativeOptions struct {
	Name     string
	Fallback *Structure
	Variants []*Structure
}

// NewAlternativeOptions starts a group whose fallback is chosen by the zero discriminant
func NewAlternativeOptions(name string, fallback *Structure) *AlternativeOptions {
	return &AlternativeOptions{Name: name, Fallback: fallback}
}

// InsertType appends a variant
func (o *AlternativeOptions) InsertType(s *Structure) *AlternativeOptions {
	o.Variants = append(o.Variants, s)
	return o
}

// Alternatives batches independent groups rendered with one structure
type Alternatives struct {
	Groups []*AlternativeOptions
}

// NewAlternatives returns an empty batch of groups
func NewAlternatives() *Alternatives {
	return &Alternatives{}
}

// Insert adds a group to the batch
func (a *Alternatives) Insert(g *AlternativeOptions) *Alternatives {
	a.Groups = append(a.Groups, g)
	return a
}

// Lookup finds a group by case-insensitive name
func (a *Alternatives) Lookup(name string) *AlternativeOptions {
	if a == nil {
		return nil
	}
	for _, g := range a.Groups {
		if strings.EqualFold(g.Name, name) {
			return g
		}
	}
	return nil
}
