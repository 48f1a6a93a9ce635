package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is the result of one collection run.
type Catalog struct {
	Objects         []Object  `json:"objects" yaml:"objects"`
	Enums           []Enum    `json:"enums" yaml:"enums"`
	Generics        []Generic `json:"generics" yaml:"generics"`
	Unions          []Union   `json:"unions" yaml:"unions"`
	UnboundGenerics []Object  `json:"unboundGenerics" yaml:"unboundGenerics"`
}

// AddObject records a plain object descriptor.
func (c *Catalog) AddObject(o Object) { c.Objects = append(c.Objects, o) }

// AddEnum records an enum descriptor.
func (c *Catalog) AddEnum(e Enum) { c.Enums = append(c.Enums, e) }

// AddGeneric records a generic instantiation.
func (c *Catalog) AddGeneric(g Generic) { c.Generics = append(c.Generics, g) }

// AddUnion records a union descriptor.
func (c *Catalog) AddUnion(u Union) { c.Unions = append(c.Unions, u) }

// AddUnboundGeneric records a generic template descriptor.
func (c *Catalog) AddUnboundGeneric(o Object) { c.UnboundGenerics = append(c.UnboundGenerics, o) }

// Aggregate returns the final form of c: every list stably sorted by
// FullName using ordinal comparison, generics deduplicated by value
// keeping the first occurrence. c is not modified.
func Aggregate(c *Catalog) *Catalog {
	out := &Catalog{
		Objects:         slices.Clone(c.Objects),
		Enums:           slices.Clone(c.Enums),
		Generics:        distinct(c.Generics),
		Unions:          slices.Clone(c.Unions),
		UnboundGenerics: slices.Clone(c.UnboundGenerics),
	}

	slices.SortStableFunc(out.Objects, func(a, b Object) int { return strings.Compare(a.FullName, b.FullName) })
	slices.SortStableFunc(out.Enums, func(a, b Enum) int { return strings.Compare(a.FullName, b.FullName) })
	slices.SortStableFunc(out.Generics, func(a, b Generic) int { return strings.Compare(a.FullName, b.FullName) })
	slices.SortStableFunc(out.Unions, func(a, b Union) int { return strings.Compare(a.FullName, b.FullName) })
	slices.SortStableFunc(out.UnboundGenerics, func(a, b Object) int { return strings.Compare(a.FullName, b.FullName) })
	return out
}

func distinct(in []Generic) []Generic {
	seen := make(map[Generic]bool, len(in))
	out := make([]Generic, 0, len(in))
	for _, g := range in {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// Object returns the object descriptor with the given FullName.
func (c *Catalog) Object(fullName string) (Object, bool) {
	for _, o := range c.Objects {
		if o.FullName == fullName {
			return o, true
		}
	}
	return Object{}, false
}

// Generic returns the first generic descriptor with the given FullName.
func (c *Catalog) Generic(fullName string) (Generic, bool) {
	for _, g := range c.Generics {
		if g.FullName == fullName {
			return g, true
		}
	}
	return Generic{}, false
}

// Summary counts the descriptors per catalogue.
type Summary struct {
	Objects         int
	Enums           int
	Generics        int
	Unions          int
	UnboundGenerics int
}

// Summarize returns the descriptor counts of c.
func Summarize(c *Catalog) Summary {
	return Summary{
		Objects:         len(c.Objects),
		Enums:           len(c.Enums),
		Generics:        len(c.Generics),
		Unions:          len(c.Unions),
		UnboundGenerics: len(c.UnboundGenerics),
	}
}

// Total returns the number of descriptors.
func (s Summary) Total() int {
	return s.Objects + s.Enums + s.Generics + s.Unions + s.UnboundGenerics
}

func (s Summary) String() string {
	return fmt.Sprintf("objects=%d enums=%d generics=%d unions=%d unbound=%d",
		s.Objects, s.Enums, s.Generics, s.Unions, s.UnboundGenerics)
}
