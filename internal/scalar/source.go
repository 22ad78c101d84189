// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

type (
	// Literal is a raw 32-bit constant value.
	Literal uint32

	// Source is one contributor to a location's value: either another
	// location or a literal constant. The zero Source is not valid.
	Source struct {
		loc     Location
		literal Literal
		isLit   bool
	}

	// SourceSet is an unordered set of sources.
	SourceSet map[Source]struct{}
)

// String formats the literal as 0x%08X.
func (l Literal) String() string { return fmt.Sprintf("0x%08X", uint32(l)) }

// From returns a location source.
func From(loc Location) Source { return Source{loc: loc} }

// FromLiteral returns a literal source.
func FromLiteral(v Literal) Source { return Source{literal: v, isLit: true} }

// IsLiteral reports whether the source is a literal constant.
func (s Source) IsLiteral() bool { return s.isLit }

// Location returns the source location. It is the zero Location for literals.
func (s Source) Location() Location { return s.loc }

// Literal returns the literal value. It is zero for location sources.
func (s Source) Literal() Literal { return s.literal }

// String formats the source as a location or a literal.
func (s Source) String() string {
	if s.isLit {
		return s.literal.String()
	}
	return s.loc.String()
}

// Compare orders location sources before literals; locations by
// Location.Compare and literals by value.
func (s Source) Compare(o Source) int {
	switch {
	case s.isLit && o.isLit:
		return cmp.Compare(s.literal, o.literal)
	case s.isLit:
		return 1
	case o.isLit:
		return -1
	default:
		return s.loc.Compare(o.loc)
	}
}

// NewSourceSet returns a set holding srcs.
func NewSourceSet(srcs ...Source) SourceSet {
	s := make(SourceSet, len(srcs))
	for _, src := range srcs {
		s[src] = struct{}{}
	}
	return s
}

// Add inserts src.
func (s SourceSet) Add(src Source) { s[src] = struct{}{} }

// Union inserts every member of o.
func (s SourceSet) Union(o SourceSet) {
	for src := range o {
		s[src] = struct{}{}
	}
}

// Has reports whether src is a member.
func (s SourceSet) Has(src Source) bool {
	_, ok := s[src]
	return ok
}

// Clone returns an independent copy of the set.
func (s SourceSet) Clone() SourceSet {
	if s == nil {
		return SourceSet{}
	}
	return maps.Clone(s)
}

// IsSubsetOf reports whether every member of s is in o.
func (s SourceSet) IsSubsetOf(o SourceSet) bool {
	for src := range s {
		if !o.Has(src) {
			return false
		}
	}
	return true
}

// Sorted returns the members ordered by Source.Compare.
func (s SourceSet) Sorted() []Source {
	return slices.SortedFunc(maps.Keys(s), Source.Compare)
}
