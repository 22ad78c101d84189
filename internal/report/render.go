// SPDX-License-Identifier: MPL-2.0

package report

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"github.com/fxodeps/fxodeps/internal/scalar"
)

type (
	// Option configures rendering.
	Option func(*options)

	options struct {
		kinds bool
	}
)

// WithKinds suffixes each vector group with its register's value kind
// ("r3.xyz:float").
func WithKinds() Option {
	return func(o *options) { o.kinds = true }
}

// Render returns the dependency report for set. decls lists the program's
// declared inputs and outputs and may be empty.
func Render(set *scalar.DependencySet, decls []scalar.IODeclaration, opts ...Option) string {
	var b strings.Builder
	render(&b, set, decls, opts)
	return b.String()
}

// Write renders the report to w.
func Write(w io.Writer, set *scalar.DependencySet, decls []scalar.IODeclaration, opts ...Option) error {
	var b strings.Builder
	render(&b, set, decls, opts)
	_, err := io.WriteString(w, b.String())
	return err
}

func render(b *strings.Builder, set *scalar.DependencySet, decls []scalar.IODeclaration, opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if set == nil {
		set = &scalar.DependencySet{}
	}

	if len(decls) > 0 {
		b.WriteString("inputs and outputs:\n")
		for _, d := range sortedIO(decls) {
			b.WriteByte('\t')
			b.WriteString(d.String())
			b.WriteByte('\n')
		}
	}

	for _, g := range set.Discard.Sorted() {
		b.WriteString("discard depends on ")
		b.WriteString(g.String())
		b.WriteByte('\n')
	}

	for _, out := range set.Outputs() {
		writeOutput(b, set, out, o)
	}
}

func writeOutput(b *strings.Builder, set *scalar.DependencySet, out scalar.Location, o options) {
	locs, lits := splitSources(set.Of(out))
	groups := GroupVectors(locs)
	for i := range groups {
		groups[i].Kind = set.Kind(groups[i].Register)
	}

	b.WriteString(out.String())
	b.WriteString(" depends on ")
	if len(groups) > 0 || len(lits) == 0 {
		b.WriteByte('[')
		for i, g := range groups {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.String())
			if o.kinds {
				b.WriteByte(':')
				b.WriteString(g.Kind.String())
			}
		}
		b.WriteByte(']')
		if len(lits) > 0 {
			b.WriteByte(' ')
		}
	}
	if len(lits) > 0 {
		b.WriteString("literals [")
		for i, lit := range lits {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(lit.String())
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')
}

// sortedIO orders declarations by direction, then register.
func sortedIO(decls []scalar.IODeclaration) []scalar.IODeclaration {
	out := slices.Clone(decls)
	slices.SortStableFunc(out, func(a, b scalar.IODeclaration) int {
		if c := cmp.Compare(a.Direction, b.Direction); c != 0 {
			return c
		}
		return a.Register.Compare(b.Register)
	})
	return out
}
