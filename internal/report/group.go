// SPDX-License-Identifier: MPL-2.0

package report

import (
	"slices"
	"strings"

	"github.com/fxodeps/fxodeps/internal/scalar"
)

// VectorGroup is a run of components of one register, rebuilt for display.
type VectorGroup struct {
	Register   scalar.Register
	Components []scalar.Component
	Kind       scalar.ValueKind
}

// String renders the group as register plus merged components ("r3.xyz").
func (g VectorGroup) String() string {
	var b strings.Builder
	b.WriteString(g.Register.String())
	b.WriteByte('.')
	for _, c := range g.Components {
		b.WriteString(c.String())
	}
	return b.String()
}

// GroupVectors sorts locs canonically and merges consecutive locations of
// the same register into one group. Duplicate locations are collapsed.
// The input slice is not modified.
func GroupVectors(locs []scalar.Location) []VectorGroup {
	sorted := slices.Clone(locs)
	slices.SortFunc(sorted, scalar.Location.Compare)
	sorted = slices.Compact(sorted)

	var groups []VectorGroup
	for _, loc := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Register == loc.Register {
			groups[n-1].Components = append(groups[n-1].Components, loc.Component)
			continue
		}
		groups = append(groups, VectorGroup{
			Register:   loc.Register,
			Components: []scalar.Component{loc.Component},
		})
	}
	return groups
}

// splitSources separates literal sources from location sources.
func splitSources(set scalar.SourceSet) (locs []scalar.Location, lits []scalar.Literal) {
	for src := range set {
		if src.IsLiteral() {
			lits = append(lits, src.Literal())
			continue
		}
		locs = append(locs, src.Location())
	}
	slices.Sort(lits)
	return locs, lits
}
