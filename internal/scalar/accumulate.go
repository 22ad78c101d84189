// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"log/slog"
	"maps"
	"slices"
)

type (
	// DependencySet maps every location the program declared or wrote to the
	// sources that can contribute to its final value.
	DependencySet struct {
		// Deps holds each location's sources. Declared-only locations map
		// to an empty set.
		Deps map[Location]SourceSet
		// Discard holds the guards of every early out in the program.
		Discard SourceSet
		// Kinds holds the display kind of each register an instruction
		// writes or reads.
		Kinds map[Register]ValueKind
	}

	// Accumulator folds actions into a DependencySet in program order.
	// The zero value is not usable; call NewAccumulator.
	Accumulator struct {
		deps     map[Location]SourceSet
		literals map[Location]Literal
		guards   SourceSet
		kinds    map[Register]ValueKind
	}
)

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		deps:     make(map[Location]SourceSet),
		literals: make(map[Location]Literal),
		guards:   make(SourceSet),
		kinds:    make(map[Register]ValueKind),
	}
}

// Accumulate replays actions in order and returns the resulting set.
func Accumulate(actions []Action) *DependencySet {
	a := NewAccumulator()
	for _, act := range actions {
		a.Apply(act)
	}
	return a.Result()
}

// Apply folds one action into the accumulator.
func (a *Accumulator) Apply(act Action) {
	switch act := act.(type) {
	case Declaration:
		a.declare(act)
	case *Declaration:
		a.declare(*act)
	case Dependency:
		a.assign(act)
	case *Dependency:
		a.assign(*act)
	case EarlyOut:
		a.earlyOut(act)
	case *EarlyOut:
		a.earlyOut(*act)
	default:
		slog.Debug("ignoring unknown action", "action", act)
	}
}

func (a *Accumulator) declare(d Declaration) {
	if _, ok := a.deps[d.Location]; !ok {
		a.deps[d.Location] = make(SourceSet)
	}
	if d.Value != nil {
		a.literals[d.Location] = *d.Value
	}
}

// assign unions the resolved inputs and the active guards into the output's
// existing set. A write never replaces earlier sources: every write path
// that reaches the output contributes.
func (a *Accumulator) assign(d Dependency) {
	resolved := make(SourceSet, len(d.Inputs)+len(a.guards))
	for _, in := range d.Inputs {
		a.resolveInto(resolved, in)
	}
	resolved.Union(a.guards)

	out, ok := a.deps[d.Output]
	if !ok {
		out = make(SourceSet, len(resolved))
		a.deps[d.Output] = out
	}
	out.Union(resolved)
	a.kinds[d.Output.Register] |= d.Kind
	if d.Kind == KindUntyped {
		return
	}
	for _, in := range d.Inputs {
		if !in.IsLiteral() {
			a.kinds[in.Location().Register] |= d.Kind
		}
	}
}

// resolveInto adds the sources an input stands for. A location that already
// has sources is replaced by them (one level only); a literal location
// becomes its literal; anything else is a source in its own right.
func (a *Accumulator) resolveInto(dst SourceSet, in Source) {
	if in.IsLiteral() {
		dst.Add(in)
		return
	}
	loc := in.Location()
	if set := a.deps[loc]; len(set) > 0 {
		dst.Union(set)
		return
	}
	if v, ok := a.literals[loc]; ok {
		dst.Add(FromLiteral(v))
		return
	}
	dst.Add(in)
}

func (a *Accumulator) earlyOut(e EarlyOut) {
	for _, g := range e.Guards {
		a.guards.Add(From(g))
	}
}

// Result returns a snapshot of the accumulated state. Later calls to Apply
// do not modify a returned snapshot.
func (a *Accumulator) Result() *DependencySet {
	deps := make(map[Location]SourceSet, len(a.deps))
	for loc, set := range a.deps {
		deps[loc] = set.Clone()
	}
	return &DependencySet{
		Deps:    deps,
		Discard: a.guards.Clone(),
		Kinds:   maps.Clone(a.kinds),
	}
}

// Of returns the sources of loc, or nil when loc was never seen.
func (d *DependencySet) Of(loc Location) SourceSet { return d.Deps[loc] }

// Kind returns the display kind of r.
func (d *DependencySet) Kind(r Register) ValueKind { return d.Kinds[r] }

// Locations returns every recorded location in canonical order.
func (d *DependencySet) Locations() []Location {
	return slices.SortedFunc(maps.Keys(d.Deps), Location.Compare)
}

// Outputs returns the recorded stage-output locations in canonical order.
func (d *DependencySet) Outputs() []Location {
	var outs []Location
	for loc := range d.Deps {
		if loc.IsOutput() {
			outs = append(outs, loc)
		}
	}
	slices.SortFunc(outs, Location.Compare)
	return outs
}

// Contains reports whether every location's sources in d are also present
// for the same location in o.
func (d *DependencySet) Contains(o *DependencySet) bool {
	for loc, set := range o.Deps {
		mine, ok := d.Deps[loc]
		if !ok || !set.IsSubsetOf(mine) {
			return false
		}
	}
	return o.Discard.IsSubsetOf(d.Discard)
}
