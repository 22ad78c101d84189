// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"math/rand/v2"
	"testing"
)

func r(i uint32, c Component) Location { return Reg(SpaceTemp, i).At(c) }
func v(i uint32, c Component) Location { return Reg(SpaceInput, i).At(c) }
func o(i uint32, c Component) Location { return Reg(SpaceOutput, i).At(c) }
func l(i uint32, c Component) Location { return Reg(SpaceLiteral, i).At(c) }

func dep(out Location, ins ...Location) Dependency {
	srcs := make([]Source, len(ins))
	for i, in := range ins {
		srcs[i] = From(in)
	}
	return Dependency{Output: out, Inputs: srcs}
}

func assertSources(t *testing.T, set SourceSet, want ...Source) {
	t.Helper()
	if len(set) != len(want) {
		t.Errorf("sources = %v, want %v", set.Sorted(), want)
		return
	}
	for _, w := range want {
		if !set.Has(w) {
			t.Errorf("sources = %v, missing %v", set.Sorted(), w)
		}
	}
}

func TestAccumulate_GuardPropagation(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		EarlyOut{Guards: []Location{r(1, X)}},
		dep(r(5, Y), r(2, Z)),
	})

	assertSources(t, got.Of(r(5, Y)), From(r(2, Z)), From(r(1, X)))
	assertSources(t, got.Discard, From(r(1, X)))
}

func TestAccumulate_GuardsOnlyAffectLaterWrites(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		dep(o(0, X), v(0, X)),
		EarlyOut{Guards: []Location{r(0, W)}},
		dep(o(0, Y), v(0, Y)),
	})

	assertSources(t, got.Of(o(0, X)), From(v(0, X)))
	assertSources(t, got.Of(o(0, Y)), From(v(0, Y)), From(r(0, W)))
}

func TestAccumulate_OneLevelSubstitution(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		Declare(v(0, X)),
		Declare(v(1, X)),
		dep(r(0, X), v(0, X), v(1, X)),
		dep(r(1, X), r(0, X)),
		dep(o(0, X), r(1, X)),
	})

	assertSources(t, got.Of(r(0, X)), From(v(0, X)), From(v(1, X)))
	assertSources(t, got.Of(o(0, X)), From(v(0, X)), From(v(1, X)))
	assertSources(t, got.Of(v(0, X)))
}

func TestAccumulate_ReassignmentUnions(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		dep(r(0, X), v(0, X)),
		dep(o(0, X), r(0, X)),
		dep(r(0, X), v(1, X)),
		dep(o(0, X), r(0, X)),
	})

	assertSources(t, got.Of(r(0, X)), From(v(0, X)), From(v(1, X)))
	assertSources(t, got.Of(o(0, X)), From(v(0, X)), From(v(1, X)))
}

func TestAccumulate_SelfAssignment(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		dep(r(0, X), v(0, X)),
		dep(r(0, X), r(0, X), v(2, Y)),
	})

	assertSources(t, got.Of(r(0, X)), From(v(0, X)), From(v(2, Y)))
}

func TestAccumulate_Literals(t *testing.T) {
	t.Parallel()

	acts := []Action{
		DeclareLiteral(l(0, X), 0x3F800000),
		DeclareLiteral(l(0, Y), 0),
		dep(r(0, X), l(0, X), v(0, X)),
		Dependency{Output: o(0, X), Inputs: []Source{From(r(0, X)), FromLiteral(7)}},
		dep(o(0, Y), l(0, Y)),
	}
	got := Accumulate(acts)

	assertSources(t, got.Of(l(0, X)))
	assertSources(t, got.Of(r(0, X)), FromLiteral(0x3F800000), From(v(0, X)))
	assertSources(t, got.Of(o(0, X)), FromLiteral(0x3F800000), From(v(0, X)), FromLiteral(7))
	assertSources(t, got.Of(o(0, Y)), FromLiteral(0))
}

func TestAccumulate_UndeclaredInputIsSource(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{dep(o(1, W), r(9, Z))})

	assertSources(t, got.Of(o(1, W)), From(r(9, Z)))
	if got.Of(r(9, Z)) != nil {
		t.Errorf("undeclared input r9.z was recorded: %v", got.Of(r(9, Z)))
	}
}

func TestAccumulate_PointerActions(t *testing.T) {
	t.Parallel()

	d := dep(o(0, X), v(0, X))
	got := Accumulate([]Action{&EarlyOut{Guards: []Location{r(1, Y)}}, &d})
	assertSources(t, got.Of(o(0, X)), From(v(0, X)), From(r(1, Y)))
}

func TestAccumulate_Kinds(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		Dependency{Output: o(0, X), Inputs: []Source{From(v(0, X))}, Kind: KindFloat},
		Dependency{Output: o(0, Y), Inputs: []Source{From(v(0, Y))}, Kind: KindInt},
		Dependency{Output: r(0, X), Inputs: []Source{From(v(0, Y))}},
	})

	if k := got.Kind(Reg(SpaceOutput, 0)); k != KindFloat|KindInt {
		t.Errorf("Kind(o0) = %v, want float|int", k)
	}
	if k := got.Kind(Reg(SpaceTemp, 0)); k != KindUntyped {
		t.Errorf("Kind(r0) = %v, want untyped", k)
	}
	if k := got.Kind(Reg(SpaceInput, 0)); k != KindFloat|KindInt {
		t.Errorf("Kind(v0) = %v, want float|int", k)
	}
}

func TestAccumulate_SourceKinds(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		Dependency{Output: r(0, X), Inputs: []Source{From(r(1, X)), FromLiteral(3)}, Kind: KindInt},
		Dependency{Output: r(2, X), Inputs: []Source{From(r(1, Y))}, Kind: KindUint},
		Dependency{Output: r(3, X), Inputs: []Source{From(r(4, X))}},
	})

	tests := []struct {
		reg  Register
		want ValueKind
	}{
		{Reg(SpaceTemp, 1), KindInt | KindUint},
		{Reg(SpaceTemp, 4), KindUntyped},
		{Reg(SpaceLiteral, 0), KindUntyped},
	}
	for _, tt := range tests {
		if k := got.Kind(tt.reg); k != tt.want {
			t.Errorf("Kind(%v) = %v, want %v", tt.reg, k, tt.want)
		}
	}
}

func TestAccumulator_ResultIsSnapshot(t *testing.T) {
	t.Parallel()

	a := NewAccumulator()
	a.Apply(dep(o(0, X), v(0, X)))
	snap := a.Result()
	a.Apply(dep(o(0, X), v(1, X)))
	a.Apply(EarlyOut{Guards: []Location{r(0, X)}})

	assertSources(t, snap.Of(o(0, X)), From(v(0, X)))
	if len(snap.Discard) != 0 {
		t.Errorf("snapshot Discard = %v, want empty", snap.Discard.Sorted())
	}
}

func TestAccumulate_PrefixMonotonicity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	pick := func() Location {
		spaces := []Space{SpaceTemp, SpaceInput, SpaceOutput, SpaceLiteral}
		return Reg(spaces[rng.IntN(len(spaces))], uint32(rng.IntN(3))).At(Component(rng.IntN(NumComponents)))
	}

	for trial := range 50 {
		var acts []Action
		for range 40 {
			switch rng.IntN(6) {
			case 0:
				acts = append(acts, Declare(pick()))
			case 1:
				acts = append(acts, DeclareLiteral(pick(), Literal(rng.Uint32())))
			case 2:
				acts = append(acts, EarlyOut{Guards: []Location{pick()}})
			default:
				ins := make([]Location, rng.IntN(4))
				for i := range ins {
					ins[i] = pick()
				}
				acts = append(acts, dep(pick(), ins...))
			}
		}

		full := Accumulate(acts)
		for n := range len(acts) + 1 {
			prefix := Accumulate(acts[:n])
			if !full.Contains(prefix) {
				t.Fatalf("trial %d: prefix of %d actions is not contained in the full result", trial, n)
			}
		}
	}
}

func TestDependencySet_Outputs(t *testing.T) {
	t.Parallel()

	got := Accumulate([]Action{
		dep(o(1, Y), v(0, X)),
		dep(r(0, X), v(0, X)),
		dep(o(0, W), v(0, X)),
		dep(o(0, X), v(0, X)),
		dep(Port(SpaceOutput, "oDepth").At(X), v(0, X)),
	}).Outputs()

	want := []Location{o(0, X), o(0, W), o(1, Y), Port(SpaceOutput, "oDepth").At(X)}
	if len(got) != len(want) {
		t.Fatalf("Outputs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Outputs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
