package search

import (
	"testing"

	"github.com/uctsat/uctsat/internal/formula"
)

func TestLocalSearch_SolvesTriviallySatisfiableFormula(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(2)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0), formula.PositiveLiteral(1)}, 1)
	f := b.Build(false)

	rng := NewRNG(42)
	s := NewState(f, rng)
	s.Reset(nil, []bool{false, false})

	inc := NewIncumbent(f.NumVars())
	inc.SeedRandom(rng)

	out := LocalSearch(s, CCLS{Noise: 0.05}, 500, inc)
	if out.BestUnsatWeight != 0 {
		t.Errorf("want 0 unsatisfied weight, got %d", out.BestUnsatWeight)
	}
	if out.BestSatisfiedCount != 2 {
		t.Errorf("want 2 satisfied clauses, got %d", out.BestSatisfiedCount)
	}
}

func TestLocalSearch_UnsatisfiableSingleVariableStaysAtOne(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(1)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0)}, 1)
	f := b.Build(false)

	rng := NewRNG(7)
	s := NewState(f, rng)
	s.Reset(nil, []bool{false})

	inc := NewIncumbent(f.NumVars())
	inc.SeedRandom(rng)

	out := LocalSearch(s, CCLS{Noise: 0.0}, 50, inc)
	if out.BestUnsatWeight != 1 {
		t.Errorf("want 1 unsatisfied clause (unsatisfiable instance), got %d", out.BestUnsatWeight)
	}
}

func TestLocalSearch_PickersNeverFlipImmutableVariables(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(3)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(1), formula.PositiveLiteral(2)}, 1)
	f := b.Build(false)

	pickers := []Picker{
		CCLS{Noise: 0.1},
		WalkSATPicker{WalkProb: 0.3},
		NoveltyPicker{NovNoise: 0.3},
	}

	for _, picker := range pickers {
		rng := NewRNG(11)
		s := NewState(f, rng)
		s.Reset([]PathVar{{Var: 0, Value: false}}, []bool{false, false, false})

		before := s.curSoln[0]
		inc := NewIncumbent(f.NumVars())
		inc.SeedRandom(rng)
		LocalSearch(s, picker, 200, inc)

		if s.curSoln[0] != before {
			t.Errorf("%T flipped immutable variable 0", picker)
		}
	}
}

func TestIncumbent_ConsidersOnlyStrictImprovements(t *testing.T) {
	inc := NewIncumbent(1)
	inc.BestWeight = 3
	inc.BestSoln[0] = false

	b := formula.NewBuilder()
	b.AddVariables(1)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0)}, 5)
	f := b.Build(false)

	s := NewState(f, NewRNG(1))
	s.Reset(nil, []bool{true}) // satisfied, total unsat weight 0 < 3

	inc.Consider(s)
	if inc.BestWeight != 0 || inc.BestSoln[0] != true {
		t.Errorf("expected incumbent to adopt the strictly better assignment, got weight=%d soln=%v", inc.BestWeight, inc.BestSoln)
	}
}
