package search

import "math"

// Incumbent tracks the best assignment discovered so far across an entire
// UCT run (shared, per §3's Lifecycle, by every playout within that run;
// a fresh Incumbent is created per run by the driver). Best-solution
// tracking (§4.D) always compares the *combined* total_unsat_clause_weight
// + numPreFalsifiedClauses, which is exactly what State.TotalUnsatWeight
// returns — this resolves §9's open question on whether the two terms
// should be combined by always combining them.
type Incumbent struct {
	BestWeight int
	BestSoln   []bool
}

// NewIncumbent allocates an Incumbent for a formula with n variables.
func NewIncumbent(n int) *Incumbent {
	return &Incumbent{
		BestWeight: math.MaxInt,
		BestSoln:   make([]bool, n),
	}
}

// SeedRandom re-seeds the incumbent with a uniformly random assignment,
// per §4.H: "the best-solution is seeded to a uniformly random assignment"
// at the start of every run.
func (inc *Incumbent) SeedRandom(rng *RNG) {
	for v := range inc.BestSoln {
		inc.BestSoln[v] = rng.Bool(0.5)
	}
	inc.BestWeight = math.MaxInt
}

// Consider records s's current assignment as the new incumbent if it
// strictly improves on the best weight seen so far this run.
func (inc *Incumbent) Consider(s *State) {
	if w := s.TotalUnsatWeight(); w < inc.BestWeight {
		inc.BestWeight = w
		copy(inc.BestSoln, s.Assignment())
	}
}

// PlayoutOutcome is what one bounded local-search playout (§4.D) reports
// back to the UCT node that requested it.
type PlayoutOutcome struct {
	// BestUnsatWeight is the best (lowest) total unsatisfied weight
	// observed during the playout, including the constant weight of any
	// clause the path forced false.
	BestUnsatWeight int

	// BestSatisfiedCount is the number of satisfied clauses at the moment
	// BestUnsatWeight was achieved; it feeds the reward computation.
	BestSatisfiedCount int

	// Closed is true if the picker signalled that no live unsat clause
	// remains: this branch's subformula is fully determined.
	Closed bool
}

// LocalSearch runs at most maxFlips flips of picker over s, updating inc
// whenever a flip improves on the run's best-known assignment (§4.D). s
// must already have been Reset for the path this playout explores.
func LocalSearch(s *State, picker Picker, maxFlips int, inc *Incumbent) PlayoutOutcome {
	bestWeight := s.TotalUnsatWeight()
	bestCount := s.NumSatisfiedClauses()
	inc.Consider(s)

	closed := false
	for flips := 0; flips < maxFlips; flips++ {
		if !s.HasLiveUnsat() {
			break // local success: nothing left to satisfy
		}

		res := picker.Pick(s)
		if res.Closed {
			closed = true
			break
		}

		s.Flip(res.Var)
		inc.Consider(s)

		if w := s.TotalUnsatWeight(); w < bestWeight {
			bestWeight = w
			bestCount = s.NumSatisfiedClauses()
		}
	}

	return PlayoutOutcome{
		BestUnsatWeight:    bestWeight,
		BestSatisfiedCount: bestCount,
		Closed:             closed,
	}
}
