package search

// PickResult is the outcome of one picker invocation: either a mutable
// variable to flip, or a signal that no live unsat clause remains. This is
// the sum-type replacement suggested by §9 ("Exceptions/control-flow via
// flags") for the original's global closedFlag boolean.
type PickResult struct {
	Var    int
	Closed bool
}

// Picker is the shared contract of §9's "Polymorphism over SLS pickers"
// note: given the current SLS state, return the next variable to flip or
// a termination signal. CCLS, WalkSATPicker and NoveltyPicker all
// implement it; the playout loop in playout.go is picker-agnostic.
type Picker interface {
	Pick(s *State) PickResult
}

// CCLS is the default picker (§4.D, step 2): configuration-checking local
// search with a noise parameter.
type CCLS struct {
	// Noise is the probability of ignoring the score/conf-change rule and
	// picking a uniformly random mutable variable from a uniformly random
	// unsat clause instead.
	Noise float64
}

func (p CCLS) Pick(s *State) PickResult {
	if !s.HasLiveUnsat() {
		return PickResult{Closed: true}
	}

	if s.rng.Bool(p.Noise) {
		ci := s.randomUnsatClause()
		return PickResult{Var: s.randomMutableVar(ci)}
	}

	if v := s.bestConfChangeVar(); v != NoAtom {
		return PickResult{Var: v}
	}

	// Fallback (§9 Open Questions: filtered by mutability, a deliberate
	// deviation from the original, which picks without checking
	// mutability there).
	ci := s.randomUnsatClause()
	return PickResult{Var: s.randomMutableVar(ci)}
}

// bestConfChangeVar scans the unsat-variable stack for mutable variables
// with conf_change set, returning the one with the highest score (ties
// uniform at random), or NoAtom if none qualify.
func (s *State) bestConfChangeVar() int {
	best := NoAtom
	bestScore := 0
	ties := 0
	for _, v := range s.unsatVarStack {
		if !s.confChange[v] {
			continue
		}
		switch {
		case ties == 0 || s.score[v] > bestScore:
			best = v
			bestScore = s.score[v]
			ties = 1
		case s.score[v] == bestScore:
			ties++
			if s.rng.Intn(ties) == 0 {
				best = v
			}
		}
	}
	return best
}
