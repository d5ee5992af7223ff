package search

// BranchAtom implements the A0 branching heuristic (§4.F): over every live
// clause, count one occurrence per mutable variable it mentions, then pick
// the mutable variable with the highest count, breaking ties uniformly at
// random. It returns NoAtom if no mutable variable has any live
// occurrence, signalling that the path's remaining subformula is closed.
func (s *State) BranchAtom(counts []int) int {
	for v := range counts {
		counts[v] = 0
	}

	for ci := 0; ci < s.f.NumClauses(); ci++ {
		if s.preSat[ci] || s.preFalsified[ci] {
			continue
		}
		for _, lit := range s.f.Clause(ci).Literals {
			v := lit.VarID()
			if s.mutable[v] {
				counts[v]++
			}
		}
	}

	best := NoAtom
	bestCount := 0
	ties := 0
	for v, cnt := range counts {
		if cnt == 0 || !s.mutable[v] {
			continue
		}
		switch {
		case cnt > bestCount:
			best = v
			bestCount = cnt
			ties = 1
		case cnt == bestCount:
			ties++
			if s.rng.Intn(ties) == 0 {
				best = v
			}
		}
	}
	return best
}

// NewCounts allocates a counts buffer sized for this state's formula, for
// reuse across BranchAtom calls.
func (s *State) NewCounts() []int {
	return make([]int, s.NumVars())
}
