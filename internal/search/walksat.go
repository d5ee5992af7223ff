package search

import "github.com/uctsat/uctsat/internal/formula"

// WalkSATPicker is the UBCSAT-style WalkSAT variant (§4.D): select a live
// unsat clause uniformly, then with probability WalkProb flip a uniformly
// random mutable literal of that clause, otherwise flip the mutable
// literal with the lowest breakcount (ties uniform).
type WalkSATPicker struct {
	WalkProb float64
}

func (p WalkSATPicker) Pick(s *State) PickResult {
	ci := s.randomUnsatClause()
	if ci < 0 {
		return PickResult{Closed: true}
	}

	lits := s.mutableLiterals(ci, nil)
	if len(lits) == 0 {
		// A live unsat clause always has a mutable literal (§4.C); this
		// only triggers if the caller mis-tracked mutability.
		return PickResult{Closed: true}
	}

	if s.rng.Bool(p.WalkProb) {
		return PickResult{Var: lits[s.rng.Intn(len(lits))].VarID()}
	}

	return PickResult{Var: s.minBreakCount(lits)}
}

// minBreakCount returns the variable, among lits, with the lowest
// breakcount, ties uniform.
func (s *State) minBreakCount(lits []formula.Literal) int {
	best := lits[0].VarID()
	bestBreak := s.breakCount(best)
	ties := 1
	for _, lit := range lits[1:] {
		v := lit.VarID()
		b := s.breakCount(v)
		switch {
		case b < bestBreak:
			best, bestBreak, ties = v, b, 1
		case b == bestBreak:
			ties++
			if s.rng.Intn(ties) == 0 {
				best = v
			}
		}
	}
	return best
}

// NoveltyPicker is the UBCSAT-style Novelty variant (§4.D): select a live
// unsat clause uniformly, rank its mutable literals by (makecount -
// breakcount), and usually pick the best one — unless the best is also the
// "youngest" literal in the clause (the smallest lastChange, i.e. the one
// flipped least recently), in which case the second-best is picked with
// probability NovNoise.
type NoveltyPicker struct {
	NovNoise float64
}

func (p NoveltyPicker) Pick(s *State) PickResult {
	ci := s.randomUnsatClause()
	if ci < 0 {
		return PickResult{Closed: true}
	}

	lits := s.mutableLiterals(ci, nil)
	if len(lits) == 0 {
		return PickResult{Closed: true}
	}
	if len(lits) == 1 {
		return PickResult{Var: lits[0].VarID()}
	}

	bestIdx, secondIdx := s.rankByNoveltyScore(lits)
	best := lits[bestIdx].VarID()
	second := lits[secondIdx].VarID()

	if !s.isYoungest(best, lits) {
		return PickResult{Var: best}
	}
	if s.rng.Bool(p.NovNoise) {
		return PickResult{Var: second}
	}
	return PickResult{Var: best}
}

// rankByNoveltyScore returns the indices, into lits, of the best and
// second-best literal by (makecount - breakcount), ties broken by youngest
// (§4.D: "smallest aVarLastChange"). The tie-break applies both when two
// literals match the current best score and when two match the current
// second-best score.
func (s *State) rankByNoveltyScore(lits []formula.Literal) (bestIdx, secondIdx int) {
	score := func(v int) int {
		return s.makeCount(v) - s.breakCount(v)
	}
	younger := func(i, j int) bool {
		return s.lastChange[lits[i].VarID()] < s.lastChange[lits[j].VarID()]
	}

	bestIdx, secondIdx = 0, 1
	switch {
	case score(lits[1].VarID()) > score(lits[0].VarID()):
		bestIdx, secondIdx = 1, 0
	case score(lits[1].VarID()) == score(lits[0].VarID()) && younger(1, 0):
		bestIdx, secondIdx = 1, 0
	}

	for i := 2; i < len(lits); i++ {
		v := lits[i].VarID()
		sv := score(v)
		switch {
		case sv > score(lits[bestIdx].VarID()):
			secondIdx = bestIdx
			bestIdx = i
		case sv == score(lits[bestIdx].VarID()) && younger(i, bestIdx):
			secondIdx = bestIdx
			bestIdx = i
		case sv > score(lits[secondIdx].VarID()):
			secondIdx = i
		case sv == score(lits[secondIdx].VarID()) && younger(i, secondIdx):
			secondIdx = i
		}
	}
	return bestIdx, secondIdx
}

// isYoungest reports whether v is the literal with the smallest
// lastChange value among lits, i.e. the "youngest" per §4.D's definition.
func (s *State) isYoungest(v int, lits []formula.Literal) bool {
	for _, lit := range lits {
		if u := lit.VarID(); u != v && s.lastChange[u] < s.lastChange[v] {
			return false
		}
	}
	return true
}
