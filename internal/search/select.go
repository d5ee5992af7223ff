package search

import "github.com/uctsat/uctsat/internal/formula"

// randomMutableVar picks a uniformly random mutable variable among clause
// ci's literals. ci must be live, which guarantees at least one mutable
// variable: a live clause is, by construction, not fully immutable (that
// case is classified pre-falsified instead).
func (s *State) randomMutableVar(ci int) int {
	lits := s.f.Clause(ci).Literals
	n := 0
	for _, lit := range lits {
		if s.mutable[lit.VarID()] {
			n++
		}
	}
	target := s.rng.Intn(n)
	for _, lit := range lits {
		v := lit.VarID()
		if !s.mutable[v] {
			continue
		}
		if target == 0 {
			return v
		}
		target--
	}
	panic("randomMutableVar: no mutable variable in live clause")
}

// randomUnsatClause picks a uniformly random live unsat clause, or -1 if
// there is none.
func (s *State) randomUnsatClause() int {
	if len(s.unsatStack) == 0 {
		return -1
	}
	return s.unsatStack[s.rng.Intn(len(s.unsatStack))]
}

// breakCount returns the number of live clauses containing v that would
// become unsatisfied if v were flipped right now, i.e. the clauses where v
// is currently the sole satisfying literal's variable.
func (s *State) breakCount(v int) int {
	n := 0
	for _, occ := range s.f.VarOccurrences(v) {
		ci := occ.Clause
		if s.preSat[ci] || s.preFalsified[ci] {
			continue
		}
		if s.satCount[ci] == 1 && s.soleSatLit[ci].VarID() == v {
			n++
		}
	}
	return n
}

// makeCount returns the number of live unsat clauses that would become
// satisfied if v were flipped right now. A live clause is unsat exactly
// when it is on the unsat stack, and flipping any of its mutable variables
// necessarily makes that variable's literal true, so this is simply v's
// unsat-appearance count.
func (s *State) makeCount(v int) int {
	return s.unsatAppCount[v]
}

// mutableLiterals appends ci's literals whose variable is mutable to dst
// and returns the extended slice.
func (s *State) mutableLiterals(ci int, dst []formula.Literal) []formula.Literal {
	for _, lit := range s.f.Clause(ci).Literals {
		if s.mutable[lit.VarID()] {
			dst = append(dst, lit)
		}
	}
	return dst
}
