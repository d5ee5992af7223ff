package search

import "github.com/uctsat/uctsat/internal/formula"

// Flip flips mutable variable v and incrementally updates every touched
// live clause's sat count, sole satisfier and unsat-stack membership, and
// every touched mutable variable's score and unsat-appearance count, per
// §4.D steps 3-4. Flip does not check mutability; callers (the pickers)
// are responsible for only ever proposing mutable variables.
func (s *State) Flip(v int) {
	old := s.curSoln[v]
	s.curSoln[v] = !old

	for _, occ := range s.f.VarOccurrences(v) {
		ci := occ.Clause
		if s.preSat[ci] || s.preFalsified[ci] {
			continue
		}
		if occ.Literal.Satisfied(old) {
			s.literalBecameFalse(ci, occ.Literal)
		} else {
			s.literalBecameTrue(ci, occ.Literal)
		}
	}

	for _, u := range s.f.Neighbors(v) {
		s.confChange[u] = true
	}
	s.confChange[v] = false

	s.stepCounter++
	s.lastChange[v] = s.stepCounter
}

// literalBecameTrue handles a live clause whose flipped literal turned
// true, i.e. sat_count increases by one.
func (s *State) literalBecameTrue(ci int, lit formula.Literal) {
	c := s.f.Clause(ci)
	w := c.Weight
	s.satCount[ci]++

	switch s.satCount[ci] {
	case 1:
		// The clause was unsat and every mutable variable it touches was
		// contributing +w; it is now sat with lit as its sole satisfier,
		// which contributes -w instead, everyone else 0.
		satisfier := lit.VarID()
		s.removeUnsatClause(ci)
		s.totalUnsatWeight -= w
		for _, l2 := range c.Literals {
			u := l2.VarID()
			if !s.mutable[u] {
				continue
			}
			newContrib := 0
			if u == satisfier {
				newContrib = -w
			}
			s.score[u] += newContrib - w
			s.bumpUnsatAppCount(u, -1)
		}
		s.soleSatLit[ci] = lit
	case 2:
		// The clause had exactly one satisfier (not the one that just
		// flipped true, since that one was false a moment ago); that
		// variable's -w contribution reverts to 0.
		if prev := s.soleSatLit[ci]; prev != noLiteral && s.mutable[prev.VarID()] {
			s.score[prev.VarID()] += w
		}
		// soleSatLit is meaningless while satCount == 2 and is left
		// untouched; liveContribution never reads it in that state.
	}
}

// literalBecameFalse handles a live clause whose flipped literal turned
// false, i.e. sat_count decreases by one.
func (s *State) literalBecameFalse(ci int, lit formula.Literal) {
	c := s.f.Clause(ci)
	w := c.Weight
	s.satCount[ci]--

	switch s.satCount[ci] {
	case 0:
		// lit was the sole satisfier (satCount was 1, contributing -w to
		// itself and 0 to everyone else); now every mutable variable in
		// the clause contributes +w.
		satisfier := lit.VarID()
		s.pushUnsatClause(ci)
		s.totalUnsatWeight += w
		for _, l2 := range c.Literals {
			u := l2.VarID()
			if !s.mutable[u] {
				continue
			}
			oldContrib := 0
			if u == satisfier {
				oldContrib = -w
			}
			s.score[u] += w - oldContrib
			s.bumpUnsatAppCount(u, +1)
		}
		s.soleSatLit[ci] = noLiteral
	case 1:
		// Exactly one true literal remains; find it and give it the -w
		// sole-satisfier contribution it did not have while satCount was 2.
		sole := s.findSatisfier(ci)
		s.soleSatLit[ci] = sole
		if sole != noLiteral && s.mutable[sole.VarID()] {
			s.score[sole.VarID()] -= w
		}
	}
}

// findSatisfier scans clause ci's literals for the one currently true. It
// is only called when satCount[ci] == 1.
func (s *State) findSatisfier(ci int) formula.Literal {
	for _, lit := range s.f.Clause(ci).Literals {
		if lit.Satisfied(s.curSoln[lit.VarID()]) {
			return lit
		}
	}
	return noLiteral
}
