// Package search implements the incremental SLS bookkeeping (§4.B/§4.C),
// the bounded local-search playout engine (§4.D), the pre-satisfaction
// analyzer (§4.E) and the branching-atom heuristic (§4.F). All five are
// tightly coupled around one mutable State, rebuilt at the start of every
// playout from a Formula and the set of variables the enclosing UCT path
// has already fixed.
package search

import "github.com/uctsat/uctsat/internal/formula"

// noLiteral is the sentinel stored in soleSatLit for clauses whose sat
// count is not exactly one.
const noLiteral = formula.Literal(-1)

// NoAtom is returned by the branching heuristic and stored on a UCT node to
// mean "no mutable variable has any live occurrence left": the remaining
// subformula is fully determined by the path's immutables. It deliberately
// is not 0, since 0 is variable 0 is a normal variable here.
const NoAtom = -1

// PathVar is one entry of a root-to-node path: the variable the path fixed
// and the arm value it was fixed to.
type PathVar struct {
	Var   int
	Value bool
}

// State is the mutable SLS state described by §4.B and §4.C. It is
// allocated once per worker and Reset at the start of every playout; this
// avoids the per-playout allocation churn that a fresh struct per node
// would incur, the same way the teacher's Solver reuses tmpWatchers and
// tmpLearnts across calls instead of allocating them afresh.
type State struct {
	f   *formula.Formula
	rng *RNG

	// Assignment & mutability (§4.B).
	curSoln []bool
	mutable []bool

	// Per-clause incremental state (§4.C).
	satCount     []int
	preSat       []bool
	preFalsified []bool
	soleSatLit   []formula.Literal
	unsatStack   []int
	clauseStack  []int // clauseStack[c] = position in unsatStack, -1 if absent

	// Per-variable incremental state (§4.C).
	score         []int
	confChange    []bool
	unsatAppCount []int
	unsatVarStack []int
	varStack      []int // varStack[v] = position in unsatVarStack, -1 if absent

	// Run-level accounting carried for the lifetime of one playout.
	totalUnsatWeight       int // Σ weight(c) for live c currently in unsatStack
	numPreFalsifiedWeight  int // Σ weight(c) for clauses forced false by the path (CNF and WCNF alike)
	numPreFalsifiedClauses int // count (not weight) of clauses forced false by the path

	// lastChange[v] is the step index at which v was last flipped, used by
	// the Novelty-UCT picker's youngest tie-break. stepCounter increases
	// by one per flip.
	lastChange  []int
	stepCounter int
}

// NewState allocates a State sized for f. The returned State has not been
// Reset yet and must not be used until it is.
func NewState(f *formula.Formula, rng *RNG) *State {
	n := f.NumVars()
	m := f.NumClauses()
	return &State{
		f:   f,
		rng: rng,

		curSoln: make([]bool, n),
		mutable: make([]bool, n),

		satCount:     make([]int, m),
		preSat:       make([]bool, m),
		preFalsified: make([]bool, m),
		soleSatLit:   make([]formula.Literal, m),
		unsatStack:   make([]int, 0, m),
		clauseStack:  make([]int, m),

		score:         make([]int, n),
		confChange:    make([]bool, n),
		unsatAppCount: make([]int, n),
		unsatVarStack: make([]int, 0, n),
		varStack:      make([]int, n),

		lastChange: make([]int, n),
	}
}

// NumVars returns the number of variables of the underlying formula.
func (s *State) NumVars() int {
	return len(s.mutable)
}

// Formula returns the formula this state was built for.
func (s *State) Formula() *formula.Formula {
	return s.f
}

// Assignment returns the live assignment. Callers must not retain the
// returned slice across a subsequent Reset.
func (s *State) Assignment() []bool {
	return s.curSoln
}

// IsMutable reports whether v may be flipped by the playout engine.
func (s *State) IsMutable(v int) bool {
	return s.mutable[v]
}

// TotalUnsatWeight returns the current total unsatisfied weight, including
// the constant contribution of any clause the path forced false.
func (s *State) TotalUnsatWeight() int {
	return s.totalUnsatWeight + s.numPreFalsifiedWeight
}

// NumPreFalsified returns the weight of clauses pre-falsified by the path
// (0 if there are none). Unweighted CNF clauses count with weight 1.
func (s *State) NumPreFalsified() int {
	return s.numPreFalsifiedWeight
}

// HasLiveUnsat reports whether any live clause is currently unsatisfied.
func (s *State) HasLiveUnsat() bool {
	return len(s.unsatStack) > 0
}

// NumSatisfiedClauses returns the number of clauses currently satisfied
// under the live assignment: every clause minus the live-unsat ones minus
// the ones the path forced false.
func (s *State) NumSatisfiedClauses() int {
	return s.f.NumClauses() - len(s.unsatStack) - s.numPreFalsifiedClauses
}

// Reset rebuilds the incremental state from scratch given the path's
// immutable prefix and the current best-known solution (§4.B: "the driver
// seeds cur_soln from the best-known solution for every mutable variable").
// It returns true iff every clause is already decided by the path — no
// live clause remains, so this subtree is closed (§4.E).
func (s *State) Reset(path []PathVar, bestSoln []bool) bool {
	n := s.NumVars()
	copy(s.curSoln, bestSoln)
	for v := 0; v < n; v++ {
		s.mutable[v] = true
	}
	for _, p := range path {
		s.curSoln[p.Var] = p.Value
		s.mutable[p.Var] = false
	}

	s.unsatStack = s.unsatStack[:0]
	s.unsatVarStack = s.unsatVarStack[:0]
	for c := range s.clauseStack {
		s.clauseStack[c] = -1
	}
	for v := range s.varStack {
		s.varStack[v] = -1
	}
	for v := 0; v < n; v++ {
		s.score[v] = 0
		s.confChange[v] = true
		s.unsatAppCount[v] = 0
	}
	s.totalUnsatWeight = 0
	s.numPreFalsifiedWeight = 0
	s.numPreFalsifiedClauses = 0
	s.stepCounter = 0
	for v := range s.lastChange {
		s.lastChange[v] = 0
	}

	liveCount := 0
	for ci := 0; ci < s.f.NumClauses(); ci++ {
		if s.classifyClause(ci) {
			liveCount++
		}
	}
	return liveCount == 0
}

// classifyClause determines whether clause ci is pre-sat, pre-falsified or
// live under the current assignment/mutability and, if live, initializes
// its sat count and (if live and unsatisfied) pushes it to the unsat
// stack. It returns true iff the clause is live.
func (s *State) classifyClause(ci int) bool {
	c := s.f.Clause(ci)

	if c.AlwaysSat {
		s.preSat[ci] = true
		s.preFalsified[ci] = false
		return false
	}

	hasImmutableTrue := false
	allImmutable := true
	satCount := 0
	sole := noLiteral

	for _, lit := range c.Literals {
		v := lit.VarID()
		sat := lit.Satisfied(s.curSoln[v])
		if sat {
			satCount++
			sole = lit
		}
		if s.mutable[v] {
			allImmutable = false
		} else if sat {
			hasImmutableTrue = true
		}
	}

	switch {
	case hasImmutableTrue:
		s.preSat[ci] = true
		s.preFalsified[ci] = false
		return false
	case allImmutable:
		// Every literal is fixed and none is true: forced false.
		s.preSat[ci] = false
		s.preFalsified[ci] = true
		s.numPreFalsifiedWeight += c.Weight
		s.numPreFalsifiedClauses++
		return false
	default:
		s.preSat[ci] = false
		s.preFalsified[ci] = false
		s.satCount[ci] = satCount
		s.soleSatLit[ci] = sole
		if satCount == 0 {
			s.pushUnsatClause(ci)
			s.totalUnsatWeight += c.Weight
		}
		s.initScoreContribution(ci)
		return true
	}
}

// initScoreContribution adds clause ci's contribution to every mutable
// variable's score and unsat-appearance count, per the live-clause score
// formula of §4.C. Only called once per clause, right after classifyClause
// has established its initial satCount.
func (s *State) initScoreContribution(ci int) {
	c := s.f.Clause(ci)
	for _, lit := range c.Literals {
		v := lit.VarID()
		if !s.mutable[v] {
			continue
		}
		s.score[v] += s.liveContribution(ci, v)
		if s.satCount[ci] == 0 {
			s.bumpUnsatAppCount(v, +1)
		}
	}
}

// liveContribution returns clause ci's current contribution to variable
// v's score, per §4.C: +weight(c) if c is unsat, -weight(c) if c's sole
// satisfying literal belongs to v, 0 otherwise. ci must be a live clause.
func (s *State) liveContribution(ci, v int) int {
	w := s.f.Clause(ci).Weight
	switch {
	case s.satCount[ci] == 0:
		return w
	case s.satCount[ci] == 1 && s.soleSatLit[ci] != noLiteral && s.soleSatLit[ci].VarID() == v:
		return -w
	default:
		return 0
	}
}
