// Package formula holds the immutable post-load representation of a
// CNF/WCNF instance: variables, clauses, literals, weights and the
// cross-indices the rest of the solver needs. A Formula is built once per
// process and never mutated afterwards; all per-run bookkeeping (current
// assignment, sat counts, unsat stacks...) lives in package search.
package formula

// Clause is one disjunction of literals together with its weight. Weight is
// 1 for every clause of an unweighted (CNF) instance and an arbitrary
// positive integer for a WCNF soft clause. AlwaysSat is set at load time for
// clauses that contain both a literal and its negation: such a clause is
// trivially satisfied under any assignment and is treated as pre-sat
// unconditionally by the pre-sat analyzer (formula §4.E).
type Clause struct {
	Literals  []Literal
	Weight    int
	AlwaysSat bool
}

// Occurrence records that a variable appears in a clause with a given
// polarity.
type Occurrence struct {
	Clause  int
	Literal Literal
}

// Formula is the immutable store built from a parsed DIMACS/WCNF instance.
type Formula struct {
	numVars int
	clauses []Clause

	// varClauses[v] lists every (clause, literal) pair in which variable v
	// appears, giving O(1) amortized (var -> clause, polarity) lookup.
	varClauses [][]Occurrence

	// neighbors[v] is the set of variables that share a clause with v,
	// excluding v itself. Computed once at Build time and used by the SLS
	// engine's conf-change propagation.
	neighbors [][]int

	// Weighted is true for WCNF instances; it does not change any
	// invariant but lets callers distinguish "weight 1 because unweighted"
	// from "weight 1 because that is what the WCNF file said".
	Weighted bool
}

// NumVars returns the number of variables, numbered 0..NumVars()-1.
func (f *Formula) NumVars() int {
	return f.numVars
}

// NumClauses returns the number of clauses, numbered 0..NumClauses()-1.
func (f *Formula) NumClauses() int {
	return len(f.clauses)
}

// Clause returns the i-th clause.
func (f *Formula) Clause(i int) *Clause {
	return &f.clauses[i]
}

// Clauses returns every clause, in load order.
func (f *Formula) Clauses() []Clause {
	return f.clauses
}

// VarOccurrences returns the (clause, literal) pairs in which variable v
// occurs.
func (f *Formula) VarOccurrences(v int) []Occurrence {
	return f.varClauses[v]
}

// Neighbors returns the variables that share at least one clause with v.
func (f *Formula) Neighbors(v int) []int {
	return f.neighbors[v]
}

// TotalWeight returns the sum of every clause's weight, i.e. the weight the
// solver would lose if every clause were unsatisfied.
func (f *Formula) TotalWeight() int {
	total := 0
	for _, c := range f.clauses {
		total += c.Weight
	}
	return total
}

// Builder accumulates variables and clauses before Build freezes them into
// a Formula. It performs the load-time normalization required by §4.A:
// duplicate literals within a clause are deduplicated and a clause
// containing a literal and its negation is kept but marked AlwaysSat
// (never pruned, so that the declared clause count M is preserved for
// reporting — callers that want the "M decremented" DIMACS-level behavior
// should not pass the clause to Build at all; see package dimacs, which
// drops tautologies before they ever reach the builder).
type Builder struct {
	numVars int
	clauses []Clause
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddVariable reserves one more variable and returns its 0-based ID.
func (b *Builder) AddVariable() int {
	id := b.numVars
	b.numVars++
	return id
}

// AddVariables reserves n variables.
func (b *Builder) AddVariables(n int) {
	b.numVars += n
}

// AddClause normalizes and appends a clause. Literals referencing
// out-of-range variables are a programmer error and panic, matching the
// teacher's posture that AddClause is only ever called from a trusted
// loader (parsers.LoadDIMACS) after AddVariable has already run.
func (b *Builder) AddClause(literals []Literal, weight int) {
	lits, alwaysSat := dedupe(literals)
	b.clauses = append(b.clauses, Clause{
		Literals:  lits,
		Weight:    weight,
		AlwaysSat: alwaysSat,
	})
}

// dedupe removes duplicate literals and detects l/¬l pairs. It mutates and
// reslices its input, following the in-place swap-to-back discipline used
// throughout the teacher's clause construction.
func dedupe(literals []Literal) ([]Literal, bool) {
	size := len(literals)
	seen := make(map[Literal]struct{}, size)

	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[literals[i].Opposite()]; ok {
			return literals, true // tautological: l and ¬l both present
		}
		if _, ok := seen[literals[i]]; ok {
			size--
			literals[i], literals[size] = literals[size], literals[i]
			continue
		}
		seen[literals[i]] = struct{}{}
	}

	return literals[:size], false
}

// Build freezes the accumulated variables and clauses into a Formula,
// constructing the variable-to-clause index and the neighbor relation.
func (b *Builder) Build(weighted bool) *Formula {
	f := &Formula{
		numVars:    b.numVars,
		clauses:    b.clauses,
		varClauses: make([][]Occurrence, b.numVars),
		neighbors:  make([][]int, b.numVars),
		Weighted:   weighted,
	}

	for ci := range f.clauses {
		for _, lit := range f.clauses[ci].Literals {
			v := lit.VarID()
			f.varClauses[v] = append(f.varClauses[v], Occurrence{Clause: ci, Literal: lit})
		}
	}

	f.buildNeighbors()
	return f
}

// buildNeighbors computes, for every variable, the set of variables that
// share at least one clause with it. A transient boolean flag array is used
// per variable to deduplicate in time linear in the size of its occurrence
// list, per §4.A.
func (f *Formula) buildNeighbors() {
	seen := make([]bool, f.numVars)
	for v := 0; v < f.numVars; v++ {
		var neighbors []int
		for _, occ := range f.varClauses[v] {
			for _, lit := range f.clauses[occ.Clause].Literals {
				u := lit.VarID()
				if u == v || seen[u] {
					continue
				}
				seen[u] = true
				neighbors = append(neighbors, u)
			}
		}
		for _, u := range neighbors {
			seen[u] = false
		}
		f.neighbors[v] = neighbors
	}
}
