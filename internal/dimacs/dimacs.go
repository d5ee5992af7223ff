// Package dimacs loads DIMACS CNF/WCNF instances and lowers them into the
// solver's internal formula.Formula, the way yass's parsers.LoadDIMACS
// loads a CNF file straight into a sat.Solver: a small type implementing
// the external github.com/rhartert/dimacs Builder contract drives the
// token-level reader, and we just translate its callbacks.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"
	"github.com/uctsat/uctsat/internal/formula"
)

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// Parse reads a DIMACS CNF or WCNF file into an Instance. The problem
// line's token ("cnf" or "wcnf") decides whether clause lines carry a
// leading weight. Tautological clauses (containing both a literal and its
// negation) are dropped here, before they ever reach formula.Builder, so
// that the reported clause count matches §6's "M decremented" contract;
// formula.Builder's own AlwaysSat handling is reserved for formulas built
// directly, not through this loader.
func Parse(filename string, gzipped bool) (*Instance, error) {
	r, err := open(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	inst, err := ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", filename, err)
	}
	return inst, nil
}

// ParseReader parses DIMACS CNF/WCNF text from r, without any notion of a
// backing file. Exported mainly so tests and the round-trip checks in
// dimacs_test.go can parse in-memory text or a just-written buffer.
func ParseReader(r io.Reader) (*Instance, error) {
	inst := &Instance{}
	b := &builder{inst: inst}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return inst, nil
}

// builder wraps an Instance to implement the external dimacs.Builder
// contract (Problem/Clause/Comment).
type builder struct {
	inst *Instance
}

func (b *builder) Problem(problem string, nVars, nClauses int) error {
	switch problem {
	case "cnf":
		b.inst.Weighted = false
	case "wcnf":
		b.inst.Weighted = true
	default:
		return fmt.Errorf("unsupported problem type %q", problem)
	}
	b.inst.Variables = nVars
	b.inst.Clauses = make([]Clause, 0, nClauses)
	return nil
}

func (b *builder) Comment(c string) error {
	b.inst.Comments = append(b.inst.Comments, c)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	lits := tmpClause
	weight := 1
	if b.inst.Weighted {
		if len(tmpClause) == 0 {
			return fmt.Errorf("wcnf clause missing leading weight")
		}
		weight = tmpClause[0]
		lits = tmpClause[1:]
	}
	if isTautology(lits) {
		return nil
	}
	cl := make([]int, len(lits))
	copy(cl, lits)
	b.inst.Clauses = append(b.inst.Clauses, Clause{Literals: cl, Weight: weight})
	return nil
}

func isTautology(lits []int) bool {
	seen := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		if _, ok := seen[-l]; ok {
			return true
		}
		seen[l] = struct{}{}
	}
	return false
}

// ToFormula lowers the instance into a formula.Formula via formula.Builder,
// translating DIMACS's 1-based signed literal encoding into the solver's
// 0-based var/polarity literals.
func (inst *Instance) ToFormula() *formula.Formula {
	b := formula.NewBuilder()
	b.AddVariables(inst.Variables)
	for _, c := range inst.Clauses {
		lits := make([]formula.Literal, len(c.Literals))
		for i, l := range c.Literals {
			if l < 0 {
				lits[i] = formula.NegativeLiteral(-l - 1)
			} else {
				lits[i] = formula.PositiveLiteral(l - 1)
			}
		}
		b.AddClause(lits, c.Weight)
	}
	return b.Build(inst.Weighted)
}
