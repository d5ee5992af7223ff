package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const unsatCNF = `c minimalist unsat instance
p cnf 3 8
1 2 3 0
1 2 -3 0
1 -2 3 0
-1 2 3 0
-1 -2 3 0
-1 2 -3 0
1 -2 -3 0
-1 -2 -3 0
`

func TestParseReader_cnf(t *testing.T) {
	got, err := ParseReader(strings.NewReader(unsatCNF))
	if err != nil {
		t.Fatalf("ParseReader(): want no error, got %s", err)
	}
	if got.Variables != 3 || len(got.Clauses) != 8 {
		t.Errorf("ParseReader(): got variables=%d clauses=%d, want 3 and 8", got.Variables, len(got.Clauses))
	}
	if got.Weighted {
		t.Errorf("ParseReader(): cnf instance should not be weighted")
	}
}

func TestParseReader_wcnf(t *testing.T) {
	const wcnf = `p wcnf 1 2
5 1 0
3 -1 0
`
	got, err := ParseReader(strings.NewReader(wcnf))
	if err != nil {
		t.Fatalf("ParseReader(): want no error, got %s", err)
	}
	if !got.Weighted {
		t.Fatalf("ParseReader(): wcnf instance should be weighted")
	}
	want := []Clause{
		{Literals: []int{1}, Weight: 5},
		{Literals: []int{-1}, Weight: 3},
	}
	if diff := cmp.Diff(want, got.Clauses); diff != "" {
		t.Errorf("ParseReader(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReader_dropsTautologicalClause(t *testing.T) {
	const withTautology = `p cnf 2 2
1 -1 2 0
-2 0
`
	got, err := ParseReader(strings.NewReader(withTautology))
	if err != nil {
		t.Fatalf("ParseReader(): want no error, got %s", err)
	}
	if len(got.Clauses) != 1 {
		t.Fatalf("want the tautological clause dropped (1 remaining), got %d", len(got.Clauses))
	}
	if diff := cmp.Diff([]int{-2}, got.Clauses[0].Literals); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReader_unsupportedProblemType(t *testing.T) {
	_, err := ParseReader(strings.NewReader("p sat 1 1\n1 0\n"))
	if err == nil {
		t.Errorf("want error for unsupported problem type, got none")
	}
}

func TestToFormula_translatesLiteralEncoding(t *testing.T) {
	inst := &Instance{
		Variables: 2,
		Clauses: []Clause{
			{Literals: []int{1, -2}, Weight: 1},
		},
	}
	f := inst.ToFormula()
	if f.NumVars() != 2 || f.NumClauses() != 1 {
		t.Fatalf("got numVars=%d numClauses=%d, want 2 and 1", f.NumVars(), f.NumClauses())
	}
	lits := f.Clause(0).Literals
	if lits[0].VarID() != 0 || !lits[0].IsPositive() {
		t.Errorf("literal 1 should lower to positive var 0, got %+v", lits[0])
	}
	if lits[1].VarID() != 1 || lits[1].IsPositive() {
		t.Errorf("literal -2 should lower to negative var 1, got %+v", lits[1])
	}
}

func TestWriteThenParseReader_RoundTrips(t *testing.T) {
	original, err := ParseReader(strings.NewReader(unsatCNF))
	if err != nil {
		t.Fatalf("ParseReader(): %s", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write(): %s", err)
	}

	reloaded, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader() on the serialized output: %s", err)
	}

	if diff := cmp.Diff(original.Clauses, reloaded.Clauses); diff != "" {
		t.Errorf("round trip mismatch (-original +reloaded):\n%s", diff)
	}
	if original.Variables != reloaded.Variables || original.Weighted != reloaded.Weighted {
		t.Errorf("round trip mismatch: variables/weighted differ")
	}
}

func TestWriteThenParseReader_RoundTripsWeighted(t *testing.T) {
	original := &Instance{
		Weighted:  true,
		Variables: 1,
		Clauses: []Clause{
			{Literals: []int{1}, Weight: 5},
			{Literals: []int{-1}, Weight: 3},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write(): %s", err)
	}

	reloaded, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader(): %s", err)
	}
	if diff := cmp.Diff(original.Clauses, reloaded.Clauses); diff != "" {
		t.Errorf("round trip mismatch (-original +reloaded):\n%s", diff)
	}
}
