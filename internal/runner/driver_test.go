package runner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/uctsat/uctsat/internal/formula"
)

func testOptions() Options {
	opts := DefaultOptions
	opts.NumRuns = 3
	opts.MaxIterations = 200
	opts.Timeout = time.Second
	opts.Seed = 42
	return opts
}

func TestRun_TriviallySatisfiableTwoClauseCNF(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(2)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0), formula.PositiveLiteral(1)}, 1)
	f := b.Build(false)

	var buf bytes.Buffer
	results := Run(f, testOptions(), &buf)

	for i, r := range results {
		if r.NumUnsat != 0 {
			t.Errorf("run %d: want 0 unsatisfied clauses, got %d", i, r.NumUnsat)
		}
	}
	if !strings.Contains(buf.String(), "Run 0: 0") {
		t.Errorf("stdout missing expected per-run line, got:\n%s", buf.String())
	}
}

func TestRun_UnsatisfiableSingleVariableCNF(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(1)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0)}, 1)
	f := b.Build(false)

	var buf bytes.Buffer
	results := Run(f, testOptions(), &buf)

	for i, r := range results {
		if r.NumUnsat != 1 {
			t.Errorf("run %d: want 1 unsatisfied clause (unsatisfiable instance), got %d", i, r.NumUnsat)
		}
	}
}

func TestRun_TautologyBearingCNFWithAlwaysSatClause(t *testing.T) {
	// (x1 v -x1 v x2) ^ (-x2): the first clause is built directly via
	// formula.Builder here (AlwaysSat), matching the fact that the DIMACS
	// loader would instead have dropped it before this point (§6).
	b := formula.NewBuilder()
	b.AddVariables(2)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.NegativeLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(1)}, 1)
	f := b.Build(false)

	var buf bytes.Buffer
	results := Run(f, testOptions(), &buf)

	for i, r := range results {
		if r.NumUnsat != 0 {
			t.Errorf("run %d: want 0 unsatisfied clauses, got %d", i, r.NumUnsat)
		}
	}
}

func TestRun_WeightedMaxSatBestWeightIsThree(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(1)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0)}, 5)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0)}, 3)
	f := b.Build(true)

	var buf bytes.Buffer
	results := Run(f, testOptions(), &buf)

	for i, r := range results {
		if r.NumUnsat != 1 {
			t.Errorf("run %d: want exactly one of the two clauses left unsatisfied, got %d", i, r.NumUnsat)
		}
		if len(r.BestSoln) != 1 || !r.BestSoln[0] {
			t.Errorf("run %d: want x1=true (drops the lighter clause), got %v", i, r.BestSoln)
		}
	}
}

func TestRun_TwoVariableClauseSatisfiedWithinFourIterations(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(2)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	f := b.Build(false)

	opts := testOptions()
	opts.NumRuns = 1
	opts.MaxIterations = 4

	var buf bytes.Buffer
	results := Run(f, opts, &buf)

	if results[0].NumUnsat != 0 {
		t.Errorf("want a satisfying assignment within 4 iterations, got numUnsat=%d", results[0].NumUnsat)
	}
}

func TestRun_SeedDeterminism(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(4)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(1), formula.PositiveLiteral(2)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(2), formula.PositiveLiteral(3)}, 1)
	f1 := b.Build(false)

	b2 := formula.NewBuilder()
	b2.AddVariables(4)
	b2.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b2.AddClause([]formula.Literal{formula.NegativeLiteral(1), formula.PositiveLiteral(2)}, 1)
	b2.AddClause([]formula.Literal{formula.NegativeLiteral(2), formula.PositiveLiteral(3)}, 1)
	f2 := b2.Build(false)

	opts := testOptions()
	opts.NumRuns = 1
	opts.Seed = 123

	var buf1, buf2 bytes.Buffer
	r1 := Run(f1, opts, &buf1)
	r2 := Run(f2, opts, &buf2)

	if r1[0].NumUnsat != r2[0].NumUnsat {
		t.Errorf("same seed should reproduce the same unsatisfied count, got %d and %d", r1[0].NumUnsat, r2[0].NumUnsat)
	}
}

func TestRun_TimeoutRespected(t *testing.T) {
	b := formula.NewBuilder()
	n := 40
	b.AddVariables(n)
	for v := 0; v < n-1; v++ {
		b.AddClause([]formula.Literal{formula.PositiveLiteral(v), formula.PositiveLiteral(v + 1)}, 1)
		b.AddClause([]formula.Literal{formula.NegativeLiteral(v), formula.NegativeLiteral(v + 1)}, 1)
	}
	f := b.Build(false)

	opts := testOptions()
	opts.NumRuns = 1
	opts.MaxIterations = 1 << 20
	opts.Timeout = 200 * time.Millisecond

	start := time.Now()
	var buf bytes.Buffer
	Run(f, opts, &buf)
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("run did not respect its timeout, took %s", elapsed)
	}
}

func TestRun_LeaderboardReportsBestRunsByReward(t *testing.T) {
	b := formula.NewBuilder()
	b.AddVariables(2)
	b.AddClause([]formula.Literal{formula.PositiveLiteral(0), formula.PositiveLiteral(1)}, 1)
	b.AddClause([]formula.Literal{formula.NegativeLiteral(0), formula.PositiveLiteral(1)}, 1)
	f := b.Build(false)

	opts := testOptions()
	opts.LeaderboardSize = 2

	var buf bytes.Buffer
	Run(f, opts, &buf)

	if !strings.Contains(buf.String(), "best runs by reward") {
		t.Errorf("want leaderboard section in stdout, got:\n%s", buf.String())
	}
}
