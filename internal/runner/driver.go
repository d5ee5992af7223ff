package runner

import (
	"fmt"
	"io"
	"time"

	"github.com/uctsat/uctsat/internal/formula"
	"github.com/uctsat/uctsat/internal/search"
	"github.com/uctsat/uctsat/internal/uct"
)

// RunResult is one independent UCT run's outcome (§4.H): the unsatisfied
// clause count the stdout contract reports, the reward it was derived
// from, and the best assignment found.
type RunResult struct {
	NumUnsat   int
	BestReward float64
	BestSoln   []bool
}

// Run performs opts.NumRuns independent UCT runs over f, printing the
// parameter echo and the per-run "Run i: <numUnsat>" contract of §6 to
// out, the way yass's run() prints "c variables:"/"c clauses:" before
// solving. It returns every run's result for callers (tests, the
// leaderboard) that want them without scraping stdout.
func Run(f *formula.Formula, opts Options, out io.Writer) []RunResult {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := search.NewRNG(seed)

	fmt.Fprintf(out, "c variables:  %d\n", f.NumVars())
	fmt.Fprintf(out, "c clauses:    %d\n", f.NumClauses())
	fmt.Fprintf(out, "c runs:       %d\n", opts.NumRuns)
	fmt.Fprintf(out, "c iterations: %d\n", opts.MaxIterations)
	fmt.Fprintf(out, "c explore_c:  %g\n", opts.ExploreC)
	fmt.Fprintf(out, "c max_flips:  %d\n", opts.MaxFlips)
	fmt.Fprintf(out, "c noise:      %g\n", opts.Noise)
	fmt.Fprintf(out, "c algorithm:  %d\n", opts.Algorithm)
	fmt.Fprintf(out, "c timeout:    %s\n", opts.Timeout)

	picker := pickerFor(opts)
	state := search.NewState(f, rng)

	var lb *Leaderboard
	if opts.LeaderboardSize > 0 {
		lb = NewLeaderboard(opts.NumRuns)
	}

	results := make([]RunResult, opts.NumRuns)
	for i := 0; i < opts.NumRuns; i++ {
		res := runOnce(f, state, picker, opts, rng)
		results[i] = res
		fmt.Fprintf(out, "Run %d: %d\n", i, res.NumUnsat)
		if lb != nil {
			lb.Record(i, res.BestReward, res.NumUnsat)
		}
	}

	if lb != nil {
		fmt.Fprintf(out, "c --- best runs by reward ---\n")
		for _, e := range lb.Top(opts.LeaderboardSize) {
			fmt.Fprintf(out, "c run %d: reward=%.4f numUnsat=%d\n", e.Run, e.Reward, e.NumUnsat)
		}
	}

	return results
}

// runOnce performs a single independent run (§4.H): it seeds a fresh
// incumbent, checks whether the formula is already closed at the root
// (§7's "formula trivially closed at root" case), and otherwise drives a
// fresh UCT tree until maxIterations or the wall-clock deadline, whichever
// comes first. The deadline is only observed at playNode boundaries (§5):
// there is no mid-playout cancellation.
func runOnce(f *formula.Formula, state *search.State, picker search.Picker, opts Options, rng *search.RNG) RunResult {
	inc := search.NewIncumbent(f.NumVars())
	inc.SeedRandom(rng)

	closedAtRoot := state.Reset(nil, inc.BestSoln)
	if closedAtRoot {
		satisfied := state.NumSatisfiedClauses()
		return RunResult{
			NumUnsat:   f.NumClauses() - satisfied,
			BestReward: uct.Reward(satisfied, f.NumClauses()),
			BestSoln:   append([]bool(nil), inc.BestSoln...),
		}
	}

	rootAtom := state.BranchAtom(state.NewCounts())
	tree := uct.NewTree(rootAtom, f.NumVars()-1, opts.ExploreC, state, picker, inc, rng, opts.MaxFlips)

	deadline := time.Now().Add(opts.Timeout)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		if time.Now().After(deadline) {
			break
		}
		tree.Play()
		if tree.FullyClosed() {
			break
		}
	}

	return RunResult{
		NumUnsat:   f.NumClauses() - tree.BestSatisfied(),
		BestReward: tree.BestReward(),
		BestSoln:   append([]bool(nil), inc.BestSoln...),
	}
}

func pickerFor(opts Options) search.Picker {
	if opts.Algorithm == AlgorithmNovelty {
		return search.NoveltyPicker{NovNoise: opts.Noise}
	}
	return search.WalkSATPicker{WalkProb: opts.Noise}
}
