// Package runner drives independent UCT runs over a formula and reports
// results the way yass.Solver's printSearchHeader/printSearchStats pair
// reports a CDCL run: a small Options/DefaultOptions pair configures the
// search, and Run does the looping and the stdout contract.
package runner

import "time"

// Algorithm selects which SLS picker an alternate-picker run uses (§6's
// "-a" flag, only meaningful for the UBCSAT-backed variants; CCLS remains
// the package's library-level default picker and is not itself reachable
// through this flag — see DESIGN.md).
type Algorithm int

const (
	AlgorithmWalkSAT Algorithm = 0
	AlgorithmNovelty Algorithm = 1
)

// Options bundles every CLI-tunable parameter from §6's flag table,
// mirroring yass's sat.Options/sat.DefaultOptions pairing.
type Options struct {
	NumRuns       int
	MaxIterations int
	ExploreC      float64
	MaxFlips      int
	Noise         float64
	Algorithm     Algorithm
	Timeout       time.Duration
	// Seed seeds the run's RNG. Zero means "derive from wall-clock time",
	// matching §6's "RNG is seeded from wall-clock time by default".
	Seed int64
	// LeaderboardSize is the number of best runs the supplemented run
	// leaderboard reports; 0 disables it.
	LeaderboardSize int
}

// DefaultOptions matches §6's default column exactly.
var DefaultOptions = Options{
	NumRuns:         10,
	MaxIterations:   2000,
	ExploreC:        0.02,
	MaxFlips:        500,
	Noise:           0.0,
	Algorithm:       AlgorithmWalkSAT,
	Timeout:         15 * time.Second,
	Seed:            0,
	LeaderboardSize: 3,
}
