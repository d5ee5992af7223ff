package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/uctsat/uctsat/internal/dimacs"
	"github.com/uctsat/uctsat/internal/runner"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

var flagFormula = flag.String("f", "", "formula file (DIMACS CNF or WCNF), required")
var flagRuns = flag.Int("r", runner.DefaultOptions.NumRuns, "number of independent UCT runs")
var flagIterations = flag.Int("i", runner.DefaultOptions.MaxIterations, "max UCT iterations per run")
var flagExploreC = flag.Float64("c", runner.DefaultOptions.ExploreC, "UCB1 exploration constant C")
var flagMaxFlips = flag.Int("m", runner.DefaultOptions.MaxFlips, "max SLS flips per playout")
var flagNoise = flag.Float64("n", runner.DefaultOptions.Noise, "SLS noise parameter (0..1)")
var flagAlgorithm = flag.Int("a", int(runner.DefaultOptions.Algorithm), "SLS algorithm: 0=WalkSAT, 1=Novelty")
var flagTimeout = flag.Int("t", int(runner.DefaultOptions.Timeout.Seconds()), "per-run wall-clock timeout in seconds")
var flagSeed = flag.Int64("seed", 0, "RNG seed (0 = derive from wall-clock time)")
var flagGzip = flag.Bool("gz", false, "formula file is gzip-compressed")

func parseConfig() (*config, error) {
	flag.Parse()
	if *flagFormula == "" {
		return nil, fmt.Errorf("missing formula file (-f)")
	}
	if *flagAlgorithm != 0 && *flagAlgorithm != 1 {
		return nil, fmt.Errorf("invalid -a value %d: must be 0 or 1", *flagAlgorithm)
	}
	return &config{
		formulaFile: *flagFormula,
		gzipped:     *flagGzip,
	}, nil
}

type config struct {
	formulaFile string
	gzipped     bool
}

func runnerOptions() runner.Options {
	opts := runner.DefaultOptions
	opts.NumRuns = *flagRuns
	opts.MaxIterations = *flagIterations
	opts.ExploreC = *flagExploreC
	opts.MaxFlips = *flagMaxFlips
	opts.Noise = *flagNoise
	opts.Algorithm = runner.Algorithm(*flagAlgorithm)
	opts.Timeout = secondsToDuration(*flagTimeout)
	opts.Seed = *flagSeed
	return opts
}

func run(cfg *config) error {
	inst, err := dimacs.Parse(cfg.formulaFile, cfg.gzipped)
	if err != nil {
		return fmt.Errorf("could not parse formula: %w", err)
	}
	f := inst.ToFormula()

	runner.Run(f, runnerOptions(), os.Stdout)
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}
