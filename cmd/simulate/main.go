package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/laddersim/internal/simcli"
)

// Default configuration constants.
const (
	defaultMatches     = 1000
	defaultKFactor     = 32.0
	defaultStreakBonus = 0.1
	defaultBaseRating  = 1000.0
	defaultInitCount   = 8
)

func main() {
	var (
		rosterFile      = flag.String("roster", "roster.json", "Roster JSON file to load and update")
		outputFile      = flag.String("output", "", "Summary output file (default: stdout)")
		matches         = flag.Int("matches", defaultMatches, "Number of contests to simulate")
		kFactor         = flag.Float64("k", defaultKFactor, "K-factor controlling rating sensitivity")
		arcade          = flag.Bool("arcade", false, "Enable the win-streak bonus")
		streakBonus     = flag.Float64("streak-bonus", defaultStreakBonus, "Bonus fraction per consecutive win in arcade mode")
		drawProbability = flag.Float64("draw-probability", 0, "Probability of a contest ending in a draw")
		decay           = flag.Float64("decay", 0, "Rating points lost per inactive tick")
		minRating       = flag.Float64("min-rating", 0, "Floor below which decay never pushes a rating")
		baseRating      = flag.Float64("base-rating", defaultBaseRating, "Initial rating for generated participants")
		seed            = flag.Int64("seed", 0, "Random seed for reproducible runs (default: time-based)")
		initRoster      = flag.Bool("init", false, "Create a sample roster file and exit")
		initCount       = flag.Int("init-count", defaultInitCount, "Number of participants in the sample roster")
		verbose         = flag.Bool("verbose", false, "Enable debug logging")
		help            = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simcli.ShowHelp()
		return
	}

	// Setup logging
	if err := simcli.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Root context with cancel on SIGINT/SIGTERM so an interrupted batch
	// still reports the contests it completed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	config := &simcli.Config{
		RosterFile:      *rosterFile,
		OutputFile:      *outputFile,
		Matches:         *matches,
		KFactor:         *kFactor,
		Arcade:          *arcade,
		StreakBonus:     *streakBonus,
		DrawProbability: *drawProbability,
		DecayPerDay:     *decay,
		MinRating:       *minRating,
		BaseRating:      *baseRating,
		Seed:            *seed,
		SeedSet:         seedSet,
		Init:            *initRoster,
		InitCount:       *initCount,
		Verbose:         *verbose,
	}

	// Run the batch
	if err := simcli.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
