package simcli

import (
	"fmt"

	"github.com/okian/laddersim/pkg/logger"
)

// SetupLogging initializes the logger for command-line runs.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}
	return nil
}

// ShowHelp prints usage information for the batch simulator.
func ShowHelp() {
	fmt.Print(`Laddersim Batch Simulator
=========================

Runs a batch of rated contests over a roster file and prints the summary.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -roster string
        Roster JSON file to load and update (default "roster.json")
  -output string
        Summary output file (default: stdout)
  -matches int
        Number of contests to simulate (default 1000)
  -k float
        K-factor controlling rating sensitivity (default 32)
  -arcade
        Enable the win-streak bonus
  -streak-bonus float
        Bonus fraction per consecutive win in arcade mode (default 0.1)
  -draw-probability float
        Probability of a contest ending in a draw (default 0)
  -decay float
        Rating points lost per inactive tick (default 0)
  -min-rating float
        Floor below which decay never pushes a rating (default 0)
  -base-rating float
        Initial rating for generated participants (default 1000)
  -seed int
        Random seed for reproducible runs (default: time-based)
  -init
        Create a sample roster file and exit
  -init-count int
        Number of participants in the sample roster (default 8)
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Create a sample roster of 8 participants
  go run cmd/simulate/main.go -init -roster roster.json

  # Run 5000 contests with a fixed seed
  go run cmd/simulate/main.go -roster roster.json -matches 5000 -seed 42

  # Arcade mode with decay
  go run cmd/simulate/main.go -roster roster.json -arcade -decay 2 -min-rating 800
`)
}
