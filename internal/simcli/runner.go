// Package simcli implements the command-line batch runner: it loads a
// roster file, drives one simulation batch and writes the summary as JSON.
// All file I/O lives here, outside the engine core.
package simcli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/internal/sim"
	"github.com/okian/laddersim/pkg/logger"
)

// progressLogInterval controls how often the progress callback logs.
const progressLogInterval = 100

// Run executes one command-line batch described by config.
func Run(ctx context.Context, config *Config) error {
	log := logger.Get().Named("simcli")

	if config.Init {
		return initRoster(ctx, config, log)
	}

	roster, err := LoadRoster(ctx, config.RosterFile, config.BaseRating)
	if err != nil {
		return err
	}
	log.Info(ctx, "roster loaded",
		logger.String("file", config.RosterFile),
		logger.Int("participants", roster.Len(ctx)),
	)

	cfg := sim.Config{
		KFactor:             config.KFactor,
		ArcadeMode:          config.Arcade,
		StreakBonusFraction: config.StreakBonus,
		DrawProbability:     config.DrawProbability,
		DecayPerDay:         config.DecayPerDay,
		MinRating:           config.MinRating,
		MatchCount:          config.Matches,
	}
	if config.SeedSet {
		seed := config.Seed
		cfg.Seed = &seed
	}

	opts := []sim.Option{}
	if config.Verbose {
		opts = append(opts, sim.WithProgress(func(completed, total int, last model.MatchResult) {
			if completed%progressLogInterval == 0 || completed == total {
				log.Debug(ctx, "progress",
					logger.Int("completed", completed),
					logger.Int("total", total),
					logger.String("lastWinner", last.WinnerID),
				)
			}
		}))
	}

	summary, err := sim.New(cfg, opts...).Run(ctx, roster)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if err := SaveRoster(ctx, config.RosterFile, roster); err != nil {
		return err
	}
	if err := writeSummary(config.OutputFile, summary); err != nil {
		return err
	}

	log.Info(ctx, "simulation finished",
		logger.Int("contests", summary.Stats.Contests),
		logger.Float64("meanRating", summary.Stats.MeanRating),
		logger.Float64("minRating", summary.Stats.MinRating),
		logger.Float64("maxRating", summary.Stats.MaxRating),
	)
	return nil
}

// initRoster creates a sample roster file unless one already exists.
func initRoster(ctx context.Context, config *Config, log logger.Logger) error {
	if _, err := os.Stat(config.RosterFile); err == nil {
		log.Info(ctx, "roster file already exists", logger.String("file", config.RosterFile))
		return nil
	}
	roster, err := SampleRoster(ctx, config.InitCount, config.BaseRating)
	if err != nil {
		return err
	}
	if err := SaveRoster(ctx, config.RosterFile, roster); err != nil {
		return err
	}
	log.Info(ctx, "sample roster created",
		logger.String("file", config.RosterFile),
		logger.Int("participants", config.InitCount),
	)
	return nil
}

// writeSummary emits the run summary as indented JSON.
func writeSummary(path string, summary model.RunSummary) error {
	out := os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, rosterFilePermission)
		if err != nil {
			return fmt.Errorf("create summary file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
