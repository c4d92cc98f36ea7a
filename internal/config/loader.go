package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LADDERSIM_CONFIG is set
//  3. env (prefix LADDERSIM_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("LADDERSIM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: LADDERSIM_ADDR, LADDERSIM_K_FACTOR, ...
	// Map env keys like LADDERSIM_RUN_QUEUE_SIZE -> run_queue_size, keeping
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("LADDERSIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "laddersim_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the engine boundary contract: negative tuning knobs,
// counts or limits never make it past configuration loading.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.KFactor < 0:
		return fmt.Errorf("%w: k_factor must not be negative", ErrInvalidConfig)
	case c.StreakBonusFraction < 0:
		return fmt.Errorf("%w: streak_bonus_fraction must not be negative", ErrInvalidConfig)
	case c.DecayPerDay < 0:
		return fmt.Errorf("%w: decay_per_day must not be negative", ErrInvalidConfig)
	case c.DrawProbability < 0 || c.DrawProbability >= 1:
		return fmt.Errorf("%w: draw_probability must be in [0,1)", ErrInvalidConfig)
	case c.BaseRating <= 0:
		return fmt.Errorf("%w: base_rating must be positive", ErrInvalidConfig)
	case c.MinRating < 0:
		return fmt.Errorf("%w: min_rating must not be negative", ErrInvalidConfig)
	case c.SeedRoster < 0:
		return fmt.Errorf("%w: seed_roster must not be negative", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
