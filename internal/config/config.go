// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and environment vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration for the simulation service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RunQueueSize bounds the in-memory run request queue.
	RunQueueSize int `koanf:"run_queue_size"`

	// WorkerCount sets the number of run workers. The default of one keeps
	// run execution and roster commits strictly sequential.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the run-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// SeedRoster pre-populates the roster with this many sample
	// participants at the base rating. Zero starts with an empty roster.
	SeedRoster int `koanf:"seed_roster"`

	// BaseRating is the initial rating for new participants.
	BaseRating float64 `koanf:"base_rating"`

	// MinRating is the floor applied by inactivity decay.
	MinRating float64 `koanf:"min_rating"`

	// Default rating-update knobs applied when a run request omits them.
	KFactor             float64 `koanf:"k_factor"`
	ArcadeMode          bool    `koanf:"arcade_mode"`
	StreakBonusFraction float64 `koanf:"streak_bonus_fraction"`
	DrawProbability     float64 `koanf:"draw_probability"`
	DecayPerDay         float64 `koanf:"decay_per_day"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		RunQueueSize:        1024,
		WorkerCount:         1,
		DedupeSize:          50_000,
		MaxLeaderboardLimit: 100,
		SeedRoster:          0,
		BaseRating:          1000.0,
		MinRating:           0.0,
		KFactor:             32.0,
		ArcadeMode:          false,
		StreakBonusFraction: 0.0,
		DrawProbability:     0.0,
		DecayPerDay:         0.0,
	}
}
