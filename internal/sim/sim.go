// Package sim drives batches of sequential contests over a roster and
// produces a reproducible run summary.
//
// Decay policy: every contest is one simulation tick. Before contest t is
// resolved, each participant NOT selected for it that has already missed at
// least one full tick (t - last_active_tick > 1) decays by one tick's worth,
// floored at the configured minimum rating. The two selected participants
// never decay on their own tick. This choice is fixed here so that a given
// seed always yields the same rating trajectory.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/laddersim/internal/adapters/repository"
	"github.com/okian/laddersim/internal/domain/engine"
	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/internal/domain/rating"
	"github.com/okian/laddersim/pkg/metrics"
)

// Defaults for the configuration bundle.
const (
	DefaultKFactor = 32.0
)

// Config is the per-run configuration bundle. A nil Seed requests
// time-seeded, non-reproducible randomness.
type Config struct {
	KFactor             float64
	ArcadeMode          bool
	StreakBonusFraction float64
	DrawProbability     float64
	DecayPerDay         float64
	MinRating           float64
	MatchCount          int
	Seed                *int64
}

// Validate rejects configurations the engine boundary does not accept.
func (c Config) Validate() error {
	switch {
	case c.KFactor < 0:
		return fmt.Errorf("%w: negative k_factor %v", ErrInvalidConfig, c.KFactor)
	case c.StreakBonusFraction < 0:
		return fmt.Errorf("%w: negative streak_bonus_fraction %v", ErrInvalidConfig, c.StreakBonusFraction)
	case c.DecayPerDay < 0:
		return fmt.Errorf("%w: negative decay_per_day %v", ErrInvalidConfig, c.DecayPerDay)
	case c.DrawProbability < 0 || c.DrawProbability >= 1:
		return fmt.Errorf("%w: draw_probability %v outside [0,1)", ErrInvalidConfig, c.DrawProbability)
	case c.MatchCount < 0:
		return fmt.Errorf("%w: negative match_count %d", ErrInvalidConfig, c.MatchCount)
	case c.MinRating < 0:
		return fmt.Errorf("%w: negative min_rating %v", ErrInvalidConfig, c.MinRating)
	}
	return nil
}

// FromRequest maps a queued run request onto a Config. Defaults for omitted
// request fields are resolved at the API boundary, not here.
func FromRequest(req model.RunRequest, minRating float64) Config {
	return Config{
		KFactor:             req.KFactor,
		ArcadeMode:          req.ArcadeMode,
		StreakBonusFraction: req.StreakBonusFraction,
		DrawProbability:     req.DrawProbability,
		DecayPerDay:         req.DecayPerDay,
		MinRating:           minRating,
		MatchCount:          req.MatchCount,
		Seed:                req.Seed,
	}
}

// ProgressFunc observes run progress after each committed contest. It runs
// synchronously; the next contest does not start until it returns.
type ProgressFunc func(completed, total int, last model.MatchResult)

// Simulator executes batches of contests. A Simulator is single-use per
// call: Run drives the whole batch synchronously on the calling goroutine.
type Simulator struct {
	cfg      Config
	progress ProgressFunc
}

// New creates a Simulator for the given configuration bundle. The
// configuration is validated at the start of Run so that an invalid bundle
// is rejected before any contest executes.
func New(cfg Config, opts ...Option) *Simulator {
	s := &Simulator{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the configured number of contests against roster and returns
// the run summary. Contests run strictly sequentially; contest i's rating
// mutations are visible to contest i+1. On a mid-batch failure or context
// cancellation the summary accumulated so far is returned along with the
// error. Cancellation is honored only at contest boundaries.
func (s *Simulator) Run(ctx context.Context, roster *repository.Roster) (model.RunSummary, error) {
	if err := s.cfg.Validate(); err != nil {
		return model.RunSummary{}, err
	}
	if roster == nil || roster.Len(ctx) < 2 {
		return model.RunSummary{}, ErrRosterTooSmall
	}

	rng := s.newRand()
	eng := engine.New(rng,
		engine.WithKFactor(s.cfg.KFactor),
		engine.WithArcadeMode(s.cfg.ArcadeMode),
		engine.WithStreakBonusFraction(s.cfg.StreakBonusFraction),
		engine.WithDrawProbability(s.cfg.DrawProbability),
	)

	records := roster.Records(ctx)
	results := make([]model.MatchResult, 0, s.cfg.MatchCount)

	for t := int64(1); t <= int64(s.cfg.MatchCount); t++ {
		select {
		case <-ctx.Done():
			return s.summarize(results, records), fmt.Errorf("%w at contest %d: %v", ErrRunCancelled, t, ctx.Err())
		default:
		}

		i, j := pickPair(rng, len(records))
		if s.cfg.DecayPerDay > 0 {
			s.applyDecay(records, i, j, t)
		}

		res, err := eng.Resolve(records[i], records[j], t)
		if err != nil {
			return s.summarize(results, records), fmt.Errorf("contest %d: %w", t, err)
		}
		results = append(results, res)

		metrics.RecordContestResolved()
		if res.Draw {
			metrics.RecordDrawResolved()
		}
		if s.progress != nil {
			s.progress(len(results), s.cfg.MatchCount, res)
		}
	}

	return s.summarize(results, records), nil
}

// newRand builds the run's random source: seeded when a seed is configured,
// time-seeded otherwise.
func (s *Simulator) newRand() *rand.Rand {
	if s.cfg.Seed != nil {
		return rand.New(rand.NewSource(*s.cfg.Seed)) //nolint:gosec // reproducible simulation randomness
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation randomness, not crypto
}

// pickPair selects two distinct indices uniformly at random.
func pickPair(rng *rand.Rand, n int) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// applyDecay decays every participant not selected for the current contest
// that has missed at least one full tick since it last played.
func (s *Simulator) applyDecay(records []*model.Participant, i, j int, tick int64) {
	for idx, p := range records {
		if idx == i || idx == j {
			continue
		}
		if tick-p.LastActiveTick <= 1 {
			continue
		}
		decayed := rating.Decay(p.Rating, 1, s.cfg.DecayPerDay, s.cfg.MinRating)
		if decayed != p.Rating {
			p.Rating = decayed
			metrics.RecordDecayApplication()
		}
	}
}

// summarize builds the RunSummary from the contest history and the current
// participant states.
func (s *Simulator) summarize(results []model.MatchResult, records []*model.Participant) model.RunSummary {
	final := make([]model.Participant, len(records))
	stats := model.Stats{
		Contests:     len(results),
		Participants: len(records),
	}
	var sum float64
	for idx, p := range records {
		final[idx] = p.Copy()
		r := p.Rating
		sum += r
		if idx == 0 || r < stats.MinRating {
			stats.MinRating = r
		}
		if idx == 0 || r > stats.MaxRating {
			stats.MaxRating = r
		}
	}
	if len(records) > 0 {
		stats.MeanRating = sum / float64(len(records))
	}
	return model.RunSummary{Results: results, Final: final, Stats: stats}
}
