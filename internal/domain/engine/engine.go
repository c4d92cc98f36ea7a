// Package engine resolves single contests between two participants and
// applies the resulting rating updates in place.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/internal/domain/rating"
)

// defaultKFactor matches the conventional Elo sensitivity.
const defaultKFactor = 32.0

// Engine resolves contests. The outcome is drawn stochastically from the
// injected random source, with the probability of side A winning equal to
// its expected score against side B.
type Engine struct {
	kFactor         float64
	arcade          bool
	bonusFraction   float64
	drawProbability float64
	rng             *rand.Rand
}

// New creates an Engine using rng as its outcome source. A nil rng falls
// back to a time-seeded source, which makes outcomes non-reproducible.
func New(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		kFactor: defaultKFactor,
		rng:     rng,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation randomness, not crypto
	}
	return e
}

// Resolve runs exactly one contest between a and b at the given simulation
// tick. On success both participants are mutated (rating, streaks, match
// counters, activity tick) and the returned MatchResult captures pre-match
// ratings and applied deltas. On error nothing is mutated.
func (e *Engine) Resolve(a, b *model.Participant, tick int64) (model.MatchResult, error) {
	if a == nil || b == nil {
		return model.MatchResult{}, ErrNilParticipant
	}
	if a == b || a.ID == b.ID {
		return model.MatchResult{}, ErrSameParticipant
	}
	if !isFinite(a.Rating) || !isFinite(b.Rating) {
		return model.MatchResult{}, ErrNonFiniteRating
	}
	if e.kFactor < 0 {
		return model.MatchResult{}, ErrNegativeKFactor
	}

	expectedA := rating.ExpectedScore(a.Rating, b.Rating)

	// One roll decides both the draw band and, after renormalizing the
	// remaining probability mass, which side wins.
	roll := e.rng.Float64()
	if e.drawProbability > 0 && roll < e.drawProbability {
		return e.resolveDraw(a, b, expectedA, tick), nil
	}
	if e.drawProbability > 0 {
		roll = (roll - e.drawProbability) / (1 - e.drawProbability)
	}

	winner, loser := a, b
	expectedWinner := expectedA
	if roll >= expectedA {
		winner, loser = b, a
		expectedWinner = 1 - expectedA
	}
	return e.resolveDecisive(winner, loser, expectedWinner, tick), nil
}

// resolveDecisive applies a win/loss update. Without arcade mode the update
// is zero-sum; with it the winner's delta is amplified by the streak bonus
// while the loser still takes the unmodified negative base delta.
func (e *Engine) resolveDecisive(winner, loser *model.Participant, expectedWinner float64, tick int64) model.MatchResult {
	preWinner, preLoser := winner.Rating, loser.Rating

	winnerDelta := rating.Delta(e.kFactor, model.ScoreWin, expectedWinner)
	loserDelta := rating.Delta(e.kFactor, model.ScoreLoss, 1-expectedWinner)
	if e.arcade {
		winnerDelta = rating.StreakBonus(winnerDelta, winner.WinStreak, e.bonusFraction)
	}

	winner.Record(loser.ID, model.ScoreWin, winnerDelta, tick)
	loser.Record(winner.ID, model.ScoreLoss, loserDelta, tick)

	return model.MatchResult{
		Tick:            tick,
		WinnerID:        winner.ID,
		LoserID:         loser.ID,
		WinnerDelta:     winnerDelta,
		LoserDelta:      loserDelta,
		PreWinnerRating: preWinner,
		PreLoserRating:  preLoser,
	}
}

// resolveDraw applies a half-score update to both sides. Draws never carry
// a streak bonus and always stay zero-sum.
func (e *Engine) resolveDraw(a, b *model.Participant, expectedA float64, tick int64) model.MatchResult {
	preA, preB := a.Rating, b.Rating

	deltaA := rating.Delta(e.kFactor, model.ScoreDraw, expectedA)
	deltaB := -deltaA

	a.Record(b.ID, model.ScoreDraw, deltaA, tick)
	b.Record(a.ID, model.ScoreDraw, deltaB, tick)

	return model.MatchResult{
		Tick:            tick,
		WinnerID:        a.ID,
		LoserID:         b.ID,
		Draw:            true,
		WinnerDelta:     deltaA,
		LoserDelta:      deltaB,
		PreWinnerRating: preA,
		PreLoserRating:  preB,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
