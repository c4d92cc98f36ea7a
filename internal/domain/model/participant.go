// Package model contains domain entities passed between layers.
package model

// Default bookkeeping limits.
const (
	// maxHistoryEntries bounds the per-participant match history so long
	// simulations do not grow memory without limit.
	maxHistoryEntries = 64
)

// Outcome scores for a resolved contest.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

// Seed describes a participant at roster construction time.
type Seed struct {
	ID            string  `json:"id"`
	InitialRating float64 `json:"initial_rating"`
}

// HistoryEntry records one resolved contest from a participant's view.
type HistoryEntry struct {
	Tick       int64   `json:"tick"`
	OpponentID string  `json:"opponent_id"`
	Score      float64 `json:"score"`
	Delta      float64 `json:"delta"`
}

// Participant is a competitor tracked by the roster. Its state is mutated
// only by the match engine after a resolved contest and by the decay step.
type Participant struct {
	ID             string         `json:"id"`
	Rating         float64        `json:"rating"`
	WinStreak      int            `json:"win_streak"`
	MatchesPlayed  int            `json:"matches_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	LastActiveTick int64          `json:"last_active_tick"`
	History        []HistoryEntry `json:"history,omitempty"`
}

// Record applies the outcome of a resolved contest: rating delta, streak and
// win/loss/draw counters, activity tick and a bounded history entry.
func (p *Participant) Record(opponentID string, score, delta float64, tick int64) {
	switch score {
	case ScoreWin:
		p.WinStreak++
		p.Wins++
	case ScoreDraw:
		p.WinStreak = 0
		p.Draws++
	default:
		p.WinStreak = 0
		p.Losses++
	}

	p.Rating += delta
	p.MatchesPlayed++
	p.LastActiveTick = tick

	p.History = append(p.History, HistoryEntry{
		Tick:       tick,
		OpponentID: opponentID,
		Score:      score,
		Delta:      delta,
	})
	if len(p.History) > maxHistoryEntries {
		p.History = p.History[len(p.History)-maxHistoryEntries:]
	}
}

// Copy returns a deep copy of the participant.
func (p *Participant) Copy() Participant {
	c := *p
	if p.History != nil {
		c.History = make([]HistoryEntry, len(p.History))
		copy(c.History, p.History)
	}
	return c
}

// MatchResult captures one resolved contest. For a draw the Winner/Loser
// fields hold the two sides in selection order; Draw distinguishes the case.
type MatchResult struct {
	Tick            int64   `json:"tick"`
	WinnerID        string  `json:"winner_id"`
	LoserID         string  `json:"loser_id"`
	Draw            bool    `json:"draw"`
	WinnerDelta     float64 `json:"winner_delta"`
	LoserDelta      float64 `json:"loser_delta"`
	PreWinnerRating float64 `json:"pre_winner_rating"`
	PreLoserRating  float64 `json:"pre_loser_rating"`
}

// Stats aggregates ratings over the final roster state of a run.
type Stats struct {
	Contests     int     `json:"contests"`
	Participants int     `json:"participants"`
	MeanRating   float64 `json:"mean_rating"`
	MinRating    float64 `json:"min_rating"`
	MaxRating    float64 `json:"max_rating"`
}

// RunSummary is the result of one batch run: the ordered contest history,
// the final participant states and aggregate statistics.
type RunSummary struct {
	Results []MatchResult `json:"results"`
	Final   []Participant `json:"final"`
	Stats   Stats         `json:"stats"`
}

// RunRequest describes a batch run submitted through the queue. A nil Seed
// requests non-reproducible randomness.
type RunRequest struct {
	RunID               string  `json:"run_id"`
	MatchCount          int     `json:"match_count"`
	KFactor             float64 `json:"k_factor"`
	ArcadeMode          bool    `json:"arcade_mode"`
	StreakBonusFraction float64 `json:"streak_bonus_fraction"`
	DrawProbability     float64 `json:"draw_probability"`
	DecayPerDay         float64 `json:"decay_per_day"`
	Seed                *int64  `json:"seed,omitempty"`
}
