// Package repository provides the roster store that owns all participant
// records, and the run store holding completed batch summaries.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/pkg/metrics"
)

// defaultBaseRating is the rating assigned to new participants when no
// explicit initial rating is given.
const defaultBaseRating = 1000.0

// Entry is a leaderboard row derived from the roster.
type Entry struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	Rating        float64 `json:"rating"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	MatchesPlayed int     `json:"matches_played"`
}

// Roster is the sole owner of participant records, keyed by id. Insertion
// order is preserved so that seeded pairing over the roster is deterministic.
// It is safe for concurrent use; the simulation loop itself holds the only
// live references to records during a run (see Records).
type Roster struct {
	mu         sync.RWMutex
	byID       map[string]*model.Participant
	order      []string
	baseRating float64
}

// NewRoster creates an empty roster.
func NewRoster(opts ...Option) *Roster {
	r := &Roster{
		byID:       make(map[string]*model.Participant),
		baseRating: defaultBaseRating,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRosterFromSeeds builds a roster from {id, initial_rating} pairs.
// Duplicate ids are rejected. A non-positive initial rating falls back to
// the configured base rating.
func NewRosterFromSeeds(seeds []model.Seed, opts ...Option) (*Roster, error) {
	r := NewRoster(opts...)
	for _, s := range seeds {
		rating := s.InitialRating
		if rating <= 0 {
			rating = r.baseRating
		}
		if err := r.Add(context.Background(), s.ID, rating); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a new participant at the given initial rating.
// Returns ErrDuplicateParticipant if the id is already present.
func (r *Roster) Add(ctx context.Context, id string, initialRating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
	}
	if initialRating <= 0 {
		initialRating = r.baseRating
	}
	r.byID[id] = &model.Participant{ID: id, Rating: initialRating}
	r.order = append(r.order, id)
	metrics.UpdateRosterSize(len(r.order))
	return nil
}

// Get returns a copy of the participant with the given id.
func (r *Roster) Get(ctx context.Context, id string) (model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return model.Participant{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}
	return p.Copy(), nil
}

// Len returns the number of participants.
func (r *Roster) Len(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// IDs returns participant ids in insertion order.
func (r *Roster) IDs(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Records returns the owned participant records in insertion order for the
// simulation loop to mutate in place. Any other caller must use Snapshot or
// Get, which return copies that never observe later mutation.
func (r *Roster) Records(ctx context.Context) []*model.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.Participant, len(r.order))
	for i, id := range r.order {
		records[i] = r.byID[id]
	}
	return records
}

// Snapshot returns deep copies of all participants in insertion order.
func (r *Roster) Snapshot(ctx context.Context) []model.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Participant, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id].Copy()
	}
	return out
}

// Clone returns an independent deep copy of the roster. Concurrent
// experiments must run against clones, never against the same instance.
func (r *Roster) Clone(ctx context.Context) *Roster {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Roster{
		byID:       make(map[string]*model.Participant, len(r.byID)),
		order:      make([]string, len(r.order)),
		baseRating: r.baseRating,
	}
	copy(c.order, r.order)
	for id, p := range r.byID {
		cp := p.Copy()
		c.byID[id] = &cp
	}
	return c
}

// ApplyState commits final participant states back into the roster,
// replacing matching records and inserting unknown ones. It is used to
// publish the outcome of a run executed on a clone.
func (r *Roster) ApplyState(ctx context.Context, finals []model.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range finals {
		p := finals[i].Copy()
		if _, exists := r.byID[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = &p
	}
	metrics.UpdateRosterSize(len(r.order))
}

// TopN returns the top-n leaderboard entries ordered by rating descending,
// ties broken by insertion order.
func (r *Roster) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	ranked := r.ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

// Rank returns the leaderboard entry for one participant.
func (r *Roster) Rank(ctx context.Context, id string) (Entry, error) {
	for _, e := range r.ranked() {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
}

// ranked builds the full leaderboard with stable ordering.
func (r *Roster) ranked() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		entries = append(entries, Entry{
			ID:            p.ID,
			Rating:        p.Rating,
			Wins:          p.Wins,
			Losses:        p.Losses,
			Draws:         p.Draws,
			MatchesPlayed: p.MatchesPlayed,
		})
	}
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
