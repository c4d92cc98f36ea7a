package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/laddersim/internal/domain/model"
)

// EncodeJSON writes the roster snapshot as a JSON array of participants.
// The store owns no file I/O; callers decide where the bytes go.
func (r *Roster) EncodeJSON(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Snapshot(ctx)); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return nil
}

// DecodeJSON builds a roster from a JSON array of participants, preserving
// array order as insertion order. Duplicate ids are rejected.
func DecodeJSON(ctx context.Context, rd io.Reader, opts ...Option) (*Roster, error) {
	var participants []model.Participant
	if err := json.NewDecoder(rd).Decode(&participants); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	r := NewRoster(opts...)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range participants {
		p := participants[i].Copy()
		if _, exists := r.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		r.byID[p.ID] = &p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}
