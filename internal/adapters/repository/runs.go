package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/laddersim/internal/domain/model"
)

// Run lifecycle states.
const (
	RunPending   = "pending"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// RunRecord tracks one submitted batch run and, once finished, its summary.
// A failed run still carries the partial summary accumulated before the
// aborting contest.
type RunRecord struct {
	RunID       string            `json:"run_id"`
	Status      string            `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Error       string            `json:"error,omitempty"`
	Summary     *model.RunSummary `json:"summary,omitempty"`
}

// RunStore holds run records by id.
type RunStore struct {
	mu   sync.RWMutex
	byID map[string]*RunRecord
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{byID: make(map[string]*RunRecord)}
}

// Create registers a pending run.
func (s *RunStore) Create(ctx context.Context, runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[runID] = &RunRecord{
		RunID:       runID,
		Status:      RunPending,
		SubmittedAt: time.Now().UTC(),
	}
}

// MarkRunning transitions a run to the running state.
func (s *RunStore) MarkRunning(ctx context.Context, runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.byID[runID]; ok {
		rec.Status = RunRunning
	}
}

// Complete stores the finished summary. A non-nil runErr marks the run as
// failed and keeps the partial summary alongside the error message.
func (s *RunStore) Complete(ctx context.Context, runID string, summary model.RunSummary, runErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[runID]
	if !ok {
		return
	}
	now := time.Now().UTC()
	rec.CompletedAt = &now
	rec.Summary = &summary
	if runErr != nil {
		rec.Status = RunFailed
		rec.Error = runErr.Error()
		return
	}
	rec.Status = RunCompleted
}

// Delete removes a run record, e.g. after a rejected submission.
func (s *RunStore) Delete(ctx context.Context, runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, runID)
}

// Get returns a copy of the run record for runID.
func (s *RunStore) Get(ctx context.Context, runID string) (RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[runID]
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return *rec, nil
}

// Count returns the number of tracked runs.
func (s *RunStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
