// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/laddersim/internal/adapters/repository"
	"github.com/okian/laddersim/internal/domain/dedupe"
	"github.com/okian/laddersim/internal/domain/model"
)

// RunDependencies defines the interface for run submission and lookup.
type RunDependencies interface {
	dedupe.Deduper
	DefaultRun() model.RunRequest
	SubmitRun(ctx context.Context, req model.RunRequest) bool
	Run(ctx context.Context, runID string) (repository.RunRecord, error)
}

// RunsHandler handles run submission and lookup requests.
type RunsHandler struct {
	deps RunDependencies
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps RunDependencies) *RunsHandler {
	return &RunsHandler{deps: deps}
}

// runRequest mirrors the POST /runs JSON schema. Pointer fields distinguish
// omitted knobs (which fall back to configured defaults) from explicit
// zero values.
type runRequest struct {
	RunID               string   `json:"run_id"`
	MatchCount          int      `json:"match_count"`
	KFactor             *float64 `json:"k_factor"`
	ArcadeMode          *bool    `json:"arcade_mode"`
	StreakBonusFraction *float64 `json:"streak_bonus_fraction"`
	DrawProbability     *float64 `json:"draw_probability"`
	DecayPerDay         *float64 `json:"decay_per_day"`
	Seed                *int64   `json:"seed"`
}

func (r runRequest) validate() error {
	switch {
	case r.MatchCount < 0:
		return fmt.Errorf("match_count must not be negative")
	case r.KFactor != nil && *r.KFactor < 0:
		return fmt.Errorf("k_factor must not be negative")
	case r.StreakBonusFraction != nil && *r.StreakBonusFraction < 0:
		return fmt.Errorf("streak_bonus_fraction must not be negative")
	case r.DrawProbability != nil && (*r.DrawProbability < 0 || *r.DrawProbability >= 1):
		return fmt.Errorf("draw_probability must be in [0,1)")
	case r.DecayPerDay != nil && *r.DecayPerDay < 0:
		return fmt.Errorf("decay_per_day must not be negative")
	}
	return nil
}

// resolve merges the request onto the configured defaults.
func (r runRequest) resolve(defaults model.RunRequest) model.RunRequest {
	req := defaults
	req.RunID = r.RunID
	req.MatchCount = r.MatchCount
	if r.KFactor != nil {
		req.KFactor = *r.KFactor
	}
	if r.ArcadeMode != nil {
		req.ArcadeMode = *r.ArcadeMode
	}
	if r.StreakBonusFraction != nil {
		req.StreakBonusFraction = *r.StreakBonusFraction
	}
	if r.DrawProbability != nil {
		req.DrawProbability = *r.DrawProbability
	}
	if r.DecayPerDay != nil {
		req.DecayPerDay = *r.DecayPerDay
	}
	req.Seed = r.Seed
	return req
}

type runAckResponse struct {
	RunID     string `json:"run_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostRun handles POST /runs requests. Submissions are idempotent on
// run_id; a missing run_id gets a generated one.
func (h *RunsHandler) HandlePostRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.RunID) == "" {
		req.RunID = uuid.New().String()
	}

	// Idempotency check - mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.RunID) {
		writeJSON(w, http.StatusOK, runAckResponse{RunID: req.RunID, Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.SubmitRun(r.Context(), req.resolve(h.deps.DefaultRun())); !ok {
		// Roll back the seen status since the submission was rejected.
		h.deps.Unrecord(r.Context(), req.RunID)
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, runAckResponse{RunID: req.RunID, Status: "accepted"})
}

// HandleGetRun handles GET /runs/{run_id} requests.
func (h *RunsHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	runID := strings.TrimPrefix(r.URL.Path, "/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	rec, err := h.deps.Run(r.Context(), runID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
