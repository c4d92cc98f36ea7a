// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/laddersim/internal/adapters/repository"
)

// ParticipantDependencies defines the interface for roster mutation.
type ParticipantDependencies interface {
	AddParticipant(ctx context.Context, id string, initialRating float64) error
}

// ParticipantHandler handles roster registration requests.
type ParticipantHandler struct {
	deps ParticipantDependencies
}

// NewParticipantHandler creates a new participant handler.
func NewParticipantHandler(deps ParticipantDependencies) *ParticipantHandler {
	return &ParticipantHandler{deps: deps}
}

// participantRequest mirrors the POST /participants JSON schema. A zero
// initial rating falls back to the configured base rating.
type participantRequest struct {
	ID            string  `json:"id"`
	InitialRating float64 `json:"initial_rating"`
}

func (p participantRequest) validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return errors.New("missing id")
	case p.InitialRating < 0:
		return errors.New("initial_rating must not be negative")
	}
	return nil
}

type participantAckResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HandlePostParticipant handles POST /participants requests.
func (h *ParticipantHandler) HandlePostParticipant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := h.deps.AddParticipant(r.Context(), req.ID, req.InitialRating); err != nil {
		if errors.Is(err, repository.ErrDuplicateParticipant) {
			writeError(w, http.StatusConflict, "duplicate", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, participantAckResponse{ID: req.ID, Status: "created"})
}
