// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// MatchDependencies defines the interface for team match queries.
type MatchDependencies interface {
	TeamMatches(ctx context.Context, shadowID string, req model.ProjectRequirements) ([]model.TeamMatch, error)
}

// MatchesHandler handles team compatibility requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandlePostMatches handles POST /matches requests. Unknown identities get
// an empty list rather than an error.
func (h *MatchesHandler) HandlePostMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_matches"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	matches, err := h.deps.TeamMatches(r.Context(), req.ShadowID, req.Requirements)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
