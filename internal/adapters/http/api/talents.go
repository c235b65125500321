// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zentro/shadowscout/internal/domain/model"
)

// TalentDependencies defines the interface for ranking queries.
type TalentDependencies interface {
	TopTalents(ctx context.Context, n int) ([]model.TalentEntry, error)
}

// TalentsHandler handles talent ranking requests.
type TalentsHandler struct {
	deps     TalentDependencies
	maxLimit int
}

// NewTalentsHandler creates a new talents handler.
func NewTalentsHandler(deps TalentDependencies, maxLimit int) *TalentsHandler {
	return &TalentsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTalents handles GET /talents?limit=N requests.
func (h *TalentsHandler) HandleGetTalents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_talents"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopTalents(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
