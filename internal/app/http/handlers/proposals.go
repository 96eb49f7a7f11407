package handlers

import (
	"net/http"
	"strconv"

	"prema-telhados/go_backend/internal/domain/auth"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

const (
	defaultProposalLimit = 20
	maxProposalLimit     = 100
)

// ListProposals returns the archived proposals of the session user, newest first.
func (h *Handlers) ListProposals(w http.ResponseWriter, r *http.Request) {
	limit := defaultProposalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = min(n, maxProposalLimit)
	}
	user, _ := auth.UserFromContext(r.Context())
	if h.Archive == nil {
		writeJSON(w, http.StatusOK, map[string]any{"proposals": []quote.Record{}})
		return
	}
	records, err := h.Archive.List(r.Context(), user, limit)
	if err != nil {
		obs.Logger.Error("proposal_archive_list_failed", "username", user, "error", err)
		writeError(w, http.StatusInternalServerError, "archive unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"proposals": records})
}
