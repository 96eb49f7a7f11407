package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/auth"
	"prema-telhados/go_backend/internal/obs"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger.Warn("http_encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := errorBody{Error: msg}
	if err != nil {
		body.Details = err.Error()
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v)
}

// draft returns the draft of the session user. RequireSession runs first.
func (h *Handlers) draft(r *http.Request) (string, *workspace.Draft) {
	user, _ := auth.UserFromContext(r.Context())
	est, _ := h.Accounts.Estimator(user)
	return user, h.Drafts.Draft(user, est)
}
