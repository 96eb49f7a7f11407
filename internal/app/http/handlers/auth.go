package handlers

import (
	"errors"
	"net/http"
	"strings"

	"prema-telhados/go_backend/internal/domain/auth"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username  string          `json:"username"`
	Estimator quote.Estimator `json:"estimator"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	est, err := h.Accounts.Authenticate(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		obs.Logger.Info("auth_login_rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed", err)
		return
	}

	user := strings.TrimSpace(req.Username)
	h.Sessions.Create(w, user)
	h.Drafts.Draft(user, est)
	obs.Logger.Info("auth_login", "username", user)
	writeJSON(w, http.StatusOK, userResponse{Username: user, Estimator: est})
}

// Logout clears the session and forgets the draft of the user, if any.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := h.Sessions.Parse(r); ok {
		h.Drafts.Drop(user)
		obs.Logger.Info("auth_logout", "username", user)
	}
	h.Sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	est, _ := h.Accounts.Estimator(user)
	writeJSON(w, http.StatusOK, userResponse{Username: user, Estimator: est})
}
