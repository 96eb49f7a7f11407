package handlers

import (
	"context"
	"net/http"
	"strings"

	"prema-telhados/go_backend/internal/domain/catalog"
)

// GetCatalog returns the current catalog snapshot, filtered by ?q= when given.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	snap := h.Catalog.Snapshot()
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		snap.Entries = catalog.Search(snap.Entries, q)
	}
	writeJSON(w, http.StatusOK, snap)
}

// ReloadCatalog detaches the fetch from the request so a client that goes
// away does not abort the reload other users are waiting on.
func (h *Handlers) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Reload(context.WithoutCancel(r.Context())))
}
