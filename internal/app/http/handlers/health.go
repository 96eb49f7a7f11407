package handlers

import (
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.Catalog.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"catalog_ready":  snap.Ready,
		"catalog_source": snap.Source,
	})
}
