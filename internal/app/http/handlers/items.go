package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/quote"
)

type fromCatalogRequest struct {
	CatalogID string `json:"catalog_id"`
}

func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req workspace.NewItem
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	_, d := h.draft(r)
	it, err := d.AddItem(req)
	if err != nil {
		writeItemError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handlers) AddItemFromCatalog(w http.ResponseWriter, r *http.Request) {
	var req fromCatalogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	entry, ok := h.Catalog.Lookup(req.CatalogID)
	if !ok {
		writeError(w, http.StatusNotFound, "catalog entry not found", nil)
		return
	}
	_, d := h.draft(r)
	writeJSON(w, http.StatusCreated, d.AddFromCatalog(entry))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch quote.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	_, d := h.draft(r)
	it, err := d.UpdateItem(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeItemError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	if err := d.RemoveItem(chi.URLParam(r, "id")); err != nil {
		writeItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found", nil)
	case errors.Is(err, quote.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, "invalid item", err)
	default:
		writeError(w, http.StatusInternalServerError, "item update failed", err)
	}
}
