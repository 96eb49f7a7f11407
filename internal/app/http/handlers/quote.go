package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

type quoteResponse struct {
	Quote    quote.Quote    `json:"quote"`
	Proposal quote.Proposal `json:"proposal"`
}

type totalsResponse struct {
	quote.Totals
	ValidityDays   int    `json:"validity_days"`
	ExpirationDate string `json:"expiration_date"`
}

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	q := d.Snapshot()
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Proposal: quote.BuildProposal(q, h.now())})
}

func (h *Handlers) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	var patch workspace.Patch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	_, d := h.draft(r)
	q, err := d.Update(patch)
	if errors.Is(err, workspace.ErrInvalidPatch) {
		writeError(w, http.StatusBadRequest, "invalid quote update", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "quote update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Proposal: quote.BuildProposal(q, h.now())})
}

func (h *Handlers) ResetQuote(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	q := d.Reset()
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, Proposal: quote.BuildProposal(q, h.now())})
}

func (h *Handlers) Totals(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	p := d.Proposal()
	writeJSON(w, http.StatusOK, totalsResponse{Totals: p.Totals, ValidityDays: p.ValidityDays, ExpirationDate: p.ExpirationDate})
}

// ProposalPDF renders the draft, archives a summary and draws a new number
// for the next proposal.
func (h *Handlers) ProposalPDF(w http.ResponseWriter, r *http.Request) {
	user, d := h.draft(r)
	p := d.Proposal()

	pdfBytes, err := h.PDF.Generate(p)
	if err != nil {
		obs.Logger.Error("proposal_pdf_failed", "username", user, "number", p.Number, "error", err)
		writeError(w, http.StatusInternalServerError, "pdf generation failed", err)
		return
	}
	h.archive(r, quote.NewRecord(user, p))
	d.RotateNumber()

	writePDF(w, p.Number, pdfBytes)
}

func (h *Handlers) archive(r *http.Request, rec quote.Record) {
	if h.Archive == nil {
		return
	}
	if err := h.Archive.Record(r.Context(), rec); err != nil {
		obs.Logger.Warn("proposal_archive_failed", "username", rec.Username, "number", rec.Number, "error", err)
	}
}

func writePDF(w http.ResponseWriter, number int, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="proposta-%04d.pdf"`, number))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
