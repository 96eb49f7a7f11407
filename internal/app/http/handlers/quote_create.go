package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/app/workspace"
	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

// CreateQuoteRequest is a complete quote sent by another system.
type CreateQuoteRequest struct {
	Number             *int                `json:"number"`
	Client             quote.Client        `json:"client"`
	Company            quote.Company       `json:"company"`
	Estimator          quote.Estimator     `json:"estimator"`
	Items              []workspace.NewItem `json:"items"`
	Discount           decimal.Decimal     `json:"discount"`
	ValidityDays       *int                `json:"validity_days"`
	ServiceDescription string              `json:"service_description"`
	Reference          string              `json:"reference"`
}

var errInvalidQuote = errors.New("invalid quote")

// internalUser owns archive records of proposals created through the internal API.
const internalUser = "internal"

func (req CreateQuoteRequest) build(h *Handlers) (quote.Quote, error) {
	if req.Discount.IsNegative() {
		return quote.Quote{}, fmt.Errorf("%w: discount must not be negative", errInvalidQuote)
	}
	q := quote.Quote{
		CreatedAt:          h.now(),
		Client:             req.Client,
		Company:            req.Company.Merge(h.Company),
		Estimator:          req.Estimator,
		Items:              make(quote.Items, 0, len(req.Items)),
		Discount:           req.Discount,
		ValidityDays:       h.Cfg.Quote.ValidityDays,
		ServiceDescription: req.ServiceDescription,
		Reference:          req.Reference,
	}
	if req.Number != nil {
		q.Number = *req.Number
	} else {
		q.Number = rand.IntN(10000)
	}
	if req.ValidityDays != nil {
		if *req.ValidityDays < 0 {
			return quote.Quote{}, fmt.Errorf("%w: validity days must not be negative", errInvalidQuote)
		}
		q.ValidityDays = *req.ValidityDays
	}
	for _, in := range req.Items {
		it, err := quote.NewLineItem(uuid.NewString(), in.Kind, in.Description, in.Quantity, in.Unit, in.UnitPrice)
		if err != nil {
			return quote.Quote{}, err
		}
		it.Details = in.Details
		q.Items = q.Items.Add(it)
	}
	return q, nil
}

// CreateQuote renders a proposal PDF without touching any draft.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	q, err := req.build(h)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote", err)
		return
	}

	p := quote.BuildProposal(q, h.now())
	pdfBytes, err := h.PDF.Generate(p)
	if err != nil {
		obs.Logger.Error("quote_pdf_failed", "number", p.Number, "error", err)
		writeError(w, http.StatusInternalServerError, "pdf generation failed", err)
		return
	}
	h.archive(r, quote.NewRecord(internalUser, p))
	writePDF(w, p.Number, pdfBytes)
}
