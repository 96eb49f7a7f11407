package workspace

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
)

var ErrInvalidPatch = errors.New("invalid quote update")

type NewItem struct {
	Kind        quote.Kind      `json:"kind"`
	Description string          `json:"description"`
	Details     string          `json:"details"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Patch updates the quote header. Nil fields are left alone; records are
// replaced as a whole.
type Patch struct {
	Discount           *decimal.Decimal `json:"discount,omitempty"`
	ValidityDays       *int             `json:"validity_days,omitempty"`
	Client             *quote.Client    `json:"client,omitempty"`
	Company            *quote.Company   `json:"company,omitempty"`
	Estimator          *quote.Estimator `json:"estimator,omitempty"`
	ServiceDescription *string          `json:"service_description,omitempty"`
	Reference          *string          `json:"reference,omitempty"`
}

func (p Patch) validate() error {
	if p.Discount != nil && p.Discount.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidPatch)
	}
	if p.ValidityDays != nil && *p.ValidityDays < 0 {
		return fmt.Errorf("%w: validity days must not be negative", ErrInvalidPatch)
	}
	return nil
}

func (p Patch) apply(q quote.Quote) quote.Quote {
	if p.Discount != nil {
		q.Discount = *p.Discount
	}
	if p.ValidityDays != nil {
		q.ValidityDays = *p.ValidityDays
	}
	if p.Client != nil {
		q.Client = *p.Client
	}
	if p.Company != nil {
		q.Company = *p.Company
	}
	if p.Estimator != nil {
		q.Estimator = *p.Estimator
	}
	if p.ServiceDescription != nil {
		q.ServiceDescription = *p.ServiceDescription
	}
	if p.Reference != nil {
		q.Reference = *p.Reference
	}
	return q
}
