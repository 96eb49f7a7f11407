package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the archived summary of an exported proposal.
type Record struct {
	Number     int             `json:"number"`
	Username   string          `json:"username"`
	ClientName string          `json:"client_name"`
	Reference  string          `json:"reference"`
	FinalTotal decimal.Decimal `json:"final_total"`
	IssuedAt   time.Time       `json:"issued_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Items      int             `json:"items"`
}

type Archive interface {
	Record(ctx context.Context, r Record) error
	List(ctx context.Context, username string, limit int) ([]Record, error)
}

func NewRecord(username string, p Proposal) Record {
	name := p.Client.Company
	if name == "" {
		name = p.Client.Name
	}
	return Record{
		Number:     p.Number,
		Username:   username,
		ClientName: name,
		Reference:  p.Reference,
		FinalTotal: p.Totals.Final,
		IssuedAt:   p.IssuedAt,
		ExpiresAt:  p.ExpiresAt,
		Items:      len(p.Lines),
	}
}
