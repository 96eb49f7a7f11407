package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"prema-telhados/go_backend/internal/domain/quote"
)

// Proposals archives exported proposals in the proposals table.
type Proposals struct {
	db *DB
}

func NewProposals(db *DB) *Proposals { return &Proposals{db: db} }

func (p *Proposals) Record(ctx context.Context, r quote.Record) error {
	_, err := p.db.Pool.Exec(ctx, `
		INSERT INTO proposals (number, username, client_name, reference, final_total, item_count, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.Number, r.Username, r.ClientName, r.Reference, r.FinalTotal, r.Items, r.IssuedAt, r.ExpiresAt,
	)
	return err
}

func (p *Proposals) List(ctx context.Context, username string, limit int) ([]quote.Record, error) {
	rows, err := p.db.Pool.Query(ctx, `
		SELECT number, username, client_name, reference, final_total, item_count, issued_at, expires_at
		FROM proposals
		WHERE username = $1
		ORDER BY issued_at DESC, id DESC
		LIMIT $2`, username, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (quote.Record, error) {
		var r quote.Record
		err := row.Scan(&r.Number, &r.Username, &r.ClientName, &r.Reference, &r.FinalTotal, &r.Items, &r.IssuedAt, &r.ExpiresAt)
		return r, err
	})
}
