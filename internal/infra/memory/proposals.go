// Package memory keeps proposal records in process memory when no database
// is configured.
package memory

import (
	"context"
	"sync"

	"prema-telhados/go_backend/internal/domain/quote"
)

type Proposals struct {
	mu      sync.Mutex
	records []quote.Record
}

func NewProposals() *Proposals { return &Proposals{} }

func (p *Proposals) Record(_ context.Context, r quote.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, r)
	return nil
}

// List returns the newest records of username first.
func (p *Proposals) List(_ context.Context, username string, limit int) ([]quote.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []quote.Record{}
	for i := len(p.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if p.records[i].Username == username {
			out = append(out, p.records[i])
		}
	}
	return out, nil
}
