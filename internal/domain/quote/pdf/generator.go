package pdf

import "prema-telhados/go_backend/internal/domain/quote"

type Generator interface {
	Generate(p quote.Proposal) ([]byte, error)
}
