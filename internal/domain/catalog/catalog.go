// Package catalog resolves the list of reusable quote item templates, either
// from a remote automation webhook or from a built-in fallback list.
package catalog

import (
	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Source tells whether entries really came from the remote endpoint.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Fallback returns a fresh copy of the built-in catalog.
func Fallback() []quote.CatalogEntry {
	one := decimal.NewFromInt(1)
	return []quote.CatalogEntry{
		{ID: "sp-1", Kind: quote.KindService, Description: "Consultoria de Projetos", Quantity: one, Unit: "un", UnitPrice: decimal.RequireFromString("2500")},
		{ID: "sp-2", Kind: quote.KindMaterial, Description: "Telhas Metálicas Termoacústicas", Quantity: one, Unit: "m²", UnitPrice: decimal.RequireFromString("180.50")},
		{ID: "sp-3", Kind: quote.KindService, Description: "Visita Técnica e Orçamento", Quantity: one, Unit: "un", UnitPrice: decimal.RequireFromString("350.00")},
		{ID: "sp-4", Kind: quote.KindMaterial, Description: "Parafusos de Fixação (Cento)", Quantity: one, Unit: "ct", UnitPrice: decimal.RequireFromString("45.00")},
		{ID: "sp-5", Kind: quote.KindService, Description: "Mão de Obra de Instalação", Quantity: one, Unit: "m²", UnitPrice: decimal.RequireFromString("80.00")},
	}
}
