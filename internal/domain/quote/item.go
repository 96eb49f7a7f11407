package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidItem  = errors.New("invalid item")
)

type Kind string

const (
	KindService  Kind = "service"
	KindMaterial Kind = "material"
)

// ParseKind maps free text to a Kind. Anything that is not a material is a service.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindMaterial)) {
		return KindMaterial
	}
	return KindService
}

func (k Kind) Valid() bool { return k == KindService || k == KindMaterial }

const DefaultUnit = "un"

type LineItem struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Details     string          `json:"details,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CatalogEntry is a read-only template; its ID is only meaningful inside the catalog it came from.
type CatalogEntry struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Details     string          `json:"details,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NewLineItem builds a manually entered item. Zero quantity or price is accepted, negatives are not.
func NewLineItem(id string, kind Kind, description string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) (LineItem, error) {
	it := LineItem{
		ID:          id,
		Kind:        kind,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		Unit:        strings.TrimSpace(unit),
		UnitPrice:   unitPrice,
	}
	if !it.Kind.Valid() {
		it.Kind = KindService
	}
	if it.Unit == "" {
		it.Unit = DefaultUnit
	}
	if it.Description == "" {
		return LineItem{}, fmt.Errorf("%w: description is required", ErrInvalidItem)
	}
	if err := checkAmounts(it.Quantity, it.UnitPrice); err != nil {
		return LineItem{}, err
	}
	return it, nil
}

func checkAmounts(qty, price decimal.Decimal) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidItem)
	}
	return nil
}

// ItemPatch replaces only the fields that are set.
type ItemPatch struct {
	Kind        *Kind            `json:"kind,omitempty"`
	Description *string          `json:"description,omitempty"`
	Details     *string          `json:"details,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

func (p ItemPatch) apply(it LineItem) (LineItem, error) {
	if p.Kind != nil {
		if !p.Kind.Valid() {
			return it, fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, *p.Kind)
		}
		it.Kind = *p.Kind
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if desc == "" {
			return it, fmt.Errorf("%w: description is required", ErrInvalidItem)
		}
		it.Description = desc
	}
	if p.Details != nil {
		it.Details = *p.Details
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.UnitPrice != nil {
		it.UnitPrice = *p.UnitPrice
	}
	if err := checkAmounts(it.Quantity, it.UnitPrice); err != nil {
		return it, err
	}
	return it, nil
}
