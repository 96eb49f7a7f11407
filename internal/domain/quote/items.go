package quote

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Items is an ordered list of line items. Every mutation returns a new list
// and leaves the receiver untouched, so holders can swap lists wholesale.
type Items []LineItem

func (l Items) Add(it LineItem) Items {
	out := make(Items, 0, len(l)+1)
	out = append(out, l...)
	return append(out, it)
}

// AddFromCatalog clones e with an id from newID that no item in l carries yet.
// Quantity is forced to 1 and details are cleared.
func (l Items) AddFromCatalog(e CatalogEntry, newID func() string) (Items, LineItem) {
	id := newID()
	for l.has(id) {
		id = newID()
	}
	unit := e.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	kind := e.Kind
	if !kind.Valid() {
		kind = KindService
	}
	it := LineItem{
		ID:          id,
		Kind:        kind,
		Description: e.Description,
		Quantity:    decimal.NewFromInt(1),
		Unit:        unit,
		UnitPrice:   e.UnitPrice,
	}
	return l.Add(it), it
}

func (l Items) Update(id string, p ItemPatch) (Items, LineItem, error) {
	i := l.index(id)
	if i < 0 {
		return l, LineItem{}, ErrItemNotFound
	}
	updated, err := p.apply(l[i])
	if err != nil {
		return l, LineItem{}, err
	}
	out := slices.Clone(l)
	out[i] = updated
	return out, updated, nil
}

func (l Items) Remove(id string) (Items, error) {
	i := l.index(id)
	if i < 0 {
		return l, ErrItemNotFound
	}
	out := make(Items, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

func (l Items) Find(id string) (LineItem, bool) {
	i := l.index(id)
	if i < 0 {
		return LineItem{}, false
	}
	return l[i], true
}

func (l Items) index(id string) int {
	return slices.IndexFunc(l, func(it LineItem) bool { return it.ID == id })
}

func (l Items) has(id string) bool { return l.index(id) >= 0 }
