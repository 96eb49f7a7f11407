// Package workspace keeps one in-memory draft quote per logged-in user.
package workspace

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
)

type Options struct {
	Company      quote.Company
	ValidityDays int
	Now          func() time.Time
	NewID        func() string
	NewNumber    func() int
}

type Store struct {
	opts Options

	mu     sync.Mutex
	drafts map[string]*Draft
}

func New(opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.NewNumber == nil {
		opts.NewNumber = func() int { return rand.IntN(10000) }
	}
	if opts.ValidityDays == 0 {
		opts.ValidityDays = quote.DefaultValidityDays
	}
	opts.Company = opts.Company.Merge(quote.DefaultCompany())
	return &Store{opts: opts, drafts: make(map[string]*Draft)}
}

// Draft returns the user's draft, creating it on first use.
func (s *Store) Draft(username string, est quote.Estimator) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[username]
	if !ok {
		d = &Draft{opts: s.opts, q: blank(s.opts, est)}
		s.drafts[username] = d
	}
	return d
}

// Drop forgets the user's draft.
func (s *Store) Drop(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, username)
}

func blank(opts Options, est quote.Estimator) quote.Quote {
	return quote.Quote{
		Number:       opts.NewNumber(),
		CreatedAt:    opts.Now(),
		Company:      opts.Company,
		Estimator:    est,
		Items:        quote.Items{},
		Photos:       []quote.Photo{},
		Discount:     decimal.Zero,
		ValidityDays: opts.ValidityDays,
	}
}

// Draft is a quote being edited. Every mutation swaps in a new value.
type Draft struct {
	opts Options

	mu sync.Mutex
	q  quote.Quote
}

func (d *Draft) Snapshot() quote.Quote {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.q
}

func (d *Draft) Proposal() quote.Proposal {
	return quote.BuildProposal(d.Snapshot(), d.opts.Now())
}

func (d *Draft) AddItem(in NewItem) (quote.LineItem, error) {
	it, err := quote.NewLineItem(d.opts.NewID(), in.Kind, in.Description, in.Quantity, in.Unit, in.UnitPrice)
	if err != nil {
		return quote.LineItem{}, err
	}
	it.Details = in.Details
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dup := d.q.Items.Find(it.ID); dup; _, dup = d.q.Items.Find(it.ID) {
		it.ID = d.opts.NewID()
	}
	d.q.Items = d.q.Items.Add(it)
	return it, nil
}

func (d *Draft) AddFromCatalog(e quote.CatalogEntry) quote.LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	var it quote.LineItem
	d.q.Items, it = d.q.Items.AddFromCatalog(e, d.opts.NewID)
	return it
}

func (d *Draft) UpdateItem(id string, p quote.ItemPatch) (quote.LineItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, it, err := d.q.Items.Update(id, p)
	if err != nil {
		return quote.LineItem{}, err
	}
	d.q.Items = items
	return it, nil
}

func (d *Draft) RemoveItem(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, err := d.q.Items.Remove(id)
	if err != nil {
		return err
	}
	d.q.Items = items
	return nil
}

func (d *Draft) Update(p Patch) (quote.Quote, error) {
	if err := p.validate(); err != nil {
		return quote.Quote{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.q = p.apply(d.q)
	return d.q, nil
}

func (d *Draft) AddPhoto(contentType string, data []byte, caption string) quote.Photo {
	p := quote.Photo{ID: d.opts.NewID(), ContentType: contentType, Data: data, Caption: caption}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.q = d.q.WithPhoto(p)
	return p
}

func (d *Draft) CaptionPhoto(id, caption string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.q.WithCaption(id, caption)
	if err != nil {
		return err
	}
	d.q = q
	return nil
}

func (d *Draft) RemovePhoto(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, err := d.q.WithoutPhoto(id)
	if err != nil {
		return err
	}
	d.q = q
	return nil
}

// RotateNumber draws a new proposal number, as done after every export.
func (d *Draft) RotateNumber() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.q.Number = d.opts.NewNumber()
	return d.q.Number
}

// Reset clears the draft and keeps the estimator.
func (d *Draft) Reset() quote.Quote {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.q = blank(d.opts, d.q.Estimator)
	return d.q
}
