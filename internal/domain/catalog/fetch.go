package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

const (
	untitled = "Item sem descrição"
	maxBody  = 8 << 20
)

// Result is what a fetch resolved to. Err carries the cause when the
// fallback list was served because the remote call failed.
type Result struct {
	Entries []quote.CatalogEntry
	Source  Source
	Err     error
}

type Fetcher struct {
	HTTP       *http.Client
	Fallback   []quote.CatalogEntry
	LocalDelay time.Duration
}

func NewFetcher(client *http.Client, localDelay time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{HTTP: client, Fallback: Fallback(), LocalDelay: localDelay}
}

// Fetch never fails from the caller's point of view: every error path
// resolves to the fallback list tagged SourceFallback.
func (f *Fetcher) Fetch(ctx context.Context, mode Mode, url string) Result {
	if mode == ModeLocal || strings.TrimSpace(url) == "" {
		obs.Logger.Info("catalog_local", "mode", string(mode))
		if f.LocalDelay > 0 {
			t := time.NewTimer(f.LocalDelay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
			}
		}
		return Result{Entries: f.fallback(), Source: SourceFallback}
	}

	entries, err := f.fetchRemote(ctx, url)
	if err != nil {
		obs.Logger.Warn("catalog_remote_failed", "error", err)
		return Result{Entries: f.fallback(), Source: SourceFallback, Err: err}
	}
	obs.Logger.Info("catalog_remote_loaded", "entries", len(entries))
	return Result{Entries: entries, Source: SourceRemote}
}

func (f *Fetcher) fallback() []quote.CatalogEntry {
	out := make([]quote.CatalogEntry, len(f.Fallback))
	copy(out, f.Fallback)
	return out
}

func (f *Fetcher) fetchRemote(ctx context.Context, url string) ([]quote.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("catalog status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	return decodeEntries(body)
}

// decodeEntries maps a webhook body to catalog entries. A well-formed body
// of any shape other than {"value": [...]} yields an empty list.
func decodeEntries(body []byte) ([]quote.CatalogEntry, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode catalog: malformed json")
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return []quote.CatalogEntry{}, nil
	}
	raw, ok := doc["value"]
	if !ok || string(raw) == "null" {
		return []quote.CatalogEntry{}, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode catalog value: %w", err)
	}

	out := make([]quote.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		var r rawEntry
		_ = json.Unmarshal(row, &r)
		out = append(out, r.entry())
	}
	return out, nil
}

// rawEntry is one row of the automation webhook payload. Every field is
// loosely typed because the upstream list is edited by hand.
type rawEntry struct {
	ID      json.RawMessage `json:"ID"`
	Item    json.RawMessage `json:"Item"`
	Title   json.RawMessage `json:"Title"`
	Unidade json.RawMessage `json:"Unidade"`
	Preco   json.RawMessage `json:"Preco"`
}

func (r rawEntry) entry() quote.CatalogEntry {
	desc := rawString(r.Title)
	if desc == "" {
		desc = untitled
	}
	unit := rawString(r.Unidade)
	if unit == "" {
		unit = quote.DefaultUnit
	}
	return quote.CatalogEntry{
		ID:          rawString(r.ID),
		Kind:        rawKind(r.Item),
		Description: desc,
		Quantity:    decimal.NewFromInt(1),
		Unit:        unit,
		UnitPrice:   rawPrice(r.Preco),
	}
}

// rawString accepts a JSON string or number; anything else is empty.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawKind accepts "Material" or {"Value": "Material"}.
func rawKind(raw json.RawMessage) quote.Kind {
	if s := rawString(raw); s != "" {
		return quote.ParseKind(s)
	}
	var choice struct {
		Value string `json:"Value"`
	}
	if err := json.Unmarshal(raw, &choice); err == nil {
		return quote.ParseKind(choice.Value)
	}
	return quote.KindService
}

// rawPrice accepts a number or a numeric string ("45,90" included); otherwise 0.
func rawPrice(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(rawString(raw))
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return decimal.NewFromFloat(f)
	}
	return decimal.Zero
}
