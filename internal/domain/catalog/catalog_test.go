package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchServerErrorFallsBack(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, `{"error":"license"}`)
	res := NewFetcher(srv.Client(), 0).Fetch(context.Background(), ModeRemote, srv.URL)
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
	if res.Err == nil {
		t.Fatalf("expected the swallowed cause to be recorded")
	}
	if len(res.Entries) != len(Fallback()) {
		t.Fatalf("expected %d fallback entries, got %d", len(Fallback()), len(res.Entries))
	}
}

func TestFetchNetworkErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	res := NewFetcher(nil, 0).Fetch(context.Background(), ModeRemote, url)
	if res.Source != SourceFallback || len(res.Entries) == 0 {
		t.Fatalf("expected fallback entries, got %+v", res)
	}
}

func TestFetchMalformedBodyFallsBack(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"value": [`)
	res := NewFetcher(srv.Client(), 0).Fetch(context.Background(), ModeRemote, srv.URL)
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback, got %s", res.Source)
	}
}

func TestFetchCoercesRemoteEntries(t *testing.T) {
	body := `{"value":[
		{"ID": 7, "Item": {"Value": "Material"}, "Title": "Telha TP40", "Unidade": "m", "Preco": 45},
		{"ID": "8", "Item": "SERVICE", "Title": "Revisão de calhas", "Preco": "350.00"},
		{"ID": 9, "Item": "equipamento", "Preco": "abc"},
		{"ID": 10, "Item": "material", "Title": "Rufo", "Preco": "12,50"}
	]}`
	srv := serve(t, http.StatusOK, body)
	res := NewFetcher(srv.Client(), 0).Fetch(context.Background(), ModeRemote, srv.URL)
	if res.Source != SourceRemote || res.Err != nil {
		t.Fatalf("expected remote source, got %s (%v)", res.Source, res.Err)
	}
	if len(res.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(res.Entries))
	}

	e := res.Entries[0]
	if e.ID != "7" || e.Kind != quote.KindMaterial || e.Unit != "m" || !e.UnitPrice.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected first entry %+v", e)
	}
	e = res.Entries[1]
	if e.Kind != quote.KindService || e.Unit != "un" || !e.UnitPrice.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("unexpected second entry %+v", e)
	}
	e = res.Entries[2]
	if e.Kind != quote.KindService || e.Description != untitled || !e.UnitPrice.IsZero() {
		t.Fatalf("unexpected third entry %+v", e)
	}
	if !res.Entries[3].UnitPrice.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected comma decimal to parse, got %s", res.Entries[3].UnitPrice)
	}
	for _, e := range res.Entries {
		if !e.Quantity.Equal(decimal.NewFromInt(1)) {
			t.Fatalf("expected quantity 1, got %s", e.Quantity)
		}
	}
}

func TestFetchOtherShapesYieldEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"value": null}`, `[]`, `"x"`, `{"items": [1,2]}`} {
		srv := serve(t, http.StatusOK, body)
		res := NewFetcher(srv.Client(), 0).Fetch(context.Background(), ModeRemote, srv.URL)
		if res.Source != SourceRemote || len(res.Entries) != 0 {
			t.Fatalf("body %s: expected empty remote list, got %s with %d", body, res.Source, len(res.Entries))
		}
	}
}

func TestFetchLocalMode(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer srv.Close()

	f := NewFetcher(srv.Client(), 0)
	for _, tc := range []struct {
		mode Mode
		url  string
	}{{ModeLocal, srv.URL}, {ModeRemote, ""}} {
		res := f.Fetch(context.Background(), tc.mode, tc.url)
		if res.Source != SourceFallback || res.Err != nil || len(res.Entries) != 5 {
			t.Fatalf("unexpected local result %+v", res)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no remote calls, got %d", hits.Load())
	}
}

func TestFallbackIsIndependentCopy(t *testing.T) {
	f := NewFetcher(nil, 0)
	a := f.Fetch(context.Background(), ModeLocal, "")
	a.Entries[0].Description = "changed"
	b := f.Fetch(context.Background(), ModeLocal, "")
	if b.Entries[0].Description == "changed" {
		t.Fatalf("fallback list shared between results")
	}
}

func TestLoaderDiscardsStaleReload(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(started)
			select {
			case <-r.Context().Done():
				return
			case <-release:
			}
			w.Write([]byte(`{"value":[{"ID":1,"Title":"stale"}]}`))
			return
		}
		w.Write([]byte(`{"value":[{"ID":2,"Title":"fresh"}]}`))
	}))
	defer srv.Close()
	defer close(release)

	l := NewLoader(NewFetcher(srv.Client(), 0), ModeRemote, srv.URL)

	done := make(chan Snapshot)
	go func() { done <- l.Reload(context.Background()) }()
	<-started

	if s := l.Snapshot(); s.Ready {
		t.Fatalf("expected not ready while loading")
	}

	fresh := l.Reload(context.Background())
	if !fresh.Ready || fresh.Seq != 2 || fresh.Source != SourceRemote {
		t.Fatalf("unexpected fresh snapshot %+v", fresh)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("stale reload never returned")
	}

	s := l.Snapshot()
	if s.Seq != 2 || len(s.Entries) != 1 || s.Entries[0].Description != "fresh" {
		t.Fatalf("stale result overwrote the catalog: %+v", s)
	}
	if _, ok := l.Lookup("2"); !ok {
		t.Fatalf("expected lookup of fresh entry")
	}
	if _, ok := l.Lookup("1"); ok {
		t.Fatalf("stale entry visible")
	}
}

func TestLoaderKeepsCatalogWhenCallerCancels(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			select {
			case <-r.Context().Done():
				return
			case <-release:
			}
		}
		w.Write([]byte(`{"value":[{"ID":1,"Item":"material","Title":"Telha TP40","Preco":45}]}`))
	}))
	defer srv.Close()
	defer close(release)

	l := NewLoader(NewFetcher(srv.Client(), 0), ModeRemote, srv.URL)
	if s := l.Reload(context.Background()); s.Source != SourceRemote || len(s.Entries) != 1 {
		t.Fatalf("unexpected first load %+v", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s := l.Reload(ctx)
	if !s.Ready || s.Source != SourceRemote || len(s.Entries) != 1 || s.Seq != 1 {
		t.Fatalf("cancelled reload replaced the remote catalog: %+v", s)
	}
	if s := l.Snapshot(); !s.Ready || s.Source != SourceRemote {
		t.Fatalf("unexpected snapshot after cancelled reload %+v", s)
	}
}

func TestLoaderCancelledBeforeFirstLoadIsNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewLoader(NewFetcher(srv.Client(), 0), ModeRemote, srv.URL).Reload(ctx)
	if s.Ready || len(s.Entries) != 0 {
		t.Fatalf("expected no catalog yet, got %+v", s)
	}
}

func TestSearch(t *testing.T) {
	entries := Fallback()
	if got := Search(entries, ""); len(got) != len(entries) {
		t.Fatalf("empty term should return everything")
	}
	got := Search(entries, "TELHAS")
	if len(got) != 1 || got[0].ID != "sp-2" {
		t.Fatalf("expected telhas match, got %+v", got)
	}
	got = Search(entries, "parafuzos")
	if len(got) != 1 || got[0].ID != "sp-4" {
		t.Fatalf("expected typo-tolerant match on parafusos, got %+v", got)
	}
	got = Search(entries, "de")
	if len(got) != 3 {
		t.Fatalf("expected 3 substring matches for 'de', got %d", len(got))
	}
	if got := Search(entries, "xyz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
