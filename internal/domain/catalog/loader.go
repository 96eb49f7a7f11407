package catalog

import (
	"context"
	"slices"
	"sync"
	"time"

	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

type Snapshot struct {
	Ready    bool                 `json:"ready"`
	Source   Source               `json:"source,omitempty"`
	Seq      uint64               `json:"seq"`
	LoadedAt time.Time            `json:"loaded_at,omitempty"`
	Entries  []quote.CatalogEntry `json:"entries"`
}

// Loader owns the current catalog. Every Reload is tagged with a sequence
// number; only the result of the latest issued reload is committed and the
// previous in-flight fetch is cancelled.
type Loader struct {
	fetcher *Fetcher
	mode    Mode
	url     string
	now     func() time.Time

	mu     sync.Mutex
	issued uint64
	cancel context.CancelFunc
	snap   Snapshot
}

func NewLoader(f *Fetcher, mode Mode, url string) *Loader {
	return &Loader{fetcher: f, mode: mode, url: url, now: time.Now}
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLocked()
}

// Lookup finds an entry of the current snapshot by id.
func (l *Loader) Lookup(id string) (quote.CatalogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.snap.Entries, func(e quote.CatalogEntry) bool { return e.ID == id })
	if i < 0 {
		return quote.CatalogEntry{}, false
	}
	return l.snap.Entries[i], true
}

// Reload fetches the catalog and returns the snapshot current once the fetch
// settles. A reload superseded by a newer one, or whose ctx ends before the
// fetch settles, leaves the committed catalog alone.
func (l *Loader) Reload(ctx context.Context) Snapshot {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	if l.cancel != nil {
		l.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.snap.Ready = false
	l.mu.Unlock()

	res := l.fetcher.Fetch(fctx, l.mode, l.url)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.issued {
		obs.Logger.Info("catalog_reload_stale", "seq", seq, "latest", l.issued)
		cancel()
		return l.copyLocked()
	}
	cancel()
	l.cancel = nil
	if ctx.Err() != nil {
		// the caller gave up; that says nothing about the upstream catalog
		obs.Logger.Info("catalog_reload_cancelled", "seq", seq, "error", ctx.Err())
		l.snap.Ready = l.snap.Seq > 0
		return l.copyLocked()
	}
	l.snap = Snapshot{
		Ready:    true,
		Source:   res.Source,
		Seq:      seq,
		LoadedAt: l.now(),
		Entries:  res.Entries,
	}
	return l.copyLocked()
}

func (l *Loader) copyLocked() Snapshot {
	s := l.snap
	s.Entries = slices.Clone(l.snap.Entries)
	return s
}
