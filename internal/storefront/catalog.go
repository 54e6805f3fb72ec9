package storefront

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/models"
)

// Loader produces a full catalog. It must not fail; see source.Loader.
type Loader interface {
	Load(ctx context.Context) []models.Product
}

// Snapshot is one immutable catalog generation. Callers must not modify Products.
type Snapshot struct {
	Version  uint64           `json:"version"`
	LoadedAt time.Time        `json:"loaded_at"`
	Products []models.Product `json:"-"`
}

// Catalog holds the current snapshot. Every request reads one snapshot and
// works on it for its whole lifetime; reloads replace the snapshot wholesale.
type Catalog struct {
	loader  Loader
	current atomic.Pointer[Snapshot]

	reloadMu sync.Mutex

	subsMu sync.RWMutex
	subs   map[int]func(*Snapshot)
	nextID int
}

// NewCatalog starts with an empty version-0 snapshot until the first Reload.
func NewCatalog(loader Loader) *Catalog {
	c := &Catalog{loader: loader, subs: make(map[int]func(*Snapshot))}
	c.current.Store(&Snapshot{Products: []models.Product{}})
	return c
}

func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Reload loads the whole catalog again and swaps it in, then notifies
// subscribers. Concurrent reloads run one after another.
func (c *Catalog) Reload(ctx context.Context) *Snapshot {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	products := c.loader.Load(ctx)
	if products == nil {
		products = []models.Product{}
	}
	next := &Snapshot{
		Version:  c.current.Load().Version + 1,
		LoadedAt: time.Now().UTC(),
		Products: products,
	}
	c.current.Store(next)
	log.Infof("📦 catalog v%d loaded: %d products", next.Version, len(products))

	c.notify(next)
	return next
}

// Subscribe registers fn to run after every reload. The returned func removes it.
func (c *Catalog) Subscribe(fn func(*Snapshot)) func() {
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Catalog) notify(s *Snapshot) {
	c.subsMu.RLock()
	fns := make([]func(*Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
