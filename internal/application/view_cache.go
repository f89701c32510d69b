package application

import (
	"context"
	"sync"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/metrics"
)

// Slot identifies a navigation target.
type Slot int

// View is a screen initialized against the active broker session.
type View interface {
	Init(ctx context.Context, client domain.KafkaClient) error
}

// ViewCache maps slots to initialized views for the current session. Every
// Clear starts a new generation; PutAt refuses views built for an older one.
type ViewCache struct {
	mu      sync.Mutex
	gen     uint64
	entries map[Slot]View
}

func NewViewCache() *ViewCache {
	return &ViewCache{entries: make(map[Slot]View)}
}

// Get returns the cached view for slot.
func (c *ViewCache) Get(slot Slot) (View, bool) {
	c.mu.Lock()
	v, ok := c.entries[slot]
	c.mu.Unlock()
	if ok {
		metrics.ViewCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.ViewCacheLookups.WithLabelValues("miss").Inc()
	}
	return v, ok
}

// Put stores view under slot in the current generation.
func (c *ViewCache) Put(slot Slot, view View) {
	c.mu.Lock()
	c.entries[slot] = view
	c.mu.Unlock()
}

// PutAt stores view only if no Clear happened since gen was observed.
func (c *ViewCache) PutAt(gen uint64, slot Slot, view View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.entries[slot] = view
	return true
}

// Clear drops every entry and starts a new generation.
func (c *ViewCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Slot]View)
	c.gen++
	c.mu.Unlock()
	metrics.ViewCacheClears.Inc()
}

// Generation returns the current generation.
func (c *ViewCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Len returns the number of cached views.
func (c *ViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
