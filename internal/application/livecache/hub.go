// internal/application/livecache/hub.go
package livecache

import (
	"context"
	"log"
	"sync"
)

// Watcher starts the four per-collection snapshot listeners for one vendor
// namespace, feeding a Store until ctx is cancelled. Implemented by the
// Firestore adapter. Each listener carries its own error handler; one cancel
// tears them all down.
type Watcher interface {
	Watch(ctx context.Context, vendorID string, store *Store) error
}

// Hub lazily maintains one Store (and one watcher set) per vendor.
type Hub struct {
	watcher Watcher

	mu      sync.Mutex
	vendors map[string]*vendorEntry
}

type vendorEntry struct {
	store  *Store
	cancel context.CancelFunc
}

func NewHub(watcher Watcher) *Hub {
	return &Hub{
		watcher: watcher,
		vendors: make(map[string]*vendorEntry),
	}
}

// Ensure returns the vendor's live store, starting its subscriptions on
// first access. The returned store may still be warming up; callers that
// need a guaranteed-fresh read go to the repositories instead.
func (h *Hub) Ensure(ctx context.Context, vendorID string) *Store {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.vendors[vendorID]; ok {
		return e.store
	}

	store := NewStore()
	// Watchers outlive the request; detach from the request context.
	wctx, cancel := context.WithCancel(context.Background())
	h.vendors[vendorID] = &vendorEntry{store: store, cancel: cancel}

	if h.watcher != nil {
		go func() {
			if err := h.watcher.Watch(wctx, vendorID, store); err != nil && wctx.Err() == nil {
				log.Printf("[livecache] watch ended vendor=%s err=%v", vendorID, err)
			}
			// A dead listener set must not keep serving its last snapshot.
			// Evicting the entry makes the next request restart the
			// subscriptions (or fall back to a repository read meanwhile).
			h.evict(vendorID, store)
		}()
	}
	return store
}

// evict removes the vendor entry owning store. A newer entry for the same
// vendor (already restarted) is left alone.
func (h *Hub) evict(vendorID string, store *Store) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.vendors[vendorID]; ok && e.store == store {
		e.cancel()
		delete(h.vendors, vendorID)
	}
}

// Drop tears down one vendor's subscriptions (logout).
func (h *Hub) Drop(vendorID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.vendors[vendorID]; ok {
		e.cancel()
		delete(h.vendors, vendorID)
	}
}

// Close tears down everything.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, e := range h.vendors {
		e.cancel()
		delete(h.vendors, id)
	}
}
