// internal/application/livecache/store.go
package livecache

import (
	"sync/atomic"
	"time"

	brdom "revendo/internal/domain/branding"
	clidom "revendo/internal/domain/client"
	catdom "revendo/internal/domain/catalog"
	saledom "revendo/internal/domain/sale"
)

// Store holds the latest per-vendor snapshots of each watched collection.
// Snapshot handlers are the only writers; everything else reads. Mutations
// never touch the store directly: they go to Firestore and come back through
// the next snapshot, so a failed write leaves the view untouched.
type Store struct {
	sales    atomic.Value // []saledom.Record
	catalog  atomic.Value // []catdom.Entry
	clients  atomic.Value // []clidom.Entry
	branding atomic.Value // brdom.Config

	updatedAt atomic.Value // time.Time of the last snapshot applied
}

func NewStore() *Store {
	s := &Store{}
	s.sales.Store([]saledom.Record{})
	s.catalog.Store([]catdom.Entry{})
	s.clients.Store([]clidom.Entry{})
	s.branding.Store(brdom.Config{})
	s.updatedAt.Store(time.Time{})
	return s
}

func (s *Store) Sales() []saledom.Record {
	return s.sales.Load().([]saledom.Record)
}

func (s *Store) Catalog() []catdom.Entry {
	return s.catalog.Load().([]catdom.Entry)
}

func (s *Store) Clients() []clidom.Entry {
	return s.clients.Load().([]clidom.Entry)
}

func (s *Store) Branding() brdom.Config {
	return s.branding.Load().(brdom.Config)
}

func (s *Store) UpdatedAt() time.Time {
	return s.updatedAt.Load().(time.Time)
}

func (s *Store) SetSales(v []saledom.Record) {
	if v == nil {
		v = []saledom.Record{}
	}
	s.sales.Store(v)
	s.updatedAt.Store(time.Now())
}

func (s *Store) SetCatalog(v []catdom.Entry) {
	if v == nil {
		v = []catdom.Entry{}
	}
	s.catalog.Store(v)
	s.updatedAt.Store(time.Now())
}

func (s *Store) SetClients(v []clidom.Entry) {
	if v == nil {
		v = []clidom.Entry{}
	}
	s.clients.Store(v)
	s.updatedAt.Store(time.Now())
}

func (s *Store) SetBranding(v brdom.Config) {
	s.branding.Store(v)
	s.updatedAt.Store(time.Now())
}
