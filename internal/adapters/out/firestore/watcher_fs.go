// internal/adapters/out/firestore/watcher_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"revendo/internal/application/livecache"
	brandingdom "revendo/internal/domain/branding"
	catdom "revendo/internal/domain/catalog"
	clientdom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

// ============================================================
// Firestore snapshot listeners feeding the live cache
// ============================================================

// WatcherFS implements livecache.Watcher on top of Firestore's Snapshots
// API. Each vendor gets four listeners (sales, catalog, clients, branding);
// every snapshot replaces the whole collection view in the store, so the
// cache converges even after missed intermediate states.
type WatcherFS struct {
	Client *firestore.Client
}

func NewWatcherFS(client *firestore.Client) *WatcherFS {
	return &WatcherFS{Client: client}
}

var _ livecache.Watcher = (*WatcherFS)(nil)

// Watch blocks until ctx is cancelled or a listener fails. The first
// listener error tears down the other three.
func (w *WatcherFS) Watch(ctx context.Context, vendorID string, store *livecache.Store) error {
	if w.Client == nil {
		return errors.New("firestore client is nil")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		watchErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			watchErr = err
			cancel()
		})
	}

	run := func(name string, loop func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := loop(ctx); err != nil && ctx.Err() == nil {
				log.Printf("[livecache] %s listener vendor=%s err=%v", name, vendorID, err)
				fail(err)
			}
		}()
	}

	run("sales", func(ctx context.Context) error {
		return w.watchSales(ctx, vendorID, store)
	})
	run("catalog", func(ctx context.Context) error {
		return w.watchCatalog(ctx, vendorID, store)
	})
	run("clients", func(ctx context.Context) error {
		return w.watchClients(ctx, vendorID, store)
	})
	run("branding", func(ctx context.Context) error {
		return w.watchBranding(ctx, vendorID, store)
	})

	wg.Wait()
	if watchErr != nil {
		return watchErr
	}
	return ctx.Err()
}

func (w *WatcherFS) watchSales(ctx context.Context, vendorID string, store *livecache.Store) error {
	q := salesCol(w.Client, vendorID).
		OrderBy("createdAt", firestore.Desc).
		Limit(saledom.MaxRecentRecords)

	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return snapshotErr(err)
		}

		records := make([]saledom.Record, 0)
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return err
			}
			rec, err := docToSaleRecord(doc)
			if err != nil {
				log.Printf("[livecache] skip malformed sale doc id=%s err=%v", doc.Ref.ID, err)
				continue
			}
			records = append(records, rec)
		}
		store.SetSales(records)
	}
}

func (w *WatcherFS) watchCatalog(ctx context.Context, vendorID string, store *livecache.Store) error {
	it := catalogCol(w.Client, vendorID).OrderBy("name", firestore.Asc).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return snapshotErr(err)
		}

		entries := make([]catdom.Entry, 0)
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return err
			}
			e, err := docToCatalogEntry(doc)
			if err != nil {
				log.Printf("[livecache] skip malformed catalog doc id=%s err=%v", doc.Ref.ID, err)
				continue
			}
			entries = append(entries, e)
		}
		store.SetCatalog(entries)
	}
}

func (w *WatcherFS) watchClients(ctx context.Context, vendorID string, store *livecache.Store) error {
	it := clientsCol(w.Client, vendorID).OrderBy("name", firestore.Asc).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return snapshotErr(err)
		}

		entries := make([]clientdom.Entry, 0)
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return err
			}

			var raw struct {
				Name  string `firestore:"name"`
				Phone string `firestore:"phone"`
			}
			if err := doc.DataTo(&raw); err != nil {
				log.Printf("[livecache] skip malformed client doc id=%s err=%v", doc.Ref.ID, err)
				continue
			}
			entries = append(entries, clientdom.Entry{
				ID:    doc.Ref.ID,
				Name:  raw.Name,
				Phone: raw.Phone,
			})
		}
		store.SetClients(entries)
	}
}

func (w *WatcherFS) watchBranding(ctx context.Context, vendorID string, store *livecache.Store) error {
	it := brandingDoc(w.Client, vendorID).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return snapshotErr(err)
		}
		if !snap.Exists() {
			store.SetBranding(brandingdom.Config{})
			continue
		}

		var raw struct {
			DisplayName string `firestore:"displayName"`
			LogoObject  string `firestore:"logoObject"`
		}
		if err := snap.DataTo(&raw); err != nil {
			log.Printf("[livecache] skip malformed branding doc vendor=%s err=%v", vendorID, err)
			continue
		}
		store.SetBranding(brandingdom.Config{
			DisplayName: raw.DisplayName,
			LogoObject:  raw.LogoObject,
		})
	}
}

// snapshotErr normalizes listener teardown: a cancelled context surfaces
// as codes.Canceled from the snapshot iterator.
func snapshotErr(err error) error {
	if status.Code(err) == codes.Canceled {
		return context.Canceled
	}
	return err
}
