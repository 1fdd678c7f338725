// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	catdom "revendo/internal/domain/catalog"
	clidom "revendo/internal/domain/client"
	saledom "revendo/internal/domain/sale"
)

// In-memory repository fakes. ApplyBatch is all-or-nothing like the real
// store adapter.

type fakeSaleRepo struct {
	mu      sync.Mutex
	records map[string]saledom.Record
	failAll bool
}

func newFakeSaleRepo(records ...saledom.Record) *fakeSaleRepo {
	r := &fakeSaleRepo{records: make(map[string]saledom.Record)}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *fakeSaleRepo) GetByID(_ context.Context, _ string, id string) (saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return saledom.Record{}, saledom.ErrNotFound
	}
	return rec, nil
}

func (r *fakeSaleRepo) ListRecent(_ context.Context, _ string) ([]saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]saledom.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSaleRepo) ListGroup(_ context.Context, _ string, key saledom.GroupKey) ([]saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]saledom.Record, 0)
	for _, rec := range r.records {
		if rec.GroupKey() == key {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) ApplyBatch(_ context.Context, _ string, muts []saledom.Mutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return context.DeadlineExceeded
	}
	for _, m := range muts {
		switch m.Kind {
		case saledom.MutPut:
			r.records[m.Record.ID] = m.Record
		case saledom.MutDelete:
			delete(r.records, m.Record.ID)
		}
	}
	return nil
}

func (r *fakeSaleRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeCatalogRepo struct {
	entries []catdom.Entry
}

func (r *fakeCatalogRepo) GetByID(_ context.Context, _ string, id string) (catdom.Entry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return catdom.Entry{}, catdom.ErrNotFound
}

func (r *fakeCatalogRepo) List(_ context.Context, _ string) ([]catdom.Entry, error) {
	return r.entries, nil
}

func (r *fakeCatalogRepo) Create(_ context.Context, _ string, e catdom.Entry) (catdom.Entry, error) {
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *fakeCatalogRepo) Update(_ context.Context, _ string, e catdom.Entry) (catdom.Entry, error) {
	for i := range r.entries {
		if r.entries[i].ID == e.ID {
			r.entries[i] = e
			return e, nil
		}
	}
	return catdom.Entry{}, catdom.ErrNotFound
}

func (r *fakeCatalogRepo) Delete(_ context.Context, _ string, id string) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return catdom.ErrNotFound
}

type fakeClientRepo struct {
	entries []clidom.Entry
}

func (r *fakeClientRepo) List(_ context.Context, _ string) ([]clidom.Entry, error) {
	return r.entries, nil
}

func (r *fakeClientRepo) Create(_ context.Context, _ string, e clidom.Entry) (clidom.Entry, error) {
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, _ string, id string) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return clidom.ErrNotFound
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }
