// internal/adapters/out/firestore/catalog_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catdom "revendo/internal/domain/catalog"
)

// ============================================================
// Firestore-based Catalog Repository
// ============================================================

type CatalogRepositoryFS struct {
	Client *firestore.Client
}

func NewCatalogRepositoryFS(client *firestore.Client) *CatalogRepositoryFS {
	return &CatalogRepositoryFS{Client: client}
}

var _ catdom.Repository = (*CatalogRepositoryFS)(nil)

func (r *CatalogRepositoryFS) GetByID(ctx context.Context, vendorID, id string) (catdom.Entry, error) {
	if r.Client == nil {
		return catdom.Entry{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return catdom.Entry{}, catdom.ErrNotFound
	}

	snap, err := catalogCol(r.Client, vendorID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return catdom.Entry{}, catdom.ErrNotFound
	}
	if err != nil {
		return catdom.Entry{}, err
	}

	return docToCatalogEntry(snap)
}

func (r *CatalogRepositoryFS) List(ctx context.Context, vendorID string) ([]catdom.Entry, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := catalogCol(r.Client, vendorID).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := make([]catdom.Entry, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		e, err := docToCatalogEntry(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *CatalogRepositoryFS) Create(ctx context.Context, vendorID string, e catdom.Entry) (catdom.Entry, error) {
	if r.Client == nil {
		return catdom.Entry{}, errors.New("firestore client is nil")
	}

	ref := catalogCol(r.Client, vendorID).Doc(strings.TrimSpace(e.ID))
	if _, err := ref.Create(ctx, catalogEntryToDocData(e)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return catdom.Entry{}, catdom.ErrConflict
		}
		return catdom.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepositoryFS) Update(ctx context.Context, vendorID string, e catdom.Entry) (catdom.Entry, error) {
	if r.Client == nil {
		return catdom.Entry{}, errors.New("firestore client is nil")
	}

	ref := catalogCol(r.Client, vendorID).Doc(strings.TrimSpace(e.ID))
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return catdom.Entry{}, catdom.ErrNotFound
	} else if err != nil {
		return catdom.Entry{}, err
	}

	if _, err := ref.Set(ctx, catalogEntryToDocData(e)); err != nil {
		return catdom.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepositoryFS) Delete(ctx context.Context, vendorID, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return catdom.ErrNotFound
	}

	ref := catalogCol(r.Client, vendorID).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return catdom.ErrNotFound
	} else if err != nil {
		return err
	}

	_, err := ref.Delete(ctx)
	return err
}

// ============================================================
// Mapping Helpers
// ============================================================

type catalogDoc struct {
	Name         string     `firestore:"name"`
	Cost         float64    `firestore:"cost"`
	Type         string     `firestore:"type"`
	DefaultSlots int        `firestore:"defaultSlots"`
	CreatedAt    time.Time  `firestore:"createdAt"`
	UpdatedAt    *time.Time `firestore:"updatedAt"`
}

func docToCatalogEntry(doc *firestore.DocumentSnapshot) (catdom.Entry, error) {
	var raw catalogDoc
	if err := doc.DataTo(&raw); err != nil {
		return catdom.Entry{}, err
	}

	e := catdom.Entry{
		ID:           strings.TrimSpace(doc.Ref.ID),
		Name:         strings.TrimSpace(raw.Name),
		Cost:         decimal.NewFromFloat(raw.Cost),
		Type:         catdom.Type(raw.Type),
		DefaultSlots: raw.DefaultSlots,
	}
	e.CreatedAt = raw.CreatedAt
	e.UpdatedAt = raw.UpdatedAt
	return e, nil
}

func catalogEntryToDocData(e catdom.Entry) map[string]any {
	cost, _ := e.Cost.Float64()

	data := map[string]any{
		"name":         strings.TrimSpace(e.Name),
		"cost":         cost,
		"type":         string(e.Type),
		"defaultSlots": e.DefaultSlots,
		"createdAt":    e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		data["updatedAt"] = *e.UpdatedAt
	}
	return data
}
